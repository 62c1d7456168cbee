package vip

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

type repoMock struct {
	CreateFunc             func(ctx context.Context, v *domain.Vip) (*domain.Vip, error)
	GetByIDFunc            func(ctx context.Context, tenantID, id uuid.UUID) (*domain.Vip, error)
	UpdateFunc             func(ctx context.Context, tenantID, id, updatedBy uuid.UUID, p domain.VipUpdateParams) (*domain.Vip, error)
	DeleteFunc             func(ctx context.Context, tenantID, id uuid.UUID) error
	SearchAndCountFunc     func(ctx context.Context, tenantID uuid.UUID, q domain.SearchQuery[domain.VipFilter]) (*domain.SearchResult[domain.Vip], error)
	AutocompleteFunc       func(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]domain.AutocompleteItem, error)
	CountFunc              func(ctx context.Context, tenantID uuid.UUID) (int, error)
	ExistsByImportHashFunc func(ctx context.Context, tenantID uuid.UUID, hash string) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, v *domain.Vip) (*domain.Vip, error) {
	return m.CreateFunc(ctx, v)
}

func (m *repoMock) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Vip, error) {
	return m.GetByIDFunc(ctx, tenantID, id)
}

func (m *repoMock) Update(ctx context.Context, tenantID, id, updatedBy uuid.UUID, p domain.VipUpdateParams) (*domain.Vip, error) {
	return m.UpdateFunc(ctx, tenantID, id, updatedBy, p)
}

func (m *repoMock) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.DeleteFunc(ctx, tenantID, id)
}

func (m *repoMock) SearchAndCount(ctx context.Context, tenantID uuid.UUID, q domain.SearchQuery[domain.VipFilter]) (*domain.SearchResult[domain.Vip], error) {
	return m.SearchAndCountFunc(ctx, tenantID, q)
}

func (m *repoMock) Autocomplete(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]domain.AutocompleteItem, error) {
	return m.AutocompleteFunc(ctx, tenantID, query, limit)
}

func (m *repoMock) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	return m.CountFunc(ctx, tenantID)
}

func (m *repoMock) ExistsByImportHash(ctx context.Context, tenantID uuid.UUID, hash string) (bool, error) {
	return m.ExistsByImportHashFunc(ctx, tenantID, hash)
}

type auditMock struct {
	records []*domain.AuditRecord
}

func (m *auditMock) Append(_ context.Context, rec *domain.AuditRecord) error {
	m.records = append(m.records, rec)
	return nil
}

type txMock struct{}

func (txMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type presignMock struct{}

func (presignMock) PresignDownload(_ context.Context, key string) (string, error) {
	return "https://files.example/" + key, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedCtx(tenantID, userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(ctxutil.WithTenantID(context.Background(), tenantID), userID)
}

func TestCreate_RequiresPhone(t *testing.T) {
	t.Parallel()

	svc := NewService(&repoMock{}, &auditMock{}, txMock{}, presignMock{}, testLogger(), 100)

	_, err := svc.Create(authedCtx(uuid.New(), uuid.New()), CreateInput{Name: "Ana"})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phone", verr.Errors[0].Field)
}

func TestDestroy_WritesAuditInTx(t *testing.T) {
	t.Parallel()

	deleted := false
	email := "ana@example.com"
	repo := &repoMock{
		GetByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.Vip, error) {
			return &domain.Vip{ID: id, Name: "Ana", Phone: "+15550001", Email: &email, Status: domain.RecordStatusPublished}, nil
		},
		DeleteFunc: func(context.Context, uuid.UUID, uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	audit := &auditMock{}
	svc := NewService(repo, audit, txMock{}, presignMock{}, testLogger(), 100)

	err := svc.Destroy(authedCtx(uuid.New(), uuid.New()), uuid.New())
	require.NoError(t, err)

	assert.True(t, deleted)
	require.Len(t, audit.records, 1)
	assert.Equal(t, domain.AuditActionDelete, audit.records[0].Action)
	assert.Equal(t, domain.EntityTypeVip, audit.records[0].EntityType)
	// the audit entry keeps a snapshot of the deleted record
	assert.Equal(t, "+15550001", audit.records[0].Changes["phone"])
	assert.Equal(t, &email, audit.records[0].Changes["email"])
}

func TestDestroyAll_MissingRecordAbortsBatch(t *testing.T) {
	t.Parallel()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	repo := &repoMock{
		GetByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.Vip, error) {
			return &domain.Vip{ID: id, Name: "Ana", Phone: "+15550001"}, nil
		},
		DeleteFunc: func(_ context.Context, _, id uuid.UUID) error {
			if id == ids[0] {
				return nil
			}
			return domain.ErrNotFound
		},
	}
	svc := NewService(repo, &auditMock{}, txMock{}, presignMock{}, testLogger(), 100)

	err := svc.DestroyAll(authedCtx(uuid.New(), uuid.New()), ids)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
