package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
)

type repoMock struct {
	CreateFunc                    func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetByIDFunc                   func(ctx context.Context, tenantID, id uuid.UUID) (*domain.Category, error)
	GetByNameFunc                 func(ctx context.Context, tenantID uuid.UUID, name string) (*domain.Category, error)
	ListAllTenantsNewestFirstFunc func(ctx context.Context, limit int) ([]domain.Category, error)
	UpdateFunc                    func(ctx context.Context, tenantID, id, updatedBy uuid.UUID, p domain.CategoryUpdateParams) (*domain.Category, error)
	DeleteFunc                    func(ctx context.Context, tenantID, id uuid.UUID) error
	SearchAndCountFunc            func(ctx context.Context, tenantID uuid.UUID, q domain.SearchQuery[domain.CategoryFilter]) (*domain.SearchResult[domain.Category], error)
	AutocompleteFunc              func(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]domain.AutocompleteItem, error)
	CountFunc                     func(ctx context.Context, tenantID uuid.UUID) (int, error)
	ExistsByImportHashFunc        func(ctx context.Context, tenantID uuid.UUID, hash string) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	return m.CreateFunc(ctx, c)
}

func (m *repoMock) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Category, error) {
	return m.GetByIDFunc(ctx, tenantID, id)
}

func (m *repoMock) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*domain.Category, error) {
	return m.GetByNameFunc(ctx, tenantID, name)
}

func (m *repoMock) ListAllTenantsNewestFirst(ctx context.Context, limit int) ([]domain.Category, error) {
	return m.ListAllTenantsNewestFirstFunc(ctx, limit)
}

func (m *repoMock) Update(ctx context.Context, tenantID, id, updatedBy uuid.UUID, p domain.CategoryUpdateParams) (*domain.Category, error) {
	return m.UpdateFunc(ctx, tenantID, id, updatedBy, p)
}

func (m *repoMock) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.DeleteFunc(ctx, tenantID, id)
}

func (m *repoMock) SearchAndCount(ctx context.Context, tenantID uuid.UUID, q domain.SearchQuery[domain.CategoryFilter]) (*domain.SearchResult[domain.Category], error) {
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
	AppendFunc func(ctx context.Context, rec *domain.AuditRecord) error
	records    []*domain.AuditRecord
}

func (m *auditMock) Append(ctx context.Context, rec *domain.AuditRecord) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, rec)
	}
	m.records = append(m.records, rec)
	return nil
}

// txMock runs the callback directly. A non-nil result means the transaction
// rolled back.
type txMock struct {
	calls int
}

func (m *txMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type presignMock struct {
	PresignDownloadFunc func(ctx context.Context, key string) (string, error)
}

func (m *presignMock) PresignDownload(ctx context.Context, key string) (string, error) {
	if m.PresignDownloadFunc != nil {
		return m.PresignDownloadFunc(ctx, key)
	}
	return "https://files.example/" + key, nil
}
