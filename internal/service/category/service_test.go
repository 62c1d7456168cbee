package category

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedCtx(tenantID, userID uuid.UUID) context.Context {
	ctx := ctxutil.WithTenantID(context.Background(), tenantID)
	return ctxutil.WithUserID(ctx, userID)
}

func echoCreate(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	out := *c
	return &out, nil
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tenantID, userID := uuid.New(), uuid.New()
	repo := &repoMock{CreateFunc: echoCreate}
	audit := &auditMock{}
	tx := &txMock{}
	svc := NewService(repo, audit, tx, &presignMock{}, testLogger(), 100)

	created, err := svc.Create(authedCtx(tenantID, userID), CreateInput{
		Name: "Shoes",
		Slug: "shoes",
		Photo: []domain.FileRef{
			{Key: "tenants/t/shoes.jpg", Name: "shoes.jpg", SizeBytes: 42},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, tenantID, created.TenantID)
	assert.Equal(t, userID, created.CreatedBy)
	assert.Equal(t, domain.RecordStatusDraft, created.Status)
	assert.Equal(t, "https://files.example/tenants/t/shoes.jpg", created.Photo[0].DownloadURL)

	assert.Equal(t, 1, tx.calls)
	require.Len(t, audit.records, 1)
	assert.Equal(t, domain.AuditActionCreate, audit.records[0].Action)
	assert.Equal(t, domain.EntityTypeCategory, audit.records[0].EntityType)
	assert.Equal(t, userID, audit.records[0].UserID)
}

func TestCreate_ValidationFailsBeforeRepo(t *testing.T) {
	t.Parallel()

	repo := &repoMock{CreateFunc: func(context.Context, *domain.Category) (*domain.Category, error) {
		t.Fatal("repo must not be called on invalid input")
		return nil, nil
	}}
	svc := NewService(repo, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)

	_, err := svc.Create(authedCtx(uuid.New(), uuid.New()), CreateInput{Slug: "no-name"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Errors[0].Field)
}

func TestCreate_MissingTenantContext(t *testing.T) {
	t.Parallel()

	svc := NewService(&repoMock{}, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)

	_, err := svc.Create(ctxutil.WithUserID(context.Background(), uuid.New()), CreateInput{
		Name: "Shoes",
		Slug: "shoes",
	})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestCreate_AuditFailureFailsTheWrite(t *testing.T) {
	t.Parallel()

	auditErr := errors.New("audit insert failed")
	audit := &auditMock{AppendFunc: func(context.Context, *domain.AuditRecord) error {
		return auditErr
	}}
	svc := NewService(&repoMock{CreateFunc: echoCreate}, audit, &txMock{}, &presignMock{}, testLogger(), 100)

	_, err := svc.Create(authedCtx(uuid.New(), uuid.New()), CreateInput{Name: "a", Slug: "a"})
	assert.ErrorIs(t, err, auditErr)
}

func TestUpdate_AuditsOnlySetFields(t *testing.T) {
	t.Parallel()

	tenantID, userID := uuid.New(), uuid.New()
	name := "Renamed"
	repo := &repoMock{
		UpdateFunc: func(_ context.Context, _, id, _ uuid.UUID, _ domain.CategoryUpdateParams) (*domain.Category, error) {
			return &domain.Category{ID: id, TenantID: tenantID, Name: name}, nil
		},
	}
	audit := &auditMock{}
	svc := NewService(repo, audit, &txMock{}, &presignMock{}, testLogger(), 100)

	_, err := svc.Update(authedCtx(tenantID, userID), uuid.New(), UpdateInput{Name: &name})
	require.NoError(t, err)

	require.Len(t, audit.records, 1)
	assert.Equal(t, map[string]any{"name": "Renamed"}, audit.records[0].Changes)
}

func TestDestroyAll_StopsAtFirstMissingID(t *testing.T) {
	t.Parallel()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	var deleted []uuid.UUID
	repo := &repoMock{
		GetByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.Category, error) {
			if id == ids[1] {
				return nil, domain.ErrNotFound
			}
			return &domain.Category{ID: id, Name: "c", Slug: "c"}, nil
		},
		DeleteFunc: func(_ context.Context, _, id uuid.UUID) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	audit := &auditMock{}
	tx := &txMock{}
	svc := NewService(repo, audit, tx, &presignMock{}, testLogger(), 100)

	err := svc.DestroyAll(authedCtx(uuid.New(), uuid.New()), ids)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// the batch runs in one transaction and stops at the failure
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []uuid.UUID{ids[0]}, deleted)
}

func TestDestroyAll_EmptyBatchRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(&repoMock{}, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)
	err := svc.DestroyAll(authedCtx(uuid.New(), uuid.New()), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestroy_AuditKeepsDeletedRecord(t *testing.T) {
	t.Parallel()

	phone := "+15550001"
	keywords := "shoes,sneakers"
	repo := &repoMock{
		GetByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.Category, error) {
			return &domain.Category{
				ID:           id,
				Name:         "WhatsApp",
				Slug:         "whatsapp",
				MetaKeywords: &keywords,
				Status:       domain.RecordStatusPublished,
				PhoneNumber:  &phone,
				Photo:        []domain.FileRef{{Key: "tenants/x/logo.png", Name: "logo.png"}},
			}, nil
		},
		DeleteFunc: func(context.Context, uuid.UUID, uuid.UUID) error { return nil },
	}
	audit := &auditMock{}
	svc := NewService(repo, audit, &txMock{}, &presignMock{}, testLogger(), 100)

	err := svc.Destroy(authedCtx(uuid.New(), uuid.New()), uuid.New())
	require.NoError(t, err)

	// the whole record survives in the audit entry, not just the headline fields
	require.Len(t, audit.records, 1)
	changes := audit.records[0].Changes
	assert.Equal(t, &phone, changes["phoneNumber"])
	assert.Equal(t, &keywords, changes["metaKeywords"])
	assert.Equal(t, []domain.FileRef{{Key: "tenants/x/logo.png", Name: "logo.png"}}, changes["photo"])
	assert.Equal(t, "PUBLISHED", changes["status"])
}

func TestSearch_ClampsLimit(t *testing.T) {
	t.Parallel()

	var gotQuery domain.SearchQuery[domain.CategoryFilter]
	repo := &repoMock{
		SearchAndCountFunc: func(_ context.Context, _ uuid.UUID, q domain.SearchQuery[domain.CategoryFilter]) (*domain.SearchResult[domain.Category], error) {
			gotQuery = q
			return &domain.SearchResult[domain.Category]{Rows: []domain.Category{}, Count: 0}, nil
		},
	}
	svc := NewService(repo, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 50)

	_, err := svc.Search(authedCtx(uuid.New(), uuid.New()), SearchInput{Limit: 10_000, Offset: -3})
	require.NoError(t, err)

	assert.Equal(t, 50, gotQuery.Limit)
	assert.Equal(t, 0, gotQuery.Offset)
}

func TestSearch_PassesExplicitFalseFilter(t *testing.T) {
	t.Parallel()

	var gotQuery domain.SearchQuery[domain.CategoryFilter]
	repo := &repoMock{
		SearchAndCountFunc: func(_ context.Context, _ uuid.UUID, q domain.SearchQuery[domain.CategoryFilter]) (*domain.SearchResult[domain.Category], error) {
			gotQuery = q
			return &domain.SearchResult[domain.Category]{Rows: []domain.Category{}, Count: 0}, nil
		},
	}
	svc := NewService(repo, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 50)

	isFeature := false
	_, err := svc.Search(authedCtx(uuid.New(), uuid.New()), SearchInput{
		Filter: domain.CategoryFilter{IsFeature: &isFeature},
	})
	require.NoError(t, err)

	require.NotNil(t, gotQuery.Filter.IsFeature)
	assert.False(t, *gotQuery.Filter.IsFeature)
}

func TestImport_RequiresHash(t *testing.T) {
	t.Parallel()

	svc := NewService(&repoMock{}, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)

	_, err := svc.Import(authedCtx(uuid.New(), uuid.New()), CreateInput{Name: "a", Slug: "a"})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "importer.errors.importHashRequired", verr.MessageKey)
}

func TestImport_RejectsExistingHash(t *testing.T) {
	t.Parallel()

	repo := &repoMock{
		ExistsByImportHashFunc: func(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
			return true, nil
		},
	}
	svc := NewService(repo, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)

	hash := "abc123"
	_, err := svc.Import(authedCtx(uuid.New(), uuid.New()), CreateInput{
		Name: "a", Slug: "a", ImportHash: &hash,
	})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "importer.errors.importHashExistent", verr.MessageKey)
}

func TestImport_RaceLosesToUniqueIndex(t *testing.T) {
	t.Parallel()

	// advisory check says free, but the insert hits the unique index
	repo := &repoMock{
		ExistsByImportHashFunc: func(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(context.Context, *domain.Category) (*domain.Category, error) {
			return nil, &domain.ConflictError{
				Entity:     "category",
				Field:      "import_hash",
				Constraint: "categories_tenant_id_import_hash_key",
			}
		},
	}
	svc := NewService(repo, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)

	hash := "abc123"
	_, err := svc.Import(authedCtx(uuid.New(), uuid.New()), CreateInput{
		Name: "a", Slug: "a", ImportHash: &hash,
	})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "importer.errors.importHashExistent", verr.MessageKey)
}

func TestImport_HappyPath(t *testing.T) {
	t.Parallel()

	repo := &repoMock{
		ExistsByImportHashFunc: func(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
			return false, nil
		},
		CreateFunc: echoCreate,
	}
	audit := &auditMock{}
	svc := NewService(repo, audit, &txMock{}, &presignMock{}, testLogger(), 100)

	hash := "abc123"
	created, err := svc.Import(authedCtx(uuid.New(), uuid.New()), CreateInput{
		Name: "Imported", Slug: "imported", ImportHash: &hash,
	})
	require.NoError(t, err)

	require.NotNil(t, created.ImportHash)
	assert.Equal(t, hash, *created.ImportHash)
	assert.Len(t, audit.records, 1)
}

func TestFindContact(t *testing.T) {
	t.Parallel()

	phone := "+5511999990000"
	repo := &repoMock{
		GetByNameFunc: func(_ context.Context, _ uuid.UUID, name string) (*domain.Category, error) {
			assert.Equal(t, "WhatsApp", name)
			return &domain.Category{Name: name, PhoneNumber: &phone}, nil
		},
	}
	svc := NewService(repo, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)

	contact, err := svc.FindContact(ctxutil.WithTenantID(context.Background(), uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, phone, contact.PhoneNumber)
}

func TestFindContact_NoNumberIsNotFound(t *testing.T) {
	t.Parallel()

	repo := &repoMock{
		GetByNameFunc: func(_ context.Context, _ uuid.UUID, name string) (*domain.Category, error) {
			return &domain.Category{Name: name}, nil
		},
	}
	svc := NewService(repo, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)

	_, err := svc.FindContact(ctxutil.WithTenantID(context.Background(), uuid.New()))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindCS_NoTenantScopeNeeded(t *testing.T) {
	t.Parallel()

	repo := &repoMock{
		ListAllTenantsNewestFirstFunc: func(_ context.Context, limit int) ([]domain.Category, error) {
			assert.Equal(t, 20, limit)
			return []domain.Category{{Name: "one"}, {Name: "two"}}, nil
		},
	}
	svc := NewService(repo, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)

	// no tenant in context on purpose
	rows, err := svc.FindCS(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestAutocomplete(t *testing.T) {
	t.Parallel()

	repo := &repoMock{
		AutocompleteFunc: func(_ context.Context, _ uuid.UUID, query string, limit int) ([]domain.AutocompleteItem, error) {
			assert.Equal(t, "sho", query)
			assert.Equal(t, maxAutocompleteItems, limit)
			return []domain.AutocompleteItem{{ID: uuid.New(), Label: "Shoes"}}, nil
		},
	}
	svc := NewService(repo, &auditMock{}, &txMock{}, &presignMock{}, testLogger(), 100)

	items, err := svc.Autocomplete(ctxutil.WithTenantID(context.Background(), uuid.New()), "sho")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
