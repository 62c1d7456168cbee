// Package category contains the business logic for catalog categories:
// tenant-scoped CRUD with audit logging, idempotent imports, search,
// autocomplete and the public contact lookups.
package category

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/internal/filestore"
)

const defaultPageSize = 10

type repository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Category, error)
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*domain.Category, error)
	ListAllTenantsNewestFirst(ctx context.Context, limit int) ([]domain.Category, error)
	Update(ctx context.Context, tenantID, id, updatedBy uuid.UUID, p domain.CategoryUpdateParams) (*domain.Category, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	SearchAndCount(ctx context.Context, tenantID uuid.UUID, q domain.SearchQuery[domain.CategoryFilter]) (*domain.SearchResult[domain.Category], error)
	Autocomplete(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]domain.AutocompleteItem, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int, error)
	ExistsByImportHash(ctx context.Context, tenantID uuid.UUID, hash string) (bool, error)
}

type auditLogger interface {
	Append(ctx context.Context, rec *domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type presigner interface {
	PresignDownload(ctx context.Context, key string) (string, error)
}

// Service implements category use cases. Every mutation runs inside a
// transaction together with its audit record.
type Service struct {
	repo        repository
	audit       auditLogger
	tx          txManager
	files       presigner
	log         *slog.Logger
	maxPageSize int
}

func NewService(repo repository, audit auditLogger, tx txManager, files presigner, log *slog.Logger, maxPageSize int) *Service {
	if maxPageSize <= 0 {
		maxPageSize = defaultPageSize
	}
	return &Service{
		repo:        repo,
		audit:       audit,
		tx:          tx,
		files:       files,
		log:         log,
		maxPageSize: maxPageSize,
	}
}

// fillPhotoURLs resolves download URLs on a single category.
func (s *Service) fillPhotoURLs(ctx context.Context, c *domain.Category) error {
	refs, err := filestore.FillDownloadURLs(ctx, s.files, c.Photo)
	if err != nil {
		return err
	}
	c.Photo = refs
	return nil
}
