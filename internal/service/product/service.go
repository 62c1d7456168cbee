// Package product contains the business logic for catalog products.
package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/internal/filestore"
	"github.com/storeadm/backend/pkg/ctxutil"
)

const (
	defaultPageSize      = 10
	maxAutocompleteItems = 20
)

type repository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, tenantID, id, updatedBy uuid.UUID, p domain.ProductUpdateParams) (*domain.Product, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	SearchAndCount(ctx context.Context, tenantID uuid.UUID, q domain.SearchQuery[domain.ProductFilter]) (*domain.SearchResult[domain.Product], error)
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

// CreateInput carries a new product. Status defaults to DRAFT when empty.
type CreateInput struct {
	Name        string
	Slug        string
	Description *string
	PriceCents  int64
	Status      domain.RecordStatus
	IsFeature   bool
	Photo       []domain.FileRef
	ImportHash  *string
}

func (in *CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if strings.TrimSpace(in.Slug) == "" {
		errs = append(errs, domain.FieldError{Field: "slug", Message: "must not be empty"})
	}
	if in.PriceCents < 0 {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must not be negative"})
	}
	if in.Status == "" {
		in.Status = domain.RecordStatusDraft
	} else if !in.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput carries a partial product update. nil fields stay unchanged.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	PriceCents  *int64
	Status      *domain.RecordStatus
	IsFeature   *bool
	Photo       []domain.FileRef
}

func (in *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) == "" {
		errs = append(errs, domain.FieldError{Field: "slug", Message: "must not be empty"})
	}
	if in.PriceCents != nil && *in.PriceCents < 0 {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must not be negative"})
	}
	if in.Status != nil && !in.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SearchInput carries filter, pagination and ordering for a search.
type SearchInput struct {
	Filter  domain.ProductFilter
	Limit   int
	Offset  int
	OrderBy string
}

// Service implements product use cases.
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

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tenantID, userID, err := identity(ctx, "create product")
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Status:      in.Status,
		IsFeature:   in.IsFeature,
		Photo:       in.Photo,
		ImportHash:  in.ImportHash,
		CreatedBy:   userID,
		UpdatedBy:   userID,
	}

	var created *domain.Product
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, p)
		if err != nil {
			return err
		}
		return s.audit.Append(ctx, &domain.AuditRecord{
			TenantID:   tenantID,
			UserID:     userID,
			EntityType: domain.EntityTypeProduct,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"name":       created.Name,
				"slug":       created.Slug,
				"priceCents": created.PriceCents,
				"status":     created.Status.String(),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.fillPhotoURLs(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tenantID, userID, err := identity(ctx, "update product")
	if err != nil {
		return nil, err
	}

	params := domain.ProductUpdateParams{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Status:      in.Status,
		IsFeature:   in.IsFeature,
		Photo:       in.Photo,
	}

	var updated *domain.Product
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Update(ctx, tenantID, id, userID, params)
		if err != nil {
			return err
		}
		return s.audit.Append(ctx, &domain.AuditRecord{
			TenantID:   tenantID,
			UserID:     userID,
			EntityType: domain.EntityTypeProduct,
			EntityID:   &id,
			Action:     domain.AuditActionUpdate,
			Changes:    updateChanges(in),
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.fillPhotoURLs(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Destroy(ctx context.Context, id uuid.UUID) error {
	tenantID, userID, err := identity(ctx, "destroy product")
	if err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tenantID, id); err != nil {
			return err
		}
		return s.audit.Append(ctx, &domain.AuditRecord{
			TenantID:   tenantID,
			UserID:     userID,
			EntityType: domain.EntityTypeProduct,
			EntityID:   &id,
			Action:     domain.AuditActionDelete,
			Changes:    snapshot(p),
		})
	})
}

// DestroyAll deletes a batch of products in a single all-or-nothing
// transaction.
func (s *Service) DestroyAll(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return domain.NewValidationError("ids", "must not be empty")
	}

	tenantID, userID, err := identity(ctx, "destroy products")
	if err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			id := id
			p, err := s.repo.GetByID(ctx, tenantID, id)
			if err != nil {
				return err
			}
			if err := s.repo.Delete(ctx, tenantID, id); err != nil {
				return err
			}
			err = s.audit.Append(ctx, &domain.AuditRecord{
				TenantID:   tenantID,
				UserID:     userID,
				EntityType: domain.EntityTypeProduct,
				EntityID:   &id,
				Action:     domain.AuditActionDelete,
				Changes:    snapshot(p),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("get product: %w", domain.ErrConfiguration)
	}

	p, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.fillPhotoURLs(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Search(ctx context.Context, in SearchInput) (*domain.SearchResult[domain.Product], error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("search products: %w", domain.ErrConfiguration)
	}

	if in.Limit <= 0 {
		in.Limit = defaultPageSize
	}
	if in.Limit > s.maxPageSize {
		in.Limit = s.maxPageSize
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	result, err := s.repo.SearchAndCount(ctx, tenantID, domain.SearchQuery[domain.ProductFilter]{
		Filter:  in.Filter,
		Limit:   in.Limit,
		Offset:  in.Offset,
		OrderBy: in.OrderBy,
	})
	if err != nil {
		return nil, err
	}

	for i := range result.Rows {
		if err := s.fillPhotoURLs(ctx, &result.Rows[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Service) Autocomplete(ctx context.Context, query string) ([]domain.AutocompleteItem, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("autocomplete products: %w", domain.ErrConfiguration)
	}
	return s.repo.Autocomplete(ctx, tenantID, query, maxAutocompleteItems)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return 0, fmt.Errorf("count products: %w", domain.ErrConfiguration)
	}
	return s.repo.Count(ctx, tenantID)
}

// Import creates a product from an import run, keyed by the mandatory
// import hash. See the category importer for the idempotency contract.
func (s *Service) Import(ctx context.Context, in CreateInput) (*domain.Product, error) {
	if in.ImportHash == nil || *in.ImportHash == "" {
		return nil, domain.NewLocalizedError("importer.errors.importHashRequired")
	}

	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("import product: %w", domain.ErrConfiguration)
	}

	exists, err := s.repo.ExistsByImportHash(ctx, tenantID, *in.ImportHash)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewLocalizedError("importer.errors.importHashExistent")
	}

	created, err := s.Create(ctx, in)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) && conflict.Field == "import_hash" {
			return nil, domain.NewLocalizedError("importer.errors.importHashExistent")
		}
		return nil, err
	}
	return created, nil
}

func identity(ctx context.Context, op string) (tenantID, userID uuid.UUID, err error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%s: %w", op, domain.ErrConfiguration)
	}
	userID, ok = ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%s: %w", op, domain.ErrConfiguration)
	}
	return tenantID, userID, nil
}

func (s *Service) fillPhotoURLs(ctx context.Context, p *domain.Product) error {
	refs, err := filestore.FillDownloadURLs(ctx, s.files, p.Photo)
	if err != nil {
		return err
	}
	p.Photo = refs
	return nil
}

// snapshot captures the whole record for the DELETE audit entry, so the
// deleted values stay recoverable from audit history.
func snapshot(p *domain.Product) map[string]any {
	return map[string]any{
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"priceCents":  p.PriceCents,
		"status":      p.Status.String(),
		"isFeature":   p.IsFeature,
		"photo":       domain.StripDownloadURLs(p.Photo),
		"importHash":  p.ImportHash,
	}
}

func updateChanges(in UpdateInput) map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Slug != nil {
		changes["slug"] = *in.Slug
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.PriceCents != nil {
		changes["priceCents"] = *in.PriceCents
	}
	if in.Status != nil {
		changes["status"] = in.Status.String()
	}
	if in.IsFeature != nil {
		changes["isFeature"] = *in.IsFeature
	}
	if in.Photo != nil {
		changes["photoCount"] = len(in.Photo)
	}
	return changes
}
