// Package vip contains the business logic for vip customer records.
package vip

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
	Create(ctx context.Context, v *domain.Vip) (*domain.Vip, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Vip, error)
	Update(ctx context.Context, tenantID, id, updatedBy uuid.UUID, p domain.VipUpdateParams) (*domain.Vip, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	SearchAndCount(ctx context.Context, tenantID uuid.UUID, q domain.SearchQuery[domain.VipFilter]) (*domain.SearchResult[domain.Vip], error)
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

// CreateInput carries a new vip record.
type CreateInput struct {
	Name       string
	Phone      string
	Email      *string
	Status     domain.RecordStatus
	Photo      []domain.FileRef
	ImportHash *string
}

func (in *CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if strings.TrimSpace(in.Phone) == "" {
		errs = append(errs, domain.FieldError{Field: "phone", Message: "must not be empty"})
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

// UpdateInput carries a partial vip update. nil fields stay unchanged.
type UpdateInput struct {
	Name   *string
	Phone  *string
	Email  *string
	Status *domain.RecordStatus
	Photo  []domain.FileRef
}

func (in *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if in.Phone != nil && strings.TrimSpace(*in.Phone) == "" {
		errs = append(errs, domain.FieldError{Field: "phone", Message: "must not be empty"})
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
	Filter  domain.VipFilter
	Limit   int
	Offset  int
	OrderBy string
}

// Service implements vip use cases.
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

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Vip, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tenantID, userID, err := identity(ctx, "create vip")
	if err != nil {
		return nil, err
	}

	v := &domain.Vip{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		Status:     in.Status,
		Photo:      in.Photo,
		ImportHash: in.ImportHash,
		CreatedBy:  userID,
		UpdatedBy:  userID,
	}

	var created *domain.Vip
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, v)
		if err != nil {
			return err
		}
		return s.audit.Append(ctx, &domain.AuditRecord{
			TenantID:   tenantID,
			UserID:     userID,
			EntityType: domain.EntityTypeVip,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"name":   created.Name,
				"phone":  created.Phone,
				"status": created.Status.String(),
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

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Vip, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tenantID, userID, err := identity(ctx, "update vip")
	if err != nil {
		return nil, err
	}

	params := domain.VipUpdateParams{
		Name:   in.Name,
		Phone:  in.Phone,
		Email:  in.Email,
		Status: in.Status,
		Photo:  in.Photo,
	}

	var updated *domain.Vip
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Update(ctx, tenantID, id, userID, params)
		if err != nil {
			return err
		}
		return s.audit.Append(ctx, &domain.AuditRecord{
			TenantID:   tenantID,
			UserID:     userID,
			EntityType: domain.EntityTypeVip,
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
	tenantID, userID, err := identity(ctx, "destroy vip")
	if err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		v, err := s.repo.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tenantID, id); err != nil {
			return err
		}
		return s.audit.Append(ctx, &domain.AuditRecord{
			TenantID:   tenantID,
			UserID:     userID,
			EntityType: domain.EntityTypeVip,
			EntityID:   &id,
			Action:     domain.AuditActionDelete,
			Changes:    snapshot(v),
		})
	})
}

// DestroyAll deletes a batch of vips in a single all-or-nothing transaction.
func (s *Service) DestroyAll(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return domain.NewValidationError("ids", "must not be empty")
	}

	tenantID, userID, err := identity(ctx, "destroy vips")
	if err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			id := id
			v, err := s.repo.GetByID(ctx, tenantID, id)
			if err != nil {
				return err
			}
			if err := s.repo.Delete(ctx, tenantID, id); err != nil {
				return err
			}
			err = s.audit.Append(ctx, &domain.AuditRecord{
				TenantID:   tenantID,
				UserID:     userID,
				EntityType: domain.EntityTypeVip,
				EntityID:   &id,
				Action:     domain.AuditActionDelete,
				Changes:    snapshot(v),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vip, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("get vip: %w", domain.ErrConfiguration)
	}

	v, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.fillPhotoURLs(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Search(ctx context.Context, in SearchInput) (*domain.SearchResult[domain.Vip], error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("search vips: %w", domain.ErrConfiguration)
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

	result, err := s.repo.SearchAndCount(ctx, tenantID, domain.SearchQuery[domain.VipFilter]{
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
		return nil, fmt.Errorf("autocomplete vips: %w", domain.ErrConfiguration)
	}
	return s.repo.Autocomplete(ctx, tenantID, query, maxAutocompleteItems)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return 0, fmt.Errorf("count vips: %w", domain.ErrConfiguration)
	}
	return s.repo.Count(ctx, tenantID)
}

// Import creates a vip from an import run, keyed by the mandatory import
// hash. See the category importer for the idempotency contract.
func (s *Service) Import(ctx context.Context, in CreateInput) (*domain.Vip, error) {
	if in.ImportHash == nil || *in.ImportHash == "" {
		return nil, domain.NewLocalizedError("importer.errors.importHashRequired")
	}

	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("import vip: %w", domain.ErrConfiguration)
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

// snapshot captures the whole record for the DELETE audit entry, so the
// deleted values stay recoverable from audit history.
func snapshot(v *domain.Vip) map[string]any {
	return map[string]any{
		"name":       v.Name,
		"phone":      v.Phone,
		"email":      v.Email,
		"status":     v.Status.String(),
		"photo":      domain.StripDownloadURLs(v.Photo),
		"importHash": v.ImportHash,
	}
}

func (s *Service) fillPhotoURLs(ctx context.Context, v *domain.Vip) error {
	refs, err := filestore.FillDownloadURLs(ctx, s.files, v.Photo)
	if err != nil {
		return err
	}
	v.Photo = refs
	return nil
}

func updateChanges(in UpdateInput) map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Phone != nil {
		changes["phone"] = *in.Phone
	}
	if in.Email != nil {
		changes["email"] = *in.Email
	}
	if in.Status != nil {
		changes["status"] = in.Status.String()
	}
	if in.Photo != nil {
		changes["photoCount"] = len(in.Photo)
	}
	return changes
}
