package category

import (
	"strings"

	"github.com/storeadm/backend/internal/domain"
)

const (
	maxNameLen = 255
	maxSlugLen = 255
)

// CreateInput carries a new category. Status defaults to DRAFT when empty.
type CreateInput struct {
	Name             string
	Slug             string
	MetaKeywords     *string
	MetaDescriptions *string
	Status           domain.RecordStatus
	IsFeature        bool
	PhoneNumber      *string
	Photo            []domain.FileRef
	ImportHash       *string
}

func (in *CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	} else if len(in.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if strings.TrimSpace(in.Slug) == "" {
		errs = append(errs, domain.FieldError{Field: "slug", Message: "must not be empty"})
	} else if len(in.Slug) > maxSlugLen {
		errs = append(errs, domain.FieldError{Field: "slug", Message: "too long"})
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

// UpdateInput carries a partial category update. nil fields stay unchanged.
type UpdateInput struct {
	Name             *string
	Slug             *string
	MetaKeywords     *string
	MetaDescriptions *string
	Status           *domain.RecordStatus
	IsFeature        *bool
	PhoneNumber      *string
	Photo            []domain.FileRef
}

func (in *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) == "" {
		errs = append(errs, domain.FieldError{Field: "slug", Message: "must not be empty"})
	}
	if in.Status != nil && !in.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (in *UpdateInput) params() domain.CategoryUpdateParams {
	return domain.CategoryUpdateParams{
		Name:             in.Name,
		Slug:             in.Slug,
		MetaKeywords:     in.MetaKeywords,
		MetaDescriptions: in.MetaDescriptions,
		Status:           in.Status,
		IsFeature:        in.IsFeature,
		PhoneNumber:      in.PhoneNumber,
		Photo:            in.Photo,
	}
}

// SearchInput carries filter, pagination and ordering for a search.
type SearchInput struct {
	Filter  domain.CategoryFilter
	Limit   int
	Offset  int
	OrderBy string
}

// normalize clamps pagination to sane bounds.
func (in *SearchInput) normalize(maxPageSize int) {
	if in.Limit <= 0 {
		in.Limit = defaultPageSize
	}
	if in.Limit > maxPageSize {
		in.Limit = maxPageSize
	}
	if in.Offset < 0 {
		in.Offset = 0
	}
}
