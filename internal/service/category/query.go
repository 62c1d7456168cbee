package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

const maxAutocompleteItems = 20

// GetByID returns one category with photo download URLs resolved.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("get category: %w", domain.ErrConfiguration)
	}

	c, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.fillPhotoURLs(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Search returns a page of categories plus the total match count.
func (s *Service) Search(ctx context.Context, in SearchInput) (*domain.SearchResult[domain.Category], error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("search categories: %w", domain.ErrConfiguration)
	}

	in.normalize(s.maxPageSize)

	result, err := s.repo.SearchAndCount(ctx, tenantID, domain.SearchQuery[domain.CategoryFilter]{
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

// Autocomplete returns up to maxAutocompleteItems {id, label} pairs whose
// name or id contains the query, case-insensitively.
func (s *Service) Autocomplete(ctx context.Context, query string) ([]domain.AutocompleteItem, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("autocomplete categories: %w", domain.ErrConfiguration)
	}
	return s.repo.Autocomplete(ctx, tenantID, query, maxAutocompleteItems)
}

// Count returns the total number of categories in the tenant.
func (s *Service) Count(ctx context.Context) (int, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return 0, fmt.Errorf("count categories: %w", domain.ErrConfiguration)
	}
	return s.repo.Count(ctx, tenantID)
}
