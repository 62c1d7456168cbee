package category

import (
	"context"
	"fmt"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

// contactCategoryName is the well-known category holding the tenant's
// contact number for the public storefront.
const contactCategoryName = "WhatsApp"

// Contact is the public contact projection.
type Contact struct {
	PhoneNumber string `json:"phoneNumber"`
}

// FindContact returns the tenant's contact number, read from the category
// named "WhatsApp". Missing category or empty number both report not found.
func (s *Service) FindContact(ctx context.Context) (*Contact, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("find contact: %w", domain.ErrConfiguration)
	}

	c, err := s.repo.GetByName(ctx, tenantID, contactCategoryName)
	if err != nil {
		return nil, err
	}
	if c.PhoneNumber == nil || *c.PhoneNumber == "" {
		return nil, fmt.Errorf("find contact: %w", domain.ErrNotFound)
	}
	return &Contact{PhoneNumber: *c.PhoneNumber}, nil
}

// FindCS returns the newest categories across every tenant for the public
// customer-service widget. It is the single tenant-unscoped read in the
// system; keep it that way.
func (s *Service) FindCS(ctx context.Context, limit int) ([]domain.Category, error) {
	if limit <= 0 || limit > maxAutocompleteItems {
		limit = maxAutocompleteItems
	}
	rows, err := s.repo.ListAllTenantsNewestFirst(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if err := s.fillPhotoURLs(ctx, &rows[i]); err != nil {
			return nil, err
		}
	}
	return rows, nil
}
