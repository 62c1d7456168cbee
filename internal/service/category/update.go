package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

// Update applies a partial update and records the changed fields in the
// audit log, both in one transaction.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("update category: %w", domain.ErrConfiguration)
	}
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("update category: %w", domain.ErrConfiguration)
	}

	var updated *domain.Category
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Update(ctx, tenantID, id, userID, in.params())
		if err != nil {
			return err
		}
		return s.audit.Append(ctx, &domain.AuditRecord{
			TenantID:   tenantID,
			UserID:     userID,
			EntityType: domain.EntityTypeCategory,
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

// updateChanges records only the fields the caller actually set.
func updateChanges(in UpdateInput) map[string]any {
	changes := map[string]any{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Slug != nil {
		changes["slug"] = *in.Slug
	}
	if in.MetaKeywords != nil {
		changes["metaKeywords"] = *in.MetaKeywords
	}
	if in.MetaDescriptions != nil {
		changes["metaDescriptions"] = *in.MetaDescriptions
	}
	if in.Status != nil {
		changes["status"] = in.Status.String()
	}
	if in.IsFeature != nil {
		changes["isFeature"] = *in.IsFeature
	}
	if in.PhoneNumber != nil {
		changes["phoneNumber"] = *in.PhoneNumber
	}
	if in.Photo != nil {
		changes["photoCount"] = len(in.Photo)
	}
	return changes
}
