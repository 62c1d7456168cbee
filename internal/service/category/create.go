package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

// Create validates the input and persists a new category together with its
// audit record in one transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("create category: %w", domain.ErrConfiguration)
	}
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("create category: %w", domain.ErrConfiguration)
	}

	c := &domain.Category{
		ID:               uuid.New(),
		TenantID:         tenantID,
		Name:             in.Name,
		Slug:             in.Slug,
		MetaKeywords:     in.MetaKeywords,
		MetaDescriptions: in.MetaDescriptions,
		Status:           in.Status,
		IsFeature:        in.IsFeature,
		PhoneNumber:      in.PhoneNumber,
		Photo:            in.Photo,
		ImportHash:       in.ImportHash,
		CreatedBy:        userID,
		UpdatedBy:        userID,
	}

	var created *domain.Category
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, c)
		if err != nil {
			return err
		}
		return s.audit.Append(ctx, &domain.AuditRecord{
			TenantID:   tenantID,
			UserID:     userID,
			EntityType: domain.EntityTypeCategory,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    createChanges(created),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category created",
		slog.String("category_id", created.ID.String()),
		slog.String("tenant_id", tenantID.String()),
	)

	if err := s.fillPhotoURLs(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func createChanges(c *domain.Category) map[string]any {
	changes := map[string]any{
		"name":      c.Name,
		"slug":      c.Slug,
		"status":    c.Status.String(),
		"isFeature": c.IsFeature,
	}
	if c.ImportHash != nil {
		changes["importHash"] = *c.ImportHash
	}
	return changes
}
