package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

// Destroy deletes one category and writes its audit record in one
// transaction.
func (s *Service) Destroy(ctx context.Context, id uuid.UUID) error {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return fmt.Errorf("destroy category: %w", domain.ErrConfiguration)
	}
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return fmt.Errorf("destroy category: %w", domain.ErrConfiguration)
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tenantID, id); err != nil {
			return err
		}
		return s.audit.Append(ctx, &domain.AuditRecord{
			TenantID:   tenantID,
			UserID:     userID,
			EntityType: domain.EntityTypeCategory,
			EntityID:   &id,
			Action:     domain.AuditActionDelete,
			Changes:    deleteSnapshot(c),
		})
	})
}

// DestroyAll deletes a batch of categories in a single transaction. The
// deletes run sequentially and the whole batch is all-or-nothing: one
// missing ID rolls back every delete before it.
func (s *Service) DestroyAll(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return domain.NewValidationError("ids", "must not be empty")
	}

	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return fmt.Errorf("destroy categories: %w", domain.ErrConfiguration)
	}
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return fmt.Errorf("destroy categories: %w", domain.ErrConfiguration)
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			id := id
			c, err := s.repo.GetByID(ctx, tenantID, id)
			if err != nil {
				return err
			}
			if err := s.repo.Delete(ctx, tenantID, id); err != nil {
				return err
			}
			err = s.audit.Append(ctx, &domain.AuditRecord{
				TenantID:   tenantID,
				UserID:     userID,
				EntityType: domain.EntityTypeCategory,
				EntityID:   &id,
				Action:     domain.AuditActionDelete,
				Changes:    deleteSnapshot(c),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "categories destroyed",
		slog.Int("count", len(ids)),
		slog.String("tenant_id", tenantID.String()),
	)
	return nil
}

// deleteSnapshot captures the whole record for the DELETE audit entry, so
// the deleted values stay recoverable from audit history.
func deleteSnapshot(c *domain.Category) map[string]any {
	return map[string]any{
		"name":             c.Name,
		"slug":             c.Slug,
		"metaKeywords":     c.MetaKeywords,
		"metaDescriptions": c.MetaDescriptions,
		"status":           c.Status.String(),
		"isFeature":        c.IsFeature,
		"phoneNumber":      c.PhoneNumber,
		"photo":            domain.StripDownloadURLs(c.Photo),
		"importHash":       c.ImportHash,
	}
}
