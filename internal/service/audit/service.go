// Package audit exposes read access to the audit log.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

type repository interface {
	ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
	ListByUser(ctx context.Context, tenantID, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

// Service reads audit history. Writes happen through the entity services.
type Service struct {
	repo repository
}

func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// EntityHistory returns the mutation history of one entity, newest first.
func (s *Service) EntityHistory(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("audit history: %w", domain.ErrConfiguration)
	}
	if !entityType.IsValid() {
		return nil, domain.NewValidationError("entityType", "unknown entity type")
	}

	limit, offset = clamp(limit, offset)
	return s.repo.ListByEntity(ctx, tenantID, entityType, entityID, limit, offset)
}

// UserHistory returns the mutations one user performed in the tenant,
// newest first.
func (s *Service) UserHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("audit history: %w", domain.ErrConfiguration)
	}

	limit, offset = clamp(limit, offset)
	return s.repo.ListByUser(ctx, tenantID, userID, limit, offset)
}

func clamp(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
