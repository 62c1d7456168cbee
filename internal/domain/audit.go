package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord logs a mutation event on a domain entity. Records are
// append-only: they are written inside the same transaction as the mutation
// they describe and are never updated or deleted.
type AuditRecord struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	UserID     uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
