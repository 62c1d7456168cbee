package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vip is a privileged customer record managed through the admin UI.
type Vip struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Name       string
	Phone      string
	Email      *string
	Status     RecordStatus
	Photo      []FileRef
	ImportHash *string
	CreatedBy  uuid.UUID
	UpdatedBy  uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VipUpdateParams carries the mutable fields of a vip. nil means
// "leave unchanged".
type VipUpdateParams struct {
	Name   *string
	Phone  *string
	Email  *string
	Status *RecordStatus
	Photo  []FileRef
}

// VipFilter contains optional predicates for vip searches.
type VipFilter struct {
	ID            *uuid.UUID
	Name          *string
	Phone         *string
	Email         *string
	Status        *RecordStatus
	CreatedAtFrom *time.Time
	CreatedAtTo   *time.Time
}
