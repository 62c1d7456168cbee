package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is an admin-managed catalog product.
type Product struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Name        string
	Slug        string
	Description *string
	// PriceCents avoids floating point money. The admin UI converts.
	PriceCents int64
	Status     RecordStatus
	IsFeature  bool
	Photo      []FileRef
	ImportHash *string
	CreatedBy  uuid.UUID
	UpdatedBy  uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductUpdateParams carries the mutable fields of a product.
// nil means "leave unchanged".
type ProductUpdateParams struct {
	Name        *string
	Slug        *string
	Description *string
	PriceCents  *int64
	Status      *RecordStatus
	IsFeature   *bool
	Photo       []FileRef
}

// ProductFilter contains optional predicates for product searches.
type ProductFilter struct {
	ID            *uuid.UUID
	Name          *string
	Slug          *string
	Status        *RecordStatus
	IsFeature     *bool
	PriceMin      *int64
	PriceMax      *int64
	CreatedAtFrom *time.Time
	CreatedAtTo   *time.Time
}
