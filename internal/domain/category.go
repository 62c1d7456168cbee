package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is an admin-managed catalog category. Every category belongs to
// exactly one tenant; cross-tenant reads and writes are rejected at the
// repository layer.
type Category struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	Name             string
	Slug             string
	MetaKeywords     *string
	MetaDescriptions *string
	Status           RecordStatus
	IsFeature        bool
	// PhoneNumber backs the public contact lookup: the category named
	// "WhatsApp" holds the number shown on the contact page.
	PhoneNumber *string
	Photo       []FileRef
	ImportHash  *string
	CreatedBy   uuid.UUID
	UpdatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryUpdateParams carries the mutable fields of a category.
// nil means "leave unchanged".
type CategoryUpdateParams struct {
	Name             *string
	Slug             *string
	MetaKeywords     *string
	MetaDescriptions *string
	Status           *RecordStatus
	IsFeature        *bool
	PhoneNumber      *string
	Photo            []FileRef // nil = unchanged, empty slice = clear
}

// CategoryFilter contains optional predicates for category searches.
// Absent (nil) fields are omitted from the query entirely; an explicit
// false IsFeature matches only records where the flag is stored false.
type CategoryFilter struct {
	ID               *uuid.UUID
	Name             *string
	Slug             *string
	MetaKeywords     *string
	MetaDescriptions *string
	Status           *RecordStatus
	IsFeature        *bool
	CreatedAtFrom    *time.Time
	CreatedAtTo      *time.Time
}

// SearchQuery bundles a filter with pagination and ordering. OrderBy uses
// the "field_ASC" / "field_DESC" convention of the admin UI; an empty value
// sorts newest-created first.
type SearchQuery[F any] struct {
	Filter  F
	Limit   int
	Offset  int
	OrderBy string
}

// SearchResult is a page of records plus the total count matching the
// filter (not the page size).
type SearchResult[T any] struct {
	Rows  []T
	Count int
}

// AutocompleteItem is the {id, label} projection returned by autocomplete
// endpoints.
type AutocompleteItem struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}
