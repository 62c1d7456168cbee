package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/storeadm/backend/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped, they pass
// through. Unique violations become a structured domain.ConflictError
// carrying the violated constraint and the field derived from its name, so
// services can build localized duplicate-value messages without inspecting
// error strings.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows means the row does not exist
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return &domain.ConflictError{
				Entity:     entity,
				Field:      fieldFromConstraint(pgErr.ConstraintName),
				Constraint: pgErr.ConstraintName,
			}
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// fieldFromConstraint derives a field name from a unique constraint name.
// Index names follow the "<table>_[tenant_id_]<field>_key" convention of the
// migrations, e.g. "categories_tenant_id_import_hash_key" yields "import_hash".
func fieldFromConstraint(constraint string) string {
	s := strings.TrimSuffix(constraint, "_key")
	s = strings.TrimSuffix(s, "_idx")

	if i := strings.Index(s, "_tenant_id_"); i >= 0 {
		return s[i+len("_tenant_id_"):]
	}
	// Fall back to the last underscore-separated token.
	if i := strings.LastIndex(s, "_"); i >= 0 && i+1 < len(s) {
		return s[i+1:]
	}
	return s
}
