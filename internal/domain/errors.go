package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// ErrConfiguration indicates a missing tenant or user in the request
	// context. It is a programming/middleware wiring bug, never a user error,
	// and maps to 500 at the transport.
	ErrConfiguration = errors.New("misconfigured request context")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
// MessageKey, when set, is an i18n key resolved by the transport layer
// using the request's active language.
type ValidationError struct {
	MessageKey string
	Args       []any
	Errors     []FieldError
}

func (e *ValidationError) Error() string {
	if e.MessageKey != "" {
		return fmt.Sprintf("validation: %s", e.MessageKey)
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewLocalizedError creates a ValidationError carrying an i18n message key.
func NewLocalizedError(key string, args ...any) *ValidationError {
	return &ValidationError{MessageKey: key, Args: args}
}

// ConflictError is returned by the persistence layer when a unique
// constraint is violated. It carries the violated constraint name and the
// field derived from it, so callers can build a localized message without
// pattern-matching error strings.
type ConflictError struct {
	Entity     string
	Field      string
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: duplicate value for %s (constraint %s)", e.Entity, e.Field, e.Constraint)
}

func (e *ConflictError) Unwrap() error { return ErrAlreadyExists }
