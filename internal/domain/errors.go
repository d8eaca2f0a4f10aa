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
	ErrConflict      = errors.New("conflict")

	// ErrFetch marks a failed read from the persistence gateway.
	ErrFetch = errors.New("fetch failed")
	// ErrPersist marks a failed write (create or delete) against the persistence gateway.
	ErrPersist = errors.New("persist failed")
	// ErrInFlight is returned when the same word is already being submitted.
	ErrInFlight = fmt.Errorf("submission in progress: %w", ErrConflict)
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
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

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// Message returns a short user-facing description of err, distinct per error kind.
// Order matters: ErrInFlight wraps ErrConflict and must be checked first.
func Message(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, ErrValidation):
		return "invalid input"
	case errors.Is(err, ErrInFlight):
		return "this word is already being saved"
	case errors.Is(err, ErrUnauthorized):
		return "you are not signed in or your session has expired"
	case errors.Is(err, ErrForbidden):
		return "you do not have access to this entry"
	case errors.Is(err, ErrNotFound):
		return "entry not found"
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyExists):
		return "entry already exists"
	case errors.Is(err, ErrFetch):
		return "could not load your vocabulary"
	case errors.Is(err, ErrPersist):
		return "could not save your changes"
	default:
		return "unexpected error"
	}
}
