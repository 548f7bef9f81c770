// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// General errors
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrReferenceConflict = errors.New("referenced record conflict")
	ErrUnavailable       = errors.New("database unavailable")

	// Access errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Cache-related errors
	ErrCacheMiss = errors.New("cache miss")

	// Pipeline-related errors
	ErrPipelineNotFound = fmt.Errorf("pipeline %w", ErrNotFound)
	ErrStageNotFound    = fmt.Errorf("stage %w", ErrNotFound)
	ErrCardNotFound     = fmt.Errorf("card %w", ErrNotFound)
	ErrStageMismatch    = fmt.Errorf("stage does not belong to the card's pipeline: %w", ErrInvalidInput)
	ErrEmptyBatch       = fmt.Errorf("batch contains no items: %w", ErrInvalidInput)

	// Client-related errors
	ErrClientNotFound    = fmt.Errorf("client %w", ErrNotFound)
	ErrClientEmailExists = fmt.Errorf("client email already exists: %w", ErrConflict)
	ErrClientInfoMissing = errors.New("card carries no client information")

	// Calendar-related errors
	ErrEventNotFound    = fmt.Errorf("calendar event %w", ErrNotFound)
	ErrInvalidEventTime = fmt.Errorf("event ends before it starts: %w", ErrInvalidInput)
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: failed %s", f.Field, f.Rule)
}

// ValidationError carries per-field details and unwraps to ErrInvalidInput.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Details returns the field errors as display strings.
func (e *ValidationError) Details() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.String())
	}
	return out
}
