// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a mutation or read targets an absent record
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when create resolves an id that already exists
	ErrDuplicateID = errors.New("duplicate id")
	// ErrSupplierCreationFailed marks a non-fatal supplier auto-creation failure during import
	ErrSupplierCreationFailed = errors.New("supplier creation failed")
)

// ValidationError carries the message of the first violated field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for a field
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
