package query

import (
	"errors"
	"fmt"
)

// ValidationError is returned when a supplied filter, sort or pagination
// value cannot be coerced to its expected type or is outside its allowed
// domain. It is surfaced before any query is built or executed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DataAccessError wraps a store-level failure during query execution.
// The underlying driver error is preserved unmodified; the engine never
// retries or translates it.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError creates a new DataAccessError
func NewDataAccessError(op string, err error) *DataAccessError {
	return &DataAccessError{Op: op, Err: err}
}

// IsDataAccessError reports whether err is (or wraps) a DataAccessError.
func IsDataAccessError(err error) bool {
	var de *DataAccessError
	return errors.As(err, &de)
}
