package query

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("page", "must be positive, got -1")
	if err.Error() != "invalid page: must be positive, got -1" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError() = false for a validation error")
	}
	if IsValidationError(errors.New("boom")) {
		t.Error("IsValidationError() = true for a plain error")
	}

	wrapped := fmt.Errorf("list users: %w", err)
	if !IsValidationError(wrapped) {
		t.Error("IsValidationError() must see through wrapping")
	}
}

func TestDataAccessError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDataAccessError("execute paginated query", cause)

	if !IsDataAccessError(err) {
		t.Error("IsDataAccessError() = false for a data access error")
	}
	if !errors.Is(err, cause) {
		t.Error("data access error must wrap its cause")
	}
	if IsDataAccessError(cause) {
		t.Error("IsDataAccessError() = true for the bare cause")
	}
	if IsValidationError(err) {
		t.Error("a data access error must not read as a validation error")
	}
}
