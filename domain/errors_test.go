package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	if got := CodeOf(ErrCandidateNotFound); got != ErrCodeNotFound {
		t.Errorf("CodeOf(ErrCandidateNotFound) = %q, want %q", got, ErrCodeNotFound)
	}
	if got := CodeOf(errors.New("plain")); got != ErrCodeInternal {
		t.Errorf("CodeOf(plain error) = %q, want %q", got, ErrCodeInternal)
	}
	if got := CodeOf(nil); got != ErrCodeInternal {
		t.Errorf("CodeOf(nil) = %q, want %q", got, ErrCodeInternal)
	}
}

// Classification survives wrapping with %w, so callers can decorate errors
// without breaking transport mapping.
func TestCodeOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("while confirming: %w", ErrAlreadyProcessed)
	if got := CodeOf(wrapped); got != ErrCodeInvalidState {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, ErrCodeInvalidState)
	}
	if !IsCode(wrapped, ErrCodeInvalidState) {
		t.Error("IsCode did not match the wrapped error")
	}
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := PersistenceError("fetch task", cause)
	if err.Code != ErrCodeInternal {
		t.Errorf("code = %q, want %q", err.Code, ErrCodeInternal)
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not reachable through Unwrap")
	}
}

func TestValidationError_Details(t *testing.T) {
	err := ValidationError("invalid input", map[string]string{"title": "is required"})
	var dErr *Error
	if !errors.As(err, &dErr) {
		t.Fatal("ValidationError does not match *Error")
	}
	if dErr.Details["title"] != "is required" {
		t.Errorf("details lost: %v", dErr.Details)
	}
}
