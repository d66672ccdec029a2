package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed set of semantic failure kinds carried through the
// call stack. Transport layers classify errors by code, never by message text.
type ErrorCode string

const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error is a classified domain error. Details, when set, carry field-level
// validation context safe to return to the client.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error with the given classification.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError classifies an underlying error, preserving it for unwrapping.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// ValidationError builds a VALIDATION error carrying field-level detail.
func ValidationError(message string, details map[string]string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message, Details: details}
}

// PersistenceError wraps a store failure with operation context. The wrapped
// cause is logged server-side but never leaked verbatim to clients.
func PersistenceError(op string, err error) *Error {
	return &Error{Code: ErrCodeInternal, Message: fmt.Sprintf("%s failed", op), Err: err}
}

// Common sentinel errors.
var (
	ErrUnauthorized      = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrCandidateNotFound = NewError(ErrCodeNotFound, "candidate not found")
	ErrTaskNotFound      = NewError(ErrCodeNotFound, "task not found")
	ErrProfileNotFound   = NewError(ErrCodeNotFound, "user profile not found")
	ErrSourceNotFound    = NewError(ErrCodeNotFound, "source message not found")
	ErrAlreadyProcessed  = NewError(ErrCodeInvalidState, "candidate already processed")
	ErrInvalidPayload    = NewError(ErrCodeValidation, "invalid payload")
)

// CodeOf extracts the classification of err, defaulting to INTERNAL for
// unclassified errors.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given classification.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
