package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error carries a user-facing message alongside the sentinel it wraps.
// Handlers map the sentinel to an HTTP status and return Message verbatim.
type Error struct {
	Err     error
	Message string
	Field   string // set for validation errors naming the offending field
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports that the named resource does not resolve.
func NotFound(resource string) *Error {
	return &Error{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Validation reports a rejected payload, naming the first offending field.
func Validation(field, message string) *Error {
	return &Error{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// MissingField is the common validation failure for a blank required field.
func MissingField(field string) *Error {
	return Validation(field, fmt.Sprintf("Missing required field: %s", field))
}

// Forbidden reports that the caller's role does not permit the action.
func Forbidden(message string) *Error {
	return &Error{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized reports a missing, malformed, or unverifiable credential.
func Unauthorized(message string) *Error {
	return &Error{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
