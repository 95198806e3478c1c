package apierr

import (
	"fmt"
	"net/http"
)

// Error is the taxonomy every user-facing failure maps to. Status is the
// HTTP status a handler should answer with, Code a stable machine-readable
// identifier, Field the offending input field when there is one.
type Error struct {
	Status int
	Code   string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation flags a malformed, missing or out-of-range input field.
func Validation(field, format string, args ...interface{}) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   "validation_error",
		Field:  field,
		Err:    fmt.Errorf(format, args...),
	}
}

// Conflict flags a uniqueness violation (duplicate favorite, cart entry,
// subscription). Surfaced as 400 to match the public API contract.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   "conflict",
		Err:    fmt.Errorf(format, args...),
	}
}

// NotFound flags a missing resource addressed directly by the request path.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{
		Status: http.StatusNotFound,
		Code:   "not_found",
		Err:    fmt.Errorf(format, args...),
	}
}

// NotFoundBadRequest flags a missing resource referenced by a request body
// or membership operation, where the API answers 400 instead of 404.
func NotFoundBadRequest(format string, args ...interface{}) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   "not_found",
		Err:    fmt.Errorf(format, args...),
	}
}

func PermissionDenied(format string, args ...interface{}) *Error {
	return &Error{
		Status: http.StatusForbidden,
		Code:   "permission_denied",
		Err:    fmt.Errorf(format, args...),
	}
}

func Unauthenticated(format string, args ...interface{}) *Error {
	return &Error{
		Status: http.StatusUnauthorized,
		Code:   "unauthenticated",
		Err:    fmt.Errorf(format, args...),
	}
}
