// Package apperr defines the application error taxonomy and its mapping
// to HTTP status codes. Handlers never inspect raw driver errors; the
// lower layers classify failures into one of these kinds.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	// Internal is any unexpected failure (database error, unhandled case)
	Internal Kind = iota
	// Validation is a missing or invalid input, detected before side effects
	Validation
	// NotFound is a mutation or lookup that targeted a nonexistent row
	NotFound
	// Conflict is a uniqueness violation (duplicate brand name)
	Conflict
	// AssetTransfer is a remote upload/connection failure
	AssetTransfer
)

// Error is a classified application error with a user-facing message
// and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind without a cause
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap creates an Error of the given kind wrapping a cause
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Validationf creates a Validation error
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: Validation, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a NotFound error
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf creates a Conflict error
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: Conflict, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or Internal for unclassified errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Status maps an error to its HTTP status code
func Status(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message for err
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return "Error interno del servidor"
}
