// Package apperrors defines the application error taxonomy and its mapping
// to HTTP status codes.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error
type Kind string

// Error kinds
const (
	KindValidation       Kind = "validation"
	KindConflict         Kind = "conflict"
	KindAuthentication   Kind = "authentication"
	KindAuthorization    Kind = "authorization"
	KindNotFound         Kind = "not_found"
	KindSelfModification Kind = "self_modification"
	// KindNoOp marks a request that is already satisfied. It is advisory,
	// not a hard failure, but still maps to 400 at the boundary.
	KindNoOp Kind = "no_op"
	// KindPersistence indicates the store accepted a write but did not
	// durably apply it. Callers must log these with full context.
	KindPersistence Kind = "persistence"
)

// Error is an application error with a kind and a client-safe message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an application error with the given kind and message
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an application error wrapping an underlying cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err if it is (or wraps) an application error,
// or the empty string otherwise
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Is reports whether err is an application error of the given kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the client-safe message of err if it is an application
// error, or fallback otherwise. Internal error text never reaches clients.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}

// HTTPStatus maps an error kind to its HTTP status code
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict, KindSelfModification, KindNoOp:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindPersistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
