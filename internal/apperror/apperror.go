// Package apperror defines the error kinds handlers return and how each kind maps to an HTTP response.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error by how it should be reported to the caller.
type Kind int

// Error kinds
const (
	KindUnknown Kind = iota
	// KindValidation is malformed or missing input, caught before reaching storage
	KindValidation
	// KindNotFound is a missing resource or one the caller does not own
	KindNotFound
	// KindConflict is a uniqueness violation such as a second application to the same job
	KindConflict
	// KindAuthentication is a missing or invalid caller identity
	KindAuthentication
	// KindForbidden is an authenticated caller with the wrong role
	KindForbidden
	// KindStorage is an opaque infrastructure failure
	KindStorage
)

// String returns the machine readable code of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code used for the kind.
// Conflicts are reported as 400 to keep the existing API contract.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is an error tagged with a Kind and a message that is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Validation creates a KindValidation error.
func Validation(message string, cause error) *Error {
	return New(KindValidation, message, cause)
}

// NotFound creates a KindNotFound error.
func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

// Conflict creates a KindConflict error.
func Conflict(message string, cause error) *Error {
	return New(KindConflict, message, cause)
}

// Unauthenticated creates a KindAuthentication error.
func Unauthenticated(message string, cause error) *Error {
	return New(KindAuthentication, message, cause)
}

// Forbidden creates a KindForbidden error.
func Forbidden(message string) *Error {
	return New(KindForbidden, message, nil)
}

// Storage creates a KindStorage error.
func Storage(message string, cause error) *Error {
	return New(KindStorage, message, cause)
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
