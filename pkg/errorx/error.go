package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request-scoped failure.
type Kind int

const (
	Internal Kind = iota
	Validation
	InvalidOperation
	Unauthorized
	Forbidden
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case InvalidOperation:
		return "invalid_operation"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// StatusCode maps a Kind to the HTTP status it is rendered with.
func (k Kind) StatusCode() int {
	switch k {
	case Validation, InvalidOperation:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error type returned by services. Fields carries per-field
// messages for validation failures, keyed by JSON field name.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e Error) Error() string {
	return e.Message
}

func New(kind Kind, format string, a ...any) Error {
	return Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

func NewValidation(fields map[string]string) Error {
	return Error{Kind: Validation, Message: "Invalid input", Fields: fields}
}

// Is reports whether err is (or wraps) an Error of the given kind.
func Is(err error, kind Kind) bool {
	var e Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, Internal if err is not an Error.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
