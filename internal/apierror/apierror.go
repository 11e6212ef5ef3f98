// Package apierror defines the closed error taxonomy shared by the service
// layer and the HTTP surface. Every failure a handler can see is one of the
// kinds below, so callers can branch exhaustively and the transport mapping
// lives in exactly one place. Internal causes are wrapped but never exposed
// to clients.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the error taxonomy.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindInvalidTransition
	KindInvalidOperation
	KindUnauthorized
	KindForbidden
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidTransition:
		return "invalid_state_transition"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "store_failure"
	}
}

// Error is the single error type crossing the service boundary.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation messages (KindValidation only).
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus maps each kind to its transport status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInvalidOperation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// InvalidTransition names the attempted action and the status that blocked it.
func InvalidTransition(action, current string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot %s vendor in status %q", action, current),
	}
}

// TransitionConflict reports a conditional update that matched no row: the
// in-memory guard passed but another writer changed the status first.
func TransitionConflict(action string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("vendor was modified concurrently, %s aborted", action),
	}
}

func InvalidOperation(msg string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Store wraps a persistence failure. The cause is logged server-side only.
func Store(op string, cause error) *Error {
	return &Error{Kind: KindStore, Message: op + " failed", cause: cause}
}

// From coerces any error into the taxonomy. Unknown errors become KindStore
// so nothing internal ever leaks through the transport mapping.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: KindStore, Message: "internal error", cause: err}
}
