// Package apperr defines the closed error taxonomy shared by all services.
// Handlers never inspect error strings; they map a Kind to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// KindValidation covers malformed or missing input.
	KindValidation Kind = iota + 1
	// KindAuthentication covers missing/invalid/expired tokens and
	// deactivated accounts.
	KindAuthentication
	// KindForbidden covers authenticated callers lacking a role or capability.
	KindForbidden
	// KindNotFound covers absent referenced entities.
	KindNotFound
	// KindConflict covers uniqueness violations and duplicate bootstrap.
	KindConflict
	// KindRateLimited covers upstream rate limiting.
	KindRateLimited
	// KindConfiguration covers misconfigured external providers (bad API key).
	KindConfiguration
	// KindUpstream covers malformed or empty upstream responses.
	KindUpstream
	// KindUnavailable covers unreachable external providers.
	KindUnavailable
)

// Error carries a Kind and a caller-safe message.
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

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap attaches an underlying cause to a new Error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Validationf builds a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Validation(msg string) *Error     { return New(KindValidation, msg) }
func Authentication(msg string) *Error { return New(KindAuthentication, msg) }
func Forbidden(msg string) *Error      { return New(KindForbidden, msg) }
func NotFound(msg string) *Error       { return New(KindNotFound, msg) }
func Conflict(msg string) *Error       { return New(KindConflict, msg) }
func RateLimited(msg string) *Error    { return New(KindRateLimited, msg) }
func Configuration(msg string) *Error  { return New(KindConfiguration, msg) }
func Upstream(msg string) *Error       { return New(KindUpstream, msg) }
func Unavailable(msg string) *Error    { return New(KindUnavailable, msg) }

// KindOf extracts the Kind from err, or 0 when err is unclassified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the response status code. Unclassified errors
// and external-provider failures other than rate limiting map to 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-safe message for err. Internal detail from
// unclassified errors is never exposed.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
