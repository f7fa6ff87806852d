package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failure so the HTTP layer can map it uniformly.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindInvalidRequest
	KindNotAuthorized
	KindNotAllowed
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotAuthorized:
		return "not_authorized"
	case KindNotAllowed:
		return "not_allowed"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// StatusCode maps a kind to its HTTP status. NotAllowed is reported as 404
// so a would-be self-booker cannot learn who owns an item.
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindNotFound, KindNotAllowed:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindNotAuthorized:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a typed service failure. Message is safe to show to clients;
// Err carries the internal cause and only reaches the logs.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithCause attaches an internal cause.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

func newAppError(kind ErrorKind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *AppError {
	return newAppError(KindNotFound, format, args...)
}

func InvalidRequest(format string, args ...any) *AppError {
	return newAppError(KindInvalidRequest, format, args...)
}

func NotAuthorized(format string, args ...any) *AppError {
	return newAppError(KindNotAuthorized, format, args...)
}

func NotAllowed(format string, args ...any) *AppError {
	return newAppError(KindNotAllowed, format, args...)
}

func Conflict(format string, args ...any) *AppError {
	return newAppError(KindConflict, format, args...)
}

// KindOf returns the kind of the first AppError in err's chain.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
