// Package apperror carries the error kinds services surface to HTTP callers.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnavailable
)

// Error is a caller-facing failure: Code is machine readable, Message is shown as is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status maps the kind onto an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func BadRequest(code, msg string) *Error   { return &Error{Kind: KindBadRequest, Code: code, Message: msg} }
func Unauthorized(code, msg string) *Error { return &Error{Kind: KindUnauthorized, Code: code, Message: msg} }
func Forbidden(code, msg string) *Error    { return &Error{Kind: KindForbidden, Code: code, Message: msg} }
func NotFound(code, msg string) *Error     { return &Error{Kind: KindNotFound, Code: code, Message: msg} }
func Conflict(code, msg string) *Error     { return &Error{Kind: KindConflict, Code: code, Message: msg} }
func Unavailable(code, msg string) *Error  { return &Error{Kind: KindUnavailable, Code: code, Message: msg} }

// As unwraps err into an *Error.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
