// Package apperr defines the application error taxonomy. Every error a
// service returns is one of these kinds; the controllers convert them to an
// HTTP status plus a short user-safe message and nothing else leaks out.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidInput
	KindInvalidOperation
	KindUnauthorized
)

type Error struct {
	kind    Kind
	message string
	err     error
	status  int
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// Message is the user-facing text; it never includes wrapped details.
func (e *Error) Message() string { return e.message }

func (e *Error) HTTPStatus() int {
	if e.status != 0 {
		return e.status
	}
	switch e.kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidInput, KindInvalidOperation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func NotFound(message string) *Error         { return newError(KindNotFound, message) }
func Conflict(message string) *Error         { return newError(KindConflict, message) }
func InvalidInput(message string) *Error     { return newError(KindInvalidInput, message) }
func InvalidOperation(message string) *Error { return newError(KindInvalidOperation, message) }
func Unauthorized(message string) *Error     { return newError(KindUnauthorized, message) }

// Forbidden is the ownership variant of Unauthorized: the token is valid but
// the caller is acting on someone else's resource.
func Forbidden(message string) *Error {
	return &Error{kind: KindUnauthorized, message: message, status: http.StatusForbidden}
}

// Internal wraps an unexpected failure. The wrapped error is kept for logs;
// clients only ever see the generic message.
func Internal(err error) *Error {
	return &Error{kind: KindInternal, message: "Internal server error", err: err}
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.kind == kind
}

// ToResponse writes err as the {message} envelope. Unknown error types are
// treated as internal so stray store errors cannot leak.
func ToResponse(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}
	c.JSON(appErr.HTTPStatus(), gin.H{"message": appErr.Message()})
}
