// Package errors defines the error taxonomy shared by the service layers.
//
// Sentinel errors mark a class of failure so callers can use errors.Is.
// Error carries a user-facing message and the HTTP status it maps to; any
// error that is not (or does not wrap) an *Error is treated as unexpected.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrInvalidInput = fmt.Errorf("invalid input")
)

// Error is a structured error with a message safe to show to clients.
type Error struct {
	Message string
	Status  int
	kind    error
}

// New returns an Error with the given status that does not wrap a sentinel.
func New(status int, message string) *Error {
	return &Error{Message: message, Status: status}
}

// NotFound returns a 404 Error that matches ErrNotFound.
func NotFound(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: http.StatusNotFound, kind: ErrNotFound}
}

// BadRequest returns a 400 Error that matches ErrInvalidInput.
func BadRequest(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: http.StatusBadRequest, kind: ErrInvalidInput}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.kind
}

// StatusOf extracts the HTTP status attached to err, defaulting to 500.
func StatusOf(err error) int {
	var appErr *Error
	if stderrors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	switch {
	case stderrors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns the client-facing message for err. Unexpected errors
// report their root cause, without the context added while propagating.
func MessageOf(err error) string {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	for {
		inner := stderrors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}
