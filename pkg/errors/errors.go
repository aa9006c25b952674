package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the application error type. Code is a stable machine-readable
// identifier, Status the HTTP status it maps to, and Err an optional cause
// kept out of the response body.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds an Error without a cause.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap builds an Error around a cause.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Sentinel errors. Services return copies of these (via Clone) so handlers
// can map them to responses without string matching.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "time conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrInvalidTime        = New("INVALID_TIME_FORMAT", http.StatusBadRequest, "invalid time format (HH:MM)")
	ErrInvalidRange       = New("INVALID_TIME_RANGE", http.StatusBadRequest, "end time must be after start time")
	ErrInvalidTimezone    = New("INVALID_TIMEZONE", http.StatusBadRequest, "unrecognized timezone")
	ErrDuplicateEmail     = New("DUPLICATE_EMAIL", http.StatusConflict, "email already registered")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError coerces any error into an *Error. Unknown errors become a
// wrapped ErrInternal so no raw error text leaks to clients.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone copies a sentinel, optionally overriding its message. The copy keeps
// the sentinel's code and status, so errors.As comparisons on the sentinel
// itself still work through FromError.
func Clone(sentinel *Error, message string) *Error {
	if sentinel == nil {
		return nil
	}
	out := *sentinel
	if message != "" {
		out.Message = message
	}
	return &out
}
