package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies an error into the categories the HTTP layer knows how to
// report. Anything unclassified is treated as Internal.
type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
	Auth
	Forbidden
)

// Error carries a client-safe message plus an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *Error {
	return newf(Validation, format, args...)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return newf(NotFound, format, args...)
}

func Conflictf(format string, args ...interface{}) *Error {
	return newf(Conflict, format, args...)
}

func Authf(format string, args ...interface{}) *Error {
	return newf(Auth, format, args...)
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return newf(Forbidden, format, args...)
}

// Internalf builds an Internal error wrapping cause; the formatted message is
// what the client sees, the cause stays server-side.
func Internalf(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf reports the classification of err. gorm.ErrRecordNotFound maps to
// NotFound so repositories can return it directly.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound
	}
	return Internal
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Auth:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to put in the response envelope.
// Internal causes are never leaked.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "record not found"
	}
	return "internal server error"
}
