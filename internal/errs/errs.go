package errs

import (
	"fmt"
	"net/http"
)

// Error is a status-coded error. Every error that reaches the HTTP
// boundary is either one of these or gets mapped to a 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func Newf(status int, format string, args ...interface{}) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return Newf(http.StatusNotFound, format, args...)
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return Newf(http.StatusForbidden, format, args...)
}

func Conflictf(format string, args ...interface{}) *Error {
	return Newf(http.StatusConflict, format, args...)
}

func Validationf(format string, args ...interface{}) *Error {
	return Newf(http.StatusBadRequest, format, args...)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Uploadf marks a failed file write. Distinct from Validationf so that a
// storage fault is never reported as a client mistake.
func Uploadf(format string, args ...interface{}) *Error {
	return Newf(http.StatusInternalServerError, format, args...)
}
