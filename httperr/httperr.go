// Package httperr defines the error taxonomy domain code raises and the
// JSON envelope handled errors map onto. Each kind carries an HTTP
// status, a stable numeric error code and a default message that can be
// overridden per raise site. Anything outside the taxonomy is treated
// as fatal-unexpected and surfaces as a generic 500.
package httperr

import (
	"fmt"
	"net/http"
)

// APIError is a domain error that maps onto one HTTP response. The
// struct itself serializes as the response envelope.
type APIError struct {
	Status    int    `json:"-"`
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.ErrorCode, e.Message)
}

func newError(status int, message string) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{Status: status, ErrorCode: status, Message: message}
}

// BadRequest builds a 400 error. An empty message keeps the default.
func BadRequest(message string) *APIError {
	return newError(http.StatusBadRequest, message)
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *APIError {
	return newError(http.StatusUnauthorized, message)
}

// Forbidden builds a 403 error.
func Forbidden(message string) *APIError {
	return newError(http.StatusForbidden, message)
}

// NotFound builds a 404 error.
func NotFound(message string) *APIError {
	return newError(http.StatusNotFound, message)
}

// Conflict builds a 409 error.
func Conflict(message string) *APIError {
	return newError(http.StatusConflict, message)
}

// UnprocessableEntity builds a 422 error.
func UnprocessableEntity(message string) *APIError {
	return newError(http.StatusUnprocessableEntity, message)
}

// NotImplemented builds a 501 error.
func NotImplemented(message string) *APIError {
	return newError(http.StatusNotImplemented, message)
}

// Internal is the generic 500 envelope for unexpected errors. It never
// carries internal details; those belong in the server log.
func Internal() *APIError {
	return newError(http.StatusInternalServerError, "")
}
