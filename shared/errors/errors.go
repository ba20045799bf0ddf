package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Outcomes shared across services. Compare with errors.Is.
var (
	ErrDuplicateEmail     = &ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusBadRequest}
	ErrInvalidCredentials = &ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusBadRequest}
	ErrUnauthenticated    = &ErrorWithStatusCode{Message: "Access denied. No token provided.", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &ErrorWithStatusCode{Message: "Invalid token.", StatusCode: http.StatusUnauthorized}
	ErrBlogNotFound       = &ErrorWithStatusCode{Message: "Blog not found.", StatusCode: http.StatusNotFound}
	ErrUserNotFound       = &ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	ErrPayloadTooLarge    = &ErrorWithStatusCode{Message: "Request body too large", StatusCode: http.StatusRequestEntityTooLarge}
)

// Forbidden builds a 403 outcome. The message must not describe the real owner.
func Forbidden(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

func BadRequest(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}

func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// StatusCode returns the HTTP status for err, 500 for anything untyped.
func StatusCode(err error) int {
	var withStatus *ErrorWithStatusCode
	if errors.As(err, &withStatus) {
		return withStatus.StatusCode
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.StatusCode()
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
