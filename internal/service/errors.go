package service

import (
	"errors"
	"net/http"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an application error carrying the HTTP-equivalent status that the
// transport layer reports to the client.
type Error struct {
	Status  int
	Message string
	Data    []FieldError
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(data ...FieldError) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: "Invalid input.", Data: data}
}

func NewUnauthenticatedError(message string) *Error {
	if message == "" {
		message = "Not authenticated!"
	}
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func NewForbiddenError() *Error {
	return &Error{Status: http.StatusForbidden, Message: "Not authorized!"}
}

func NewNotFoundError(message string, err error) *Error {
	return &Error{Status: http.StatusNotFound, Message: message, Err: err}
}

func NewInternalError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "An error occurred.", Err: err}
}

// AsError returns the application error in err's chain, or wraps err as an
// internal one.
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
