// Package apperror defines the coded errors surfaced to applicants.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the category of a failure.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidationFailure Code = "VALIDATION_FAILURE"
	CodeStorageError      Code = "STORAGE_ERROR"
	CodeInvalidRequest    Code = "INVALID_REQUEST"
	CodeInvalidState      Code = "INVALID_STATE"
	CodeInternal          Code = "INTERNAL"
)

// Error is a failure that ends the current interaction.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailure:
		return http.StatusUnprocessableEntity
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NotFound reports a missing posting, application or session.
func NotFound(message string, err error) *Error {
	return &Error{Code: CodeNotFound, Message: message, Err: err}
}

// ValidationFailure reports an extraction or answer validation failure.
func ValidationFailure(message string, err error) *Error {
	return &Error{Code: CodeValidationFailure, Message: message, Err: err}
}

// StorageError reports a failed write or read against a backing store.
func StorageError(message string, err error) *Error {
	return &Error{Code: CodeStorageError, Message: message, Err: err}
}

func InvalidRequest(message string) *Error {
	return &Error{Code: CodeInvalidRequest, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Code: CodeInvalidState, Message: message}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
