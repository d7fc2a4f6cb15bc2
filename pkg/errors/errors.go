package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an application error.
type ErrorCode int

const (
	ErrValidation ErrorCode = iota + 1000
	ErrMissingToken
	ErrInvalidToken
	ErrUnauthorized
	ErrForbidden
	ErrOwnership
	ErrNotFound
	ErrDuplicate
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrMissingToken, ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrInvalidToken, ErrForbidden, ErrOwnership:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NewValidation(message string) *AppError {
	return &AppError{Code: ErrValidation, Message: message}
}

func NewMissingToken() *AppError {
	return &AppError{Code: ErrMissingToken, Message: "missing authorization header"}
}

func NewInvalidToken(err error) *AppError {
	return &AppError{Code: ErrInvalidToken, Message: "invalid or expired token", Err: err}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: message}
}

func NewForbidden(message string) *AppError {
	return &AppError{Code: ErrForbidden, Message: message}
}

func NewOwnership() *AppError {
	return &AppError{Code: ErrOwnership, Message: "you do not have access to this resource"}
}

func NewNotFound(resource string) *AppError {
	return &AppError{Code: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewDuplicate(message string) *AppError {
	return &AppError{Code: ErrDuplicate, Message: message}
}

func NewInternal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: "internal server error", Err: err}
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// From extracts an AppError from err, wrapping anything else as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}
