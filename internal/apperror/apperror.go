// Package apperror defines the error categories handlers map onto HTTP responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the category of an application error.
type ErrorType int

const (
	UnknownError ErrorType = iota
	DatabaseError
	InternalError
	ValidationError
	BadRequestError
	// AuthError is a failed authentication attempt (bad credentials).
	AuthError
	// ForbiddenError is an authenticated caller acting on something they do not own.
	ForbiddenError
	NotFoundError
	// ConflictError is a uniqueness violation, e.g. a username already taken.
	ConflictError
	TooManyRequestsError
)

// AppError carries a user-facing message and an optional underlying cause.
type AppError struct {
	Type    ErrorType
	Message string
	// Field names the offending form field for conflict and validation errors.
	Field string
	Err   error
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

// StatusCode returns the HTTP status for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ConflictError:
		return http.StatusConflict
	case TooManyRequestsError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body written for an error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse drops the underlying cause; only Message reaches the client.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewDatabaseError(message string, err error) *AppError {
	return New(DatabaseError, message, err)
}

func NewInternalError(message string, err error) *AppError {
	return New(InternalError, message, err)
}

func NewBadRequestError(message string, err error) *AppError {
	return New(BadRequestError, message, err)
}

func NewAuthError(message string) *AppError {
	return New(AuthError, message, nil)
}

func NewForbiddenError(message string) *AppError {
	return New(ForbiddenError, message, nil)
}

func NewNotFoundError(message string, err error) *AppError {
	return New(NotFoundError, message, err)
}

// NewConflictError reports a duplicate value for field.
func NewConflictError(field, message string) *AppError {
	return &AppError{Type: ConflictError, Field: field, Message: message}
}

func NewTooManyRequestsError(message string) *AppError {
	return New(TooManyRequestsError, message, nil)
}

// From returns the *AppError in err's chain, or wraps err as an internal error.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("internal server error", err)
}

func is(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

func IsNotFound(err error) bool { return is(err, NotFoundError) }
func IsConflict(err error) bool { return is(err, ConflictError) }
