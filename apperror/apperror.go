// Package apperror defines the application's error taxonomy. Storage and
// hashing failures are caught at each component boundary and re-raised as one
// of these types with the original cause attached, so handlers can map every
// error to a status code and a short reason string without ever leaking
// driver messages or SQL text to the client.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an AppError.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// StorageError represents a failure in the underlying persistence layer.
	StorageError
	// ConfigError represents a problem with application configuration.
	ConfigError
	// AuthError represents an authentication failure (missing or invalid token).
	AuthError
	// ForbiddenError represents an authorization failure (valid token, wrong owner).
	ForbiddenError
	// NotFoundError represents a lookup for a record that does not exist.
	NotFoundError
	// ValidationError represents malformed or missing input fields.
	ValidationError
	// BadRequestError represents a generic bad request.
	BadRequestError
	// ConflictError represents a uniqueness conflict, e.g. a duplicate username.
	ConflictError
	// InternalError represents an unexpected server-side failure.
	InternalError
)

// AppError carries an error classification, a client-safe message, and an
// optional underlying cause kept for diagnostics only.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error satisfies the error interface. The underlying cause is included here
// for logs; API responses use ToResponse and never see it.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause, supporting errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to its HTTP status. Storage failures map to
// 400 to match the external contract of the service: a generic failure code,
// with the cause kept server-side.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case StorageError:
		return http.StatusBadRequest
	case ConfigError:
		return http.StatusInternalServerError
	case AuthError:
		// 401: not authenticated. ForbiddenError below is the
		// authenticated-but-not-entitled case.
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError of an arbitrary type.
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     cause,
	}
}

// NewStorageError wraps a persistence failure.
func NewStorageError(message string, cause error) *AppError {
	return New(StorageError, message, cause)
}

// NewConfigError creates a ConfigError.
func NewConfigError(message string, cause error) *AppError {
	return New(ConfigError, message, cause)
}

// NewAuthError creates an AuthError.
func NewAuthError(message string, cause error) *AppError {
	return New(AuthError, message, cause)
}

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(message string, cause error) *AppError {
	return New(ForbiddenError, message, cause)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(message string, cause error) *AppError {
	return New(NotFoundError, message, cause)
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string, cause error) *AppError {
	return New(ValidationError, message, cause)
}

// NewBadRequestError creates a BadRequestError.
func NewBadRequestError(message string, cause error) *AppError {
	return New(BadRequestError, message, cause)
}

// NewConflictError creates a ConflictError.
func NewConflictError(message string, cause error) *AppError {
	return New(ConflictError, message, cause)
}

// NewInternalError creates an InternalError.
func NewInternalError(message string, cause error) *AppError {
	return New(InternalError, message, cause)
}

// ErrorResponse is the JSON error payload returned to API clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse converts an AppError to its client-facing representation. Only
// the Message crosses the boundary, never the wrapped cause.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError attempts to interpret err as an *AppError anywhere in its chain.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError reports whether err is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ForbiddenError
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}

// IsStorageError reports whether err is a StorageError.
func IsStorageError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == StorageError
}
