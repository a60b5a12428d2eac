// Package apperror defines a centralized system for application-specific errors.
// Every failure the student service can report (bad credential, unparseable id,
// missing record, storage failure) is raised as an *AppError at the point of
// detection and translated into an HTTP status exactly once, at the HTTP boundary.
// It's similar in concept to Nest.js's Exception Filters, where you can catch specific
// error types and customize the HTTP response.
package apperror

import (
	"errors"
	"fmt"
	// `net/http` is used for HTTP status codes.
	"net/http"
)

// ErrorType is an enumeration (using `iota`) for different categories of application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// AuthError represents an authentication failure (missing or invalid credential)
	AuthError
	// InvalidIDError represents a student id that does not parse as a 64-bit integer
	InvalidIDError
	// NotFoundError represents a resource not found error
	NotFoundError
	// BadRequestError represents a generic bad request (e.g. a body that is not JSON)
	BadRequestError
	// StorageError represents a failure reading or writing the record store
	StorageError
	// ConfigError represents an error related to application configuration
	ConfigError
	// InternalError represents a generic internal server error
	InternalError
)

// String returns a short, log-friendly name for the error type.
func (t ErrorType) String() string {
	switch t {
	case AuthError:
		return "auth"
	case InvalidIDError:
		return "invalid_id"
	case NotFoundError:
		return "not_found"
	case BadRequestError:
		return "bad_request"
	case StorageError:
		return "storage"
	case ConfigError:
		return "config"
	case InternalError:
		return "internal"
	default:
		return "unknown"
	}
}

// AppError is a custom error type for the application
// It also allows wrapping an underlying error (`Err`) for more detailed debugging.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // Underlying error
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		// If there's an underlying error, include its message.
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error. This is part of Go's error wrapping convention (Go 1.13+),
// allowing `errors.Is` and `errors.As` to inspect the chain of wrapped errors.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	// This switch statement maps our custom `ErrorType` to standard HTTP status codes.
	switch e.Type {
	case AuthError:
		// 401: the caller could not be identified. There is no "authenticated but
		// forbidden" state in this service, so 403 is never produced.
		return http.StatusUnauthorized
	case InvalidIDError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case BadRequestError:
		return http.StatusBadRequest
	case StorageError:
		return http.StatusInternalServerError
	case ConfigError:
		return http.StatusInternalServerError
	case InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is a generic constructor.
// It's useful when the error type is determined dynamically.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// Constructor functions for specific error types
// For example, `NewStorageError("message", err)` is clearer than `NewAppError(StorageError, "message", err)`.

// NewAuthError creates a new AuthError
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewInvalidIDError creates a new InvalidIDError
func NewInvalidIDError(message string, underlyingError error) *AppError {
	return NewAppError(InvalidIDError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewStorageError creates a new StorageError
func NewStorageError(message string, underlyingError error) *AppError {
	return NewAppError(StorageError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// ErrorResponse represents a generic error response payload for API clients.
type ErrorResponse struct {
	// `example` is a struct tag often used by Swagger/OpenAPI documentation generators.
	Error string `json:"error" example:"A description of the error"`
	// Kind lets clients tell failure categories apart without parsing Error.
	Kind string `json:"kind" example:"not_found"`
}

// ToResponse converts an AppError to an ErrorResponse suitable for API responses.
// This ensures that all API error responses have a consistent JSON structure.
func (e *AppError) ToResponse() ErrorResponse {
	// Only the user-facing `Message` is included in the response, not the underlying `Err` details.
	return ErrorResponse{Error: e.Message, Kind: e.Type.String()}
}

// FromError attempts to convert a generic error to an *AppError.
// Wrapped errors are unwrapped with errors.As.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Helper functions to check error types
// These functions use `errors.As` to check if an error in a chain is of a specific `AppError` type.

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool { return isType(err, NotFoundError) }

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool { return isType(err, AuthError) }

// IsInvalidID checks if an error is an InvalidIDError
func IsInvalidID(err error) bool { return isType(err, InvalidIDError) }

// IsBadRequest checks if an error is a BadRequestError
func IsBadRequest(err error) bool { return isType(err, BadRequestError) }

// IsStorageError checks if an error is a StorageError
func IsStorageError(err error) bool { return isType(err, StorageError) }
