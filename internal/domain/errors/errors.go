package errors

import (
	"net/http"

	"accounts/internal/errors"
)

// Kind is the tag of a failed account operation as seen by the caller.
type Kind int

const (
	// KindUnknown is any error that does not carry a domain tag.
	KindUnknown Kind = iota
	KindConflict
	KindNotFound
	KindUnauthorized
	KindBadRequest
	KindStorage
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "Conflict"
	case KindNotFound:
		return "NotFound"
	case KindUnauthorized:
		return "Unauthorized"
	case KindBadRequest:
		return "BadRequest"
	case KindStorage:
		return "StorageError"
	case KindUnknown:
		return "Unknown"
	}

	return "Unknown"
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
	Kind() Kind        // Result tag of the failed operation
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Kind returns the result tag
func (e *BaseError) Kind() Kind {
	return e.kind
}

// WithDetails returns a copy of the error carrying detailed information.
// The copy still matches the original with errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is reports whether target is the same predefined error, ignoring details.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode && e.kind == t.kind
}

// Predefined error types
var (
	// Account-related errors.
	// A duplicate registration answers 400, like the form and JSON registration
	// endpoints always have.
	ErrUserAlreadyExists = NewBaseError(
		KindConflict,
		http.StatusBadRequest,
		"USER_ALREADY_EXISTS",
		"User already exists.",
		"",
	)

	ErrUserNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// Credential errors. Every credential failure renders identically.
	ErrUnauthorized = NewBaseError(
		KindUnauthorized,
		http.StatusForbidden,
		"UNAUTHORIZED",
		"Unauthorized access.",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindUnknown,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	ErrPasswordTooLong = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"PASSWORD_TOO_LONG",
		"Password must not exceed 72 bytes.",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Email, age, and password are required.",
		"",
	)

	ErrInvalidPatch = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"INVALID_PATCH",
		"Invalid update payload.",
		"",
	)

	// Storage-related errors
	ErrStorage = NewBaseError(
		KindStorage,
		http.StatusInternalServerError,
		"STORAGE_ERROR",
		"User data is unavailable",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindUnknown,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// StorageError represents a failure to read or write the persisted user table,
// implementing the AppError interface
type StorageError struct {
	err     error
	details string
}

// NewStorageError creates a storage-related error
func NewStorageError(err error, details string) AppError {
	return &StorageError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return errors.Wrap(e.err, "storage operation failed: "+e.details).Error()
}

// Unwrap returns the driver error
func (e *StorageError) Unwrap() error {
	return e.err
}

// Is makes every StorageError match ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// HTTPCode returns the HTTP status code
func (e *StorageError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StorageError) ErrorCode() string {
	return ErrStorage.ErrorCode()
}

// Message returns the user-friendly error message
func (e *StorageError) Message() string {
	return ErrStorage.Message()
}

// Details returns detailed error information
func (e *StorageError) Details() string {
	return e.details
}

// Kind returns KindStorage
func (e *StorageError) Kind() Kind {
	return KindStorage
}

// KindOf returns the tag of err, or KindUnknown when err carries no AppError.
// A nil error has no kind either.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	if appErr, ok := errors.AsType[AppError](err); ok {
		return appErr.Kind()
	}

	return KindUnknown
}
