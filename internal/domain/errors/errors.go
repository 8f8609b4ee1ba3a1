// Package errors defines the application error taxonomy shared between the
// use cases and the delivery layer. Every rejection carries a stable
// machine-readable code plus a user-safe message; internal causes stay in
// the wrapped error chain and are logged, never echoed to the caller.
package errors

import (
	"net/http"

	"github.com/JustKota/FrvttaeProyect/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Store availability. Distinct from "not found" and retryable by callers.
	ErrStoreUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORE_UNAVAILABLE",
		"Service temporarily unavailable, please retry",
		"",
	)

	// Credential errors. Deliberately silent about which part was wrong.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"This username is already registered",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// Image admission errors. Decoder internals collapse into NOT_AN_IMAGE.
	ErrNotAnImage = NewBaseError(
		http.StatusBadRequest,
		"NOT_AN_IMAGE",
		"Could not process image, please upload a valid JPEG or PNG",
		"",
	)

	ErrUnsupportedImageFormat = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_IMAGE_FORMAT",
		"Please use an image in JPEG or PNG format",
		"",
	)

	ErrImageTooSmall = NewBaseError(
		http.StatusBadRequest,
		"IMAGE_TOO_SMALL",
		"The image is too small, it must be at least 50x50 pixels",
		"",
	)

	// Face gating errors.
	ErrNoFaceDetected = NewBaseError(
		http.StatusBadRequest,
		"NO_FACE_DETECTED",
		"No face was detected, make sure your face is clearly visible and well lit",
		"",
	)

	ErrMultipleFacesDetected = NewBaseError(
		http.StatusBadRequest,
		"MULTIPLE_FACES_DETECTED",
		"More than one face was detected, please use an image with a single face",
		"",
	)

	// Biometric errors.
	ErrNoEnrolledBiometric = NewBaseError(
		http.StatusBadRequest,
		"NO_ENROLLED_BIOMETRIC",
		"This account has no enrolled face, face login is not available",
		"",
	)

	ErrBiometricMismatch = NewBaseError(
		http.StatusUnauthorized,
		"BIOMETRIC_MISMATCH",
		"The face does not match the registered user",
		"",
	)

	// Token errors.
	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"Session has expired, please log in again",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"Invalid session token",
		"",
	)

	ErrInsufficientRole = NewBaseError(
		http.StatusForbidden,
		"INSUFFICIENT_ROLE",
		"This operation requires administrator privileges",
		"",
	)

	// Federated identity errors.
	ErrFederatedTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"FEDERATED_TOKEN_INVALID",
		"External identity verification failed",
		"",
	)

	// Validation errors.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		"",
	)

	// Fallback for unexpected faults.
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)
