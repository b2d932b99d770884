// Package domain defines the core domain models for WireHTTP.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
// Codes use the format WH-<AREA>-<NNNN>, where the area names the subsystem
// and the leading digits of the number track the HTTP status class.
type DomainError struct {
	Code    string // Error code (e.g., "WH-AUTH-4011")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks whether the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// HTTPStatus maps a domain error to the response status it should produce.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case IsDomainError(err, ErrUserExists.Code):
		return 409
	case IsDomainError(err, ErrUserNotFound.Code):
		return 404
	case IsDomainError(err, ErrInvalidCredentials.Code),
		IsDomainError(err, ErrTokenExpired.Code),
		IsDomainError(err, ErrTokenInvalid.Code),
		IsDomainError(err, ErrMissingCredentials.Code):
		return 401
	case IsDomainError(err, ErrInvalidArgument.Code),
		IsDomainError(err, ErrMissingArgument.Code):
		return 400
	case IsDomainError(err, ErrRateLimited.Code):
		return 429
	default:
		return 500
	}
}

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrInvalidCredentials indicates the username/password pair did not match.
	ErrInvalidCredentials = NewDomainError("WH-AUTH-4011", "invalid credentials")

	// ErrTokenExpired indicates the bearer token has expired.
	ErrTokenExpired = NewDomainError("WH-AUTH-4012", "token expired")

	// ErrTokenInvalid indicates the bearer token failed verification.
	ErrTokenInvalid = NewDomainError("WH-AUTH-4013", "invalid token")

	// ErrMissingCredentials indicates no credentials were presented.
	ErrMissingCredentials = NewDomainError("WH-AUTH-4010", "credentials not provided")
)

// ============================================================================
// User Errors (USER)
// ============================================================================

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = NewDomainError("WH-USER-4040", "user not found")

	// ErrUserExists indicates the username is already taken.
	ErrUserExists = NewDomainError("WH-USER-4090", "user already exists")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("WH-ARG-4001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("WH-ARG-4002", "missing required argument")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("WH-SYS-5000", "internal server error")

	// ErrStorageError indicates a storage layer error.
	ErrStorageError = NewDomainError("WH-SYS-5001", "storage error")

	// ErrRateLimited indicates too many requests from one client.
	ErrRateLimited = NewDomainError("WH-SYS-4290", "too many requests")
)
