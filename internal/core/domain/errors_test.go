package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("WH-TEST-1000", "test message"),
			expected: "[WH-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("WH-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[WH-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("WH-TEST-1000", "message 1")
	err2 := NewDomainError("WH-TEST-1000", "message 2") // Same code, different message
	err3 := NewDomainError("WH-TEST-1001", "message 1") // Different code

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := ErrStorageError.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if !errors.Is(err, ErrStorageError) {
		t.Error("wrapped error should still match its sentinel")
	}
}

func TestDomainError_CopySemantics(t *testing.T) {
	// WithDetails and WithCause must not mutate shared sentinels.
	detailed := ErrUserNotFound.WithDetails("username=alice")
	if ErrUserNotFound.Details != "" {
		t.Errorf("sentinel mutated: Details = %q", ErrUserNotFound.Details)
	}
	if detailed.Code != ErrUserNotFound.Code {
		t.Errorf("Code = %q, want %q", detailed.Code, ErrUserNotFound.Code)
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"domain error", ErrInvalidCredentials, "WH-AUTH-4011"},
		{"wrapped domain error", fmt.Errorf("context: %w", ErrUserExists), "WH-USER-4090"},
		{"plain error", fmt.Errorf("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.want {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrTokenExpired, "WH-AUTH-4012") {
		t.Error("expected match on exact code")
	}
	if !IsDomainError(ErrTokenExpired, "") {
		t.Error("empty code should match any DomainError")
	}
	if IsDomainError(fmt.Errorf("plain"), "") {
		t.Error("plain error should not match")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrUserExists, 409},
		{ErrUserNotFound, 404},
		{ErrInvalidCredentials, 401},
		{ErrTokenExpired, 401},
		{ErrTokenInvalid, 401},
		{ErrMissingCredentials, 401},
		{ErrInvalidArgument, 400},
		{ErrMissingArgument.WithDetails("username"), 400},
		{ErrRateLimited, 429},
		{ErrInternalServer, 500},
		{fmt.Errorf("plain"), 500},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
