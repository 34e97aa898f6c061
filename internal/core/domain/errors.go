// Package domain defines the core domain models for keyline.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a request-level error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "KL-CMD-4000")
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
// If code is empty, it only checks if the error is a DomainError.
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

// Request errors (CMD, PROTO).
var (
	// ErrMalformedRequest indicates the decoded tokens do not match any
	// command's expected shape (missing key/value, non-numeric TTL).
	ErrMalformedRequest = NewDomainError("KL-CMD-4000", "malformed request")

	// ErrUnknownCommand indicates the command name token is not recognized.
	ErrUnknownCommand = NewDomainError("KL-CMD-4040", "unknown command")

	// ErrRateLimited indicates the per-client command budget was exceeded.
	ErrRateLimited = NewDomainError("KL-CMD-4290", "rate limit exceeded")

	// ErrDecode indicates bytes between terminators are not valid text.
	ErrDecode = NewDomainError("KL-PROTO-4001", "invalid token encoding")

	// ErrRequestTooLarge indicates a request exceeded the read buffer.
	ErrRequestTooLarge = NewDomainError("KL-PROTO-4130", "request too large")
)
