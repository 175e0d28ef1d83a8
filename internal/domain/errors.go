package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the relay's failure taxonomy.
var (
	// ErrInvalidInput marks a malformed inbound request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited marks an upstream 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrQuotaExceeded marks an upstream 402.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrUpstream marks any other upstream failure.
	ErrUpstream = errors.New("upstream error")
	// ErrNotConfigured marks a missing credential.
	ErrNotConfigured = errors.New("not configured")
	// ErrInternal marks an unexpected internal failure.
	ErrInternal = errors.New("internal error")
)

// DomainError pairs an internal error with the message shown to callers.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface for logs and wrapping.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the caller-facing message, free of internal detail.
func (e *DomainError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped sentinel.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError builds a validation error with a caller-facing message.
func NewInvalidInputError(message string) error {
	return &DomainError{
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// NewRateLimitedError builds the caller-facing 429 error.
func NewRateLimitedError() error {
	return &DomainError{
		Code:    "RATE_LIMITED",
		Message: "Rate limit exceeded. Please try again later.",
		Err:     ErrRateLimited,
	}
}

// NewQuotaExceededError builds the caller-facing 402 error.
func NewQuotaExceededError() error {
	return &DomainError{
		Code:    "QUOTA_EXCEEDED",
		Message: "Usage limit reached. Please add credits to continue.",
		Err:     ErrQuotaExceeded,
	}
}

// NewUpstreamError builds the generic caller-facing error for any other
// upstream failure. The status is kept for logs only.
func NewUpstreamError(status int) error {
	return &DomainError{
		Code:    "UPSTREAM_ERROR",
		Message: "AI service error. Please try again.",
		Err:     fmt.Errorf("%w: status %d", ErrUpstream, status),
	}
}

// NewNotConfiguredError marks a missing credential for the named service.
func NewNotConfiguredError(service string) error {
	return &DomainError{
		Code:    "NOT_CONFIGURED",
		Message: fmt.Sprintf("%s is not configured", service),
		Err:     ErrNotConfigured,
	}
}

// NewInternalError wraps an unexpected failure without exposing detail.
func NewInternalError(err error) error {
	return &DomainError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Err:     fmt.Errorf("%w: %v", ErrInternal, err),
	}
}

// IsInvalidInput reports whether err is a validation error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited reports whether err is an upstream rate-limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsQuotaExceeded reports whether err is an upstream quota error.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

// IsUpstream reports whether err is a generic upstream failure.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsNotConfigured reports whether err is a missing-credential error.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}
