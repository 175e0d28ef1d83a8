package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructorsAndPredicates(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		predicate   func(error) bool
		userMessage string
	}{
		{
			name:        "invalid input",
			err:         NewInvalidInputError("messages is required"),
			predicate:   IsInvalidInput,
			userMessage: "messages is required",
		},
		{
			name:        "rate limited",
			err:         NewRateLimitedError(),
			predicate:   IsRateLimited,
			userMessage: "Rate limit exceeded. Please try again later.",
		},
		{
			name:        "quota exceeded",
			err:         NewQuotaExceededError(),
			predicate:   IsQuotaExceeded,
			userMessage: "Usage limit reached. Please add credits to continue.",
		},
		{
			name:        "upstream",
			err:         NewUpstreamError(503),
			predicate:   IsUpstream,
			userMessage: "AI service error. Please try again.",
		},
		{
			name:        "not configured",
			err:         NewNotConfiguredError("Search API"),
			predicate:   IsNotConfigured,
			userMessage: "Search API is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.predicate(tt.err))

			var domainErr *DomainError
			require.ErrorAs(t, tt.err, &domainErr)
			assert.Equal(t, tt.userMessage, domainErr.UserMessage())
		})
	}
}

func TestPredicatesSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("relay failed: %w", NewRateLimitedError())
	assert.True(t, IsRateLimited(wrapped))
	assert.False(t, IsQuotaExceeded(wrapped))
}

func TestUpstreamStatusStaysInternal(t *testing.T) {
	err := NewUpstreamError(503)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	// The status is visible in logs via Error but not in the user message.
	assert.Contains(t, err.Error(), "503")
	assert.NotContains(t, domainErr.UserMessage(), "503")
}

func TestPredicatesRejectUnrelatedErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.False(t, IsInvalidInput(plain))
	assert.False(t, IsRateLimited(plain))
	assert.False(t, IsUpstream(plain))
	assert.False(t, IsNotConfigured(plain))
}
