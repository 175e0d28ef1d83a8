package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityachauhan/aira-apiserver/internal/config"
	"github.com/adityachauhan/aira-apiserver/internal/domain"
	"github.com/adityachauhan/aira-apiserver/internal/domain/entity"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(config.GatewayConfig{
		BaseURL:     baseURL,
		Model:       "google/gemini-2.5-pro",
		APIKey:      "test-key",
		DialTimeout: 5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestStreamChatCompletionPassesBodyThrough(t *testing.T) {
	sse := "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\n\ndata: [DONE]\n\n"

	var gotAuth string
	var gotBody completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(sse))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	stream, err := c.StreamChatCompletion(context.Background(), []entity.ChatMessage{
		{Role: entity.RoleUser, Content: entity.TextContent("hello")},
	})
	require.NoError(t, err)
	defer stream.Close()

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, sse, string(got))

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "google/gemini-2.5-pro", gotBody.Model)
	assert.True(t, gotBody.Stream)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "hello", gotBody.Messages[0].Content.Text)
}

func TestStreamChatCompletionStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsRateLimited(err))
			},
		},
		{
			name:   "quota exceeded",
			status: http.StatusPaymentRequired,
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsQuotaExceeded(err))
			},
		},
		{
			name:   "other upstream failure",
			status: http.StatusServiceUnavailable,
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsUpstream(err))
				assert.False(t, domain.IsRateLimited(err))
				assert.False(t, domain.IsQuotaExceeded(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"upstream detail"}}`))
			}))
			defer srv.Close()

			c := testClient(t, srv.URL)
			_, err := c.StreamChatCompletion(context.Background(), []entity.ChatMessage{
				{Role: entity.RoleUser, Content: entity.TextContent("hello")},
			})
			require.Error(t, err)
			tt.check(t, err)

			// The upstream body never leaks into the caller-facing error.
			assert.NotContains(t, err.Error(), "upstream detail")
		})
	}
}

func TestStreamChatCompletionMissingKey(t *testing.T) {
	c, err := NewClient(config.GatewayConfig{
		BaseURL: "http://localhost:0",
		Model:   "google/gemini-2.5-pro",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = c.StreamChatCompletion(context.Background(), []entity.ChatMessage{
		{Role: entity.RoleUser, Content: entity.TextContent("hello")},
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotConfigured(err))
}
