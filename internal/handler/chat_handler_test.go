package handler

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityachauhan/aira-apiserver/internal/domain"
)

// fakeChatUsecase returns a canned stream or error.
type fakeChatUsecase struct {
	gotReq *domain.ChatRequest
	stream string
	err    error
}

func (u *fakeChatUsecase) StreamCompletion(ctx context.Context, req *domain.ChatRequest) (io.ReadCloser, error) {
	u.gotReq = req
	if u.err != nil {
		return nil, u.err
	}
	return io.NopCloser(strings.NewReader(u.stream)), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chatEngine(uc domain.ChatUsecase) *server.Hertz {
	h := server.Default()
	h.POST("/v1/chat", NewChatHandler(uc, testLogger()).Relay)
	return h
}

func TestRelayStreamsUpstreamBody(t *testing.T) {
	sse := "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\n\ndata: [DONE]\n\n"
	uc := &fakeChatUsecase{stream: sse}
	h := chatEngine(uc)

	w := ut.PerformRequest(h.Engine, "POST", "/v1/chat",
		&ut.Body{Body: strings.NewReader(`{"messages":[{"role":"user","content":"hello"}],"webSearch":true}`), Len: -1},
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
	resp := w.Result()

	assert.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, "text/event-stream", string(resp.Header.Get("Content-Type")))
	assert.Equal(t, sse, string(resp.Body()))

	require.NotNil(t, uc.gotReq)
	assert.True(t, uc.gotReq.WebSearch)
	require.Len(t, uc.gotReq.Messages, 1)
	assert.Equal(t, "hello", uc.gotReq.Messages[0].Content.Text)
}

func TestRelayInvalidJSON(t *testing.T) {
	h := chatEngine(&fakeChatUsecase{})

	w := ut.PerformRequest(h.Engine, "POST", "/v1/chat",
		&ut.Body{Body: strings.NewReader(`{not json`), Len: -1},
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
	resp := w.Result()

	assert.Equal(t, 400, resp.StatusCode())
	assert.JSONEq(t, `{"error":"invalid request body"}`, string(resp.Body()))
}

func TestRelayErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation error",
			err:        domain.NewInvalidInputError("messages is required"),
			wantStatus: 400,
			wantBody:   `{"error":"messages is required"}`,
		},
		{
			name:       "rate limited",
			err:        domain.NewRateLimitedError(),
			wantStatus: 429,
			wantBody:   `{"error":"Rate limit exceeded. Please try again later."}`,
		},
		{
			name:       "quota exceeded",
			err:        domain.NewQuotaExceededError(),
			wantStatus: 402,
			wantBody:   `{"error":"Usage limit reached. Please add credits to continue."}`,
		},
		{
			name:       "upstream failure",
			err:        domain.NewUpstreamError(503),
			wantStatus: 500,
			wantBody:   `{"error":"AI service error. Please try again."}`,
		},
		{
			name:       "gateway not configured",
			err:        domain.NewNotConfiguredError("AI gateway"),
			wantStatus: 500,
			wantBody:   `{"error":"AI gateway is not configured"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := chatEngine(&fakeChatUsecase{err: tt.err})

			w := ut.PerformRequest(h.Engine, "POST", "/v1/chat",
				&ut.Body{Body: strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`), Len: -1},
				ut.Header{Key: "Content-Type", Value: "application/json"},
			)
			resp := w.Result()

			assert.Equal(t, tt.wantStatus, resp.StatusCode())
			assert.JSONEq(t, tt.wantBody, string(resp.Body()))
		})
	}
}
