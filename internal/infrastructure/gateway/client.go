// Package gateway implements the streaming client for the upstream
// chat-completion API. The response body is handed back as a raw byte
// stream so the relay can pipe the upstream's SSE framing through to
// the caller untouched.
package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/adityachauhan/aira-apiserver/internal/config"
	"github.com/adityachauhan/aira-apiserver/internal/domain"
	"github.com/adityachauhan/aira-apiserver/internal/domain/entity"
)

// completionRequest is the upstream chat-completion request body.
type completionRequest struct {
	Model    string               `json:"model"`
	Messages []entity.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

// Client issues streaming completion requests against the gateway.
type Client struct {
	httpClient *client.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *slog.Logger
}

// NewClient creates a gateway client. The standard library dialer is
// required for response body streaming; netpoll does not support it.
func NewClient(cfg config.GatewayConfig, logger *slog.Logger) (*Client, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}

	c, err := client.NewClient(
		client.WithDialTimeout(dialTimeout),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithResponseBodyStream(true),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	return &Client{
		httpClient: c,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     logger,
	}, nil
}

// StreamChatCompletion sends one POST with stream enabled and returns the
// raw SSE body. Upstream statuses map to domain errors: 429 rate limited,
// 402 quota exceeded, anything else non-2xx a generic upstream error.
// The error body is logged, never returned to the caller.
func (c *Client) StreamChatCompletion(ctx context.Context, messages []entity.ChatMessage) (io.ReadCloser, error) {
	if c.apiKey == "" {
		return nil, domain.NewNotConfiguredError("AI gateway")
	}

	body, err := sonic.Marshal(completionRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	release := func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.baseURL + "/chat/completions")
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "text/event-stream")
	req.SetBody(body)

	if err := c.httpClient.Do(ctx, req, resp); err != nil {
		release()
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		// Read the remaining stream so the error body lands in logs.
		errBody := resp.Body()
		c.logger.Error("AI gateway error",
			"status", status,
			"body", string(errBody),
		)
		release()

		switch status {
		case consts.StatusTooManyRequests:
			return nil, domain.NewRateLimitedError()
		case consts.StatusPaymentRequired:
			return nil, domain.NewQuotaExceededError()
		default:
			return nil, domain.NewUpstreamError(status)
		}
	}

	stream := resp.BodyStream()
	if stream == nil {
		release()
		return nil, domain.NewUpstreamError(status)
	}

	return &streamBody{reader: stream, release: release}, nil
}

// streamBody ties the upstream body stream to the pooled hertz
// request/response, releasing both exactly once on Close.
type streamBody struct {
	reader   io.Reader
	release  func()
	released bool
}

func (s *streamBody) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *streamBody) Close() error {
	if !s.released {
		s.released = true
		s.release()
	}
	return nil
}
