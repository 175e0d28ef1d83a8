package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/adityachauhan/aira-apiserver/internal/cli/types"
	"github.com/adityachauhan/aira-apiserver/internal/domain/entity"
	"github.com/adityachauhan/aira-apiserver/internal/stream"
)

// APIClient wraps Hertz Client for HTTP communication with the API server
type APIClient struct {
	client *client.Client
	server string
}

// NewAPIClient creates a new API client
func NewAPIClient(server string) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	// Standard library dialer is required for streaming reads;
	// netpoll does not support BodyStream well.
	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithResponseBodyStream(true),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
	}, nil
}

// normalizeServerURL ensures the server address has a scheme and no trailing path
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// apiError turns a non-2xx response body into a readable error, using the
// server's {"error": "..."} envelope when present.
func apiError(status int, body []byte) error {
	var envelope types.ErrorResponse
	if err := sonic.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return fmt.Errorf("%s (HTTP %d)", envelope.Error, status)
	}
	return fmt.Errorf("request failed with HTTP status %d", status)
}

// Ping checks connectivity with the server
func (c *APIClient) Ping(ctx context.Context) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + endpointPing)

	if err := c.client.Do(ctx, req, resp); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != consts.StatusOK {
		return fmt.Errorf("server responded with HTTP %d", resp.StatusCode())
	}
	return nil
}

// Search runs a standalone web search
func (c *APIClient) Search(ctx context.Context, query string) (*types.SearchResponse, error) {
	bodyBytes, err := sonic.Marshal(types.SearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointWebSearch)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(bodyBytes)

	if err := c.client.Do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != consts.StatusOK {
		return nil, apiError(resp.StatusCode(), resp.Body())
	}

	var searchResp types.SearchResponse
	if err := sonic.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &searchResp, nil
}

// ChatStreaming sends the conversation and streams back answer fragments.
// The fragment channel closes when the stream finishes; at most one error
// is sent on the error channel.
func (c *APIClient) ChatStreaming(ctx context.Context, messages []entity.ChatMessage, webSearch bool) (<-chan string, <-chan error, error) {
	if len(messages) == 0 {
		return nil, nil, fmt.Errorf("chat request requires at least one message")
	}

	// Copy messages to avoid data races when caller mutates the slice while streaming
	safeMessages := make([]entity.ChatMessage, len(messages))
	copy(safeMessages, messages)

	bodyBytes, err := sonic.Marshal(types.ChatRequest{
		Messages:  safeMessages,
		WebSearch: webSearch,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointChat)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("Accept", "text/event-stream")
	req.SetBody(bodyBytes)

	if err := c.client.Do(ctx, req, resp); err != nil {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != consts.StatusOK {
		status := resp.StatusCode()
		body := resp.Body()
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
		return nil, nil, apiError(status, body)
	}

	fragmentCh := make(chan string, 10)
	errCh := make(chan error, 1)

	go func() {
		defer func() {
			close(fragmentCh)
			close(errCh)
			protocol.ReleaseRequest(req)
			protocol.ReleaseResponse(resp)
		}()

		bodyStream := resp.BodyStream()
		if bodyStream == nil {
			errCh <- fmt.Errorf("body stream is nil")
			return
		}

		c.relayFragments(bodyStream, fragmentCh, errCh)
	}()

	return fragmentCh, errCh, nil
}

// relayFragments decodes the SSE body and forwards each text fragment as it
// arrives.
func (c *APIClient) relayFragments(body io.Reader, fragmentCh chan<- string, errCh chan<- error) {
	re := stream.NewReassembler()
	buf := make([]byte, 4096)

	send := func(fragments []string) bool {
		for _, f := range fragments {
			select {
			case fragmentCh <- f:
			case <-time.After(5 * time.Second):
				errCh <- fmt.Errorf("timeout sending fragment to channel")
				return false
			}
		}
		return true
	}

	for {
		n, err := body.Read(buf)
		if n > 0 {
			fragments, done := re.Feed(buf[:n])
			if !send(fragments) {
				return
			}
			if done {
				return
			}
		}
		if err != nil {
			// EOF without [DONE]: flush whatever is buffered and finish.
			send(re.Flush())
			if !errors.Is(err, io.EOF) {
				errCh <- fmt.Errorf("stream read failed: %w", err)
			}
			return
		}
	}
}
