//go:build integration
// +build integration

package integration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/adityachauhan/aira-apiserver/internal/config"
	"github.com/adityachauhan/aira-apiserver/internal/handler"
	"github.com/adityachauhan/aira-apiserver/internal/handler/dto"
	"github.com/adityachauhan/aira-apiserver/internal/infrastructure/gateway"
	"github.com/adityachauhan/aira-apiserver/internal/infrastructure/search"
	"github.com/adityachauhan/aira-apiserver/internal/router"
	"github.com/adityachauhan/aira-apiserver/internal/usecase"
)

// upstreamChunks is the SSE stream the fake AI gateway emits. The relay
// must pass these bytes through untouched.
var upstreamChunks = []string{
	`data: {"choices":[{"delta":{"content":"Hello"}}]}` + "\n\n",
	`data: {"choices":[{"delta":{"content":" there! 💜"}}]}` + "\n\n",
	"data: [DONE]\n\n",
}

// TestChatHTTP_SSE runs the full HTTP path: hertz server, relay, fake
// upstream gateway. Run with: go test -tags integration ./test/...
func TestChatHTTP_SSE(t *testing.T) {
	// Fake upstream AI gateway
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, chunk := range upstreamChunks {
			fmt.Fprint(w, chunk)
			flusher.Flush()
			time.Sleep(10 * time.Millisecond)
		}
	}))
	defer upstream.Close()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 18080,
			Mode: "test",
		},
		Gateway: config.GatewayConfig{
			BaseURL:     upstream.URL,
			Model:       "google/gemini-2.5-pro",
			APIKey:      "test-key",
			DialTimeout: 10 * time.Second,
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	tracer := tracenoop.NewTracerProvider().Tracer("integration")
	meter := metricnoop.NewMeterProvider().Meter("integration")

	gatewayClient, err := gateway.NewClient(cfg.Gateway, logger)
	if err != nil {
		t.Fatalf("failed to create gateway client: %v", err)
	}

	searchClient := search.NewClient(cfg.Search, logger)
	chatUC := usecase.NewChatUsecase(gatewayClient, searchClient, logger, tracer, meter)
	searchUC := usecase.NewSearchUsecase(searchClient, cfg.Search.RecencyFilter, logger, tracer)
	chatHandler := handler.NewChatHandler(chatUC, logger)
	searchHandler := handler.NewSearchHandler(searchUC, logger)
	healthHandler := handler.NewHealthHandler(cfg)

	h := server.New(
		server.WithHostPorts(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
		server.WithTransport(netpoll.NewTransporter),
	)
	router.Setup(h, chatHandler, searchHandler, healthHandler)

	go func() {
		if err := h.Run(); err != nil {
			logger.Error("server failed", "error", err)
		}
	}()

	// Wait for the server to come up
	time.Sleep(2 * time.Second)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.Shutdown(ctx)
	}()

	baseURL := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpClient := &http.Client{Timeout: 60 * time.Second}

	t.Run("SSE streaming chat", func(t *testing.T) {
		bodyBytes := []byte(`{"messages":[{"role":"user","content":"hi"}]}`)
		req, err := http.NewRequest("POST", baseURL+"/v1/chat", bytes.NewReader(bodyBytes))
		if err != nil {
			t.Fatalf("failed to create request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := httpClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("expected status 200, got %d, body: %s", resp.StatusCode, string(body))
		}

		contentType := resp.Header.Get("Content-Type")
		if !strings.Contains(contentType, "text/event-stream") {
			t.Errorf("expected Content-Type to contain 'text/event-stream', got '%s'", contentType)
		}

		// The relay must not reframe the upstream stream
		reader := bufio.NewReader(resp.Body)
		chunkCount := 0
		receivedDone := false
		var answer strings.Builder

		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					break
				}
				t.Fatalf("failed to read stream: %v", err)
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if strings.HasPrefix(line, "data: ") {
				data := strings.TrimPrefix(line, "data: ")

				if data == "[DONE]" {
					receivedDone = true
					break
				}

				var chunk struct {
					Choices []struct {
						Delta struct {
							Content string `json:"content"`
						} `json:"delta"`
					} `json:"choices"`
				}
				if err := json.Unmarshal([]byte(data), &chunk); err != nil {
					t.Errorf("failed to unmarshal chunk: %v, data: %s", err, data)
					continue
				}

				chunkCount++
				if len(chunk.Choices) > 0 {
					answer.WriteString(chunk.Choices[0].Delta.Content)
				}
			}
		}

		if chunkCount != 2 {
			t.Errorf("expected 2 chunks, got %d", chunkCount)
		}
		if !receivedDone {
			t.Error("expected to receive [DONE] marker")
		}
		if got, want := answer.String(), "Hello there! 💜"; got != want {
			t.Errorf("reassembled answer = %q, want %q", got, want)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		req, _ := http.NewRequest("POST", baseURL+"/v1/chat", strings.NewReader(`{"messages":[]}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := httpClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}

		var envelope dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("failed to decode error envelope: %v", err)
		}
		if envelope.Error == "" {
			t.Error("expected non-empty error message")
		}
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req, _ := http.NewRequest("OPTIONS", baseURL+"/v1/chat", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")

		resp, err := httpClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
		if got := resp.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, "authorization") {
			t.Errorf("Access-Control-Allow-Headers = %q, missing authorization", got)
		}
		body, _ := io.ReadAll(resp.Body)
		if len(body) != 0 {
			t.Errorf("expected empty preflight body, got %q", string(body))
		}
	})
}
