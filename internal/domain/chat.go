package domain

import (
	"context"
	"io"

	"github.com/adityachauhan/aira-apiserver/internal/domain/entity"
)

// ChatRequest is the inbound chat request after HTTP binding.
// Messages must be non-empty and end with a user-authored message.
type ChatRequest struct {
	Messages  []entity.ChatMessage
	WebSearch bool
}

// SearchOptions tune one search provider call.
type SearchOptions struct {
	// Instruction is the system turn sent ahead of the query.
	Instruction string
	// Recency restricts results by age ("day", "week", ...). Empty means
	// no restriction.
	Recency string
}

// CompletionGateway issues streaming chat-completion requests upstream.
type CompletionGateway interface {
	// StreamChatCompletion sends one streaming completion request and
	// returns the raw SSE response body. The caller owns the stream and
	// must close it. Upstream failures are reported as domain errors
	// (rate limited, quota exceeded, upstream error).
	StreamChatCompletion(ctx context.Context, messages []entity.ChatMessage) (io.ReadCloser, error)
}

// SearchProvider answers a single query with live information.
type SearchProvider interface {
	Search(ctx context.Context, query string, opts SearchOptions) (*entity.SearchResult, error)
}

// ChatUsecase orchestrates one chat request end to end: intent
// classification, best-effort augmentation, prompt assembly, and the
// streaming relay to the completion gateway.
type ChatUsecase interface {
	StreamCompletion(ctx context.Context, req *ChatRequest) (io.ReadCloser, error)
}

// SearchUsecase serves the standalone web-search endpoint.
type SearchUsecase interface {
	Search(ctx context.Context, query string) (*entity.SearchResult, error)
}
