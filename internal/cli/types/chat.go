package types

import "github.com/adityachauhan/aira-apiserver/internal/domain/entity"

// ChatRequest is the body sent to POST /v1/chat.
type ChatRequest struct {
	Messages  []entity.ChatMessage `json:"messages"`
	WebSearch bool                 `json:"webSearch,omitempty"`
}

// SearchRequest is the body sent to POST /v1/web-search.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the body returned by POST /v1/web-search.
type SearchResponse struct {
	Content   string   `json:"content"`
	Citations []string `json:"citations"`
}

// ErrorResponse is the JSON envelope returned on non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
