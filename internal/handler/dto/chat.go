package dto

import "github.com/adityachauhan/aira-apiserver/internal/domain/entity"

// ChatRequest is the inbound chat relay request body.
type ChatRequest struct {
	Messages  []entity.ChatMessage `json:"messages"`
	WebSearch bool                 `json:"webSearch"`
}

// SearchRequest is the inbound standalone search request body.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the standalone search result.
type SearchResponse struct {
	Content   string   `json:"content"`
	Citations []string `json:"citations"`
}

// ErrorResponse is the JSON error envelope used on every failure path.
type ErrorResponse struct {
	Error string `json:"error"`
}
