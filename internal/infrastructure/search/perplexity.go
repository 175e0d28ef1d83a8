// Package search implements the live-search provider on top of the
// Perplexity API, which speaks the OpenAI chat-completions dialect.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/adityachauhan/aira-apiserver/internal/config"
	"github.com/adityachauhan/aira-apiserver/internal/domain"
	"github.com/adityachauhan/aira-apiserver/internal/domain/entity"
)

// Client answers queries through the Perplexity sonar models.
type Client struct {
	api     openai.Client
	model   string
	enabled bool
	logger  *slog.Logger
}

// NewClient builds the provider. When no API key is configured the
// client stays disabled and every Search returns a not-configured error;
// callers decide whether that is fatal (standalone endpoint) or a silent
// degrade (augmentation).
func NewClient(cfg config.SearchConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	api := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(timeout),
		// Search is a single-shot, best-effort call; the SDK's default
		// retries would violate that.
		option.WithMaxRetries(0),
	)

	return &Client{
		api:     api,
		model:   cfg.Model,
		enabled: cfg.Enabled(),
		logger:  logger,
	}
}

// Search issues one non-streaming completion with the instruction as the
// system turn and the query as the sole user turn, and extracts the first
// choice's message text plus any citations the provider attached.
func (c *Client) Search(ctx context.Context, query string, opts domain.SearchOptions) (*entity.SearchResult, error) {
	if !c.enabled {
		return nil, domain.NewNotConfiguredError("Search API")
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(opts.Instruction),
			openai.UserMessage(query),
		},
	}

	var reqOpts []option.RequestOption
	if opts.Recency != "" {
		reqOpts = append(reqOpts, option.WithJSONSet("search_recency_filter", opts.Recency))
	}

	completion, err := c.api.Chat.Completions.New(ctx, params, reqOpts...)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	result := &entity.SearchResult{}
	if len(completion.Choices) > 0 {
		result.Content = completion.Choices[0].Message.Content
	}
	result.Citations = extractCitations(completion)

	c.logger.Debug("search completed",
		"content_length", len(result.Content),
		"citations", len(result.Citations),
	)

	return result, nil
}

// extractCitations pulls the non-standard citations field Perplexity
// attaches to the completion object.
func extractCitations(completion *openai.ChatCompletion) []string {
	field, ok := completion.JSON.ExtraFields["citations"]
	if !ok || field.Raw() == "" {
		return nil
	}
	var citations []string
	if err := sonic.Unmarshal([]byte(field.Raw()), &citations); err != nil {
		return nil
	}
	return citations
}
