package usecase

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/adityachauhan/aira-apiserver/internal/domain"
	"github.com/adityachauhan/aira-apiserver/internal/domain/entity"
	"github.com/adityachauhan/aira-apiserver/internal/intent"
	"github.com/adityachauhan/aira-apiserver/internal/prompt"
)

// augmentInstruction is the system turn for the best-effort augmentation
// call made before the main completion.
const augmentInstruction = "Provide factual, up-to-date information. Be concise and accurate."

// chatUsecase orchestrates one chat request: classify the latest user
// query, optionally fetch live context, assemble the system prompt, and
// relay the upstream stream back to the handler.
type chatUsecase struct {
	gateway domain.CompletionGateway
	search  domain.SearchProvider
	logger  *slog.Logger
	tracer  trace.Tracer

	requests      metric.Int64Counter
	augmentations metric.Int64Counter
	relayFailures metric.Int64Counter
}

// NewChatUsecase wires the chat orchestration.
func NewChatUsecase(
	gateway domain.CompletionGateway,
	search domain.SearchProvider,
	logger *slog.Logger,
	tracer trace.Tracer,
	meter metric.Meter,
) domain.ChatUsecase {
	requests, _ := meter.Int64Counter("aira.chat.requests")
	augmentations, _ := meter.Int64Counter("aira.chat.augmentations")
	relayFailures, _ := meter.Int64Counter("aira.chat.relay_failures")

	return &chatUsecase{
		gateway:       gateway,
		search:        search,
		logger:        logger,
		tracer:        tracer,
		requests:      requests,
		augmentations: augmentations,
		relayFailures: relayFailures,
	}
}

// StreamCompletion implements domain.ChatUsecase. The returned stream is
// the upstream SSE body verbatim; the caller owns closing it. Search
// failures never fail the request, only the completion call can.
func (u *chatUsecase) StreamCompletion(ctx context.Context, req *domain.ChatRequest) (io.ReadCloser, error) {
	if err := validateChatRequest(req); err != nil {
		return nil, err
	}
	u.requests.Add(ctx, 1)

	query := entity.LastUserText(req.Messages)
	needsRealtime := intent.NeedsRealtime(query)
	hasImages := entity.HasImages(req.Messages)

	u.logger.Info("chat request received",
		"messages", len(req.Messages),
		"has_images", hasImages,
		"web_search", req.WebSearch,
		"needs_realtime", needsRealtime,
	)

	webContext := ""
	if (req.WebSearch || needsRealtime) && query != "" {
		webContext = u.augment(ctx, query)
	}

	systemPrompt := prompt.Assemble(webContext)
	messages := make([]entity.ChatMessage, 0, len(req.Messages)+1)
	messages = append(messages, entity.ChatMessage{
		Role:    entity.RoleSystem,
		Content: entity.TextContent(systemPrompt),
	})
	messages = append(messages, req.Messages...)

	ctx, span := u.tracer.Start(ctx, "gateway.stream_chat_completion")
	stream, err := u.gateway.StreamChatCompletion(ctx, messages)
	span.End()
	if err != nil {
		u.relayFailures.Add(ctx, 1)
		return nil, err
	}

	u.logger.Info("streaming response started")
	return stream, nil
}

// augment performs the best-effort search call. Any failure is swallowed
// and logged; an empty string means no augmentation happened.
func (u *chatUsecase) augment(ctx context.Context, query string) string {
	ctx, span := u.tracer.Start(ctx, "search.augment")
	defer span.End()

	u.logger.Info("performing web search", "query_length", len(query))

	result, err := u.search.Search(ctx, query, domain.SearchOptions{
		Instruction: augmentInstruction,
	})
	if err != nil {
		if domain.IsNotConfigured(err) {
			u.logger.Debug("search credential missing, skipping augmentation")
		} else {
			u.logger.Warn("web search failed, continuing without it", "error", err)
		}
		return ""
	}

	u.augmentations.Add(ctx, 1)
	u.logger.Info("web search successful", "context_length", len(result.Content))
	return result.Content
}

// validateChatRequest rejects requests the relay cannot serve: the
// message list must be non-empty and end with a user turn ready for
// reply.
func validateChatRequest(req *domain.ChatRequest) error {
	if req == nil || len(req.Messages) == 0 {
		return domain.NewInvalidInputError("messages is required")
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != entity.RoleUser {
		return domain.NewInvalidInputError("last message must be from user")
	}
	return nil
}
