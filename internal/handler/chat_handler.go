package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/adityachauhan/aira-apiserver/internal/domain"
	"github.com/adityachauhan/aira-apiserver/internal/handler/dto"
)

// ChatHandler serves the streaming chat relay endpoint.
type ChatHandler struct {
	usecase domain.ChatUsecase
	logger  *slog.Logger
}

// NewChatHandler creates the chat relay handler.
func NewChatHandler(usecase domain.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Relay handles one chat request and pipes the upstream SSE stream back
// verbatim.
//
//	@Summary		Chat relay
//	@Description	Streams the assistant's reply as Server-Sent Events
//	@Tags			chat
//	@Accept			json
//	@Produce		text/event-stream
//	@Param			request	body		dto.ChatRequest		true	"chat request"
//	@Success		200		{string}	string				"SSE stream"
//	@Failure		400		{object}	dto.ErrorResponse	"invalid request"
//	@Failure		402		{object}	dto.ErrorResponse	"usage limit reached"
//	@Failure		429		{object}	dto.ErrorResponse	"rate limited"
//	@Failure		500		{object}	dto.ErrorResponse	"upstream or internal error"
//	@Router			/v1/chat [post]
func (h *ChatHandler) Relay(ctx context.Context, c *app.RequestContext) {
	var req dto.ChatRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("failed to bind chat request", "error", err)
		BadRequestResponse(c, "invalid request body")
		return
	}

	stream, err := h.usecase.StreamCompletion(ctx, &domain.ChatRequest{
		Messages:  req.Messages,
		WebSearch: req.WebSearch,
	})
	if err != nil {
		h.logger.Error("chat relay failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	// Verbatim passthrough: the upstream already framed the body as SSE
	// (`data: {...}` lines terminated by `data: [DONE]`), so nothing is
	// re-parsed or re-buffered here. Hertz closes the stream when the
	// response finishes or the client disconnects.
	c.SetStatusCode(consts.StatusOK)
	c.Response.Header.Set("Content-Type", "text/event-stream")
	c.Response.Header.Set("Cache-Control", "no-cache")
	c.Response.SetBodyStream(stream, -1)
}
