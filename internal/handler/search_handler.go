package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/adityachauhan/aira-apiserver/internal/domain"
	"github.com/adityachauhan/aira-apiserver/internal/handler/dto"
)

// SearchHandler serves the standalone web-search endpoint.
type SearchHandler struct {
	usecase domain.SearchUsecase
	logger  *slog.Logger
}

// NewSearchHandler creates the search handler.
func NewSearchHandler(usecase domain.SearchUsecase, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Search answers one query with live information and citations.
//
//	@Summary		Web search
//	@Description	Answers a query with current information and sources
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SearchRequest	true	"search query"
//	@Success		200		{object}	dto.SearchResponse
//	@Failure		400		{object}	dto.ErrorResponse	"invalid request"
//	@Failure		500		{object}	dto.ErrorResponse	"search failed"
//	@Router			/v1/web-search [post]
func (h *SearchHandler) Search(ctx context.Context, c *app.RequestContext) {
	var req dto.SearchRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("failed to bind search request", "error", err)
		BadRequestResponse(c, "invalid request body")
		return
	}

	result, err := h.usecase.Search(ctx, req.Query)
	if err != nil {
		h.logger.Error("web search failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	c.JSON(consts.StatusOK, dto.SearchResponse{
		Content:   result.Content,
		Citations: result.Citations,
	})
}
