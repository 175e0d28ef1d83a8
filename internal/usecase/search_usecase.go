package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/adityachauhan/aira-apiserver/internal/domain"
	"github.com/adityachauhan/aira-apiserver/internal/domain/entity"
)

// searchInstruction is the system turn for the standalone search
// endpoint, which answers with sources rather than terse context.
const searchInstruction = "You are a helpful search assistant. Provide accurate, up-to-date information with sources. Be concise but comprehensive."

// searchUsecase serves the standalone web-search endpoint. Unlike the
// chat augmentation path, failures here surface to the caller.
type searchUsecase struct {
	search  domain.SearchProvider
	recency string
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewSearchUsecase wires the standalone search flow.
func NewSearchUsecase(search domain.SearchProvider, recency string, logger *slog.Logger, tracer trace.Tracer) domain.SearchUsecase {
	return &searchUsecase{
		search:  search,
		recency: recency,
		logger:  logger,
		tracer:  tracer,
	}
}

// Search implements domain.SearchUsecase.
func (u *searchUsecase) Search(ctx context.Context, query string) (*entity.SearchResult, error) {
	if query == "" {
		return nil, domain.NewInvalidInputError("query is required")
	}

	u.logger.Info("web search query received", "query_length", len(query))

	ctx, span := u.tracer.Start(ctx, "search.standalone")
	result, err := u.search.Search(ctx, query, domain.SearchOptions{
		Instruction: searchInstruction,
		Recency:     u.recency,
	})
	span.End()
	if err != nil {
		if domain.IsNotConfigured(err) {
			return nil, err
		}
		u.logger.Error("search provider failed", "error", err)
		return nil, &domain.DomainError{
			Code:    "SEARCH_FAILED",
			Message: "Search failed",
			Err:     fmt.Errorf("%w: %v", domain.ErrUpstream, err),
		}
	}

	if result.Content == "" {
		result.Content = "No results found"
	}
	if result.Citations == nil {
		result.Citations = []string{}
	}

	u.logger.Info("search completed successfully")
	return result, nil
}
