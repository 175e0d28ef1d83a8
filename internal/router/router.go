package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/adityachauhan/aira-apiserver/internal/handler"
	"github.com/adityachauhan/aira-apiserver/internal/middleware"
)

// Setup registers middleware and routes.
func Setup(
	h *server.Hertz,
	chatHandler *handler.ChatHandler,
	searchHandler *handler.SearchHandler,
	healthHandler *handler.HealthHandler,
) {
	// Global middleware
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS())

	// Health check routes
	h.GET("/ping", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	// API v1 routes
	v1 := h.Group("/v1")
	{
		v1.POST("/chat", chatHandler.Relay)
		v1.POST("/web-search", searchHandler.Search)

		// Preflight requests are terminated by the CORS middleware; the
		// routes exist so OPTIONS reaches the middleware chain at all.
		v1.OPTIONS("/chat", preflight)
		v1.OPTIONS("/web-search", preflight)
	}
}

func preflight(ctx context.Context, c *app.RequestContext) {}
