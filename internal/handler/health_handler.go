package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"github.com/adityachauhan/aira-apiserver/internal/config"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Ping is a basic reachability check.
// @Summary Ping
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{
		"status":  "ok",
		"message": "pong",
	})
}

// Readiness reports whether the relay can serve chat requests. The
// gateway credential is the only hard dependency; search is optional.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (h *HealthHandler) Readiness(ctx context.Context, c *app.RequestContext) {
	if h.cfg.Gateway.APIKey == "" {
		c.JSON(503, utils.H{
			"status":  "not_ready",
			"gateway": "unconfigured",
		})
		return
	}

	c.JSON(200, utils.H{
		"status":  "ready",
		"gateway": "configured",
		"search":  h.cfg.Search.Enabled(),
	})
}

// Liveness reports that the process is running.
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health/live [get]
func (h *HealthHandler) Liveness(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{
		"status": "alive",
	})
}
