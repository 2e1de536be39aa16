package handler

import (
	"context"
	"database/sql"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// HealthHandler answers liveness and readiness probes
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates the health handler
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Ping is the basic health check
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"status":  "ok",
		"message": "pong",
	})
}

// Readiness reports whether the store answers
func (h *HealthHandler) Readiness(ctx context.Context, c *app.RequestContext) {
	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(consts.StatusServiceUnavailable, utils.H{
			"status":   "not_ready",
			"database": "unhealthy",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"status":   "ready",
		"database": "healthy",
	})
}

// Liveness reports that the process is serving
func (h *HealthHandler) Liveness(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"status": "alive",
	})
}
