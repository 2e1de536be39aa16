package router

import (
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/legalease/lexctl/internal/handler"
	"github.com/legalease/lexctl/internal/middleware"
)

// Setup registers the middleware chain and every route of the REST contract
func Setup(
	h *server.Hertz,
	logger *slog.Logger,
	documentHandler *handler.DocumentHandler,
	chatHandler *handler.ChatHandler,
	healthHandler *handler.HealthHandler,
) {
	// Global middleware. Logger runs first so recovery can use the request logger.
	h.Use(middleware.Logger(logger))
	h.Use(middleware.Recovery())
	h.Use(middleware.CORS())

	// Health checks
	h.GET("/healthz", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	// Documents
	h.GET("/documents/:user_id", documentHandler.ListDocuments)
	h.POST("/summarize", documentHandler.Summarize)

	// Chat
	chat := h.Group("/chat")
	{
		chat.GET("/history/:session_id", chatHandler.History)
		chat.POST("", chatHandler.Chat)
	}
}
