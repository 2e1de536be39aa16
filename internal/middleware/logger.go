package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"

	"github.com/legalease/lexctl/pkg/logger"
)

// RequestIDKey is the header carrying the request id
const RequestIDKey = "X-Request-ID"

// Logger assigns a request id, stores a request-scoped logger in the context
// and logs each completed request
func Logger(base *slog.Logger) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		path := string(c.Path())

		requestID := string(c.Request.Header.Peek(RequestIDKey))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Response.Header.Set(RequestIDKey, requestID)

		reqLogger := logger.WithRequestID(base, requestID).With(
			"method", string(c.Method()),
			"path", path,
		)
		ctx = logger.WithContext(ctx, reqLogger)

		c.Next(ctx)

		// Health probes are not logged
		if path == "/healthz" {
			return
		}

		latency := time.Since(start)
		statusCode := c.Response.StatusCode()
		reqLogger = reqLogger.With(
			"status", statusCode,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)

		switch {
		case statusCode >= 500:
			reqLogger.Error("request completed with server error")
		case statusCode >= 400:
			reqLogger.Warn("request completed with client error")
		default:
			reqLogger.Info("request completed")
		}
	}
}

// GetRequestID returns the request id assigned by Logger
func GetRequestID(c *app.RequestContext) string {
	return string(c.Response.Header.Peek(RequestIDKey))
}
