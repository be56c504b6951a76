package middleware

import (
	"SMMBoard/internal/pkg/logger"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const TraceHeader = "X-Trace-ID"

// TraceMiddleware reuses the caller's trace id or starts a new one
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if traceID := strings.TrimSpace(c.GetHeader(TraceHeader)); traceID != "" && len(traceID) <= 64 {
			ctx = context.WithValue(ctx, logger.TraceIDKey, traceID)
		} else {
			ctx = logger.NewTraceContext(ctx, "req-")
		}
		traceID := logger.TraceID(ctx)

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
