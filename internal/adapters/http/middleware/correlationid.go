package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"insquote/internal/platform/logging"
)

const (
	// HeaderCorrelationID is the header name for correlation ID. Unlike the
	// per-request ID, the correlation ID follows a business transaction
	// across service boundaries.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that propagates or originates a
// correlation ID, echoes it on the response, and attaches it to the context
// logger and request context.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		contextEnricher: func(ctx context.Context, id string) context.Context {
			return ContextWithCorrelationID(logging.WithCorrelationID(ctx, id), id)
		},
	})
}

// GetCorrelationID extracts the correlation ID from the gin.Context.
// Returns empty string if not set.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
