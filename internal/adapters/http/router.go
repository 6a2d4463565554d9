package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"insquote/internal/adapters/http/handlers"
	"insquote/internal/adapters/http/middleware"
	"insquote/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the service for telemetry instrumentation.
	ServiceName string

	// HealthHandler handles the internal /-/ endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler handles the quote endpoints.
	QuoteHandler *handlers.QuoteHandler

	// GenderHandler handles the gender inference endpoint.
	GenderHandler *handlers.GenderHandler

	// Timeout is the per-request deadline for API routes.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware order (first to last):
//  1. Recovery, so panics anywhere below are caught
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and metrics
//  5. Request logging (skips /-/ endpoints)
//  6. Timeout, applied to the API group only
//
// Route groups:
//   - /-/ internal: health probes, build info, metrics
//   - /api/v1/ public API: quotes and gender inference
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(cfg.ServiceName),
		middleware.Logging(cfg.Logger),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	apiV1.Use(middleware.SimpleTimeout(timeout))

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(apiV1)
	}

	if cfg.GenderHandler != nil {
		cfg.GenderHandler.RegisterGenderRoutes(apiV1)
	}
}
