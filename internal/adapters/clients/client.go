package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"insquote/internal/adapters/http/middleware"
	"insquote/internal/platform/config"
	"insquote/internal/platform/logging"
)

const (
	// instrumentationName identifies the tracer and meter for this package.
	instrumentationName = "insquote/internal/adapters/clients"

	// backoffJitterFactor spreads backoff by plus or minus 25%.
	backoffJitterFactor = 0.25

	// defaultTimeout bounds a single attempt when none is configured.
	defaultTimeout = 30 * time.Second

	transportMaxIdleConns        = 100
	transportMaxIdleConnsPerHost = 10
	transportIdleConnTimeout     = 90 * time.Second
)

// Config configures an HTTP client instance.
type Config struct {
	// BaseURL is the base URL for all requests (e.g. "https://api.genderize.io").
	BaseURL string

	// ServiceName identifies the downstream service in logs and traces.
	ServiceName string

	// Timeout is the per-attempt request timeout. Total wall-clock time can
	// exceed this because of retries and backoff.
	Timeout time.Duration

	// Retry configures retry behavior.
	Retry config.RetryConfig

	// Circuit configures circuit breaker behavior.
	Circuit config.CircuitBreakerConfig

	// Transport configures the connection pool.
	Transport config.TransportConfig

	// Logger is optional; slog.Default() is used when nil.
	Logger *slog.Logger
}

// Client is an instrumented HTTP client for downstream services. It retries
// transient failures with exponential backoff and jitter, trips a circuit
// breaker on repeated failures, and emits OpenTelemetry traces and metrics.
// Request and correlation IDs from the inbound request are propagated on
// outbound headers.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	cfg         *Config
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer trace.Tracer

	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates an instrumented HTTP client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Transport.MaxIdleConns <= 0 {
		cfg.Transport.MaxIdleConns = transportMaxIdleConns
	}

	if cfg.Transport.MaxIdleConnsPerHost <= 0 {
		cfg.Transport.MaxIdleConnsPerHost = transportMaxIdleConnsPerHost
	}

	if cfg.Transport.IdleConnTimeout <= 0 {
		cfg.Transport.IdleConnTimeout = transportIdleConnTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        cfg.Transport.MaxIdleConns,
				MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
				IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
			},
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		cfg:             cfg,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// Get performs an HTTP GET request against the configured base URL.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// Do executes an HTTP request with retry, circuit breaker, tracing, and
// logging.
//
// Retries re-send the same request, so only bodyless requests (GET, DELETE)
// or requests with GetBody set are safe with MaxAttempts above 1.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(start), "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	c.injectHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.attempt(ctx, req, logger, start)
	duration := time.Since(start)

	if err != nil {
		c.cb.RecordFailure()
		span.SetStatus(codes.Error, err.Error())
		c.recordMetrics(ctx, req.Method, 0, duration, "error")
		logger.Error("request failed",
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)

		return nil, fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, err)
	}

	c.cb.RecordSuccess()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, fmt.Sprintf("%dxx", resp.StatusCode/100))

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// attempt runs the request up to MaxAttempts times, backing off between
// attempts. Server errors (5xx) and transient network errors are retried;
// everything else returns immediately.
func (c *Client) attempt(ctx context.Context, req *http.Request, logger *slog.Logger, start time.Time) (*http.Response, error) {
	var lastErr error

	for i := 0; i < c.cfg.Retry.MaxAttempts; i++ {
		if i > 0 {
			backoff := c.backoff(i)
			logger.Debug("retrying request",
				slog.Int("attempt", i+1),
				slog.Duration("backoff", backoff),
			)

			select {
			case <-ctx.Done():
				c.recordMetrics(ctx, req.Method, 0, time.Since(start), "context_canceled")

				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))
		if err != nil {
			if !isRetryable(err) {
				return nil, err
			}
			lastErr = err

			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			if closeErr := resp.Body.Close(); closeErr != nil {
				logger.Debug("failed to close response body", slog.Any("error", closeErr))
			}

			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// CircuitState returns the current circuit breaker state.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// injectHeaders propagates request and correlation IDs to the downstream.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// backoff returns the exponential backoff for the given attempt with
// symmetric jitter, capped at the configured maximum interval.
func (c *Client) backoff(attempt int) time.Duration {
	d := float64(c.cfg.Retry.InitialInterval) * math.Pow(c.cfg.Retry.Multiplier, float64(attempt))
	if d > float64(c.cfg.Retry.MaxInterval) {
		d = float64(c.cfg.Retry.MaxInterval)
	}

	jitter := d * backoffJitterFactor * (rand.Float64()*2 - 1) //nolint:gosec // No need for crypto-grade randomness
	d += jitter

	return time.Duration(d)
}

func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// isRetryable reports whether the transport error is worth retrying.
// Context cancellation and deadline expiry are terminal.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
