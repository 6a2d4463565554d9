package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insquote/internal/adapters/http/middleware"
	"insquote/internal/platform/config"
)

func newTestClient(t *testing.T, baseURL string, maxAttempts, maxFailures int) *Client {
	t.Helper()

	client, err := New(&Config{
		BaseURL:     baseURL,
		ServiceName: "downstream",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     maxAttempts,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   maxFailures,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
	})
	require.NoError(t, err)

	return client
}

func TestClient_New_RequiresServiceName(t *testing.T) {
	_, err := New(&Config{BaseURL: "http://localhost"})

	assert.Error(t, err)
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1, 5)

	resp, err := client.Get(context.Background(), "/lookup")

	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)

			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3, 5)

	resp, err := client.Get(context.Background(), "/")

	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3, 5)

	resp, err := client.Get(context.Background(), "/")

	require.NoError(t, err, "4xx responses are returned, not retried")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 2, 5)

	_, err := client.Get(context.Background(), "/")

	assert.True(t, errors.Is(err, ErrMaxRetriesExceeded))
}

func TestClient_CircuitOpensAndBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1, 2)

	for range 2 {
		_, err := client.Get(context.Background(), "/")
		require.Error(t, err)
	}
	require.Equal(t, StateOpen, client.CircuitState())

	_, err := client.Get(context.Background(), "/")

	assert.True(t, errors.Is(err, ErrCircuitOpen))
}

func TestClient_PropagatesRequestIDs(t *testing.T) {
	var requestID, correlationID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get(middleware.HeaderRequestID)
		correlationID = r.Header.Get(middleware.HeaderCorrelationID)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1, 5)

	ctx := middleware.ContextWithRequestID(context.Background(), "req-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-456")

	resp, err := client.Get(ctx, "/")

	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "req-123", requestID)
	assert.Equal(t, "corr-456", correlationID)
}

func TestClient_Backoff_CappedAtMaxInterval(t *testing.T) {
	client := newTestClient(t, "http://localhost", 5, 5)

	for attempt := 1; attempt <= 10; attempt++ {
		d := client.backoff(attempt)

		// Max interval plus 25% jitter.
		assert.LessOrEqual(t, d, time.Duration(float64(5*time.Millisecond)*1.25)+time.Millisecond)
		assert.GreaterOrEqual(t, d, time.Duration(0))
	}
}
