// Package clients provides the instrumented HTTP client used to call
// downstream services. Failures here are infrastructure errors; callers
// translate them to domain errors.
package clients

import "errors"

var (
	// ErrCircuitOpen is returned when the circuit breaker is blocking
	// requests because the downstream service is unhealthy.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded is returned after all retry attempts are
	// exhausted. The last attempt's error is wrapped for context.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
