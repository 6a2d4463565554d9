package clients

import (
	"sync"
	"time"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed allows all requests through.
	StateClosed State = iota

	// StateOpen blocks requests while the downstream is considered unhealthy.
	StateOpen

	// StateHalfOpen allows a limited number of probe requests.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures circuit breaker thresholds.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the
	// circuit opens.
	MaxFailures int

	// Timeout is how long the circuit stays open before allowing probes.
	Timeout time.Duration

	// HalfOpenLimit is the number of consecutive probe successes required
	// to close the circuit again. It also caps in-flight probes.
	HalfOpenLimit int
}

// CircuitBreaker blocks requests to a downstream service after repeated
// failures and probes for recovery after a timeout.
//
// Transitions:
//   - Closed to Open after MaxFailures consecutive failures
//   - Open to HalfOpen once Timeout has elapsed since the last failure
//   - HalfOpen to Closed after HalfOpenLimit consecutive successes
//   - HalfOpen to Open on any failure
type CircuitBreaker struct {
	mu          sync.RWMutex
	state       State
	failures    int
	successes   int
	inFlight    int // probe requests currently allowed in half-open
	lastFailure time.Time
	cfg         CircuitBreakerConfig

	onStateChange func(from, to State)

	// now is overridable in tests.
	now func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// OnStateChange registers a callback invoked on every state transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Allow reports whether a request may proceed. In the open state it may
// transition to half-open once the timeout has elapsed; in half-open it
// admits at most HalfOpenLimit concurrent probes.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			cb.transitionTo(StateHalfOpen)
			cb.inFlight = 1

			return true
		}

		return false

	case StateHalfOpen:
		if cb.inFlight >= cb.cfg.HalfOpenLimit {
			return false
		}
		cb.inFlight++

		return true

	default:
		return false
	}
}

// RecordSuccess records a successful request. In half-open state enough
// successes close the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.inFlight--
		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.transitionTo(StateClosed)
		}
	}
}

// RecordFailure records a failed request. In half-open state any failure
// immediately reopens the circuit.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			cb.transitionTo(StateOpen)
		}

	case StateHalfOpen:
		cb.inFlight--
		cb.transitionTo(StateOpen)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.state
}

// transitionTo changes state and resets counters. Must be called with the
// lock held.
func (cb *CircuitBreaker) transitionTo(newState State) {
	if cb.state == newState {
		return
	}

	oldState := cb.state
	cb.state = newState
	cb.failures = 0
	cb.successes = 0

	if cb.onStateChange != nil {
		// Run outside the lock path so a slow callback cannot block requests.
		go cb.onStateChange(oldState, newState)
	}
}
