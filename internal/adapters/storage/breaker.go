package storage

import (
	"sync"
	"time"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed is the normal operating state. Calls reach the backend.
	StateClosed State = iota

	// StateOpen short-circuits every call until the cool-down elapses.
	StateOpen

	// StateHalfOpen lets a limited number of probe calls through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
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

// BreakerConfig configures the circuit breaker behavior.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures int

	// Timeout is the cool-down spent open before probing again.
	Timeout time.Duration

	// HalfOpenLimit is the number of consecutive probe successes required
	// to close the circuit, and the number of probes allowed in flight.
	HalfOpenLimit int
}

// Breaker stops calling a storage backend that keeps failing.
//
// State transitions:
//   - Closed → Open: after MaxFailures consecutive failures
//   - Open → HalfOpen: once Timeout has passed since the last failure
//   - HalfOpen → Closed: after HalfOpenLimit consecutive successes
//   - HalfOpen → Open: on any failure
type Breaker struct {
	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	inFlight    int
	lastFailure time.Time
	cfg         BreakerConfig

	onStateChange func(from, to State)

	// now is overridable for testing.
	now func() time.Time
}

// NewBreaker creates a closed circuit breaker.
func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// OnStateChange sets a callback invoked after every transition. It runs
// without the breaker lock held.
func (b *Breaker) OnStateChange(fn func(from, to State)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.onStateChange = fn
}

// Allow reports whether a call may proceed. Every allowed call must be
// followed by exactly one RecordSuccess or RecordFailure.
func (b *Breaker) Allow() bool {
	b.mu.Lock()

	var allowed bool

	from := b.state

	switch b.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if b.now().Sub(b.lastFailure) >= b.cfg.Timeout {
			b.transitionTo(StateHalfOpen)
			b.inFlight = 1
			allowed = true
		}

	case StateHalfOpen:
		if b.inFlight < b.cfg.HalfOpenLimit {
			b.inFlight++
			allowed = true
		}
	}

	to, notify := b.state, b.onStateChange
	b.mu.Unlock()

	b.notify(notify, from, to)

	return allowed
}

// RecordSuccess records a successful call.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()

	from := b.state

	switch b.state {
	case StateClosed:
		b.failures = 0

	case StateHalfOpen:
		b.inFlight--
		b.successes++

		if b.successes >= b.cfg.HalfOpenLimit {
			b.transitionTo(StateClosed)
		}
	}

	to, notify := b.state, b.onStateChange
	b.mu.Unlock()

	b.notify(notify, from, to)
}

// RecordFailure records a failed call.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()

	from := b.state
	b.lastFailure = b.now()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.MaxFailures {
			b.transitionTo(StateOpen)
		}

	case StateHalfOpen:
		b.inFlight--
		b.transitionTo(StateOpen)
	}

	to, notify := b.state, b.onStateChange
	b.mu.Unlock()

	b.notify(notify, from, to)
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// transitionTo changes state and resets the counters. Caller holds the lock.
func (b *Breaker) transitionTo(s State) {
	if b.state == s {
		return
	}

	b.state = s
	b.failures = 0
	b.successes = 0

	if s != StateHalfOpen {
		b.inFlight = 0
	}
}

func (b *Breaker) notify(fn func(from, to State), from, to State) {
	if fn != nil && from != to {
		fn(from, to)
	}
}
