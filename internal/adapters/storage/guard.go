package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/ports"
)

// Result labels for operationsTotal.
const (
	resultOK       = "ok"
	resultMiss     = "miss"
	resultError    = "error"
	resultRejected = "rejected"
)

// Guard wraps a remote key-value backend with a per-call timeout, a circuit
// breaker and metrics. While the circuit is open calls fail immediately with
// domain.ErrUnavailable instead of waiting on a dead backend.
type Guard struct {
	next    ports.KeyValueStore
	backend string
	timeout time.Duration
	breaker *Breaker
	logger  *slog.Logger
}

var (
	_ ports.KeyValueStore = (*Guard)(nil)
	_ ports.HealthChecker = (*Guard)(nil)
)

// GuardConfig configures a Guard.
type GuardConfig struct {
	// Backend names the wrapped store in logs, metrics and errors.
	Backend string

	// Timeout bounds each call. Zero leaves the caller's deadline alone.
	Timeout time.Duration

	Breaker BreakerConfig
}

// NewGuard wraps next.
func NewGuard(next ports.KeyValueStore, cfg GuardConfig, logger *slog.Logger) *Guard {
	g := &Guard{
		next:    next,
		backend: cfg.Backend,
		timeout: cfg.Timeout,
		breaker: NewBreaker(cfg.Breaker),
		logger:  logger.With(slog.String("backend", cfg.Backend)),
	}

	circuitState.WithLabelValues(cfg.Backend).Set(float64(StateClosed))

	g.breaker.OnStateChange(func(from, to State) {
		circuitState.WithLabelValues(cfg.Backend).Set(float64(to))
		g.logger.Warn("storage circuit state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	return g
}

// Get returns the value for key.
func (g *Guard) Get(ctx context.Context, key string) (string, error) {
	var v string

	err := g.call(ctx, "get", func(ctx context.Context) error {
		var err error
		v, err = g.next.Get(ctx, key)

		return err
	})

	return v, err
}

// Set stores value under key.
func (g *Guard) Set(ctx context.Context, key, value string) error {
	return g.call(ctx, "set", func(ctx context.Context) error {
		return g.next.Set(ctx, key, value)
	})
}

// Delete removes key.
func (g *Guard) Delete(ctx context.Context, key string) error {
	return g.call(ctx, "delete", func(ctx context.Context) error {
		return g.next.Delete(ctx, key)
	})
}

// Close closes the wrapped store.
func (g *Guard) Close() error {
	return g.next.Close()
}

// Name implements ports.HealthChecker.
func (g *Guard) Name() string {
	if hc, ok := g.next.(ports.HealthChecker); ok {
		return hc.Name()
	}

	return "storage-" + g.backend
}

// Check reports an open circuit as unhealthy, otherwise defers to the
// wrapped store's own check when it has one.
func (g *Guard) Check(ctx context.Context) error {
	if g.breaker.State() == StateOpen {
		return domain.NewUnavailableError(g.backend, "circuit breaker open")
	}

	if hc, ok := g.next.(ports.HealthChecker); ok {
		return hc.Check(ctx)
	}

	return nil
}

// CircuitState returns the breaker state.
func (g *Guard) CircuitState() State {
	return g.breaker.State()
}

func (g *Guard) call(ctx context.Context, op string, fn func(context.Context) error) error {
	if !g.breaker.Allow() {
		operationsTotal.WithLabelValues(g.backend, op, resultRejected).Inc()
		return domain.NewUnavailableError(g.backend, "circuit breaker open")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	operationDuration.WithLabelValues(g.backend, op).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		g.breaker.RecordSuccess()
		operationsTotal.WithLabelValues(g.backend, op, resultOK).Inc()

		return nil

	case domain.IsNotFound(err):
		g.breaker.RecordSuccess()
		operationsTotal.WithLabelValues(g.backend, op, resultMiss).Inc()

		return err

	default:
		g.breaker.RecordFailure()
		operationsTotal.WithLabelValues(g.backend, op, resultError).Inc()

		return fmt.Errorf("%s %s: %w", g.backend, op, err)
	}
}
