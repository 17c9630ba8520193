package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/stackit/internal/platform/config"
	"github.com/jsamuelsen/stackit/internal/ports"
)

// Open connects the backend selected by cfg.Driver. Every backend except
// memory is wrapped in a Guard and registered with the health registry.
func Open(ctx context.Context, cfg config.StorageConfig, registry ports.HealthRegistry, logger *slog.Logger) (ports.KeyValueStore, error) {
	var (
		kv  ports.KeyValueStore
		err error
	)

	switch cfg.Driver {
	case config.DriverMemory, "":
		logger.Info("using in-memory storage, board state is lost on restart")
		return NewMemoryStore(), nil

	case config.DriverFile:
		kv, err = NewFileStore(cfg.File.Dir)

	case config.DriverRedis:
		kv, err = NewRedisStore(ctx, cfg.Redis.URL)

	case config.DriverPostgres:
		kv, err = NewPostgresStore(ctx, cfg.Postgres.URL, cfg.Postgres.MaxConns)

	case config.DriverMySQL:
		kv, err = NewMySQLStore(ctx, cfg.MySQL.DSN, logger)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Driver, err)
	}

	guard := NewGuard(kv, GuardConfig{
		Backend: cfg.Driver,
		Timeout: cfg.Timeout,
		Breaker: BreakerConfig{
			MaxFailures:   cfg.CircuitBreaker.MaxFailures,
			Timeout:       cfg.CircuitBreaker.Timeout,
			HalfOpenLimit: cfg.CircuitBreaker.HalfOpenLimit,
		},
	}, logger)

	if registry != nil {
		if err := registry.Register(guard); err != nil {
			_ = guard.Close()
			return nil, fmt.Errorf("registering %s health check: %w", cfg.Driver, err)
		}
	}

	logger.Info("storage connected", slog.String("driver", cfg.Driver))

	return guard, nil
}
