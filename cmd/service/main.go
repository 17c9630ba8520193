// Package main is the entry point of the stackit board service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/stackit/internal/adapters/http"
	"github.com/jsamuelsen/stackit/internal/adapters/http/handlers"
	"github.com/jsamuelsen/stackit/internal/adapters/storage"
	"github.com/jsamuelsen/stackit/internal/app"
	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/platform/config"
	"github.com/jsamuelsen/stackit/internal/platform/idgen"
	"github.com/jsamuelsen/stackit/internal/platform/logging"
	"github.com/jsamuelsen/stackit/internal/platform/telemetry"
	"github.com/jsamuelsen/stackit/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Configuration (fail fast)
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 2. Logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Driver),
	)
	logger.Debug("storage configuration", slog.Any("config", cfg.Storage))

	// 3. Telemetry (noop when disabled)
	telProvider, err := telemetry.New(ctx, cfg.Telemetry, cfg.App)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 4. Storage
	healthRegistry := ports.NewHealthRegistry()

	kv, err := storage.Open(ctx, cfg.Storage, healthRegistry, logger)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	defer func() {
		if closeErr := kv.Close(); closeErr != nil {
			logger.Error("storage close error", slog.Any("error", closeErr))
		}
	}()

	repo := storage.NewRepository(kv, storage.RepositoryConfig{
		KeyPrefix: cfg.Storage.KeyPrefix,
		Seed:      cfg.Storage.Seed,
	})

	// 5. Board
	boardCfg := app.BoardConfig{
		Store:    repo,
		IDs:      idgen.New(),
		PageSize: cfg.Board.PageSize,
		Logger:   logger,
	}
	if cfg.Storage.Seed {
		boardCfg.Fallback = func() []domain.Question { return storage.SeedQuestions(time.Now()) }
	}

	board := app.NewBoard(boardCfg)

	state, err := board.LoadInitialState(ctx)
	if err != nil {
		return fmt.Errorf("loading board: %w", err)
	}

	logger.Info("board loaded",
		slog.Int("questions", len(state.Questions)),
		slog.Bool("signed_in", state.User != nil),
	)

	// 6. HTTP
	server := http.New(cfg.Server, cfg.App.Environment, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:    logger,
		AppConfig: cfg.App,
		CORS:      cfg.CORS,
		HealthHandler: handlers.NewHealthHandler(healthRegistry,
			handlers.NewBuildInfo(Version, Commit, BuildTime, cfg.Storage.Driver)),
		QuestionHandler: handlers.NewQuestionHandler(board),
		SessionHandler:  handlers.NewSessionHandler(board),
		Timeout:         cfg.Server.RequestTimeout,
	})

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until ctx is canceled by a signal or the server
// fails, then drains in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	select {
	case err := <-serverErr:
		if err == nil {
			err = errors.New("server stopped unexpectedly")
		}

		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
