// Package main is the entry point for the quoting service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insquote/internal/adapters/clients"
	"insquote/internal/adapters/clients/acl"
	"insquote/internal/adapters/http"
	"insquote/internal/adapters/http/handlers"
	"insquote/internal/adapters/store"
	"insquote/internal/app"
	"insquote/internal/platform/config"
	"insquote/internal/platform/logging"
	"insquote/internal/platform/telemetry"
	"insquote/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// Fail fast on bad configuration.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

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
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Genderize.BaseURL,
		ServiceName: cfg.Services.Genderize.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	genderClient := acl.NewGenderClient(acl.GenderClientConfig{
		Client: httpClient,
		APIKey: cfg.Services.Genderize.APIKey,
		Logger: logger,
	})

	if err := healthRegistry.Register(genderClient); err != nil {
		return fmt.Errorf("registering gender client health check: %w", err)
	}

	quoteStore, dbClose, err := newQuoteStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating quote store: %w", err)
	}
	defer dbClose()

	if err := healthRegistry.Register(quoteStore); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	genderService := app.NewGenderService(app.GenderServiceConfig{
		NameClient: genderClient,
		Timeout:    cfg.Services.Genderize.InferenceTimeout,
		Logger:     logger,
	})

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Store:  quoteStore,
		Gender: genderService,
		Logger: logger,
	})

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	genderHandler := handlers.NewGenderHandler(quoteService)

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		GenderHandler: genderHandler,
		Timeout:       cfg.Server.RequestTimeout,
	})

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// quoteStoreChecker is a quote store that also reports its own health.
type quoteStoreChecker interface {
	ports.QuoteStore
	ports.HealthChecker
}

// newQuoteStore builds the configured quote store. The returned close
// function releases the database pool; for the memory store it is a no-op.
func newQuoteStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (quoteStoreChecker, func(), error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := store.OpenPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}

		pg := store.NewPostgresStore(db, logger)
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = db.Close()

			return nil, nil, err
		}

		return pg, func() { _ = db.Close() }, nil

	default:
		logger.Warn("using in-memory quote store, quotes will not survive a restart")

		return store.NewMemoryStore(), func() {}, nil
	}
}

// waitForShutdown blocks until a shutdown signal is received or a server
// error occurs, then drains in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
