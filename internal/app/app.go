// Package app wires the acquisition pipeline together: configuration,
// logging, metrics, the shared HTTP client, the source connectors, the
// scheduler, and the ledger store. Both CLI binaries and integration tests
// boot through this container instead of assembling the pieces by hand.
package app

import (
	"fmt"
	"log/slog"

	"fiipulse/internal/cache"
	"fiipulse/internal/config"
	"fiipulse/internal/httpclient"
	"fiipulse/internal/infrastructure"
	"fiipulse/internal/ledger"
	"fiipulse/internal/scheduler"
	"fiipulse/internal/sources"
)

// Application holds every long-lived component of the pipeline.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics
	Client        *httpclient.Client
	Connectors    []sources.Connector
	Scheduler     *scheduler.Scheduler
	Ledger        *ledger.Store
}

// New builds a fully wired application from the config at path. An empty
// path loads defaults plus environment overrides. Metrics initialization
// failures are degraded to warnings; everything else is fatal.
func New(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig wires the pipeline over an already-validated config.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	providers, err := infrastructure.InitializeOTel(logger)
	if err != nil {
		logger.Warn("Failed to initialize metrics, continuing without", "error", err)
	} else {
		app.OTelProviders = providers
		app.Metrics, err = infrastructure.NewMetrics(providers.Meter)
		if err != nil {
			logger.Warn("Failed to create metrics instruments", "error", err)
		}
	}

	app.Client = httpclient.New(cfg.HTTP, logger, app.Metrics)
	app.Connectors = sources.Build(cfg.Sources, app.Client, logger, app.Metrics)
	if len(app.Connectors) == 0 {
		return nil, fmt.Errorf("no sources enabled")
	}

	app.Scheduler = scheduler.New(app.Connectors, cfg.Scan, logger, app.Metrics)
	if cfg.Scan.CacheSize > 0 {
		app.Scheduler.UseCache(cache.New(cfg.Scan.CacheTTL, cfg.Scan.CacheSize))
	}

	app.Ledger = ledger.NewStore(cfg.Ledger.Path, logger)

	logger.Info("application wired",
		slog.Int("sources", len(app.Connectors)),
		slog.Int("workers", cfg.Scan.Workers),
		slog.String("ledger", cfg.Ledger.Path))
	return app, nil
}

// Close releases resources held by the application.
func (a *Application) Close() error {
	return infrastructure.CloseLogFile()
}
