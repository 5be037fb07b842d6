package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/gear-rental-go/httpapi"
	"github.com/AntonStoeckl/gear-rental-go/rental/oteladapters"
	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell/config"
)

const (
	serviceName     = "gear-rental-sim"
	serviceVersion  = "dev"
	shutdownTimeout = 10 * time.Second
)

var errLedgerInconsistent = errors.New("ledger inconsistent")

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "simulation failed", "error", err.Error())
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *oteladapters.SlogBridgeLogger) error {
	instrumentation := httpapi.Instrumentation{ContextualLogger: logger}
	options := []postgresengine.Option{postgresengine.WithContextualLogger(logger)}

	providers, err := config.NewObservabilityProviders(ctx, serviceName, serviceVersion)
	switch {
	case errors.Is(err, config.ErrNoOTLPEndpointConfigured):
	case err != nil:
		return err
	default:
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = providers.Shutdown(shutdownCtx)
		}()

		instrumentation.Metrics = oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(serviceName))
		instrumentation.Tracing = oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(serviceName))
		options = append(options,
			postgresengine.WithMetrics(instrumentation.Metrics),
			postgresengine.WithTracing(instrumentation.Tracing),
		)
	}

	engineConfig := config.EngineConfig{Kind: cfg.Engine, Adapter: cfg.Adapter, CreateSchema: cfg.CreateSchema}
	engine, closeEngine, err := config.OpenEngine(ctx, engineConfig, options...)
	if err != nil {
		return err
	}
	defer closeEngine()

	handlers, err := httpapi.NewHandlers(engine, instrumentation)
	if err != nil {
		return err
	}

	simulation := NewSimulation(handlers, cfg, logger)
	if err = simulation.Setup(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "simulation started",
		"engine", cfg.Engine, "rate", cfg.Rate, "workers", cfg.Workers, "duration", cfg.Duration.String())

	simulation.Run(ctx)
	simulation.Report(ctx)

	// The run may have been interrupted, the check still gets a live context.
	checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	inconsistencies, err := VerifyLedger(checkCtx, engine)
	if err != nil {
		return err
	}

	for _, inc := range inconsistencies {
		logger.ErrorContext(checkCtx, "inconsistent item",
			"item_id", inc.ItemID.String(),
			"title", inc.Title,
			"quantity", inc.Quantity,
			"open_borrows", inc.OpenBorrows,
			"cached_status", string(inc.CachedStatus),
			"derived_status", string(inc.DerivedStatus),
		)
	}

	if len(inconsistencies) > 0 {
		return errLedgerInconsistent
	}

	logger.InfoContext(checkCtx, "ledger consistent", "items", cfg.Items)

	return nil
}
