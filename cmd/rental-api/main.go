// Command rental-api serves the gear rental HTTP API.
//
// Usage:
//
//	rental-api -addr :8080 -engine postgres -adapter pgxpool -create-schema
//
// The database is configured via RENTAL_DATABASE_URL (and optionally RENTAL_REPLICA_DATABASE_URL).
// Traces and metrics are exported when RENTAL_OTLP_ENDPOINT is set.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/gear-rental-go/httpapi"
	"github.com/AntonStoeckl/gear-rental-go/rental/oteladapters"
	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell/config"
)

const (
	serviceName    = "gear-rental"
	serviceVersion = "dev"

	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
)

type Config struct {
	Addr           string
	Engine         string
	Adapter        string
	TablePrefix    string
	CreateSchema   bool
	RequestTimeout time.Duration
	RateLimit      float64
	RateBurst      int
	Debug          bool
}

func main() {
	cfg := parseFlags()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "rental api stopped", "error", err.Error())
		stop()
		os.Exit(1)
	}
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.Addr, "addr", ":8080", "HTTP listen address")
	flag.StringVar(&cfg.Engine, "engine", config.EnginePostgres, "storage engine: postgres or memory")
	flag.StringVar(&cfg.Adapter, "adapter", config.AdapterPGXPool, "postgres adapter: pgxpool, sqldb or sqlx")
	flag.StringVar(&cfg.TablePrefix, "table-prefix", "", "prefix for all postgres table names")
	flag.BoolVar(&cfg.CreateSchema, "create-schema", false, "create the postgres schema on startup")
	flag.DurationVar(&cfg.RequestTimeout, "request-timeout", 10*time.Second, "upper bound for a single request")
	flag.Float64Var(&cfg.RateLimit, "rate-limit", 20, "requests per second allowed per actor")
	flag.IntVar(&cfg.RateBurst, "rate-burst", 40, "burst size of the per-actor rate limit")
	flag.BoolVar(&cfg.Debug, "debug", false, "enable debug logging, including SQL statements")
	flag.Parse()

	return cfg
}

func run(ctx context.Context, cfg Config, logger *oteladapters.SlogBridgeLogger) error {
	instrumentation := httpapi.Instrumentation{ContextualLogger: logger}

	providers, err := config.NewObservabilityProviders(ctx, serviceName, serviceVersion)
	switch {
	case errors.Is(err, config.ErrNoOTLPEndpointConfigured):
		logger.InfoContext(ctx, "telemetry export disabled", "env", config.OTLPEndpointEnv)
	case err != nil:
		return err
	default:
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if shutdownErr := providers.Shutdown(shutdownCtx); shutdownErr != nil {
				logger.WarnContext(ctx, "telemetry shutdown failed", "error", shutdownErr.Error())
			}
		}()

		instrumentation.Metrics = oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(serviceName))
		instrumentation.Tracing = oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(serviceName))
	}

	options := []postgresengine.Option{postgresengine.WithContextualLogger(logger)}
	if cfg.TablePrefix != "" {
		options = append(options, postgresengine.WithTableNamePrefix(cfg.TablePrefix))
	}
	if instrumentation.Metrics != nil {
		options = append(options, postgresengine.WithMetrics(instrumentation.Metrics))
	}
	if instrumentation.Tracing != nil {
		options = append(options, postgresengine.WithTracing(instrumentation.Tracing))
	}

	// SQL statements are logged at debug level, so -debug turns them on.
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

	server := httpapi.NewServer(handlers,
		httpapi.WithRequestTimeout(cfg.RequestTimeout),
		httpapi.WithRateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		httpapi.WithContextualLogger(logger),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "rental api listening", "addr", cfg.Addr, "engine", cfg.Engine)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.InfoContext(ctx, "shutting down rental api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
