// Package testdoubles provides spies for the observability interfaces of the rental engine and the handlers.
//
// The spies record calls for inspection in tests:
//   - MetricsCollectorSpy for rental.MetricsCollector and rental.ContextualMetricsCollector
//   - TracingCollectorSpy for rental.TracingCollector
//   - ContextualLoggerSpy for rental.ContextualLogger
//   - LogHandlerSpy as a slog.Handler behind a *slog.Logger (rental.Logger)
package testdoubles
