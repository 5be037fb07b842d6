package postgresengine

import (
	"errors"
	"regexp"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ErrInvalidTableNamePrefix is returned when a table name prefix is not a plain lowercase SQL identifier.
var ErrInvalidTableNamePrefix = errors.New("table name prefix must match [a-z_][a-z0-9_]*")

var tableNamePrefixPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Option defines a functional option for configuring Engine.
type Option func(*Engine) error

// WithTableNamePrefix sets the prefix of all tables, indexes and constraints of the Engine.
func WithTableNamePrefix(prefix string) Option {
	return func(e *Engine) error {
		if prefix == "" {
			return rental.ErrEmptyTableNamePrefix
		}

		if !tableNamePrefixPattern.MatchString(prefix) {
			return ErrInvalidTableNamePrefix
		}

		e.tables = newTableNames(prefix)

		return nil
	}
}

// WithLogger sets the logger for the Engine.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Transaction outcomes with durations (production-safe)
// Warn level: Non-critical issues like rollback or cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger rental.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, preferred over the plain logger when both are set.
func WithContextualLogger(logger rental.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Engine.
// A collector that also implements rental.ContextualMetricsCollector receives the context of each operation.
func WithMetrics(collector rental.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Engine. Every transaction gets one span.
func WithTracing(collector rental.TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}
