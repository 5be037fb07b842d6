package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

const (
	// CommandHandlerDurationMetric tracks command handler execution duration (OpenTelemetry-compatible).
	CommandHandlerDurationMetric = "commandhandler_handle_duration_seconds"

	// CommandHandlerCallsMetric tracks total command handler calls.
	CommandHandlerCallsMetric = "commandhandler_handle_calls_total"

	// CommandHandlerIdempotentMetric tracks idempotent operations.
	CommandHandlerIdempotentMetric = "commandhandler_idempotent_operations_total"

	// CommandHandlerViolationMetric tracks operations rejected by a business rule, labeled by violation kind.
	CommandHandlerViolationMetric = "commandhandler_violations_total"

	// CommandHandlerCanceledMetric tracks canceled operations.
	CommandHandlerCanceledMetric = "commandhandler_canceled_operations_total"

	// CommandHandlerTimeoutMetric tracks timeout operations.
	CommandHandlerTimeoutMetric = "commandhandler_timeout_operations_total"

	// CommandHandlerConcurrencyConflictMetric tracks operations that failed with a lock-time conflict after all retries.
	CommandHandlerConcurrencyConflictMetric = "commandhandler_concurrency_conflicts_total"

	// CommandHandlerRetriesMetric tracks retry attempts in command handlers.
	//
	// Labels:
	//   - command_type: Type of command being retried (e.g., "ReturnBorrowedUnits")
	//   - attempt_number: Number of retries made
	//   - error_type: Category of the final error (e.g., "concurrency_conflict")
	CommandHandlerRetriesMetric = "commandhandler_retries_total"

	// CommandHandlerRetryDelayMetric tracks the total backoff delay of retried commands.
	CommandHandlerRetryDelayMetric = "commandhandler_retry_delay_seconds"

	// CommandHandlerMaxRetriesReachedMetric tracks when max retries are exhausted.
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"

	// QueryHandlerDurationMetric tracks query handler execution duration (OpenTelemetry-compatible).
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"

	// QueryHandlerCallsMetric tracks total query handler calls.
	QueryHandlerCallsMetric = "queryhandler_handle_calls_total"

	// QueryHandlerCanceledMetric tracks canceled query operations.
	QueryHandlerCanceledMetric = "queryhandler_canceled_operations_total"

	// QueryHandlerTimeoutMetric tracks timeout query operations.
	QueryHandlerTimeoutMetric = "queryhandler_timeout_operations_total"

	// StatusSuccess indicates successful completion.
	StatusSuccess = "success"

	// StatusError indicates an unexpected processing error.
	StatusError = "error"

	// StatusIdempotent indicates no state change was needed.
	StatusIdempotent = "idempotent"

	// StatusViolation indicates the operation was rejected by a business rule.
	StatusViolation = "violation"

	// StatusCanceled indicates the operation was canceled due to context cancellation.
	StatusCanceled = "canceled"

	// StatusTimeout indicates the operation timed out due to context deadline exceeded.
	StatusTimeout = "timeout"

	// StatusConcurrencyConflict indicates the operation failed due to a lock-time conflict.
	StatusConcurrencyConflict = "concurrency_conflict"

	// LogMsgCommandStarted is logged when command processing begins.
	LogMsgCommandStarted = "command handler started"

	// LogMsgCommandCompleted is logged when command processing succeeds.
	LogMsgCommandCompleted = "command handler completed"

	// LogMsgCommandRejected is logged when a command is rejected by a business rule.
	LogMsgCommandRejected = "command handler rejected command"

	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "command handler failed"

	// LogMsgQueryStarted is logged when query processing begins.
	LogMsgQueryStarted = "query handler started"

	// LogMsgQueryCompleted is logged when query processing succeeds.
	LogMsgQueryCompleted = "query handler completed"

	// LogMsgQueryFailed is logged when query processing fails.
	LogMsgQueryFailed = "query handler failed"

	// LogAttrCommandType identifies the command type in logs.
	LogAttrCommandType = "command_type"

	// LogAttrQueryType identifies the query type in logs.
	LogAttrQueryType = "query_type"

	// LogAttrStatus indicates the processing status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrBusinessOutcome classifies the business result.
	LogAttrBusinessOutcome = "business_outcome"

	// LogAttrViolationKind names the violated business rule.
	LogAttrViolationKind = "violation_kind"

	// LogAttrEventType names the recorded domain event.
	LogAttrEventType = "event_type"

	// LogAttrError contains error details.
	LogAttrError = "error"

	// SpanNameCommandHandle is the tracing span name for command handling.
	SpanNameCommandHandle = "commandhandler.handle"

	// SpanNameQueryHandle is the tracing span name for query handling.
	SpanNameQueryHandle = "queryhandler.handle"
)

// Interface aliases for convenience when using handler observability.
// These match the engine observability interfaces for consistency.

// MetricsCollector interface for collecting handler performance metrics.
type MetricsCollector = rental.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = rental.ContextualMetricsCollector

// TracingCollector interface for distributed tracing in handlers.
type TracingCollector = rental.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = rental.SpanContext

// ContextualLogger interface for context-aware logging in handlers.
type ContextualLogger = rental.ContextualLogger

// Logger interface for basic logging in handlers.
type Logger = rental.Logger

// BuildCommandLabels creates standard metric labels for command handler operations.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildQueryLabels creates standard metric labels for query handler operations.
func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

// BuildRetryLabels creates standard metric labels for retry operations.
func BuildRetryLabels(commandType string, attemptNumber int, errorType string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		"attempt_number":   fmt.Sprintf("%d", attemptNumber),
		"error_type":       errorType,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// IncrementCounter increments a counter, preferring the context-aware method when available.
func IncrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		collector.IncrementCounter(metric, labels)
	}
}

// RecordDuration records a duration, preferring the context-aware method when available.
func RecordDuration(ctx context.Context, collector MetricsCollector, metric string, d time.Duration, labels map[string]string) {
	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, d, labels)
	} else {
		collector.RecordDuration(metric, d, labels)
	}
}

// RecordCommandMetrics records all relevant metrics for a command operation.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)
	RecordDuration(ctx, collector, CommandHandlerDurationMetric, duration, labels)
	IncrementCounter(ctx, collector, CommandHandlerCallsMetric, labels)

	switch status {
	case StatusIdempotent:
		IncrementCounter(ctx, collector, CommandHandlerIdempotentMetric, BuildCommandLabels(commandType, status))
	case StatusCanceled:
		IncrementCounter(ctx, collector, CommandHandlerCanceledMetric, BuildCommandLabels(commandType, status))
	case StatusTimeout:
		IncrementCounter(ctx, collector, CommandHandlerTimeoutMetric, BuildCommandLabels(commandType, status))
	case StatusConcurrencyConflict:
		IncrementCounter(ctx, collector, CommandHandlerConcurrencyConflictMetric, BuildCommandLabels(commandType, status))
	}
}

// RecordViolationMetric counts a rejected command by violation kind.
func RecordViolationMetric(ctx context.Context, collector MetricsCollector, commandType string, kind rental.ErrorKind) {
	labels := BuildCommandLabels(commandType, StatusViolation)
	labels[LogAttrViolationKind] = kind.String()
	IncrementCounter(ctx, collector, CommandHandlerViolationMetric, labels)
}

// RecordQueryMetrics records all relevant metrics for a query operation.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)
	RecordDuration(ctx, collector, QueryHandlerDurationMetric, duration, labels)
	IncrementCounter(ctx, collector, QueryHandlerCallsMetric, labels)

	switch status {
	case StatusCanceled:
		IncrementCounter(ctx, collector, QueryHandlerCanceledMetric, BuildQueryLabels(queryType, status))
	case StatusTimeout:
		IncrementCounter(ctx, collector, QueryHandlerTimeoutMetric, BuildQueryLabels(queryType, status))
	}
}

// StartCommandSpan starts a distributed tracing span for command operations.
// Returns the updated context and span context, or original context and nil if tracing is disabled.
func StartCommandSpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	commandType string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	attrs := map[string]string{
		LogAttrCommandType: commandType,
	}

	return tracingCollector.StartSpan(ctx, SpanNameCommandHandle, attrs)
}

// StartQuerySpan starts a distributed tracing span for query operations.
func StartQuerySpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	queryType string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	attrs := map[string]string{
		LogAttrQueryType: queryType,
	}

	return tracingCollector.StartSpan(ctx, SpanNameQueryHandle, attrs)
}

// FinishSpan completes a distributed tracing span with the operation outcome.
func FinishSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// LogInfo logs on the contextual logger if set, else on the basic logger.
func LogInfo(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Info(msg, args...)
	}
}

// LogWarn logs on the contextual logger if set, else on the basic logger.
func LogWarn(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.WarnContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Warn(msg, args...)
	}
}

// LogError logs on the contextual logger if set, else on the basic logger.
func LogError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Error(msg, args...)
	}
}

// formatDurationMS formats duration in milliseconds for span attributes.
func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", ToMilliseconds(duration))
}

// ClassifyError maps an error to the status used in metrics, spans and logs.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(err, rental.ErrConflict):
		return StatusConcurrencyConflict
	case rental.IsViolation(err):
		return StatusViolation
	default:
		return StatusError
	}
}
