package postgresengine

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

const (
	metricTxDuration     = "rental_store_tx_duration_seconds"
	metricQueryDuration  = "rental_store_query_duration_seconds"
	metricDatabaseErrors = "rental_store_errors_total"
	metricConflicts      = "rental_store_conflicts_total"
	spanNameTransaction  = "rentalstore.tx"
	spanAttrOperation    = "operation"
	spanAttrErrorType    = "error_type"
	spanAttrDurationMS   = "duration_ms"
	spanAttrTablePrefix  = "table_prefix"
	labelStatus          = "status"
	labelConflictType    = "conflict_type"
	operationTransaction = "transaction"
	statusSuccess        = "success"
	statusError          = "error"
	statusViolation      = "violation"
	statusConflict       = "conflict"
	statusCanceled       = "canceled"
	statusTimeout        = "timeout"
)

// outcomeOf classifies an operation result for metrics, spans, and logs.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, context.Canceled):
		return statusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return statusTimeout
	case errors.Is(err, rental.ErrConflict):
		return statusConflict
	case rental.IsViolation(err):
		return statusViolation
	default:
		return statusError
	}
}

// startTxSpan starts a tracing span for a transaction if the tracing collector is configured.
func (e *Engine) startTxSpan(ctx context.Context) (context.Context, rental.SpanContext) {
	if e.tracingCollector == nil {
		return ctx, nil
	}

	return e.tracingCollector.StartSpan(ctx, spanNameTransaction, map[string]string{
		spanAttrOperation:   operationTransaction,
		spanAttrTablePrefix: e.tables.prefix,
	})
}

// observeTransaction finishes the span and records metrics and logs for a finished transaction.
func (e *Engine) observeTransaction(ctx context.Context, span rental.SpanContext, duration time.Duration, err error) {
	outcome := outcomeOf(err)

	e.recordDurationMetricsContext(ctx, metricTxDuration, duration, operationTransaction, outcome)

	switch outcome {
	case statusSuccess:
		e.logOperation(ctx, logMsgTxCommitted, logAttrDurationMS, toMilliseconds(duration))
	case statusConflict:
		e.recordConflictMetricsContext(ctx, operationTransaction)
		e.logInfo(ctx, logMsgTxRolledBack, logAttrError, err.Error(), logAttrDurationMS, toMilliseconds(duration))
	case statusViolation:
		e.logDebug(ctx, logMsgTxRolledBack, logAttrError, err.Error())
	default:
		e.recordErrorMetricsContext(ctx, operationTransaction, outcome)
	}

	if span == nil {
		return
	}

	span.AddAttribute(spanAttrDurationMS, strconv.FormatFloat(toMilliseconds(duration), 'f', 2, 64))

	attrs := map[string]string{}
	if err != nil {
		attrs[spanAttrErrorType] = outcome
	}

	e.tracingCollector.FinishSpan(span, outcome, attrs)
}

// observeRead records the duration of a read model query and counts its unexpected failures.
func (e *Engine) observeRead(ctx context.Context, operation string, start time.Time, err error) {
	outcome := outcomeOf(err)

	e.recordDurationMetricsContext(ctx, metricQueryDuration, time.Since(start), operation, outcome)

	if outcome == statusError {
		e.recordErrorMetricsContext(ctx, operation, outcome)
	}
}

// recordDurationMetricsContext records duration metrics with context if the collector supports it.
func (e *Engine) recordDurationMetricsContext(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := e.metricsCollector.(rental.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
	} else {
		e.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

// recordErrorMetricsContext records error metrics with context if the collector supports it.
func (e *Engine) recordErrorMetricsContext(ctx context.Context, operation, errorType string) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := e.metricsCollector.(rental.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		e.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// recordConflictMetricsContext records a concurrency conflict.
func (e *Engine) recordConflictMetricsContext(ctx context.Context, operation string) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelConflictType: "concurrency",
	}

	if contextualCollector, ok := e.metricsCollector.(rental.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricConflicts, labels)
	} else {
		e.metricsCollector.IncrementCounter(metricConflicts, labels)
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (e *Engine) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	e.logDebug(ctx, logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
}

// logOperation logs operational information at info level.
func (e *Engine) logOperation(ctx context.Context, action string, args ...any) {
	e.logInfo(ctx, logMsgOperation+action, args...)
}

func (e *Engine) logDebug(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Engine) logInfo(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

func (e *Engine) logWarn(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

// logError logs error information at the error level.
func (e *Engine) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if e.logger != nil {
		e.logger.Error(msg, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
