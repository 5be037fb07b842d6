package shell

import (
	"time"

	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures both business outcomes (idempotency, the recorded event) and execution metadata (retry information)
// without coupling the handler to specific observability implementations.
type HandlerResult struct {
	// Idempotent indicates whether the operation was idempotent (no state change needed).
	Idempotent bool

	// Event is the domain event recorded by the handler. It is nil for idempotent and failed operations.
	Event core.DomainEvent

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none" (success), "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "violation", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for successful operations (non-idempotent).
func NewSuccessResult(retryMetrics RetryMetrics, event core.DomainEvent) HandlerResult {
	return HandlerResult{
		Idempotent:       false,
		Event:            event,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       true,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewErrorResult creates a HandlerResult for failed operations.
// This is used when the handler returns an error but still wants to report retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       false,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// ResultFor builds the HandlerResult matching the outcome of one handler execution.
func ResultFor(retryMetrics RetryMetrics, decision core.DecisionResult, err error) (HandlerResult, error) {
	if err != nil {
		return NewErrorResult(retryMetrics), err
	}

	if decision.IsIdempotent() {
		return NewIdempotentResult(retryMetrics), nil
	}

	return NewSuccessResult(retryMetrics, decision.Event), nil
}
