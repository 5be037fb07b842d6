package shell

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc represents a function that can be retried.
type RetryableFunc func(ctx context.Context) error

// RetryMetrics describes how a retried execution went.
type RetryMetrics struct {
	Attempts         int
	TotalDelay       time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

// retryConfig holds configuration for exponential backoff retry logic.
type retryConfig struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
}

// RetryWithExponentialBackoff executes fn and retries it with exponential backoff
// while it fails with a retryable error, up to maxAttempts times.
//
// Retry Schedule (default): 0 ms, 10 ms, 20 ms, 40 ms, 80 ms, 160 ms (with 30% jitter)
//
// Only rental.ErrConflict is retried: a lock-time conflict means the transaction was rolled back
// and may succeed against fresh state. Violations and all other errors fail fast.
func RetryWithExponentialBackoff(
	ctx context.Context,
	fn RetryableFunc,
	options ...RetryOption,
) (RetryMetrics, error) {
	config := &retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return RetryMetrics{LastErrorType: getErrorType(err)}, err
		}
	}

	metrics := RetryMetrics{}
	var lastErr error

	for attempt := 0; attempt < config.maxAttempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: baseDelay * 2^(attempt-1)
			delay := config.baseDelay * time.Duration(1<<(attempt-1))

			// Add jitter to prevent thundering herd
			jitter := rand.Float64() * float64(delay) * config.jitterFactor //nolint:gosec //math/rand is sufficient for jitter
			backoffDelay := delay + time.Duration(jitter)

			select {
			case <-time.After(backoffDelay):
				metrics.TotalDelay += backoffDelay
			case <-ctx.Done():
				metrics.LastErrorType = getErrorType(ctx.Err())
				return metrics, ctx.Err()
			}
		}

		metrics.Attempts++
		lastErr = fn(ctx)
		metrics.LastErrorType = getErrorType(lastErr)

		if lastErr == nil {
			return metrics, nil
		}

		if !isRetryableError(lastErr) {
			return metrics, lastErr // Permanent failure
		}
	}

	metrics.RetriesExhausted = true

	return metrics, lastErr
}

// isRetryableError determines if an error should be retried.
// A context.DeadlineExceeded is NOT retryable - timeouts should fail fast.
func isRetryableError(err error) bool {
	return errors.Is(err, rental.ErrConflict)
}

// getErrorType extracts a string representation of the error type for metrics labeling.
func getErrorType(err error) string {
	if err == nil {
		return "none"
	}
	if errors.Is(err, rental.ErrConflict) {
		return "concurrency_conflict"
	}
	if errors.Is(err, context.Canceled) {
		return "context_canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "context_deadline_exceeded"
	}
	if rental.IsViolation(err) {
		return "violation"
	}

	return "other"
}

// RetryOption configures retry behavior using the functional options pattern.
type RetryOption func(*retryConfig) error

// WithMaxAttempts sets the maximum number of attempts.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, baseDelay*8, etc.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter factor to prevent thundering herd problems.
// Valid range: 0.0 (no jitter) to 1.0 (100% jitter).
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}
