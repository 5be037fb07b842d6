package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ContextualLoggerSpy is a ContextualLogger implementation that captures contextual logging calls for testing.
type ContextualLoggerSpy struct {
	records     []SpyContextualLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpyContextualLogRecord represents a recorded contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy instance.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{
		recordCalls: recordCalls,
	}
}

func (s *ContextualLoggerSpy) log(ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

// DebugContext implements rental.ContextualLogger.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.log(ctx, "debug", msg, args)
}

// InfoContext implements rental.ContextualLogger.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.log(ctx, "info", msg, args)
}

// WarnContext implements rental.ContextualLogger.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.log(ctx, "warn", msg, args)
}

// ErrorContext implements rental.ContextualLogger.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.log(ctx, "error", msg, args)
}

// GetRecords returns a copy of all log records.
func (s *ContextualLoggerSpy) GetRecords() []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyContextualLogRecord(nil), s.records...)
}

func (s *ContextualLoggerSpy) has(level, message string) bool {
	for _, r := range s.GetRecords() {
		if r.Level == level && r.Message == message {
			return true
		}
	}

	return false
}

// HasDebugLog checks if a debug log with the specified message exists.
func (s *ContextualLoggerSpy) HasDebugLog(message string) bool { return s.has("debug", message) }

// HasInfoLog checks if an info log with the specified message exists.
func (s *ContextualLoggerSpy) HasInfoLog(message string) bool { return s.has("info", message) }

// HasWarnLog checks if a warn log with the specified message exists.
func (s *ContextualLoggerSpy) HasWarnLog(message string) bool { return s.has("warn", message) }

// HasErrorLog checks if an error log with the specified message exists.
func (s *ContextualLoggerSpy) HasErrorLog(message string) bool { return s.has("error", message) }

// HasLogWithArg checks if any log with the message carries the key/value pair in its args.
func (s *ContextualLoggerSpy) HasLogWithArg(message string, key string, value any) bool {
	for _, r := range s.GetRecords() {
		if r.Message != message {
			continue
		}

		for i := 0; i+1 < len(r.Args); i += 2 {
			if k, ok := r.Args[i].(string); ok && k == key && r.Args[i+1] == value {
				return true
			}
		}
	}

	return false
}

// Compile-time check to ensure ContextualLoggerSpy implements ContextualLogger interface.
var _ rental.ContextualLogger = (*ContextualLoggerSpy)(nil)
