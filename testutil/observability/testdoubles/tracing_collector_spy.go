package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// SpySpanContext implements rental.SpanContext for testing.
type SpySpanContext struct {
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

// SetStatus implements rental.SpanContext.
func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// AddAttribute implements rental.SpanContext.
func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}
	c.attributes[key] = value
}

// TracingCollectorSpy is a TracingCollector implementation that captures tracing calls for testing.
type TracingCollectorSpy struct {
	spanRecords []SpySpanRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpySpanRecord represents a recorded span for testing.
type SpySpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	Finished        bool
	spanContext     *SpySpanContext
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
// Set recordCalls to true to capture all tracing calls for inspection in tests.
func NewTracingCollectorSpy(recordCalls bool) *TracingCollectorSpy {
	return &TracingCollectorSpy{
		spanRecords: make([]SpySpanRecord, 0),
		recordCalls: recordCalls,
	}
}

// StartSpan implements rental.TracingCollector.
func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, rental.SpanContext) {
	if !s.recordCalls {
		return ctx, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spanCtx := &SpySpanContext{attributes: make(map[string]string)}
	s.spanRecords = append(s.spanRecords, SpySpanRecord{
		Name:            name,
		StartAttributes: copyAttrs(attrs),
		spanContext:     spanCtx,
	})

	return ctx, spanCtx
}

// FinishSpan implements rental.TracingCollector.
func (s *TracingCollectorSpy) FinishSpan(spanCtx rental.SpanContext, status string, attrs map[string]string) {
	if !s.recordCalls || spanCtx == nil {
		return
	}

	spyCtx, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.spanRecords {
		if s.spanRecords[i].spanContext == spyCtx {
			s.spanRecords[i].Status = status
			s.spanRecords[i].EndAttributes = copyAttrs(attrs)
			s.spanRecords[i].Finished = true
			break
		}
	}
}

// GetSpanRecords returns a copy of all captured span records.
func (s *TracingCollectorSpy) GetSpanRecords() []SpySpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpySpanRecord(nil), s.spanRecords...)
}

// GetSpanRecordCount returns the number of captured span records.
func (s *TracingCollectorSpy) GetSpanRecordCount() int {
	return len(s.GetSpanRecords())
}

// HasFinishedSpan reports whether a span with the name was finished with the status.
func (s *TracingCollectorSpy) HasFinishedSpan(name, status string) bool {
	for _, r := range s.GetSpanRecords() {
		if r.Name == name && r.Finished && r.Status == status {
			return true
		}
	}

	return false
}

func copyAttrs(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}

	return out
}

var _ rental.TracingCollector = (*TracingCollectorSpy)(nil)
