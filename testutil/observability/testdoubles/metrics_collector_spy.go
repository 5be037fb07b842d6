package testdoubles

import (
	"context"
	"sync"
	"time"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// MetricsCollectorSpy is a ContextualMetricsCollector implementation that captures metrics calls for testing.
type MetricsCollectorSpy struct {
	records     []SpyMetricRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpyMetricRecord represents one recorded metric call.
// Kind is "duration", "counter" or "value".
type SpyMetricRecord struct {
	Kind        string
	Metric      string
	Duration    time.Duration
	Value       float64
	Labels      map[string]string
	WithContext bool
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
// Set recordCalls to true to capture all metrics calls for inspection in tests.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{
		records:     make([]SpyMetricRecord, 0),
		recordCalls: recordCalls,
	}
}

func (s *MetricsCollectorSpy) record(r SpyMetricRecord) {
	if !s.recordCalls {
		return
	}

	labelsCopy := make(map[string]string, len(r.Labels))
	for k, v := range r.Labels {
		labelsCopy[k] = v
	}
	r.Labels = labelsCopy

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, r)
}

// RecordDuration implements rental.MetricsCollector.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "duration", Metric: metric, Duration: duration, Labels: labels})
}

// IncrementCounter implements rental.MetricsCollector.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "counter", Metric: metric, Labels: labels})
}

// RecordValue implements rental.MetricsCollector.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "value", Metric: metric, Value: value, Labels: labels})
}

// RecordDurationContext implements rental.ContextualMetricsCollector.
func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "duration", Metric: metric, Duration: duration, Labels: labels, WithContext: true})
}

// IncrementCounterContext implements rental.ContextualMetricsCollector.
func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "counter", Metric: metric, Labels: labels, WithContext: true})
}

// RecordValueContext implements rental.ContextualMetricsCollector.
func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: "value", Metric: metric, Value: value, Labels: labels, WithContext: true})
}

// GetRecords returns a copy of all captured records.
func (s *MetricsCollectorSpy) GetRecords() []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyMetricRecord(nil), s.records...)
}

// Reset clears all captured records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// CountRecordsForMetric counts the records of any kind for a metric.
func (s *MetricsCollectorSpy) CountRecordsForMetric(metric string) int {
	count := 0
	for _, r := range s.GetRecords() {
		if r.Metric == metric {
			count++
		}
	}

	return count
}

// MetricRecordMatcher provides a fluent interface for checking metric records.
// Every With* narrows the candidate records; Assert reports whether any candidate is left.
type MetricRecordMatcher struct {
	candidates []SpyMetricRecord
}

func (s *MetricsCollectorSpy) matcher(kind, metric string) *MetricRecordMatcher {
	m := &MetricRecordMatcher{}
	for _, r := range s.GetRecords() {
		if r.Kind == kind && r.Metric == metric {
			m.candidates = append(m.candidates, r)
		}
	}

	return m
}

// HasDurationRecordForMetric starts a fluent chain to check a duration record.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher("duration", metric)
}

// HasCounterRecordForMetric starts a fluent chain to check a counter record.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher("counter", metric)
}

// HasValueRecordForMetric starts a fluent chain to check a value record.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher("value", metric)
}

// WithLabel keeps the records that have the label with the given value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, r := range m.candidates {
		if v, ok := r.Labels[key]; ok && v == value {
			kept = append(kept, r)
		}
	}
	m.candidates = kept

	return m
}

// WithStatus keeps the records that have the status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithOperation keeps the records that have the operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// Assert returns true if all conditions in the fluent chain were met by at least one record.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

var _ rental.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
