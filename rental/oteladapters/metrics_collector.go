package oteladapters

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// MetricsCollector implements rental.ContextualMetricsCollector with OpenTelemetry instruments.
//
// RecordDuration maps to a Float64Histogram in seconds, IncrementCounter to an Int64Counter and
// RecordValue to a Float64Gauge. Instruments are created on first use and cached per metric name.
type MetricsCollector struct {
	meter metric.Meter

	mu         sync.Mutex
	histograms map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsCollector creates a collector that builds its instruments from meter.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		histograms: make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	m.RecordDurationContext(context.Background(), metricName, duration, labels)
}

func (m *MetricsCollector) RecordDurationContext(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	labels map[string]string,
) {

	if histogram := m.histogram(metricName); histogram != nil {
		histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(toAttributes(labels)...))
	}
}

func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	m.IncrementCounterContext(context.Background(), metricName, labels)
}

func (m *MetricsCollector) IncrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	if counter := m.counter(metricName); counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(toAttributes(labels)...))
	}
}

func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	m.RecordValueContext(context.Background(), metricName, value, labels)
}

func (m *MetricsCollector) RecordValueContext(ctx context.Context, metricName string, value float64, labels map[string]string) {
	if gauge := m.gauge(metricName); gauge != nil {
		gauge.Record(ctx, value, metric.WithAttributes(toAttributes(labels)...))
	}
}

// histogram returns nil when the meter refuses the instrument; the measurement is then dropped.
func (m *MetricsCollector) histogram(name string) metric.Float64Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.histograms[name]; ok {
		return h
	}

	h, err := m.meter.Float64Histogram(name, metric.WithDescription(describe(name)), metric.WithUnit("s"))
	if err != nil {
		return nil
	}

	m.histograms[name] = h

	return h
}

func (m *MetricsCollector) counter(name string) metric.Int64Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[name]; ok {
		return c
	}

	c, err := m.meter.Int64Counter(name, metric.WithDescription(describe(name)))
	if err != nil {
		return nil
	}

	m.counters[name] = c

	return c
}

func (m *MetricsCollector) gauge(name string) metric.Float64Gauge {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.gauges[name]; ok {
		return g
	}

	g, err := m.meter.Float64Gauge(name, metric.WithDescription(describe(name)))
	if err != nil {
		return nil
	}

	m.gauges[name] = g

	return g
}

// describe derives the instrument description from the metric name prefix.
func describe(name string) string {
	switch {
	case strings.HasPrefix(name, "commandhandler_"):
		return "Gear rental command handler metric"
	case strings.HasPrefix(name, "queryhandler_"):
		return "Gear rental query handler metric"
	case strings.HasPrefix(name, "rental_store_"):
		return "Gear rental engine metric"
	default:
		return "Gear rental metric"
	}
}

func toAttributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}

	return attrs
}

var _ rental.ContextualMetricsCollector = (*MetricsCollector)(nil)
