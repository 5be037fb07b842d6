package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/gear-rental-go/rental/oteladapters"
)

func newTracing(t *testing.T) (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func spanAttribute(span tracetest.SpanStub, key string) (string, bool) {
	for _, kv := range span.Attributes {
		if kv.Key == attribute.Key(key) {
			return kv.Value.AsString(), true
		}
	}

	return "", false
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	collector, exporter := newTracing(t)

	// act
	_, span := collector.StartSpan(context.Background(), "rentalstore.tx", map[string]string{"db.system": "postgresql"})
	span.AddAttribute("duration_ms", "1.25")
	collector.FinishSpan(span, "success", map[string]string{"command_type": "RecordBorrow"})

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "rentalstore.tx", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)

	for key, expected := range map[string]string{
		"db.system":    "postgresql",
		"duration_ms":  "1.25",
		"command_type": "RecordBorrow",
		"status":       "success",
	} {
		value, ok := spanAttribute(spans[0], key)
		assert.True(t, ok, key)
		assert.Equal(t, expected, value, key)
	}
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status   string
		expected codes.Code
	}{
		{status: "success", expected: codes.Ok},
		{status: "idempotent", expected: codes.Ok},
		{status: "violation", expected: codes.Ok},
		{status: "error", expected: codes.Error},
		{status: "canceled", expected: codes.Error},
		{status: "timeout", expected: codes.Error},
		{status: "conflict", expected: codes.Error},
		{status: "concurrency_conflict", expected: codes.Error},
		{status: "something_else", expected: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			collector, exporter := newTracing(t)
			_, span := collector.StartSpan(context.Background(), "commandhandler.handle", nil)

			// act
			collector.FinishSpan(span, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expected, spans[0].Status.Code)
		})
	}
}

func Test_TracingCollector_ChildSpansShareTheTrace(t *testing.T) {
	// arrange
	collector, exporter := newTracing(t)

	// act
	ctx, parent := collector.StartSpan(context.Background(), "commandhandler.handle", nil)
	_, child := collector.StartSpan(ctx, "rentalstore.tx", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}
