package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// TracingCollector implements rental.TracingCollector with an OpenTelemetry tracer.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a collector that starts its spans on tracer.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts a span as a child of whatever span ctx carries.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, rental.SpanContext) {
	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(toAttributes(attrs)...))

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan sets the final attributes and status and ends the span. Foreign SpanContext values are ignored.
func (t *TracingCollector) FinishSpan(spanCtx rental.SpanContext, status string, attrs map[string]string) {
	s, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	s.span.SetAttributes(toAttributes(attrs)...)
	s.SetStatus(status)
	s.span.End()
}

var _ rental.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext wraps an OpenTelemetry span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps the status values used by the engines and handlers onto span status codes.
//
// Idempotent outcomes and rule violations are expected business results, so the span stays Ok
// and only records the status as an attribute.
func (s *OTelSpanContext) SetStatus(status string) {
	s.span.SetAttributes(attribute.String("status", status))

	switch status {
	case "success", "idempotent", "violation":
		s.span.SetStatus(codes.Ok, "")
	case "error":
		s.span.SetStatus(codes.Error, "operation failed")
	case "canceled":
		s.span.SetStatus(codes.Error, "operation canceled")
	case "timeout":
		s.span.SetStatus(codes.Error, "operation timed out")
	case "conflict", "concurrency_conflict":
		s.span.SetStatus(codes.Error, "concurrency conflict")
	}
}

func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

var _ rental.SpanContext = (*OTelSpanContext)(nil)
