// Package oteladapters implements the rental observability interfaces on top of OpenTelemetry.
//
// Engines and the observable handler wrappers only know rental.ContextualLogger, rental.MetricsCollector
// and rental.TracingCollector. Wire these adapters in when the process has OpenTelemetry providers configured:
//
//	logger := oteladapters.NewSlogBridgeLogger("gear-rental")
//	metrics := oteladapters.NewMetricsCollector(otel.Meter("gear-rental"))
//	tracing := oteladapters.NewTracingCollector(otel.Tracer("gear-rental"))
package oteladapters
