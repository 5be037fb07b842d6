package config

import (
	"context"
	"errors"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// OTLPEndpointEnv names the environment variable holding the OTLP/HTTP collector endpoint (host:port).
const OTLPEndpointEnv = "RENTAL_OTLP_ENDPOINT"

const defaultMetricExportInterval = 10 * time.Second

// ErrNoOTLPEndpointConfigured is returned when telemetry export is requested but RENTAL_OTLP_ENDPOINT is not set.
var ErrNoOTLPEndpointConfigured = errors.New("no OTLP endpoint configured")

// OTLPEndpoint returns the collector endpoint and whether one is configured.
func OTLPEndpoint() (string, bool) {
	endpoint := os.Getenv(OTLPEndpointEnv)

	return endpoint, endpoint != ""
}

// ObservabilityProviders holds the OpenTelemetry providers exporting to the collector.
type ObservabilityProviders struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

// NewObservabilityProviders creates trace and metric providers exporting via OTLP/HTTP and registers them globally.
func NewObservabilityProviders(ctx context.Context, serviceName, serviceVersion string) (*ObservabilityProviders, error) {
	endpoint, ok := OTLPEndpoint()
	if !ok {
		return nil, ErrNoOTLPEndpointConfigured
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
	)

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(defaultMetricExportInterval))),
		metric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &ObservabilityProviders{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
	}, nil
}

// Shutdown flushes and stops both providers.
func (p *ObservabilityProviders) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.TracerProvider.Shutdown(ctx),
		p.MeterProvider.Shutdown(ctx),
	)
}
