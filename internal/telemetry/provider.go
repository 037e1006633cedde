// Package telemetry wires generation spans to an OTLP/HTTP collector.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ServiceName identifies cavegen spans in the collector.
const ServiceName = "cavegen"

// Options selects where generation spans go.
type Options struct {
	// Endpoint is the collector URL, e.g. http://localhost:4318.
	// Tracing stays off while it is empty.
	Endpoint string
	Enabled  bool
	// SampleRatio is the share of root generations traced, 0..1.
	SampleRatio float64
}

func (o Options) active() bool {
	return o.Enabled && o.Endpoint != ""
}

// Shutdown flushes pending spans.
type Shutdown func(context.Context) error

// Setup installs a global tracer provider when opts asks for one. Otherwise
// it returns a no-op Shutdown and leaves the global provider untouched, so
// dungeon.GenerateContext spans go nowhere.
func Setup(ctx context.Context, opts Options) (Shutdown, error) {
	noop := func(context.Context) error { return nil }
	if !opts.active() {
		return noop, nil
	}
	if opts.SampleRatio < 0 || opts.SampleRatio > 1 {
		return noop, fmt.Errorf("trace sample ratio %v not in 0..1", opts.SampleRatio)
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(opts.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("create trace exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(ServiceName)))
	if err != nil {
		return noop, fmt.Errorf("build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
