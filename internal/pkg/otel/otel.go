package otel

import (
	"context"
	"sync"
	"time"

	"aurum/karat_gold_loan/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const connectTimeout = 5 * time.Second

var (
	tracer      trace.Tracer
	degradeOnce sync.Once
)

// noopShutdown is returned when the collector is unreachable so the caller
// can defer it unconditionally.
func noopShutdown(context.Context) error { return nil }

// Setup wires the OTLP trace pipeline. When the collector cannot be reached
// the service keeps running without tracing rather than failing startup.
func Setup(ctx context.Context, serviceName, collectorURL string) (func(context.Context) error, error) {
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	exporter, err := otlptracehttp.New(dialCtx,
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpoint(collectorURL),
	)
	if err != nil {
		degradeOnce.Do(func() {
			logger.Error("OTLP collector unreachable, tracing disabled: %v", err.Error())
		})
		return noopShutdown, nil
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	tracer = provider.Tracer(serviceName)

	return func(ctx context.Context) error {
		flushCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return provider.Shutdown(flushCtx)
	}, nil
}

// GetTracer returns the configured tracer, or a no-op one before Setup ran.
func GetTracer() trace.Tracer {
	if tracer == nil {
		return noop.NewTracerProvider().Tracer("")
	}
	return tracer
}
