// Package telemetry wires OpenTelemetry tracing for the service.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config holds telemetry configuration.
type Config struct {
	Enabled           bool
	CollectorEndpoint string  // OTLP gRPC endpoint, e.g. "localhost:4317"
	SamplingRatio     float64 // 0.0-1.0
	ServiceName       string
	Insecure          bool // plaintext gRPC, development only
}

// TracerProvider owns the SDK provider lifecycle. When telemetry is
// disabled the inner provider stays nil and every method is a no-op.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	logger   *zap.Logger
	enabled  bool
}

// NewTracerProvider builds the provider, installs it globally, and wires
// W3C trace-context propagation. With telemetry disabled it returns a
// no-op provider so callers need no branching.
func NewTracerProvider(ctx context.Context, cfg Config, logger *zap.Logger) (*TracerProvider, error) {
	if !cfg.Enabled {
		logger.Info("Tracing disabled")
		return &TracerProvider{logger: logger}, nil
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SamplingRatio)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("Tracing initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.String("service_name", cfg.ServiceName),
	)

	return &TracerProvider{provider: provider, logger: logger, enabled: true}, nil
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating OTLP exporter: %w", err)
	}
	return exporter, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: building resource: %w", err)
	}
	return res, nil
}

func samplerFor(ratio float64) sdktrace.Sampler {
	switch ratio {
	case 1.0:
		return sdktrace.AlwaysSample()
	case 0.0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(ratio)
	}
}

// Shutdown flushes pending spans, bounded to ten seconds.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := tp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutting down provider: %w", err)
	}
	tp.logger.Info("Tracer provider shut down")
	return nil
}

// Tracer returns a named tracer, falling back to the global provider when
// tracing is disabled.
func (tp *TracerProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if tp.provider == nil {
		return otel.GetTracerProvider().Tracer(name, opts...)
	}
	return tp.provider.Tracer(name, opts...)
}

// IsEnabled reports whether spans are being exported.
func (tp *TracerProvider) IsEnabled() bool {
	return tp.enabled && tp.provider != nil
}

// ForceFlush exports spans that have not been batched out yet.
func (tp *TracerProvider) ForceFlush(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}
	return tp.provider.ForceFlush(ctx)
}
