// Package observability provides structured logging and OpenTelemetry tracing
// for cstarc.
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	// TracerName is the instrumentation scope of every cstarc span.
	TracerName = "github.com/efebarandurmaz/cstar"
)

// TracingConfig configures the OpenTelemetry tracing.
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string

	// OTLPEndpoint is the OTLP gRPC endpoint (e.g., "localhost:4317").
	// If empty, tracing is disabled.
	OTLPEndpoint string
	// Insecure dials the collector without TLS.
	Insecure bool

	// SampleRate is the trace sampling rate (0.0 to 1.0, default: 1.0)
	SampleRate float64
}

// DefaultTracingConfig returns a default tracing configuration.
func DefaultTracingConfig() *TracingConfig {
	return &TracingConfig{
		ServiceName: "cstarc",
		Insecure:    true,
		SampleRate:  1.0,
	}
}

// TracerProvider wraps the OpenTelemetry tracer provider.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// InitTracing initializes OpenTelemetry tracing.
// Returns a no-op tracer if OTLPEndpoint is empty.
func InitTracing(ctx context.Context, cfg *TracingConfig) (*TracerProvider, error) {
	if cfg == nil {
		cfg = DefaultTracingConfig()
	}

	if cfg.OTLPEndpoint == "" {
		return &TracerProvider{
			tracer: otel.Tracer(TracerName),
		}, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithDialOption(
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		))
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		// schemaless so the merge never conflicts with the SDK default schema
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRate)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &TracerProvider{
		provider: provider,
		tracer:   provider.Tracer(TracerName),
	}, nil
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// Shutdown flushes pending spans and stops the exporter.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider != nil {
		return tp.provider.Shutdown(ctx)
	}
	return nil
}

// Tracer returns the underlying tracer.
func (tp *TracerProvider) Tracer() trace.Tracer {
	return tp.tracer
}

// Span kinds recorded as cstar.span.kind.
const (
	SpanKindTranslate = "translate"
	SpanKindCompile   = "compile"
	SpanKindLink      = "link"
	SpanKindRun       = "run"
)

// StartTranslateSpan starts a span covering one source-to-C++ translation.
func StartTranslateSpan(ctx context.Context, input, braceMode string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, "translate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("cstar.span.kind", SpanKindTranslate),
			attribute.String("translate.input", input),
			attribute.String("translate.brace_mode", braceMode),
		),
	)
}

// TranslateResult is what RecordTranslateResult puts on a span.
type TranslateResult struct {
	Lines        int
	Includes     int
	Functions    int
	UsesArgs     bool
	Warnings     int
	Unterminated string
}

// RecordTranslateResult records the shape of a finished translation.
func RecordTranslateResult(span trace.Span, r TranslateResult) {
	span.SetAttributes(
		attribute.Int("translate.lines", r.Lines),
		attribute.Int("translate.includes", r.Includes),
		attribute.Int("translate.functions", r.Functions),
		attribute.Bool("translate.uses_args", r.UsesArgs),
		attribute.Int("translate.warnings", r.Warnings),
	)
	if r.Unterminated != "" {
		span.SetAttributes(attribute.String("translate.unterminated", r.Unterminated))
	}
}

// StartToolSpan starts a span for an external toolchain process.
func StartToolSpan(ctx context.Context, kind, command string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, fmt.Sprintf("%s.%s", kind, command),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cstar.span.kind", kind),
			attribute.String("tool.command", command),
		),
	)
}

// RecordToolResult records the outcome of a toolchain process.
func RecordToolResult(span trace.Span, exitCode int, duration time.Duration) {
	span.SetAttributes(
		attribute.Int("tool.exit_code", exitCode),
		attribute.Int64("tool.duration_ms", duration.Milliseconds()),
	)
	if exitCode != 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("exit status %d", exitCode))
	}
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
