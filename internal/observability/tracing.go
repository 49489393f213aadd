package observability

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "blogseed"

// Supported span exporters.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Tracer is used for every seeding span. It is a no-op until InitTracing enables export.
var Tracer trace.Tracer = otel.Tracer(serviceName)

// TracingConfig holds configuration for initializing the tracer.
type TracingConfig struct {
	ServiceVersion string
	Environment    string
	Enabled        bool
	Exporter       string
	OTLPEndpoint   string
	SamplerRatio   float64
	// Output receives stdout-exported spans. Defaults to stderr so span dumps do not
	// interleave with the seeder's progress lines.
	Output io.Writer
}

// InitTracing installs a tracer provider for the run. The returned function flushes
// buffered spans and must be called before the process exits.
func InitTracing(cfg TracingConfig) (func(context.Context) error, error) {
	if !cfg.Enabled {
		Tracer = otel.Tracer(serviceName)
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s span exporter: %w", cfg.Exporter, err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SamplerRatio)),
	)
	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer(serviceName)

	return tp.Shutdown, nil
}

func newExporter(cfg TracingConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterOTLP:
		return otlptracehttp.New(context.Background(),
			otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	case ExporterStdout, "":
		out := cfg.Output
		if out == nil {
			out = os.Stderr
		}
		return stdouttrace.New(stdouttrace.WithWriter(out))
	default:
		return nil, fmt.Errorf("unknown exporter %q", cfg.Exporter)
	}
}

// sampler keeps every span unless a ratio in (0, 1) is configured. Child spans follow
// their run's decision so a sampled run is exported whole.
func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// Span wraps an OpenTelemetry span.
type Span struct {
	span trace.Span
}

// NewSpan starts a child span of whatever span ctx carries.
func NewSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (*Span, context.Context) {
	ctx, span := Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return &Span{span: span}, ctx
}

func (s *Span) AddAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}

// SetError marks the span failed. A nil error is ignored.
func (s *Span) SetError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *Span) End() {
	s.span.End()
}
