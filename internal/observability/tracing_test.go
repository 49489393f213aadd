package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func resetTracing(t *testing.T) {
	t.Cleanup(func() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		Tracer = otel.Tracer(serviceName)
	})
}

func TestInitTracing_Disabled(t *testing.T) {
	resetTracing(t)

	shutdown, err := InitTracing(TracingConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	span, ctx := NewSpan(context.Background(), "noop", attribute.Int("n", 1))
	require.NotNil(t, ctx)
	span.AddAttributes(attribute.String("k", "v"))
	span.SetError(errors.New("boom"))
	span.SetError(nil)
	span.End()
}

func TestInitTracing_StdoutExportsSpans(t *testing.T) {
	resetTracing(t)

	var buf bytes.Buffer
	shutdown, err := InitTracing(TracingConfig{
		Enabled:        true,
		Exporter:       ExporterStdout,
		ServiceVersion: "test",
		Environment:    "test",
		SamplerRatio:   1,
		Output:         &buf,
	})
	require.NoError(t, err)

	run, ctx := NewSpan(context.Background(), "seed.Run")
	post, _ := NewSpan(ctx, "seed.createPost", attribute.Int("seed.index", 0))
	post.SetError(errors.New("disk full"))
	post.End()
	run.End()

	require.NoError(t, shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"Name":"seed.Run"`)
	assert.Contains(t, out, `"Name":"seed.createPost"`)
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "blogseed")
}

func TestInitTracing_UnknownExporter(t *testing.T) {
	resetTracing(t)

	_, err := InitTracing(TracingConfig{Enabled: true, Exporter: "zipkin"})
	assert.ErrorContains(t, err, "zipkin")
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(0).Description())
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}
