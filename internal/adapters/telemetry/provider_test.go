package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/linger/internal/adapters/telemetry"
	"go.trai.ch/linger/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = telemetry.NoOpSpan{}
}

func TestOTelTracer_RecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracerWithProvider(tp, "linger-test")

	_, span := tracer.Start(context.Background(), "coordinator.run",
		ports.WithAttribute("linger.key", "/repo"),
	)
	span.SetAttribute("linger.exit_code", 2)
	span.SetAttribute("linger.followers", int64(3))
	span.SetAttribute("linger.fresh", true)
	span.SetAttribute("linger.linters", []string{"govet", "errcheck"})
	span.SetAttribute("linger.other", struct{ N int }{N: 1})
	span.RecordError(errors.New("exit status 2"))
	span.RecordError(nil)
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	got := ended[0]

	assert.Equal(t, "coordinator.run", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Len(t, got.Events(), 1)

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range got.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "/repo", attrs["linger.key"].AsString())
	assert.Equal(t, int64(2), attrs["linger.exit_code"].AsInt64())
	assert.Equal(t, int64(3), attrs["linger.followers"].AsInt64())
	assert.True(t, attrs["linger.fresh"].AsBool())
	assert.Equal(t, []string{"govet", "errcheck"}, attrs["linger.linters"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["linger.other"].AsString())
}

func TestNoOpTracer(t *testing.T) {
	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "noop", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
