package xmetrics

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/omeyang/xsample/pkg/observability/xlog"
)

func newLoggedRecorder(t *testing.T) (Recorder, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelInfo).Build()
	require.NoError(t, err)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewLogSpanProcessor(logger)))
	mp, _ := newTestMeterProvider()
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
		_ = cleanup()
	})

	rec, err := NewOTelRecorder(WithTracerProvider(tp), WithMeterProvider(mp))
	require.NoError(t, err)
	return rec, &buf
}

func TestLogSpanProcessor(t *testing.T) {
	rec, buf := newLoggedRecorder(t)

	_, span := rec.Start(context.Background(), Run{ID: "run-7", Method: "hash", Algorithm: "xxhash32", Rate: 0.5})
	span.Observe("", true)
	span.Observe("", false)
	span.End(nil)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="run span ended"`)
	assert.Contains(t, out, "span=xsample.hash")
	assert.Contains(t, out, "run.id=run-7")
	assert.Contains(t, out, "xsample.records.seen=2")
	assert.Contains(t, out, "xsample.records.admitted=1")
	assert.Contains(t, out, "status=Ok")
}

func TestLogSpanProcessorError(t *testing.T) {
	rec, buf := newLoggedRecorder(t)

	_, span := rec.Start(context.Background(), Run{ID: "run-8", Method: "reservoir"})
	span.End(errors.New("read failed"))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "run.id=run-8")
	assert.Contains(t, out, "status=Error")
}

func TestLogSpanProcessorNilLogger(t *testing.T) {
	p := NewLogSpanProcessor(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(p))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	span.End()

	assert.NoError(t, p.ForceFlush(context.Background()))
	assert.NoError(t, p.Shutdown(context.Background()))
}
