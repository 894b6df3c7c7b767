package xmetrics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracerProvider() (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)), exporter
}

func newTestMeterProvider() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), reader
}

func newTestRecorder(t *testing.T) (Recorder, *sdkmetric.ManualReader, *tracetest.InMemoryExporter) {
	t.Helper()
	tp, exporter := newTestTracerProvider()
	mp, reader := newTestMeterProvider()
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	rec, err := NewOTelRecorder(WithTracerProvider(tp), WithMeterProvider(mp), WithInstrumentationName("test"))
	require.NoError(t, err)
	return rec, reader, exporter
}

func TestNewOTelRecorderDefaults(t *testing.T) {
	rec, err := NewOTelRecorder(WithInstrumentationName(""), WithTracerProvider(nil), WithMeterProvider(nil), nil)
	require.NoError(t, err)

	_, span := rec.Start(context.Background(), Run{Method: "hash"})
	span.Observe("", true)
	span.End(nil)
}

func TestOTelRecorderCounts(t *testing.T) {
	rec, reader, exporter := newTestRecorder(t)

	ctx, span := rec.Start(context.Background(), Run{ID: "run-1", Method: "hash", Algorithm: "xxhash32", Rate: 0.5})
	require.NotNil(t, ctx)
	for i := range 10 {
		span.Observe("", i%2 == 0)
	}
	span.End(nil)

	totals, err := Collect(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, int64(10), totals.Seen)
	assert.Equal(t, int64(5), totals.Admitted)
	assert.Equal(t, map[string]int64{"": 5}, totals.ByBucket)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "xsample.hash", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("hash", "xxhash32"))
	assert.Contains(t, spans[0].Attributes, attribute.String("run.id", "run-1"))
	assert.Contains(t, spans[0].Attributes, attribute.Int64(MetricRecordsSeen, 10))
	assert.Contains(t, spans[0].Attributes, attribute.Int64(MetricRecordsAdmitted, 5))
}

func TestOTelRecorderBuckets(t *testing.T) {
	rec, reader, _ := newTestRecorder(t)

	_, span := rec.Start(context.Background(), Run{Method: "partition", Buckets: 3})
	for _, b := range []string{"0", "1", "1", "rest", "1"} {
		span.Observe(b, true)
	}
	span.End(nil)

	totals, err := Collect(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, int64(5), totals.Seen)
	assert.Equal(t, map[string]int64{"0": 1, "1": 3, "rest": 1}, totals.ByBucket)
}

func TestOTelRecorderObserveN(t *testing.T) {
	rec, reader, _ := newTestRecorder(t)

	_, span := rec.Start(context.Background(), Run{Method: "reservoir", Size: 10})
	span.ObserveN("", true, 10)
	span.ObserveN("", false, 90)
	span.ObserveN("", true, 0)
	span.ObserveN("", true, -5)
	span.End(nil)

	totals, err := Collect(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, int64(100), totals.Seen)
	assert.Equal(t, int64(10), totals.Admitted)
}

func TestOTelRecorderEndError(t *testing.T) {
	rec, reader, exporter := newTestRecorder(t)

	boom := errors.New("boom")
	_, span := rec.Start(context.Background(), Run{})
	span.End(boom)
	// 重复 End 只生效一次
	span.End(nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "xsample.unknown", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != MetricRunDuration {
				continue
			}
			hist, ok := m.Data.(metricdata.Histogram[float64])
			require.True(t, ok)
			require.Len(t, hist.DataPoints, 1)
			assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
			status, _ := hist.DataPoints[0].Attributes.Value("status")
			assert.Equal(t, "error", status.AsString())
			found = true
		}
	}
	assert.True(t, found)
}

func TestOTelRecorderEndAfterCancel(t *testing.T) {
	rec, reader, _ := newTestRecorder(t)

	ctx, cancel := context.WithCancel(context.Background())
	_, span := rec.Start(ctx, Run{Method: "reservoir", Size: 3})
	span.Observe("", false)
	cancel()
	span.End(context.Canceled)

	totals, err := Collect(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Seen)
	assert.Zero(t, totals.Admitted)
}

func TestOTelRecorderConcurrentObserve(t *testing.T) {
	rec, reader, _ := newTestRecorder(t)
	_, span := rec.Start(context.Background(), Run{Method: "partition"})

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				span.Observe(string(rune('a'+g%2)), i%4 == 0)
			}
		}()
	}
	wg.Wait()
	span.End(nil)

	totals, err := Collect(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, int64(800), totals.Seen)
	assert.Equal(t, int64(200), totals.Admitted)
	assert.Equal(t, int64(100), totals.ByBucket["a"])
	assert.Equal(t, int64(100), totals.ByBucket["b"])
}

func TestCollectNilReader(t *testing.T) {
	_, err := Collect(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilReader)
}
