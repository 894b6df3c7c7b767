package xmetrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xsample/xmetrics"

	// MetricRecordsSeen 输入记录数
	MetricRecordsSeen = "xsample.records.seen"
	// MetricRecordsAdmitted 被采样（或分到某个桶）的记录数
	MetricRecordsAdmitted = "xsample.records.admitted"
	// MetricRunDuration 运行耗时
	MetricRunDuration = "xsample.run.duration"

	attrMethod    = "method"
	attrBucket    = "bucket"
	attrStatus    = "status"
	attrAlgorithm = "hash"
	attrRate      = "rate"
	attrSize      = "size"
	attrBuckets   = "buckets"
	attrRunID     = "run.id"
)

type otelConfig struct {
	instrumentationName string
	tracerProvider      trace.TracerProvider
	meterProvider       metric.MeterProvider
}

// Option OTel Recorder 配置选项
type Option func(*otelConfig)

// WithInstrumentationName 设置 instrumentation 名称
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithTracerProvider 设置 TracerProvider，默认使用全局 provider
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.tracerProvider = provider
		}
	}
}

// WithMeterProvider 设置 MeterProvider，默认使用全局 provider
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// NewOTelRecorder 创建基于 OpenTelemetry 的 Recorder
func NewOTelRecorder(opts ...Option) (Recorder, error) {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		tracerProvider:      otel.GetTracerProvider(),
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	seen, err := meter.Int64Counter(
		MetricRecordsSeen,
		metric.WithDescription("records read from the input stream"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, MetricRecordsSeen, err)
	}

	admitted, err := meter.Int64Counter(
		MetricRecordsAdmitted,
		metric.WithDescription("records admitted to the sample or a partition bucket"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, MetricRecordsAdmitted, err)
	}

	duration, err := meter.Float64Histogram(
		MetricRunDuration,
		metric.WithDescription("sampling run duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, MetricRunDuration, err)
	}

	return &otelRecorder{
		tracer:   cfg.tracerProvider.Tracer(cfg.instrumentationName),
		seen:     seen,
		admitted: admitted,
		duration: duration,
	}, nil
}

type otelRecorder struct {
	tracer   trace.Tracer
	seen     metric.Int64Counter
	admitted metric.Int64Counter
	duration metric.Float64Histogram
}

func (r *otelRecorder) Start(ctx context.Context, run Run) (context.Context, RunSpan) {
	if ctx == nil {
		ctx = context.Background()
	}
	method := run.Method
	if method == "" {
		method = "unknown"
	}

	spanAttrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.Float64(attrRate, run.Rate),
		attribute.Int(attrSize, run.Size),
		attribute.Int(attrBuckets, run.Buckets),
	}
	if run.Algorithm != "" {
		spanAttrs = append(spanAttrs, attribute.String(attrAlgorithm, run.Algorithm))
	}
	if run.ID != "" {
		spanAttrs = append(spanAttrs, attribute.String(attrRunID, run.ID))
	}

	ctx, span := r.tracer.Start(ctx, "xsample."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(spanAttrs...),
	)

	methodAttr := attribute.String(attrMethod, method)
	return ctx, &otelSpan{
		recorder:   r,
		span:       span,
		ctx:        ctx,
		method:     method,
		seenOpt:    metric.WithAttributeSet(attribute.NewSet(methodAttr)),
		admitted:   make(map[string]metric.AddOption),
		methodAttr: methodAttr,
		start:      time.Now(),
	}
}

type otelSpan struct {
	recorder   *otelRecorder
	span       trace.Span
	ctx        context.Context
	method     string
	methodAttr attribute.KeyValue
	seenOpt    metric.AddOption
	start      time.Time

	mu       sync.Mutex
	admitted map[string]metric.AddOption // 每个桶的属性集合只构造一次
	seen     int64
	kept     int64

	endOnce sync.Once
}

func (s *otelSpan) Observe(bucket string, admitted bool) {
	s.ObserveN(bucket, admitted, 1)
}

func (s *otelSpan) ObserveN(bucket string, admitted bool, n int64) {
	if n <= 0 {
		return
	}
	s.recorder.seen.Add(s.ctx, n, s.seenOpt)

	s.mu.Lock()
	s.seen += n
	if !admitted {
		s.mu.Unlock()
		return
	}
	s.kept += n
	opt, ok := s.admitted[bucket]
	if !ok {
		opt = metric.WithAttributeSet(attribute.NewSet(s.methodAttr, attribute.String(attrBucket, bucket)))
		s.admitted[bucket] = opt
	}
	s.mu.Unlock()

	s.recorder.admitted.Add(s.ctx, n, opt)
}

func (s *otelSpan) End(err error) {
	s.endOnce.Do(func() {
		status := resolveStatus(err)
		if err != nil {
			s.span.RecordError(err)
			s.span.SetStatus(codes.Error, err.Error())
		} else {
			s.span.SetStatus(codes.Ok, "")
		}

		s.mu.Lock()
		s.span.SetAttributes(
			attribute.Int64(MetricRecordsSeen, s.seen),
			attribute.Int64(MetricRecordsAdmitted, s.kept),
		)
		s.mu.Unlock()
		s.span.End()

		// 上游 ctx 已取消时仍要记录耗时
		metricsCtx := context.WithoutCancel(s.ctx)
		s.recorder.duration.Record(metricsCtx, time.Since(s.start).Seconds(),
			metric.WithAttributes(s.methodAttr, attribute.String(attrStatus, string(status))))
	})
}
