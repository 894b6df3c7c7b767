package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/omeyang/xsample/pkg/config/xconf"
	"github.com/omeyang/xsample/pkg/lifecycle/xrun"
	"github.com/omeyang/xsample/pkg/observability/xlog"
	"github.com/omeyang/xsample/pkg/observability/xmetrics"
	"github.com/omeyang/xsample/pkg/sampling/xhash"
	"github.com/omeyang/xsample/pkg/sampling/xreservoir"
	"github.com/omeyang/xsample/pkg/sampling/xsampling"
	"github.com/omeyang/xsample/pkg/stream/xrecord"
)

// runner 执行一次采样运行
type runner struct {
	id       string
	profile  xconf.Profile
	logger   xlog.Logger
	recorder xmetrics.Recorder
	in       *input
	stdout   io.Writer
}

// execute 按配置构建日志与指标，运行采样
func execute(ctx context.Context, cmd *cli.Command, p xconf.Profile) (err error) {
	root := cmd.Root()

	logger, cleanup, err := buildLogger(p.Log, root.ErrWriter)
	if err != nil {
		return asUsageError(err)
	}
	defer func() { _ = cleanup() }()

	var (
		recorder xmetrics.Recorder = xmetrics.NoopRecorder{}
		reader   *sdkmetric.ManualReader
	)
	if cmd.Bool(flagStats) {
		reader = sdkmetric.NewManualReader()
		meters := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer func() { _ = meters.Shutdown(context.WithoutCancel(ctx)) }()

		tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(xmetrics.NewLogSpanProcessor(logger)))
		defer func() { _ = tracer.Shutdown(context.WithoutCancel(ctx)) }()

		recorder, err = xmetrics.NewOTelRecorder(
			xmetrics.WithMeterProvider(meters),
			xmetrics.WithTracerProvider(tracer),
		)
		if err != nil {
			return err
		}
	}

	in := newInput(root.Reader, cmd.Args().Slice())
	if err := in.check(); err != nil {
		return err
	}

	id := uuid.NewString()
	r := &runner{
		id:       id,
		profile:  p,
		logger:   logger.With(xlog.Component("xsample"), xlog.RunID(id)),
		recorder: recorder,
		in:       in,
		stdout:   root.Writer,
	}

	start := time.Now()
	r.logger.Debug(ctx, "sampling started", xlog.Operation(describe(p)))
	err = xrun.RunWithOptions(ctx, []xrun.Option{
		xrun.WithName("xsample"),
		xrun.WithLogger(r.logger),
	}, r.run)
	if err != nil {
		r.logger.Error(ctx, "sampling failed", xlog.Err(err), xlog.Count(in.Count()))
	} else {
		r.logger.Info(ctx, "sampling finished", xlog.Count(in.Count()), xlog.Duration(time.Since(start)))
	}

	if reader != nil {
		if statsErr := printStats(context.WithoutCancel(ctx), reader, root.ErrWriter); statsErr != nil {
			r.logger.Warn(ctx, "collect stats failed", xlog.Err(statsErr))
		}
	}
	return err
}

func buildLogger(cfg xconf.Log, stderr io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetOutput(stderr).
		SetLevelString(cfg.Level).
		SetFormat(cfg.Format)
	if cfg.File != "" {
		b = b.SetRotation(cfg.File)
	}
	return b.Build()
}

func (r *runner) run(ctx context.Context) error {
	switch r.profile.Method {
	case xconf.MethodReservoir:
		return r.reservoir(ctx)
	case xconf.MethodPartition:
		return r.partition(ctx)
	default:
		return r.hash(ctx)
	}
}

// hash 一致性采样，逐条写出被采样的记录
func (r *runner) hash(ctx context.Context) (err error) {
	p := r.profile
	alg, err := xhash.ParseAlgorithm(p.Hash)
	if err != nil {
		return asUsageError(err)
	}
	sampler, err := xsampling.NewThresholdSampler(alg, p.Salt, p.Rate)
	if err != nil {
		return asUsageError(err)
	}
	include, err := xsampling.Predicate(sampler, xrecord.KeyFor(p.Separator, p.Column))
	if err != nil {
		return err
	}

	ctx, span := xmetrics.Start(ctx, r.recorder, xmetrics.Run{
		ID:        r.id,
		Method:    string(p.Method),
		Algorithm: string(alg),
		Rate:      p.Rate,
	})
	defer func() { span.End(err) }()

	w := xrecord.NewWriter(r.stdout)
	for rec := range r.in.records(ctx) {
		ok := include(rec)
		span.Observe("", ok)
		if !ok {
			continue
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := r.in.Err(); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// reservoir 蓄水池采样，读完输入后一次写出
func (r *runner) reservoir(ctx context.Context) (err error) {
	p := r.profile
	opts := make([]xreservoir.Option, 0, 2)
	if p.Seed != "" {
		opts = append(opts, xreservoir.WithSeedString(p.Seed))
	}
	if p.KeepOrder {
		opts = append(opts, xreservoir.WithKeepOrder())
	}

	ctx, span := xmetrics.Start(ctx, r.recorder, xmetrics.Run{
		ID:     r.id,
		Method: string(p.Method),
		Size:   p.Size,
	})
	defer func() { span.End(err) }()

	sample, err := xreservoir.Sample(r.in.records(ctx), p.Size, opts...)
	if err != nil {
		return asUsageError(err)
	}
	if err := r.in.Err(); err != nil {
		return err
	}

	kept := int64(len(sample))
	span.ObserveN("", true, kept)
	span.ObserveN("", false, r.in.Count()-kept)

	w := xrecord.NewWriter(r.stdout)
	for _, rec := range sample {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// partition 按比率把记录分到 <prefix>.<i> 文件，剩余桶写到 <prefix>.rest
func (r *runner) partition(ctx context.Context) (err error) {
	p := r.profile
	alg, err := xhash.ParseAlgorithm(p.Hash)
	if err != nil {
		return asUsageError(err)
	}
	part, err := xsampling.NewPartitioner(alg, p.Salt, p.Ratios)
	if err != nil {
		return asUsageError(err)
	}
	key := xrecord.KeyFor(p.Separator, p.Column)

	out, err := openBuckets(p.Prefix, part)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	ctx, span := xmetrics.Start(ctx, r.recorder, xmetrics.Run{
		ID:        r.id,
		Method:    string(p.Method),
		Algorithm: string(alg),
		Buckets:   part.Buckets(),
	})
	defer func() { span.End(err) }()

	for rec := range r.in.records(ctx) {
		i := part.Assign(key(rec))
		span.Observe(out.names[i], true)
		if err := out.writers[i].Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", out.paths[i], err)
		}
	}
	if err := r.in.Err(); err != nil {
		return err
	}

	for i, path := range out.paths {
		r.logger.Debug(ctx, "bucket written", xlog.Bucket(path), xlog.Count(int64(out.writers[i].Count())))
	}
	return nil
}

// buckets 分区输出文件
type buckets struct {
	names   []string
	paths   []string
	files   []*os.File
	writers []*xrecord.Writer
}

func bucketName(part *xsampling.Partitioner, i int) string {
	if part.HasRemainder() && i == part.Buckets()-1 {
		return "rest"
	}
	return strconv.Itoa(i)
}

func openBuckets(prefix string, part *xsampling.Partitioner) (*buckets, error) {
	if dir := filepath.Dir(prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	b := &buckets{}
	for i := range part.Buckets() {
		name := bucketName(part, i)
		path := prefix + "." + name
		f, err := os.Create(path)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		b.names = append(b.names, name)
		b.paths = append(b.paths, path)
		b.files = append(b.files, f)
		b.writers = append(b.writers, xrecord.NewWriter(f))
	}
	return b, nil
}

// Close 刷新缓冲并关闭所有文件，返回遇到的所有错误
func (b *buckets) Close() error {
	var errs []error
	for i, f := range b.files {
		if err := b.writers[i].Flush(); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", b.paths[i], err))
		}
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", b.paths[i], err))
		}
	}
	return errors.Join(errs...)
}

func printStats(ctx context.Context, reader *sdkmetric.ManualReader, w io.Writer) error {
	totals, err := xmetrics.Collect(ctx, reader)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "records seen: %d\n", totals.Seen)
	fmt.Fprintf(w, "records admitted: %d\n", totals.Admitted)
	if _, plain := totals.ByBucket[""]; !plain {
		for _, name := range slices.Sorted(maps.Keys(totals.ByBucket)) {
			fmt.Fprintf(w, "  bucket %s: %d\n", name, totals.ByBucket[name])
		}
	}
	return nil
}
