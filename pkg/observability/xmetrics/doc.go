// Package xmetrics 记录采样运行的指标与追踪。
//
// 每次运行通过 Recorder.Start 开启一个 RunSpan，逐条记录调用 Observe，
// 结束时调用 End：
//
//	ctx, span := rec.Start(ctx, xmetrics.Run{Method: "hash", Rate: 0.1})
//	for rec := range records {
//	    span.Observe("", sampler.ShouldInclude(key(rec)))
//	}
//	span.End(err)
//
// NewOTelRecorder 基于 OpenTelemetry 实现：
//   - 计数器 xsample.records.seen（属性 method）
//   - 计数器 xsample.records.admitted（属性 method、bucket）
//   - 直方图 xsample.run.duration（属性 method、status）
//   - 每次运行一个 trace span
//
// 配合 sdkmetric.ManualReader 使用时，Collect 汇总当前的计数。
package xmetrics
