package xmetrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/omeyang/xsample/pkg/observability/xlog"
)

// LogSpanProcessor 把结束的运行 span 写入日志
//
// 不依赖外部导出器即可看到 span 的属性（run.id、计数、状态）。
// 日志级别为 Info；span 状态为 Error 时使用 Warn。
type LogSpanProcessor struct {
	logger xlog.Logger
}

// NewLogSpanProcessor 创建 LogSpanProcessor，logger 为 nil 时丢弃所有日志
func NewLogSpanProcessor(logger xlog.Logger) *LogSpanProcessor {
	if logger == nil {
		logger = xlog.Discard()
	}
	return &LogSpanProcessor{logger: logger}
}

// OnStart 不做任何处理
func (p *LogSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd 记录 span 名称、耗时、状态与全部属性
func (p *LogSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	attrs := make([]slog.Attr, 0, len(s.Attributes())+3)
	attrs = append(attrs,
		slog.String("span", s.Name()),
		xlog.Duration(s.EndTime().Sub(s.StartTime())),
		slog.String(attrStatus, s.Status().Code.String()),
	)
	for _, kv := range s.Attributes() {
		attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
	}

	ctx := context.Background()
	if s.Status().Code == codes.Error {
		p.logger.Warn(ctx, "run span ended", attrs...)
		return
	}
	p.logger.Info(ctx, "run span ended", attrs...)
}

// Shutdown 实现 sdktrace.SpanProcessor
func (p *LogSpanProcessor) Shutdown(context.Context) error { return nil }

// ForceFlush 实现 sdktrace.SpanProcessor
func (p *LogSpanProcessor) ForceFlush(context.Context) error { return nil }

var _ sdktrace.SpanProcessor = (*LogSpanProcessor)(nil)
