package xmetrics

import "context"

// Status 运行结果状态
type Status string

const (
	// StatusOK 成功
	StatusOK Status = "ok"
	// StatusError 失败
	StatusError Status = "error"
)

// Run 描述一次采样运行
type Run struct {
	// ID 运行标识，只写入 span，不作为指标属性
	ID string
	// Method 采样方式：hash、reservoir、partition
	Method string
	// Algorithm 哈希算法名称，蓄水池采样时为空
	Algorithm string
	// Rate 哈希采样比率
	Rate float64
	// Size 蓄水池容量
	Size int
	// Buckets 分区桶数量
	Buckets int
}

// RunSpan 一次运行的观测跨度
type RunSpan interface {
	// Observe 记录一条输入记录；bucket 为空表示非分区运行
	Observe(bucket string, admitted bool)

	// ObserveN 一次记录 n 条结果相同的记录，n <= 0 时忽略
	ObserveN(bucket string, admitted bool, n int64)

	// End 结束观测，多次调用只生效一次
	End(err error)
}

// Recorder 开启运行观测
type Recorder interface {
	Start(ctx context.Context, run Run) (context.Context, RunSpan)
}

// NoopRecorder 空实现
type NoopRecorder struct{}

// Start 返回 ctx 与空跨度，nil ctx 替换为 context.Background()
func (NoopRecorder) Start(ctx context.Context, _ Run) (context.Context, RunSpan) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// NoopSpan 空跨度
type NoopSpan struct{}

func (NoopSpan) Observe(string, bool) {}

func (NoopSpan) ObserveN(string, bool, int64) {}

func (NoopSpan) End(error) {}

// Start 使用 recorder 开启观测，保证返回非 nil 的 ctx 与 span
//
// recorder 为 nil 或返回 nil span 时使用 NoopSpan。
func Start(ctx context.Context, recorder Recorder, run Run) (context.Context, RunSpan) {
	if ctx == nil {
		ctx = context.Background()
	}
	if recorder == nil {
		return ctx, NoopSpan{}
	}
	retCtx, span := recorder.Start(ctx, run)
	if retCtx == nil {
		retCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return retCtx, span
}

func resolveStatus(err error) Status {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
