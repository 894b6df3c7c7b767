package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Group 基于 errgroup + context 管理多个任务的并发运行和协调取消。
//
// 当任一任务返回错误或 context 被取消时，所有任务都会收到取消信号。
// Go、Cancel 可安全地从多个 goroutine 并发调用；Wait 应仅调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建新的 Group。
//
// 返回 Group 和派生的 context。当任一任务返回错误时，返回的 context 会被取消。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)

	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}, egCtx
}

// Go 启动一个 goroutine 执行 fn。
//
// fn 应该监听 ctx.Done() 以响应取消。fn 为 nil 时该任务返回 ErrNilFunc。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// Wait 等待所有 goroutine 完成。
//
// 存在显式取消原因（Cancel 传入的非 nil 错误或 *SignalError）时返回该原因，
// 否则返回第一个非 nil 的任务错误。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()

	if g.causeCtx.Err() != nil {
		if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
			return cause
		}
	}
	return err
}

// Cancel 主动取消所有 goroutine，cause 作为 Wait 的返回值。
//
// cause 不应包装 context.Canceled，否则会被视为普通取消。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回 Group 的 context。
func (g *Group) Context() context.Context {
	return g.ctx
}

// Run 运行任务并监听 DefaultSignals。
//
// 所有任务返回后 Run 返回；收到信号时取消任务的 ctx，并返回 *SignalError。
func Run(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	return RunWithOptions(ctx, nil, tasks...)
}

// RunWithOptions 与 Run 相同，但支持配置选项。
func RunWithOptions(ctx context.Context, opts []Option, tasks ...func(ctx context.Context) error) error {
	g, _ := NewGroup(ctx, opts...)

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		g.Go(func(ctx context.Context) error {
			defer wg.Done()
			if task == nil {
				return ErrNilFunc
			}
			return task(ctx)
		})
	}

	if !g.opts.noSignalHandler {
		signals := g.opts.signals
		if len(signals) == 0 {
			signals = DefaultSignals()
		}

		done := make(chan struct{})
		g.Go(func(context.Context) error {
			wg.Wait()
			close(done)
			return nil
		})
		g.Go(func(ctx context.Context) error {
			return g.watchSignals(ctx, signals, done)
		})
	}

	return g.Wait()
}

// watchSignals 等待信号、任务结束或 ctx 取消，收到信号时以 *SignalError 取消 Group
func (g *Group) watchSignals(ctx context.Context, signals []os.Signal, done <-chan struct{}) error {
	testc := testSigChan(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)
	defer signal.Stop(sigCh)

	var sig os.Signal
	select {
	case sig = <-testc:
	case sig = <-sigCh:
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}

	g.opts.logger.Warn(ctx, "received signal",
		slog.String("group", g.opts.name),
		slog.String("signal", sig.String()),
	)
	g.cancel(&SignalError{Signal: sig})
	return nil
}
