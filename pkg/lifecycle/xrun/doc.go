// Package xrun 提供基于 errgroup + context 的运行期生命周期管理。
//
// # 概述
//
// xrun 基于 Go 官方扩展库 [errgroup] 构建，提供：
//   - 多个任务并发运行，任一任务失败时取消其余任务
//   - 信号处理（默认 SIGINT、SIGTERM），收到信号时取消 context
//   - 通过 [SignalError] 区分信号退出与普通错误
//
// 与常驻服务不同，xrun 面向会自然结束的批处理任务：所有任务返回后
// 信号监听随之停止，Run 返回。
//
// # 快速开始
//
//	err := xrun.Run(ctx, func(ctx context.Context) error {
//	    for rec := range records {
//	        if err := ctx.Err(); err != nil {
//	            return err
//	        }
//	        process(rec)
//	    }
//	    return nil
//	})
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 被 Ctrl-C 中断
//	}
//
// # 取消语义
//
// Wait 优先返回显式的取消原因（[Group.Cancel] 传入的错误或 *SignalError），
// 否则返回第一个任务错误。父 context 被取消时，任务返回的 context.Canceled
// 原样返回，调用方据此判断运行被中断。
//
// [errgroup]: https://pkg.go.dev/golang.org/x/sync/errgroup
package xrun
