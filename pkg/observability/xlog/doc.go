// Package xlog 基于 log/slog 的结构化日志。
//
// # 创建 Logger
//
// 使用 Builder 模式，遇到第一个配置错误后后续 Set 操作被跳过，
// 错误在 Build 时返回：
//
//	logger, cleanup, err := xlog.New().
//	    SetLevelString("debug").
//	    SetFormat("json").
//	    SetRotation("/var/log/xsample.log").
//	    Build()
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
// 所有日志方法都接收 context.Context，属性只接受 slog.Attr。
//
// # 日志轮转
//
// SetRotation 通过 lumberjack 按文件大小轮转。lumberjack 在首次轮转后
// 会启动一个常驻的清理 goroutine，Close 不会停止它。
//
// # 动态级别
//
// Build 返回的 LoggerWithLevel 支持运行时调整级别，派生 Logger 共享同一级别。
package xlog
