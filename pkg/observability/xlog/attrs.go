package xlog

import (
	"log/slog"
	"time"
)

// 常用属性 key
const (
	KeyError     = "error"
	KeyCount     = "count"
	KeyDuration  = "duration"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyRate      = "rate"
	KeyAlgorithm = "hash"
	KeyBucket    = "bucket"
	KeyRunID     = "run_id"
)

// Err 创建错误属性；err 为 nil 时返回空属性，slog 会忽略它
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Count 创建计数属性
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Duration 创建耗时属性
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 标识日志来源组件
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 标识当前执行的操作
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Rate 采样比率
func Rate(r float64) slog.Attr {
	return slog.Float64(KeyRate, r)
}

// Algorithm 哈希算法名称
func Algorithm(name string) slog.Attr {
	return slog.String(KeyAlgorithm, name)
}

// Bucket 分区桶
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// RunID 运行标识
func RunID(id string) slog.Attr {
	return slog.String(KeyRunID, id)
}
