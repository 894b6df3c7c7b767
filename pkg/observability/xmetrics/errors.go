package xmetrics

import "errors"

var (
	// ErrNilReader ManualReader 为 nil
	ErrNilReader = errors.New("xmetrics: nil reader")

	// ErrCreateInstrument 创建指标仪表失败
	ErrCreateInstrument = errors.New("xmetrics: create instrument failed")
)
