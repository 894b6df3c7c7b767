package xrecord

import "errors"

var (
	// ErrInvalidColumn 列索引为负数
	ErrInvalidColumn = errors.New("xrecord: invalid column index")

	// ErrNilReader Reader 为 nil
	ErrNilReader = errors.New("xrecord: nil reader")
)
