package xreservoir

import "errors"

// 蓄水池创建相关的错误
var (
	// ErrInvalidSize 表示蓄水池容量为负数
	ErrInvalidSize = errors.New("xreservoir: size must be >= 0")

	// ErrNilRand 表示 WithRand 传入了 nil 随机源
	ErrNilRand = errors.New("xreservoir: rand must not be nil")

	// ErrNilOption 表示传入了 nil option
	ErrNilOption = errors.New("xreservoir: option must not be nil")
)
