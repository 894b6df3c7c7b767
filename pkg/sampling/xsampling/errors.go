package xsampling

import "errors"

// 采样器创建相关的错误
var (
	// ErrInvalidRate 表示采样比率不在 [0.0, 1.0] 范围内
	ErrInvalidRate = errors.New("xsampling: rate must be in [0.0, 1.0]")

	// ErrInvalidRatios 表示分区比率为空、含负数，或总和超过 1.0
	ErrInvalidRatios = errors.New("xsampling: invalid partition ratios")

	// ErrNilKeyFunc 表示 key 提取函数为 nil
	ErrNilKeyFunc = errors.New("xsampling: keyFunc must not be nil")

	// ErrNilSampler 表示采样器为 nil
	ErrNilSampler = errors.New("xsampling: sampler must not be nil")

	// ErrNilHasher 表示加盐哈希器为 nil
	ErrNilHasher = errors.New("xsampling: hasher must not be nil")
)
