package xsampling

// KeySampler 按 key 做采样决策
//
// 实现必须是 key 的纯函数：相同的 key 总是返回相同的结果。
type KeySampler interface {
	// ShouldInclude 判断 key 是否被采样
	ShouldInclude(key []byte) bool
}

// Assigner 按 key 分配桶
type Assigner interface {
	// Assign 返回 key 所属的桶索引，范围 [0, Buckets())
	Assign(key []byte) int

	// Buckets 返回桶的数量
	Buckets() int
}

// Predicate 把任意 KeySampler 包装为记录级判定函数
//
// sampler 或 key 为 nil 时返回 ErrNilSampler / ErrNilKeyFunc。
func Predicate[T any](sampler KeySampler, key KeyFunc[T]) (func(T) bool, error) {
	if sampler == nil {
		return nil, ErrNilSampler
	}
	if key == nil {
		return nil, ErrNilKeyFunc
	}
	return func(record T) bool {
		return sampler.ShouldInclude(key(record))
	}, nil
}
