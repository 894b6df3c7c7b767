package xsampling

import (
	"iter"
	"math"

	"github.com/omeyang/xsample/pkg/sampling/xhash"
)

// KeyFunc 从记录中提取采样 key
//
// 相同的 key 总是产生相同的采样决策。返回 nil 等同于空 key，空 key 同样参与哈希。
type KeyFunc[T any] func(record T) []byte

// ThresholdSampler 基于阈值的一致性采样器
//
// 对 key 做加盐哈希，摘要小于阈值 floor(rate * MaxDigest) 的记录被采样。
// 相同的 (算法, 盐值, rate, key) 在任意次调用、任意进程中都得到相同的决策。
//
// 构造后只读，可在多个 goroutine 中共享。
type ThresholdSampler struct {
	hasher    *xhash.Salted
	rate      float64
	threshold uint64
}

// NewThresholdSampler 创建一致性采样器
//
// rate 表示采样比率，范围 [0.0, 1.0]：
//   - rate=0.0: 不采样任何记录
//   - rate=1.0: 采样所有记录（包括摘要恰好等于 MaxDigest 的记录）
//
// rate 超出范围或为 NaN 时返回 ErrInvalidRate；
// name 未注册时返回 xhash.ErrUnknownHashFunction。
func NewThresholdSampler(name xhash.Algorithm, salt string, rate float64) (*ThresholdSampler, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	hasher, err := xhash.NewSalted(name, salt)
	if err != nil {
		return nil, err
	}
	return newThresholdSampler(hasher, rate), nil
}

// NewThresholdSamplerWithHasher 使用已有的加盐哈希器创建采样器
//
// 用于让采样器与 Partitioner 共享同一个哈希器。hasher 为 nil 时返回 ErrNilHasher。
func NewThresholdSamplerWithHasher(hasher *xhash.Salted, rate float64) (*ThresholdSampler, error) {
	if hasher == nil {
		return nil, ErrNilHasher
	}
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	return newThresholdSampler(hasher, rate), nil
}

func newThresholdSampler(hasher *xhash.Salted, rate float64) *ThresholdSampler {
	return &ThresholdSampler{
		hasher:    hasher,
		rate:      rate,
		threshold: thresholdFor(rate, hasher.MaxDigest()),
	}
}

// ShouldInclude 判断 key 是否被采样
func (s *ThresholdSampler) ShouldInclude(key []byte) bool {
	if s.rate <= 0 {
		return false
	}
	// rate=1.0 时阈值等于 MaxDigest，严格小于比较会漏掉摘要恰为 MaxDigest 的 key
	if s.rate >= 1 {
		return true
	}
	return s.hasher.Digest(key) < s.threshold
}

// ShouldIncludeString 与 ShouldInclude 相同，接受字符串 key
func (s *ThresholdSampler) ShouldIncludeString(key string) bool {
	return s.ShouldInclude([]byte(key))
}

// Rate 返回采样比率
func (s *ThresholdSampler) Rate() float64 {
	return s.rate
}

// Threshold 返回摘要阈值
func (s *ThresholdSampler) Threshold() uint64 {
	return s.threshold
}

// Hasher 返回底层加盐哈希器
func (s *ThresholdSampler) Hasher() *xhash.Salted {
	return s.hasher
}

// Filter 惰性过滤序列，只产出被采样的记录
//
// 不缓冲输入；调用方停止迭代时立即停止拉取上游。
func Filter[T any](s *ThresholdSampler, seq iter.Seq[T], key KeyFunc[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for record := range seq {
			if !s.ShouldInclude(key(record)) {
				continue
			}
			if !yield(record) {
				return
			}
		}
	}
}

// thresholdFor 将比率换算为摘要阈值 floor(rate * maxDigest)
//
// float64 无法精确表示 MaxUint64，乘积可能舍入到 2^64，需要饱和处理。
func thresholdFor(rate float64, maxDigest uint64) uint64 {
	if rate <= 0 {
		return 0
	}
	product := math.Floor(rate * float64(maxDigest))
	if product >= float64(maxDigest) {
		return maxDigest
	}
	return uint64(product)
}

// validateRate 校验比率在 [0.0, 1.0] 内
func validateRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return ErrInvalidRate
	}
	return nil
}

var _ KeySampler = (*ThresholdSampler)(nil)
