package xsampling

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/omeyang/xsample/pkg/sampling/xhash"
)

// ratioTolerance 比率之和与 1.0 比较时允许的浮点误差
//
// 例如十个 0.1 相加得到 0.9999999999999999，应视为恰好覆盖全部。
const ratioTolerance = 1e-9

// Partitioner 确定性多路分区器
//
// 按比率列表把记录分到互不相交的桶中：key 的摘要落在哪个累计阈值区间，
// 记录就属于哪个桶。同一 key 在任意次运行中总是分到同一个桶。
//
// 剩余桶：比率之和小于 1.0 时，存在一个隐式的尾部剩余桶（索引为 len(ratios)），
// 承接 1 - sum 的比例。比率之和等于 1.0（误差 1e-9 内）时没有剩余桶，
// 最后一个桶的边界饱和，摘要恰为 MaxDigest 的 key 也落入最后一个桶。
//
// 构造后只读，可在多个 goroutine 中共享。
type Partitioner struct {
	hasher    *xhash.Salted
	ratios    []float64
	bounds    []uint64
	remainder bool
	// last 无剩余桶时承接边界之外摘要的桶（最后一个比率非零的桶）
	last int
}

// NewPartitioner 创建分区器
//
// ratios 为空、含负数或 NaN、或总和超过 1.0 时返回 ErrInvalidRatios；
// name 未注册时返回 xhash.ErrUnknownHashFunction。
func NewPartitioner(name xhash.Algorithm, salt string, ratios []float64) (*Partitioner, error) {
	if err := validateRatios(ratios); err != nil {
		return nil, err
	}
	hasher, err := xhash.NewSalted(name, salt)
	if err != nil {
		return nil, err
	}
	return newPartitioner(hasher, ratios), nil
}

// NewPartitionerWithHasher 使用已有的加盐哈希器创建分区器
func NewPartitionerWithHasher(hasher *xhash.Salted, ratios []float64) (*Partitioner, error) {
	if hasher == nil {
		return nil, ErrNilHasher
	}
	if err := validateRatios(ratios); err != nil {
		return nil, err
	}
	return newPartitioner(hasher, ratios), nil
}

func newPartitioner(hasher *xhash.Salted, ratios []float64) *Partitioner {
	maxDigest := hasher.MaxDigest()
	bounds := make([]uint64, len(ratios))

	var cum float64
	last := len(ratios) - 1
	for i, r := range ratios {
		cum += r
		bounds[i] = thresholdFor(cum, maxDigest)
		if r > 0 {
			last = i
		}
	}

	return &Partitioner{
		hasher:    hasher,
		ratios:    slices.Clone(ratios),
		bounds:    bounds,
		remainder: cum < 1-ratioTolerance,
		last:      last,
	}
}

// Assign 返回 key 所属的桶索引
//
// 返回最小的 i 使得 digest(key) < bounds[i]；都不满足时返回剩余桶索引
// len(ratios)（无剩余桶时返回最后一个比率非零的桶）。Assign 不会失败。
func (p *Partitioner) Assign(key []byte) int {
	digest := p.hasher.Digest(key)
	for i, b := range p.bounds {
		if digest < b {
			return i
		}
	}
	if p.remainder {
		return len(p.bounds)
	}
	return p.last
}

// AssignString 与 Assign 相同，接受字符串 key
func (p *Partitioner) AssignString(key string) int {
	return p.Assign([]byte(key))
}

// Buckets 返回桶的数量（含剩余桶）
func (p *Partitioner) Buckets() int {
	if p.remainder {
		return len(p.bounds) + 1
	}
	return len(p.bounds)
}

// HasRemainder 报告是否存在尾部剩余桶
func (p *Partitioner) HasRemainder() bool {
	return p.remainder
}

// Ratios 返回比率列表（副本）
func (p *Partitioner) Ratios() []float64 {
	return slices.Clone(p.ratios)
}

// Boundaries 返回累计摘要边界（副本）
func (p *Partitioner) Boundaries() []uint64 {
	return slices.Clone(p.bounds)
}

// Hasher 返回底层加盐哈希器
func (p *Partitioner) Hasher() *xhash.Salted {
	return p.hasher
}

// Partition 单次遍历把序列分到各个桶
//
// 返回 Buckets() 个切片，桶内保持记录的相对顺序。
// 适用于只能遍历一次的序列。
func Partition[T any](p *Partitioner, seq iter.Seq[T], key KeyFunc[T]) [][]T {
	buckets := make([][]T, p.Buckets())
	for record := range seq {
		i := p.Assign(key(record))
		buckets[i] = append(buckets[i], record)
	}
	return buckets
}

// Bucket 惰性产出属于第 index 个桶的记录
//
// 对可重复遍历的序列，逐个桶调用 Bucket 与 Partition 的结果一致，且不需要缓冲。
// index 越界时返回空序列。
func Bucket[T any](p *Partitioner, seq iter.Seq[T], key KeyFunc[T], index int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if index < 0 || index >= p.Buckets() {
			return
		}
		for record := range seq {
			if p.Assign(key(record)) != index {
				continue
			}
			if !yield(record) {
				return
			}
		}
	}
}

func validateRatios(ratios []float64) error {
	if len(ratios) == 0 {
		return fmt.Errorf("%w: empty ratio list", ErrInvalidRatios)
	}
	var sum float64
	for i, r := range ratios {
		if math.IsNaN(r) || r < 0 {
			return fmt.Errorf("%w: ratio[%d]=%v", ErrInvalidRatios, i, r)
		}
		sum += r
	}
	if sum > 1+ratioTolerance {
		return fmt.Errorf("%w: sum %v exceeds 1.0", ErrInvalidRatios, sum)
	}
	return nil
}

var _ Assigner = (*Partitioner)(nil)
