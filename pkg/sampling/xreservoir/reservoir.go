package xreservoir

import (
	"cmp"
	"iter"
	"math/rand/v2"
	"slices"
)

// Reservoir 固定容量的蓄水池采样器（Algorithm R）
//
// 前 Cap() 条记录直接填入；之后第 k 条记录（从 0 计数）以 Cap()/(k+1) 的概率
// 替换随机槽位。Add 必须按到达顺序调用，不可并发调用。
type Reservoir[T any] struct {
	capacity  int
	observed  int
	items     []T
	arrivals  []int // 与 items 一一对应的到达序号，仅 keepOrder 时维护
	keepOrder bool
	rnd       *rand.Rand
}

// New 创建容量为 size 的蓄水池
//
// size < 0 时返回 ErrInvalidSize。
func New[T any](size int, opts ...Option) (*Reservoir[T], error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	r := &Reservoir[T]{
		capacity:  size,
		items:     make([]T, 0, size),
		keepOrder: o.keepOrder,
		rnd:       o.rnd,
	}
	if o.keepOrder {
		r.arrivals = make([]int, 0, size)
	}
	return r, nil
}

// Add 观察一条新记录
func (r *Reservoir[T]) Add(item T) {
	index := r.observed
	r.observed++

	if r.capacity == 0 {
		return
	}

	// 填充阶段
	if len(r.items) < r.capacity {
		r.items = append(r.items, item)
		if r.keepOrder {
			r.arrivals = append(r.arrivals, index)
		}
		return
	}

	// 替换阶段：j 在 [0, index] 内均匀分布
	j := r.rnd.IntN(index + 1)
	if j < r.capacity {
		r.items[j] = item
		if r.keepOrder {
			r.arrivals[j] = index
		}
	}
}

// Items 返回当前采样结果（副本）
//
// 启用 WithKeepOrder 时按到达顺序排列，否则按槽位顺序。
func (r *Reservoir[T]) Items() []T {
	if !r.keepOrder {
		return slices.Clone(r.items)
	}

	slots := make([]int, len(r.items))
	for i := range slots {
		slots[i] = i
	}
	slices.SortFunc(slots, func(a, b int) int {
		return cmp.Compare(r.arrivals[a], r.arrivals[b])
	})

	out := make([]T, len(slots))
	for i, slot := range slots {
		out[i] = r.items[slot]
	}
	return out
}

// Len 返回当前保留的记录数
func (r *Reservoir[T]) Len() int {
	return len(r.items)
}

// Cap 返回蓄水池容量
func (r *Reservoir[T]) Cap() int {
	return r.capacity
}

// Count 返回已观察的记录数
func (r *Reservoir[T]) Count() int {
	return r.observed
}

// Reset 清空采样结果与计数，保留随机源的当前状态
func (r *Reservoir[T]) Reset() {
	clear(r.items)
	r.items = r.items[:0]
	r.arrivals = r.arrivals[:0]
	r.observed = 0
}

// Sample 从序列中单次遍历抽取 size 条记录
//
// 序列不足 size 条时返回全部记录（按到达顺序），不返回错误。
// size 为 0 时返回空切片且不读取序列；size < 0 时返回 ErrInvalidSize。
func Sample[T any](seq iter.Seq[T], size int, opts ...Option) ([]T, error) {
	r, err := New[T](size, opts...)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return []T{}, nil
	}
	for item := range seq {
		r.Add(item)
	}
	return r.Items(), nil
}
