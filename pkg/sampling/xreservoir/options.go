package xreservoir

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Option 配置蓄水池的可选参数
type Option func(*options)

type options struct {
	rnd       *rand.Rand
	keepOrder bool
	err       error
}

// WithSeed 使用固定种子初始化随机源
//
// 相同种子、相同输入（内容与顺序）总是得到相同的采样结果。
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rnd = newSeededRand(seed)
	}
}

// WithSeedString 使用字符串种子初始化随机源
//
// 字符串经 xxhash 映射为 64 位种子，便于直接复用命令行的 --seed 参数。
func WithSeedString(seed string) Option {
	return WithSeed(xxhash.Sum64String(seed))
}

// WithRand 使用调用方提供的随机源
//
// *rand.Rand 不是并发安全的，不要在并发运行的多个蓄水池之间共享同一个实例。
// r 为 nil 时构造返回 ErrNilRand。
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r == nil {
			o.err = ErrNilRand
			return
		}
		o.rnd = r
	}
}

// WithKeepOrder 使结果按到达顺序返回
func WithKeepOrder() Option {
	return func(o *options) {
		o.keepOrder = true
	}
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(o)
		if o.err != nil {
			return nil, o.err
		}
	}
	if o.rnd == nil {
		o.rnd = newEntropyRand()
	}
	return o, nil
}
