package xhash

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	xxhash32 "github.com/OneOfOne/xxhash"
	"github.com/cespare/xxhash/v2"
	spooky "github.com/dgryski/go-spooky"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Algorithm 哈希算法名称
type Algorithm string

// 内置算法
const (
	XXHash32  Algorithm = "xxhash32"
	Spooky32  Algorithm = "spooky32"
	Murmur332 Algorithm = "murmur3_32"
	XXHash64  Algorithm = "xxhash64"
	XXH3      Algorithm = "xxh3"
	Spooky64  Algorithm = "spooky64"

	// Default 未指定算法时使用的默认算法
	Default = XXHash32
)

// String 返回算法名称
func (a Algorithm) String() string {
	return string(a)
}

// Func 带种子的哈希函数
//
// 32 位算法只使用 seed 的低 32 位，返回值也不超过 math.MaxUint32。
type Func func(key []byte, seed uint64) uint64

// Hash 已注册的哈希算法
type Hash struct {
	name Algorithm
	bits int
	fn   Func
}

// Name 返回算法名称
func (h Hash) Name() Algorithm {
	return h.name
}

// Bits 返回摘要位宽（32 或 64）
func (h Hash) Bits() int {
	return h.bits
}

// MaxDigest 返回摘要上界 2^bits - 1
func (h Hash) MaxDigest() uint64 {
	if h.bits >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(h.bits) - 1
}

// Sum 计算 key 在给定种子下的摘要
//
// 返回值会截断到算法位宽，防止自定义函数越界破坏阈值换算。
func (h Hash) Sum(key []byte, seed uint64) uint64 {
	return h.fn(key, seed) & h.MaxDigest()
}

var (
	registryMu sync.RWMutex
	registry   = make(map[Algorithm]Hash)
)

func init() {
	mustRegister(XXHash32, 32, func(key []byte, seed uint64) uint64 {
		return uint64(xxhash32.Checksum32S(key, uint32(seed)))
	})
	mustRegister(Spooky32, 32, func(key []byte, seed uint64) uint64 {
		return uint64(spooky.Hash32Seed(key, uint32(seed)))
	})
	mustRegister(Murmur332, 32, func(key []byte, seed uint64) uint64 {
		return uint64(murmur3.Sum32WithSeed(key, uint32(seed)))
	})
	mustRegister(XXHash64, 64, sumXXHash64)
	mustRegister(XXH3, 64, xxh3.HashSeed)
	mustRegister(Spooky64, 64, spooky.Hash64Seed)
}

func sumXXHash64(key []byte, seed uint64) uint64 {
	d := xxhash.NewWithSeed(seed)
	// Digest.Write 不会返回错误
	_, _ = d.Write(key)
	return d.Sum64()
}

func mustRegister(name Algorithm, bits int, fn Func) {
	if err := Register(name, bits, fn); err != nil {
		panic(err)
	}
}

// Register 注册新的哈希算法
//
// bits 只能是 32 或 64；name 为空或 fn 为 nil 时返回 ErrInvalidHashFunction，
// 同名算法已存在时返回 ErrDuplicateHashFunction。
func Register(name Algorithm, bits int, fn Func) error {
	if name == "" || fn == nil || (bits != 32 && bits != 64) {
		return fmt.Errorf("%w: name=%q bits=%d", ErrInvalidHashFunction, name, bits)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHashFunction, name)
	}
	registry[name] = Hash{name: name, bits: bits, fn: fn}
	return nil
}

// Lookup 按名称查找已注册的算法
func Lookup(name Algorithm) (Hash, error) {
	registryMu.RLock()
	h, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return Hash{}, fmt.Errorf("%w: %q", ErrUnknownHashFunction, string(name))
	}
	return h, nil
}

// ParseAlgorithm 解析算法名称（大小写不敏感，自动 TrimSpace）
//
// 空字符串解析为 Default。
func ParseAlgorithm(s string) (Algorithm, error) {
	normalized := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if normalized == "" {
		return Default, nil
	}
	if _, err := Lookup(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// Algorithms 返回所有已注册的算法名称（按字典序）
func Algorithms() []Algorithm {
	registryMu.RLock()
	names := make([]Algorithm, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()

	slices.Sort(names)
	return names
}
