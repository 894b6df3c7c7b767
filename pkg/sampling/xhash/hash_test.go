package xhash

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinAlgorithms(t *testing.T) {
	tests := []struct {
		name Algorithm
		bits int
	}{
		{XXHash32, 32},
		{Spooky32, 32},
		{Murmur332, 32},
		{XXHash64, 64},
		{XXH3, 64},
		{Spooky64, 64},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			h, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, h.Name())
			assert.Equal(t, tt.bits, h.Bits())

			// 同一输入多次调用结果一致
			d1 := h.Sum([]byte("user-42"), 7)
			d2 := h.Sum([]byte("user-42"), 7)
			assert.Equal(t, d1, d2)
			assert.LessOrEqual(t, d1, h.MaxDigest())

			// 种子参与计算
			assert.NotEqual(t, h.Sum([]byte("user-42"), 7), h.Sum([]byte("user-42"), 8))
		})
	}
}

func TestKnownDigests(t *testing.T) {
	// 参考实现的公开测试向量
	h, err := Lookup(XXHash32)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x02CC5D05), h.Sum(nil, 0))

	h, err = Lookup(XXHash64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xEF46DB3751D8E999), h.Sum(nil, 0))
	assert.Equal(t, xxhash.Sum64String("abc"), h.Sum([]byte("abc"), 0))

	h, err = Lookup(Murmur332)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), h.Sum(nil, 0))
}

func TestMaxDigest(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint32), Hash{bits: 32}.MaxDigest())
	assert.Equal(t, uint64(math.MaxUint64), Hash{bits: 64}.MaxDigest())
}

func TestSumTruncatesToBits(t *testing.T) {
	h := Hash{name: "wide", bits: 32, fn: func([]byte, uint64) uint64 { return math.MaxUint64 }}
	assert.Equal(t, uint64(math.MaxUint32), h.Sum([]byte("x"), 0))
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("md5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownHashFunction))
	assert.Contains(t, err.Error(), "md5")
}

func TestRegister(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		fn := func([]byte, uint64) uint64 { return 0 }
		assert.ErrorIs(t, Register("", 32, fn), ErrInvalidHashFunction)
		assert.ErrorIs(t, Register("test_nil", 32, nil), ErrInvalidHashFunction)
		assert.ErrorIs(t, Register("test_bits", 16, fn), ErrInvalidHashFunction)
	})

	t.Run("duplicate", func(t *testing.T) {
		err := Register(XXHash32, 32, func([]byte, uint64) uint64 { return 0 })
		assert.ErrorIs(t, err, ErrDuplicateHashFunction)
	})

	t.Run("custom", func(t *testing.T) {
		name := Algorithm("test_constant")
		require.NoError(t, Register(name, 32, func(key []byte, _ uint64) uint64 {
			return uint64(len(key))
		}))
		t.Cleanup(func() {
			registryMu.Lock()
			delete(registry, name)
			registryMu.Unlock()
		})

		s, err := NewSalted(name, "salt")
		require.NoError(t, err)
		assert.Equal(t, uint64(4), s.Seed())
		assert.Equal(t, uint64(3), s.DigestString("abc"))
		assert.Contains(t, Algorithms(), name)
	})
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"", Default, false},
		{"xxhash32", XXHash32, false},
		{" SPOOKY32 ", Spooky32, false},
		{"Murmur3_32", Murmur332, false},
		{"sha1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownHashFunction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlgorithmsSorted(t *testing.T) {
	names := Algorithms()
	require.GreaterOrEqual(t, len(names), 6)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestConcurrentLookup(t *testing.T) {
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_, err := Lookup(XXH3)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
