package xsampling

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xsample/pkg/sampling/xhash"
)

const defaultSalt = "DEFAULT_SALT"

// builtins 内置算法；不使用 xhash.Algorithms()，避免测试注册的算法混入统计检验
var builtins = []xhash.Algorithm{
	xhash.XXHash32, xhash.Spooky32, xhash.Murmur332,
	xhash.XXHash64, xhash.XXH3, xhash.Spooky64,
}

func lineKey(s string) []byte { return []byte(s) }

func keys(n int) []string {
	out := make([]string, n)
	for i := range n {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func TestNewThresholdSampler(t *testing.T) {
	t.Run("invalid rate", func(t *testing.T) {
		for _, rate := range []float64{-0.1, 1.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
			s, err := NewThresholdSampler(xhash.XXHash32, defaultSalt, rate)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrInvalidRate, "rate=%v", rate)
		}
	})

	t.Run("unknown hash function", func(t *testing.T) {
		s, err := NewThresholdSampler("unknown_func", defaultSalt, 0.5)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, xhash.ErrUnknownHashFunction)
	})

	t.Run("threshold", func(t *testing.T) {
		s, err := NewThresholdSampler(xhash.XXHash32, defaultSalt, 0.5)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.Floor(0.5*math.MaxUint32)), s.Threshold())
		assert.Equal(t, 0.5, s.Rate())
		assert.Equal(t, xhash.XXHash32, s.Hasher().Algorithm())

		s, err = NewThresholdSampler(xhash.XXHash32, defaultSalt, 0)
		require.NoError(t, err)
		assert.Zero(t, s.Threshold())

		s, err = NewThresholdSampler(xhash.XXHash32, defaultSalt, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint32), s.Threshold())

		s, err = NewThresholdSampler(xhash.XXHash64, defaultSalt, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), s.Threshold())
	})
}

func TestNewThresholdSamplerWithHasher(t *testing.T) {
	_, err := NewThresholdSamplerWithHasher(nil, 0.5)
	assert.ErrorIs(t, err, ErrNilHasher)

	h, err := xhash.NewSalted(xhash.XXHash32, defaultSalt)
	require.NoError(t, err)

	_, err = NewThresholdSamplerWithHasher(h, 2)
	assert.ErrorIs(t, err, ErrInvalidRate)

	a, err := NewThresholdSamplerWithHasher(h, 0.5)
	require.NoError(t, err)
	b, err := NewThresholdSampler(xhash.XXHash32, defaultSalt, 0.5)
	require.NoError(t, err)

	for _, k := range keys(200) {
		assert.Equal(t, b.ShouldIncludeString(k), a.ShouldIncludeString(k))
	}
}

func TestThresholdSamplerConsistency(t *testing.T) {
	for _, name := range builtins {
		t.Run(string(name), func(t *testing.T) {
			ins := keys(100)

			s1, err := NewThresholdSampler(name, defaultSalt, 0.5)
			require.NoError(t, err)
			s2, err := NewThresholdSampler(name, defaultSalt, 0.5)
			require.NoError(t, err)

			outs1 := slices.Collect(Filter(s1, slices.Values(ins), lineKey))
			outs2 := slices.Collect(Filter(s2, slices.Values(ins), lineKey))

			assert.Equal(t, outs1, outs2)
			assert.Subset(t, ins, outs1)
			// 重复调用同一实例也一致
			assert.Equal(t, outs1, slices.Collect(Filter(s1, slices.Values(ins), lineKey)))
		})
	}
}

func TestThresholdSamplerRateAccuracy(t *testing.T) {
	ins := keys(30000)

	for _, name := range builtins {
		for _, rate := range []float64{1.0, 0.3, 0.0} {
			t.Run(string(name)+"/"+strconv.FormatFloat(rate, 'f', 1, 64), func(t *testing.T) {
				s, err := NewThresholdSampler(name, defaultSalt, rate)
				require.NoError(t, err)

				n := 0
				for range Filter(s, slices.Values(ins), lineKey) {
					n++
				}
				got := float64(n) / float64(len(ins))
				assert.InDelta(t, rate, got, 0.01)

				switch rate {
				case 0:
					assert.Zero(t, n)
				case 1:
					assert.Equal(t, len(ins), n)
				}
			})
		}
	}
}

func TestThresholdSamplerRateOneAdmitsMaxDigest(t *testing.T) {
	name := xhash.Algorithm("test_max_digest")
	err := xhash.Register(name, 32, func([]byte, uint64) uint64 {
		return math.MaxUint32
	})
	if err != nil {
		require.ErrorIs(t, err, xhash.ErrDuplicateHashFunction)
	}

	s, err := NewThresholdSampler(name, defaultSalt, 1)
	require.NoError(t, err)
	assert.True(t, s.ShouldIncludeString("any"))

	s, err = NewThresholdSampler(name, defaultSalt, 0.999999)
	require.NoError(t, err)
	assert.False(t, s.ShouldIncludeString("any"))
}

func TestThresholdSamplerColumnConsistency(t *testing.T) {
	type row struct {
		id   string
		user string
	}
	rows := make([]row, 0, 1000)
	for i := range 1000 {
		rows = append(rows, row{id: strconv.Itoa(i), user: "user" + strconv.Itoa(i%10)})
	}

	s, err := NewThresholdSampler(xhash.XXHash32, defaultSalt, 0.5)
	require.NoError(t, err)

	byColumn := slices.Collect(Filter(s, slices.Values(rows), func(r row) []byte { return []byte(r.id) }))

	var byLine []row
	for _, r := range rows {
		if s.ShouldIncludeString(r.id) {
			byLine = append(byLine, r)
		}
	}
	assert.Equal(t, byLine, byColumn)

	// 按 user 列采样时，同一 user 的所有行决策相同
	byUser := slices.Collect(Filter(s, slices.Values(rows), func(r row) []byte { return []byte(r.user) }))
	decided := make(map[string]bool)
	for _, r := range byUser {
		decided[r.user] = true
	}
	assert.Len(t, byUser, len(decided)*100)
}

func TestFilterStopsEarly(t *testing.T) {
	s, err := NewThresholdSampler(xhash.XXHash32, defaultSalt, 1)
	require.NoError(t, err)

	pulled := 0
	source := func(yield func(string) bool) {
		for i := 0; ; i++ {
			pulled++
			if !yield(strconv.Itoa(i)) {
				return
			}
		}
	}

	var got []string
	for k := range Filter(s, source, lineKey) {
		got = append(got, k)
		if len(got) == 5 {
			break
		}
	}
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, got)
	assert.Equal(t, 5, pulled)
}

func TestPredicate(t *testing.T) {
	s, err := NewThresholdSampler(xhash.Spooky32, defaultSalt, 0.5)
	require.NoError(t, err)

	_, err = Predicate[string](nil, lineKey)
	assert.ErrorIs(t, err, ErrNilSampler)
	_, err = Predicate[string](s, nil)
	assert.ErrorIs(t, err, ErrNilKeyFunc)

	pred, err := Predicate(s, func(r string) []byte { return []byte(strings.TrimSpace(r)) })
	require.NoError(t, err)
	for _, k := range keys(100) {
		assert.Equal(t, s.ShouldIncludeString(k), pred(" "+k+" "))
	}
}
