package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := NewXorshift32(42)
	b := NewXorshift32(42)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Next(), b.Next(), "draw %d", i)
	}
}

func TestZeroSeedUsesFallback(t *testing.T) {
	zero := NewXorshift32(0)
	fallback := NewXorshift32(fallbackSeed)

	assert.NotZero(t, zero.State())
	assert.Equal(t, fallback.State(), zero.State())

	for i := 0; i < 10000; i++ {
		zero.Next()
	}
	assert.NotZero(t, zero.State())
}

func TestSeedMixesThreeTimes(t *testing.T) {
	var x Xorshift32
	x.state = 7
	x.Next()
	x.Next()
	want := x.Next()

	assert.Equal(t, want, NewXorshift32(7).State())
}

func TestFloat01Range(t *testing.T) {
	x := NewXorshift32(1234)
	for i := 0; i < 5000; i++ {
		f := x.Float01()
		require.GreaterOrEqual(t, f, float32(0))
		require.LessOrEqual(t, f, float32(1))
	}
}

var intRangeCases = []struct {
	Max    int
	Expect func(int) bool
}{
	{0, func(v int) bool { return v == 0 }},
	{-5, func(v int) bool { return v == 0 }},
	{1, func(v int) bool { return v == 0 }},
	{30, func(v int) bool { return v >= 0 && v < 30 }},
	{1 << 32, func(v int) bool { return v >= 0 && v < 1<<32 }},
}

func TestIntRange(t *testing.T) {
	x := NewXorshift32(99)
	for _, tc := range intRangeCases {
		for i := 0; i < 200; i++ {
			v := x.IntRange(tc.Max)
			assert.True(t, tc.Expect(v), "IntRange(%d) = %d", tc.Max, v)
		}
	}
}

func TestIntRangeWideModulus(t *testing.T) {
	a, b := NewXorshift32(5), NewXorshift32(5)
	for i := 0; i < 50; i++ {
		assert.Equal(t, int(b.Next()), a.IntRange(1<<32+3))
	}
}
