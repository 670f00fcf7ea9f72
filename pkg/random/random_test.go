package random

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays a fixed sequence of draws.
type fixedSource struct {
	draws []float64
	i     int
}

func (f *fixedSource) Float64() float64 {
	v := f.draws[f.i%len(f.draws)]
	f.i++
	return v
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestRand(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		src := &fixedSource{draws: []float64{0.25}}
		assert.Equal(t, 2.5, Rand(src, 10, false))
		assert.Equal(t, 1, src.i)
	})

	t.Run("mirrored takes two draws", func(t *testing.T) {
		src := &fixedSource{draws: []float64{0.25, 0.75}}
		assert.Equal(t, -5.0, Rand(src, 10, true))
		assert.Equal(t, 2, src.i)
	})
}

func TestRandBounds(t *testing.T) {
	src := NewPCG(7)
	for i := 0; i < 10000; i++ {
		v := Rand(src, 3, false)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 3.0)

		m := Rand(src, 3, true)
		require.Greater(t, m, -3.0)
		require.Less(t, m, 3.0)
	}
}

func TestRandRange(t *testing.T) {
	src := NewPCG(8)
	for i := 0; i < 10000; i++ {
		v := RandRange(src, -2, 5)
		require.GreaterOrEqual(t, v, -2.0)
		require.Less(t, v, 5.0)
	}
	assert.Equal(t, 4.5, RandRange(&fixedSource{draws: []float64{0.5}}, 4, 5))
}

func TestIndex(t *testing.T) {
	src := NewPCG(9)
	seen := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		idx := Index(src, 6)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 6)
		seen[idx] = true
	}
	assert.Len(t, seen, 6)

	assert.Equal(t, -1, Index(src, 0))
	assert.Equal(t, -1, Index(src, -3))
	assert.Equal(t, 0, Index(src, 1))
	assert.Equal(t, 3, Index(&fixedSource{draws: []float64{1}}, 4))
}

func TestDistributeAmountHalves(t *testing.T) {
	tests := []struct {
		total, parts int
		want         []int
	}{
		{100, 3, []int{50, 25, 25}},
		{100, 1, []int{100}},
		{7, 4, []int{3, 2, 1, 1}},
		{0, 3, []int{0, 0, 0}},
		{1, 3, []int{0, 0, 1}},
	}
	for _, tt := range tests {
		got := DistributeAmountHalves(tt.total, tt.parts)
		assert.Equal(t, tt.want, got, "total=%d parts=%d", tt.total, tt.parts)
		assert.Equal(t, tt.total, sum(got))
	}
}

func TestDistributeAmountRandomSum(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	src := NewPCG(42)
	for trial := 0; trial < 2000; trial++ {
		total := r.Intn(10000)
		parts := 1 + r.Intn(20)

		got := DistributeAmountRandom(src, total, parts)
		require.Len(t, got, parts)
		require.Equal(t, total, sum(got))
		for _, p := range got {
			require.GreaterOrEqual(t, p, 0)
		}

		// Any Source must keep the invariant, including math/rand.
		got = DistributeAmountRandom(r, total, parts)
		require.Len(t, got, parts)
		require.Equal(t, total, sum(got))
	}
}

func TestDistributeAmountInvalidParts(t *testing.T) {
	assert.Nil(t, DistributeAmountRandom(NewPCG(1), 10, 0))
	assert.Nil(t, DistributeAmountHalves(10, -1))
}

func TestPCGDeterministic(t *testing.T) {
	a, b := NewPCG(1234), NewPCG(1234)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}

	c := NewPCG(4321)
	same := true
	a.Seed(1234)
	for i := 0; i < 10; i++ {
		if a.Float64() != c.Float64() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestPCGSeedRestarts(t *testing.T) {
	p := NewPCG(99)
	first := []float64{p.Float64(), p.Float64(), p.Float64()}
	p.Seed(99)
	assert.Equal(t, first, []float64{p.Float64(), p.Float64(), p.Float64()})
}

func TestIndexWithPCG(t *testing.T) {
	p := NewPCG(5)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n := Index(p, 10)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 10)
		seen[n] = true
	}
	assert.Len(t, seen, 10)
}

func TestLockedConcurrent(t *testing.T) {
	src := NewLocked(NewPCG(3))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				v := src.Float64()
				if v < 0 || v >= 1 {
					t.Errorf("draw out of range: %v", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}
