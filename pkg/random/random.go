// Package random draws scalars, indices and integer partitions from an
// explicitly passed uniform generator. Nothing in this package keeps a
// generator of its own.
package random

// Source yields independent uniform draws in [0, 1).
//
// *PCG and *math/rand.Rand both satisfy Source. A Source is not assumed to
// be safe for concurrent use; give each goroutine its own or wrap a shared
// one with NewLocked.
type Source interface {
	Float64() float64
}

// Rand draws a scalar scaled by rng. When mirror is set it returns the
// difference of two independent draws, u1*rng - u2*rng, which spans
// (-rng, rng) with a triangular distribution peaking at zero. Otherwise it
// returns u*rng, uniform on [0, rng).
func Rand(src Source, rng float64, mirror bool) float64 {
	v := src.Float64() * rng
	if mirror {
		v -= src.Float64() * rng
	}
	return v
}

// RandRange draws uniformly from [min, max).
func RandRange(src Source, min, max float64) float64 {
	return min + Rand(src, max-min, false)
}

// Index draws an integer uniformly from [0, n-1]. It returns -1 when n <= 0.
func Index(src Source, n int) int {
	if n <= 0 {
		return -1
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		// Guard against a Source that returns exactly 1.
		i = n - 1
	}
	return i
}

// DistributeAmountRandom splits total into parts integers. Each part but the
// last takes a non-mirrored draw over the amount still remaining, truncated
// toward zero; the last part takes whatever is left. The result always has
// exactly parts entries summing to total. It returns nil when parts < 1.
func DistributeAmountRandom(src Source, total, parts int) []int {
	return distribute(total, parts, func(remaining int) int {
		return int(Rand(src, float64(remaining), false))
	})
}

// DistributeAmountHalves splits total into parts integers where each part
// but the last takes half of the remaining amount (integer division) and
// the last takes the rest. DistributeAmountHalves(100, 3) is [50 25 25].
func DistributeAmountHalves(total, parts int) []int {
	return distribute(total, parts, func(remaining int) int {
		return remaining / 2
	})
}

func distribute(total, parts int, take func(remaining int) int) []int {
	if parts < 1 {
		return nil
	}
	out := make([]int, parts)
	remaining := total
	for i := 0; i < parts-1; i++ {
		out[i] = take(remaining)
		remaining -= out[i]
	}
	out[parts-1] = remaining
	return out
}
