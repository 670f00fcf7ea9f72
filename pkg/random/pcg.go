package random

import (
	"sync"

	"github.com/MichaelTJones/pcg"
)

// pcgSequence selects the PCG stream. Generators with equal seeds and equal
// sequences produce identical draws.
const pcgSequence = 0xda3e39cb94b95bdb

// PCG is a small seedable generator backed by a 32-bit PCG stream.
// It is not safe for concurrent use.
type PCG struct {
	r *pcg.PCG32
}

var _ Source = (*PCG)(nil)

// NewPCG returns a generator seeded with seed.
func NewPCG(seed uint64) *PCG {
	p := &PCG{r: pcg.NewPCG32()}
	p.Seed(seed)
	return p
}

// Seed resets the generator to the start of the stream for seed.
func (p *PCG) Seed(seed uint64) {
	p.r.Seed(seed, pcgSequence)
}

// Float64 returns a draw in [0, 1) with 32 bits of resolution.
func (p *PCG) Float64() float64 {
	return float64(p.r.Random()) / (1 << 32)
}

// lockedSource serializes access to a Source.
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src so that it can be shared between goroutines.
func NewLocked(src Source) Source {
	return &lockedSource{src: src}
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}
