package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p. Values outside [0, 1] saturate.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// FillBits sets each of the first n bits of buf (LSB first within a byte) with
// probability p and clears the rest. Padding bits past n are left at zero.
func (r *RNG) FillBits(buf []byte, n int, p float64) {
	clear(buf)
	for i := 0; i < n; i++ {
		if r.Chance(p) {
			buf[i>>3] |= 1 << (i & 7)
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
