// Package rng provides the explicit pseudo-random source threaded through
// chromosome generation, selection, crossover and mutation.
//
// A Source is never shared implicitly: every caller that needs randomness
// receives one, so a fixed seed reproduces an entire run.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is a seedable stream of uniform random draws.
type Source interface {
	// Seed resets the stream to the sequence identified by seed.
	Seed(seed uint64)
	// Bit returns a uniformly distributed bit.
	Bit() bool
	// Intn returns a uniformly distributed integer in [0,n). It panics if
	// n <= 0.
	Intn(n int) int
}

// Rand is the default Source, backed by a PCG generator. All 64 bits of the
// seed select the stream. It is not safe for concurrent use.
type Rand struct {
	pcg  *rand.PCG
	rand *rand.Rand
	seed uint64

	// bits buffers one 64-bit draw so Bit does not consume a full draw
	// per call.
	bits  uint64
	nbits uint
}

// New returns a Source seeded with seed.
func New(seed uint64) *Rand {
	pcg := rand.NewPCG(seed, seed)
	return &Rand{
		pcg:  pcg,
		rand: rand.New(pcg),
		seed: seed,
	}
}

// NewFromTime returns a Source seeded from the wall clock, together with the
// seed so the run can be reproduced.
func NewFromTime() (*Rand, uint64) {
	seed := uint64(time.Now().UnixNano())
	return New(seed), seed
}

// Seed resets the stream.
func (r *Rand) Seed(seed uint64) {
	r.pcg.Seed(seed, seed)
	r.seed = seed
	r.bits, r.nbits = 0, 0
}

// InitialSeed returns the seed the stream was last reset with.
func (r *Rand) InitialSeed() uint64 {
	return r.seed
}

// Bit returns a uniformly distributed bit.
func (r *Rand) Bit() bool {
	if r.nbits == 0 {
		r.bits = r.rand.Uint64()
		r.nbits = 64
	}
	bit := r.bits&1 == 1
	r.bits >>= 1
	r.nbits--
	return bit
}

// Intn returns a uniformly distributed integer in [0,n).
func (r *Rand) Intn(n int) int {
	return r.rand.IntN(n)
}
