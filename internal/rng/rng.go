// Package rng provides the deterministic random source the simulation
// draws from. Every peer replaying the same casts from the same seed sees
// the same sequence, so nothing in the tick path may use another source.
package rng

import "math/rand"

// Source is the draw interface consumed by the engine.
type Source interface {
	// Intn returns a value in [0, n). n <= 0 yields 0 without advancing.
	Intn(n int) int
}

// LCG is the linear congruential generator used by the engine.
type LCG struct {
	seed  uint32
	draws uint64
}

const (
	lcgMultiplier = 0x015A4E35
	lcgIncrement  = 1
)

// NewLCG creates a generator with the given seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{seed: seed}
}

// SetSeed resets the generator.
func (g *LCG) SetSeed(seed uint32) {
	g.seed = seed
	g.draws = 0
}

// Seed returns the current internal state.
func (g *LCG) Seed() uint32 {
	return g.seed
}

// Draws returns how many values were produced since the last reseed.
func (g *LCG) Draws() uint64 {
	return g.draws
}

func (g *LCG) advance() int32 {
	g.seed = lcgMultiplier*g.seed + lcgIncrement
	g.draws++
	v := int32(g.seed)
	if v < 0 {
		// abs(MinInt32) stays negative; fold it like the reference generator
		if v == -1<<31 {
			return 0
		}
		return -v
	}
	return v
}

func (g *LCG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if n < 0xFFFF {
		return int(g.advance()>>16) % n
	}
	return int(g.advance()) % n
}

// Rand adapts a *rand.Rand so tests and tools can use a math/rand stream.
type Rand struct {
	r *rand.Rand
}

// FromRand wraps r.
func FromRand(r *rand.Rand) *Rand {
	return &Rand{r: r}
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.Intn(n)
}

// Sequence replays fixed values, cycling when exhausted. Useful for
// forcing a particular hit or damage roll in tests.
type Sequence struct {
	Values []int
	pos    int
}

func (s *Sequence) Intn(n int) int {
	if n <= 0 || len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Consumed reports how many values were drawn.
func (s *Sequence) Consumed() int {
	return s.pos
}
