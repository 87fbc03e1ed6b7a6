package rng

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLCGDeterministic(t *testing.T) {
	a := NewLCG(12345)
	b := NewLCG(12345)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(100), b.Intn(100))
	}
	assert.Equal(t, uint64(100), a.Draws())
}

func TestLCGRange(t *testing.T) {
	g := NewLCG(1)
	for i := 0; i < 1000; i++ {
		v := g.Intn(7)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 7)
	}
	big := g.Intn(1 << 20)
	assert.GreaterOrEqual(t, big, 0)
	assert.Less(t, big, 1<<20)
}

func TestLCGNonPositiveDoesNotAdvance(t *testing.T) {
	g := NewLCG(99)
	seed := g.Seed()
	assert.Equal(t, 0, g.Intn(0))
	assert.Equal(t, 0, g.Intn(-4))
	assert.Equal(t, seed, g.Seed())
}

func TestLCGReseed(t *testing.T) {
	g := NewLCG(7)
	first := []int{g.Intn(1000), g.Intn(1000), g.Intn(1000)}
	g.SetSeed(7)
	second := []int{g.Intn(1000), g.Intn(1000), g.Intn(1000)}
	assert.Equal(t, first, second)
}

func TestSequence(t *testing.T) {
	s := &Sequence{Values: []int{3, 150, -2}}
	assert.Equal(t, 3, s.Intn(10))
	assert.Equal(t, 99, s.Intn(100))
	assert.Equal(t, 0, s.Intn(100))
	assert.Equal(t, 3, s.Intn(10))
	assert.Equal(t, 4, s.Consumed())
}

func TestFromRand(t *testing.T) {
	r := FromRand(rand.New(rand.NewSource(12345)))
	v := r.Intn(50)
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 50)
	assert.Equal(t, 0, r.Intn(0))
}
