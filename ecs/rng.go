package ecs

import (
	"math"
	"math/rand/v2"
)

// RNG is the single seedable source of simulation randomness.
type RNG struct {
	r *rand.Rand
}

func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Range returns a value in [lo, hi).
func (g *RNG) Range(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

// Chance reports true with probability p.
func (g *RNG) Chance(p float64) bool {
	return p > 0 && g.r.Float64() < p
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (g *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.IntN(n)
}

// Angle returns a heading in [0, 2π).
func (g *RNG) Angle() float64 {
	return g.r.Float64() * 2 * math.Pi
}

// Centered returns a value in [-0.5, 0.5).
func (g *RNG) Centered() float64 {
	return g.r.Float64() - 0.5
}

// Weighted picks an index with probability proportional to its weight.
// Non-positive weights never win; -1 means nothing could be picked.
func (g *RNG) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	roll := g.r.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		roll -= w
		if roll < 0 {
			return i
		}
	}
	return last
}
