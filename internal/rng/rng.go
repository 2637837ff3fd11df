// Package rng wraps math/rand so every random draw in the scene can be seeded.
package rng

import (
	"math/rand"
	"time"
)

// Source is a seedable uniform generator. It is not safe for concurrent use;
// the scene owns one and only touches it from the frame loop.
type Source struct {
	rng  *rand.Rand
	seed int64
}

// New creates a source with the given seed. A zero seed picks one from the
// current time.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 { return s.seed }

// Range returns a number in [min, max).
func (s *Source) Range(min, max float64) float64 {
	return (max-min)*s.rng.Float64() + min
}
