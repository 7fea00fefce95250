// Package entropy provides the single random stream behind every
// probabilistic decision. The stream is seedable so runs are reproducible:
// each state's action synthesis and several transition predicates draw from
// it, and tests inject fixed sources in its place.
package entropy

import "math/rand"

// Source is the draw interface components depend on.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// IntN returns a uniform draw in [0, n). n must be positive.
	IntN(n int) int
}

// Stream is the production Source: a seeded math/rand generator.
// Not safe for concurrent use; the decision core runs on a single goroutine.
type Stream struct {
	rng *rand.Rand
}

// NewStream returns a Stream seeded for reproducible runs.
func NewStream(seed int64) *Stream {
	return &Stream{rng: rand.New(rand.NewSource(seed))}
}

func (s *Stream) Float64() float64 { return s.rng.Float64() }

func (s *Stream) IntN(n int) int { return s.rng.Intn(n) }

// Chance draws a Bernoulli outcome with probability p. p is clamped into
// [0, 1] before the draw.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Jitter returns a uniform integer draw in [-span, span].
func Jitter(src Source, span int) int {
	if span <= 0 {
		return 0
	}
	return src.IntN(2*span+1) - span
}
