// Package random is the pseudorandom source injected into every bot
// subsystem, so decision jitter can be seeded for tests and replays.
package random

//go:generate mockgen -source=random.go -destination=mocks/mock_random.go -package=mocks

import "math/rand/v2"

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Default returns the process-wide generator.
func Default() Source {
	return globalSource{}
}

// New returns a deterministic generator for the given seed.
func New(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Range returns a value in [lo, hi) drawn from src.
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Signed returns a value in [-1, 1) drawn from src.
func Signed(src Source) float64 {
	return src.Float64()*2 - 1
}

// Chance reports whether a draw from src falls under p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Fixed always returns the same value. Useful where determinism matters
// more than variety, e.g. replay verification.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }
