package serpent

import "math/rand/v2"

// Rand is the randomness the engine consumes (double-bite, chain-bite,
// combo-save, new-run rolls). Injected so tests can force outcomes.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) IntN(n int) int   { return rand.IntN(n) }

// SystemRand returns the process-wide math/rand source.
func SystemRand() Rand { return systemRand{} }
