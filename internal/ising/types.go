package ising

// Spin is the state of one lattice cell.
type Spin int8

const (
	Down Spin = -1
	Up   Spin = 1
)

// Valid reports whether s is one of the two spin states.
func (s Spin) Valid() bool {
	return s == Up || s == Down
}

// Params are the physical constants of an ensemble. They do not change after
// construction.
type Params struct {
	CouplingConst float64
	Beta          float64
	// MagField is recorded but not part of the energy.
	MagField float64
}

// Source is the random stream owned by an ensemble. Float64 returns a uniform
// value in [0, 1) and IntN a uniform integer in [0, n).
//
// *math/rand/v2.Rand satisfies Source.
type Source interface {
	Float64() float64
	IntN(n int) int
}
