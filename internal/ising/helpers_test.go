package ising

import "math/rand/v2"

// scriptedSource replays fixed draws so a step's outcome is fully determined.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) IntN(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func pcg(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func filled(dim int, s Spin) []Spin {
	spins := make([]Spin, dim*dim)
	for k := range spins {
		spins[k] = s
	}
	return spins
}

func mustFromSpins(dim int, spins []Spin, params Params, src Source) *Ensemble {
	e, err := NewFromSpins(dim, spins, params, src)
	if err != nil {
		panic(err)
	}
	return e
}
