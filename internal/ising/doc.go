// Package ising implements a 2D Ising spin lattice driven by single-spin-flip
// Metropolis Monte Carlo.
//
// The package defines the simulation kernel:
//
//   - [Spin]: a lattice cell, always +1 or -1
//   - [Params]: coupling constant, inverse temperature and external field
//   - [Source]: the random stream consumed by construction and [Ensemble.Step]
//   - [Ensemble]: the lattice, its parameters and its owned source
//
// # Example
//
//	src := rand.New(rand.NewPCG(42, 0))
//	e := ising.New(10, ising.Params{CouplingConst: 1, Beta: 1}, src)
//	for range e.Size() {
//	    if err := e.Step(); err != nil {
//	        return err
//	    }
//	}
//
// # Boundaries
//
// Coordinates wrap modulo the lattice dimension, so the grid is a torus.
//
// # Thread Safety
//
// An Ensemble is NOT safe for concurrent use: its lattice and its source are
// mutated by every Step. To use several cores, run fully independent
// ensembles with [RunIndependent].
package ising
