package ising

import (
	"errors"
	"fmt"
)

// Domain errors for lattice operations.
var (
	// ErrInvalidSpin indicates a cell holding something other than +1 or -1.
	ErrInvalidSpin = errors.New("ising: invalid spin value (expected +1 or -1)")

	// ErrDimensionMismatch indicates a spin slice whose length is not dim*dim.
	ErrDimensionMismatch = errors.New("ising: spin count does not match dimension")

	// ErrInvalidExponent indicates an energy change that is not a number,
	// which leaves the acceptance ratio undefined.
	ErrInvalidExponent = errors.New("ising: energy change is NaN")
)

// SiteError wraps an error with the lattice site it was raised for.
type SiteError struct {
	I, J    int
	Value   Spin
	Wrapped error
}

func (e *SiteError) Error() string {
	return fmt.Sprintf("site (%d,%d) value %d: %v", e.I, e.J, e.Value, e.Wrapped)
}

func (e *SiteError) Unwrap() error {
	return e.Wrapped
}
