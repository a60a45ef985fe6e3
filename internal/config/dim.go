package config

import (
	"fmt"
	"strconv"
)

// ParseDim parses a lattice dimension argument. On a malformed, out of range
// or non-positive value it returns DefaultDim together with the reason, so
// the caller can report it and carry on.
func ParseDim(arg string) (int, error) {
	dim, err := strconv.Atoi(arg)
	if err != nil {
		return DefaultDim, fmt.Errorf("invalid dimension %q: %w", arg, err)
	}
	if dim <= 0 {
		return DefaultDim, fmt.Errorf("invalid dimension %q: must be positive", arg)
	}
	return dim, nil
}
