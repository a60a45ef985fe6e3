package ising

import "math"

// Ensemble is a dim x dim periodic spin lattice stepped with the Metropolis
// rule. It is not safe for concurrent use.
type Ensemble struct {
	dim    int
	spins  []Spin
	params Params
	src    Source
}

// New allocates a dim x dim lattice and sets every cell, in row-major order,
// to -1 when a draw from src falls below 0.5 and to +1 otherwise.
// dim must be positive.
func New(dim int, params Params, src Source) *Ensemble {
	e := &Ensemble{
		dim:    dim,
		spins:  make([]Spin, dim*dim),
		params: params,
		src:    src,
	}
	for k := range e.spins {
		if src.Float64() < 0.5 {
			e.spins[k] = Down
		} else {
			e.spins[k] = Up
		}
	}
	return e
}

// NewFromSpins builds an ensemble over a copy of spins, given in row-major
// order. No draws are taken from src.
func NewFromSpins(dim int, spins []Spin, params Params, src Source) (*Ensemble, error) {
	if dim <= 0 || len(spins) != dim*dim {
		return nil, ErrDimensionMismatch
	}
	for k, s := range spins {
		if !s.Valid() {
			return nil, &SiteError{I: k / dim, J: k % dim, Value: s, Wrapped: ErrInvalidSpin}
		}
	}
	e := &Ensemble{
		dim:    dim,
		spins:  make([]Spin, len(spins)),
		params: params,
		src:    src,
	}
	copy(e.spins, spins)
	return e, nil
}

func (e *Ensemble) Dim() int       { return e.dim }
func (e *Ensemble) Params() Params { return e.params }

// Size returns the number of cells, which is also the number of steps in
// one sweep.
func (e *Ensemble) Size() int { return e.dim * e.dim }

// Spin returns the value at (i, j). Coordinates wrap.
func (e *Ensemble) Spin(i, j int) Spin {
	return e.spins[e.index(e.wrap(i), e.wrap(j))]
}

// Spins returns a row-major copy of the lattice.
func (e *Ensemble) Spins() []Spin {
	out := make([]Spin, len(e.spins))
	copy(out, e.spins)
	return out
}

// Rows returns a copy of the lattice as one slice per row.
func (e *Ensemble) Rows() [][]Spin {
	rows := make([][]Spin, e.dim)
	for i := range rows {
		rows[i] = make([]Spin, e.dim)
		copy(rows[i], e.spins[i*e.dim:(i+1)*e.dim])
	}
	return rows
}

func (e *Ensemble) index(i, j int) int { return i*e.dim + j }

func (e *Ensemble) wrap(k int) int {
	return (k%e.dim + e.dim) % e.dim
}

// SiteEnergy returns the local energy of (i, j). For each offset n in
// {-1, +1} it accumulates s[i+n][j] + s[i][j+n] with wrapped indices and
// scales the total by -J * s[i][j].
func (e *Ensemble) SiteEnergy(i, j int) float64 {
	sum := 0.0
	for _, n := range [2]int{-1, 1} {
		x := e.wrap(i + n)
		y := e.wrap(j + n)
		sum += float64(e.spins[e.index(x, j)]) + float64(e.spins[e.index(i, y)])
	}
	return sum * (-e.params.CouplingConst * float64(e.spins[e.index(i, j)]))
}

// EnergyDelta returns the energy change of flipping (i, j). Flipping negates
// the local term, so the change is -2 times SiteEnergy.
func (e *Ensemble) EnergyDelta(i, j int) float64 {
	return e.SiteEnergy(i, j) * -2.0
}

// StateEnergy returns the sum of SiteEnergy over every cell.
func (e *Ensemble) StateEnergy() float64 {
	total := 0.0
	for i := 0; i < e.dim; i++ {
		for j := 0; j < e.dim; j++ {
			total += e.SiteEnergy(i, j)
		}
	}
	return total
}

// UpdateSite flips (i, j). A cell that is not +1 or -1 is left untouched and
// reported as a *SiteError wrapping ErrInvalidSpin.
func (e *Ensemble) UpdateSite(i, j int) error {
	k := e.index(i, j)
	switch e.spins[k] {
	case Up:
		e.spins[k] = Down
	case Down:
		e.spins[k] = Up
	default:
		return &SiteError{I: i, J: j, Value: e.spins[k], Wrapped: ErrInvalidSpin}
	}
	return nil
}

// AcceptRatio returns the Metropolis acceptance probability for an energy
// change: 1 when the change is not positive, exp(-beta*delta) otherwise.
func AcceptRatio(delta, beta float64) float64 {
	if delta <= 0 {
		return 1
	}
	return math.Exp(-beta * delta)
}

// Step draws a site (row, then column) and a threshold r from the source,
// and flips the site when r is below the acceptance ratio.
func (e *Ensemble) Step() error {
	i := e.src.IntN(e.dim)
	j := e.src.IntN(e.dim)
	r := e.src.Float64()

	exponent := e.EnergyDelta(i, j)
	if math.IsNaN(exponent) {
		return &SiteError{I: i, J: j, Value: e.spins[e.index(i, j)], Wrapped: ErrInvalidExponent}
	}

	if r < AcceptRatio(exponent, e.params.Beta) {
		return e.UpdateSite(i, j)
	}
	return nil
}

// Sweep performs Size() steps and stops at the first error.
func (e *Ensemble) Sweep() error {
	n := e.Size()
	for k := 0; k < n; k++ {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}
