package ising

import (
	"errors"
	"math"
	"testing"
)

// wrapLattice has distinct near and wrapped neighbours at (0,0) and (2,2).
var wrapLattice = []Spin{
	Up, Up, Down,
	Down, Down, Up,
	Down, Down, Up,
}

func TestNewInitializesEveryCell(t *testing.T) {
	e := New(16, Params{CouplingConst: 1, Beta: 1}, pcg(7))

	if e.Size() != 256 {
		t.Fatalf("expected size 256, got %d", e.Size())
	}

	ups := 0
	for k, s := range e.Spins() {
		if !s.Valid() {
			t.Fatalf("cell %d holds %d", k, s)
		}
		if s == Up {
			ups++
		}
	}
	if ups == 0 || ups == 256 {
		t.Errorf("expected a mix of spins, got %d up", ups)
	}
}

func TestNewThreshold(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.1, 0.5, 0.4999, 0.9}}
	e := New(2, Params{}, src)

	want := []Spin{Down, Up, Down, Up}
	got := e.Spins()
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("cell %d: expected %d, got %d", k, want[k], got[k])
		}
	}
}

func TestNewFromSpinsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		dim   int
		spins []Spin
		want  error
	}{
		{"short", 2, []Spin{Up, Up, Up}, ErrDimensionMismatch},
		{"zero dim", 0, nil, ErrDimensionMismatch},
		{"zero spin", 2, []Spin{Up, 0, Up, Up}, ErrInvalidSpin},
		{"large spin", 2, []Spin{Up, Up, Up, 3}, ErrInvalidSpin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromSpins(tt.dim, tt.spins, Params{}, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewFromSpinsCopiesInput(t *testing.T) {
	spins := filled(2, Up)
	e := mustFromSpins(2, spins, Params{}, nil)

	spins[0] = Down
	if e.Spin(0, 0) != Up {
		t.Error("ensemble shares the caller's slice")
	}
}

func TestSiteEnergyWrapsBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		coupling float64
		i, j     int
		expected float64
	}{
		{"top-left corner", 1, 0, 0, 2},
		{"bottom-right corner", 1, 2, 2, 2},
		{"centre", 1, 1, 1, 0},
		{"corner with J=2", 2, 0, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustFromSpins(3, wrapLattice, Params{CouplingConst: tt.coupling}, nil)
			if got := e.SiteEnergy(tt.i, tt.j); got != tt.expected {
				t.Errorf("SiteEnergy(%d,%d) = %v, want %v", tt.i, tt.j, got, tt.expected)
			}
		})
	}
}

func TestSiteEnergySign(t *testing.T) {
	params := Params{CouplingConst: 1}

	up := mustFromSpins(3, filled(3, Up), params, nil)
	if got := up.SiteEnergy(1, 1); got != -4 {
		t.Errorf("aligned up: expected -4, got %v", got)
	}

	down := mustFromSpins(3, filled(3, Down), params, nil)
	if got := down.SiteEnergy(0, 2); got != -4 {
		t.Errorf("aligned down: expected -4, got %v", got)
	}

	island := filled(3, Down)
	island[4] = Up
	anti := mustFromSpins(3, island, params, nil)
	if got := anti.SiteEnergy(1, 1); got != 4 {
		t.Errorf("anti-aligned: expected 4, got %v", got)
	}
}

func TestEnergyDelta(t *testing.T) {
	e := mustFromSpins(3, filled(3, Up), Params{CouplingConst: 1}, nil)
	if got := e.EnergyDelta(0, 1); got != 8 {
		t.Errorf("expected delta 8, got %v", got)
	}
}

func TestStateEnergy(t *testing.T) {
	e := mustFromSpins(3, filled(3, Up), Params{CouplingConst: 1}, nil)
	if got := e.StateEnergy(); got != -36 {
		t.Errorf("expected -36, got %v", got)
	}
}

func TestAcceptRatio(t *testing.T) {
	tests := []struct {
		delta, beta, expected float64
	}{
		{-8, 1, 1},
		{0, 1, 1},
		{8, 1, math.Exp(-8)},
		{4, 0.5, math.Exp(-2)},
		{4, 0, 1},
	}

	for _, tt := range tests {
		if got := AcceptRatio(tt.delta, tt.beta); got != tt.expected {
			t.Errorf("AcceptRatio(%v, %v) = %v, want %v", tt.delta, tt.beta, got, tt.expected)
		}
	}
}

func TestStepTwoByTwo(t *testing.T) {
	params := Params{CouplingConst: 1, Beta: 1}

	tests := []struct {
		name string
		r    float64
		want Spin
	}{
		{"rejects above exp(-8)", 0.5, Up},
		{"accepts below exp(-8)", 0.0001, Down},
		{"rejects at exp(-8)", math.Exp(-8), Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{ints: []int{0, 0}, floats: []float64{tt.r}}
			e := mustFromSpins(2, filled(2, Up), params, src)

			if got := e.SiteEnergy(0, 0); got != -4 {
				t.Fatalf("expected site energy -4, got %v", got)
			}
			if err := e.Step(); err != nil {
				t.Fatalf("step failed: %v", err)
			}
			if got := e.Spin(0, 0); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
			for k, s := range e.Spins()[1:] {
				if s != Up {
					t.Errorf("cell %d changed to %d", k+1, s)
				}
			}
		})
	}
}

func TestStepDrawOrder(t *testing.T) {
	spins := filled(3, Down)
	spins[1*3+2] = Up
	src := &scriptedSource{ints: []int{1, 2}, floats: []float64{0.99}}
	e := mustFromSpins(3, spins, Params{CouplingConst: 1, Beta: 1}, src)

	if err := e.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if e.Spin(1, 2) != Down {
		t.Error("expected row 1 col 2 to flip")
	}
}

func TestStepAcceptsDownhillRegardlessOfR(t *testing.T) {
	for _, r := range []float64{0, 0.5, 0.999999} {
		island := filled(3, Down)
		island[4] = Up
		src := &scriptedSource{ints: []int{1, 1}, floats: []float64{r}}
		e := mustFromSpins(3, island, Params{CouplingConst: 1, Beta: 10}, src)

		if err := e.Step(); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if e.Spin(1, 1) != Down {
			t.Errorf("r=%v: expected unconditional flip", r)
		}
	}
}

func TestUpdateSiteInvalidState(t *testing.T) {
	e := mustFromSpins(2, filled(2, Up), Params{CouplingConst: 1}, nil)
	e.spins[3] = 0

	err := e.UpdateSite(1, 1)
	if !errors.Is(err, ErrInvalidSpin) {
		t.Fatalf("expected ErrInvalidSpin, got %v", err)
	}

	var siteErr *SiteError
	if !errors.As(err, &siteErr) {
		t.Fatalf("expected *SiteError, got %T", err)
	}
	if siteErr.I != 1 || siteErr.J != 1 || siteErr.Value != 0 {
		t.Errorf("unexpected site error %+v", siteErr)
	}
	if e.spins[3] != 0 {
		t.Error("invalid cell should be left untouched")
	}
}

func TestStepPropagatesInvalidState(t *testing.T) {
	src := &scriptedSource{ints: []int{0, 1}, floats: []float64{0}}
	e := mustFromSpins(2, filled(2, Up), Params{CouplingConst: 1, Beta: 1}, src)
	e.spins[1] = 2

	if err := e.Step(); !errors.Is(err, ErrInvalidSpin) {
		t.Errorf("expected ErrInvalidSpin, got %v", err)
	}
}

func TestStepRejectsNaNExponent(t *testing.T) {
	src := &scriptedSource{ints: []int{0, 0}, floats: []float64{0}}
	e := mustFromSpins(2, filled(2, Up), Params{CouplingConst: math.NaN(), Beta: 1}, src)

	if err := e.Step(); !errors.Is(err, ErrInvalidExponent) {
		t.Errorf("expected ErrInvalidExponent, got %v", err)
	}
	if e.Spin(0, 0) != Up {
		t.Error("lattice changed on NaN exponent")
	}
}

func TestSizeIsStable(t *testing.T) {
	e := New(7, Params{CouplingConst: 1, Beta: 1}, pcg(1))
	for k := 0; k < 5; k++ {
		if e.Size() != 49 {
			t.Fatalf("expected 49, got %d", e.Size())
		}
		if err := e.Sweep(); err != nil {
			t.Fatalf("sweep failed: %v", err)
		}
	}
}

func TestSpinsStayValidAcrossSweeps(t *testing.T) {
	for _, beta := range []float64{0.1, 0.44, 2} {
		e := New(12, Params{CouplingConst: 1, Beta: beta, MagField: 1}, pcg(3))
		for s := 0; s < 50; s++ {
			if err := e.Sweep(); err != nil {
				t.Fatalf("beta %v sweep %d: %v", beta, s, err)
			}
		}
		for k, s := range e.Spins() {
			if !s.Valid() {
				t.Fatalf("beta %v: cell %d holds %d", beta, k, s)
			}
		}
	}
}

func TestSameSeedSameLattice(t *testing.T) {
	a := New(10, Params{CouplingConst: 1, Beta: 0.5}, pcg(99))
	b := New(10, Params{CouplingConst: 1, Beta: 0.5}, pcg(99))
	for s := 0; s < 10; s++ {
		_ = a.Sweep()
		_ = b.Sweep()
	}

	sa, sb := a.Spins(), b.Spins()
	for k := range sa {
		if sa[k] != sb[k] {
			t.Fatalf("lattices diverged at cell %d", k)
		}
	}
}

func TestRowsIsACopy(t *testing.T) {
	e := mustFromSpins(2, []Spin{Up, Down, Down, Up}, Params{}, nil)
	rows := e.Rows()
	if len(rows) != 2 || rows[0][1] != Down || rows[1][0] != Down {
		t.Fatalf("unexpected rows %v", rows)
	}
	rows[0][0] = Down
	if e.Spin(0, 0) != Up {
		t.Error("Rows shares storage with the ensemble")
	}
}

func TestSpinWrapsCoordinates(t *testing.T) {
	e := mustFromSpins(3, wrapLattice, Params{}, nil)
	if e.Spin(-1, 0) != e.Spin(2, 0) {
		t.Error("row -1 should resolve to row 2")
	}
	if e.Spin(0, 3) != e.Spin(0, 0) {
		t.Error("column 3 should resolve to column 0")
	}
}
