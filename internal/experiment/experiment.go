package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/isingsim/internal/ising"
	"gonum.org/v1/gonum/stat"
)

// Config describes one run: the lattice, its constants and how long to drive it.
type Config struct {
	Dim    int
	Params ising.Params
	Seed   int64
	Source string
	Sweeps int
}

// Result is the outcome of a run. Elapsed covers the stepping loop only.
type Result struct {
	Dim        int
	Sweeps     int
	Steps      int
	Elapsed    time.Duration
	SweepTimes []time.Duration
}

// StepsPerSecond returns the stepping throughput of the run.
func (r *Result) StepsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Steps) / r.Elapsed.Seconds()
}

// SweepStats returns the mean and sample standard deviation of the sweep
// times. The deviation is zero with fewer than two sweeps.
func (r *Result) SweepStats() (mean, stdDev time.Duration) {
	switch len(r.SweepTimes) {
	case 0:
		return 0, 0
	case 1:
		return r.SweepTimes[0], 0
	}
	xs := make([]float64, len(r.SweepTimes))
	for i, d := range r.SweepTimes {
		xs[i] = float64(d)
	}
	m, sd := stat.MeanStdDev(xs, nil)
	return time.Duration(m), time.Duration(sd)
}

// Observer is notified after every completed sweep.
type Observer interface {
	OnSweep(sweep int, e *ising.Ensemble, elapsed time.Duration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(sweep int, e *ising.Ensemble, elapsed time.Duration)

func (f ObserverFunc) OnSweep(sweep int, e *ising.Ensemble, elapsed time.Duration) {
	f(sweep, e, elapsed)
}

// StepError records where a run stopped.
type StepError struct {
	Sweep   int
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("sweep %d step %d: %v", e.Sweep, e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}

var ErrNotSetup = errors.New("experiment not setup")

type Experiment struct {
	cfg       Config
	logger    *log.Logger
	ensemble  *ising.Ensemble
	observers []Observer
}

func New(cfg Config, logger *log.Logger) *Experiment {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Experiment{cfg: cfg, logger: logger}
}

func (e *Experiment) Config() Config { return e.cfg }

// Setup validates the configuration and constructs the ensemble.
func (e *Experiment) Setup(registry *Registry) error {
	if err := validateConfig(e.cfg); err != nil {
		return err
	}

	src, err := registry.GetSource(e.cfg.Source, e.cfg.Seed)
	if err != nil {
		return err
	}

	e.ensemble = ising.New(e.cfg.Dim, e.cfg.Params, src)
	e.logger.Debug("ensemble ready",
		"dim", e.cfg.Dim,
		"coupling", e.cfg.Params.CouplingConst,
		"beta", e.cfg.Params.Beta,
		"field", e.cfg.Params.MagField,
		"source", e.cfg.Source,
		"seed", e.cfg.Seed,
	)
	return nil
}

func (e *Experiment) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Ensemble returns the lattice built by Setup, or nil before Setup.
func (e *Experiment) Ensemble() *ising.Ensemble { return e.ensemble }

// Run performs cfg.Sweeps sweeps of Size() steps each. The context is
// checked between sweeps; an error from a step aborts the run.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.ensemble == nil {
		return nil, ErrNotSetup
	}

	n := e.ensemble.Size()
	result := &Result{
		Dim:        e.cfg.Dim,
		SweepTimes: make([]time.Duration, 0, e.cfg.Sweeps),
	}

	for s := 0; s < e.cfg.Sweeps; s++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		start := time.Now()
		for k := 0; k < n; k++ {
			if err := e.ensemble.Step(); err != nil {
				result.Elapsed += time.Since(start)
				e.logger.Error("step failed", "sweep", s, "step", k, "err", err)
				return result, &StepError{Sweep: s, Step: k, Wrapped: err}
			}
			result.Steps++
		}
		elapsed := time.Since(start)

		result.Elapsed += elapsed
		result.SweepTimes = append(result.SweepTimes, elapsed)
		result.Sweeps++

		for _, o := range e.observers {
			o.OnSweep(s, e.ensemble, elapsed)
		}
	}

	return result, nil
}

// RunReplicas sweeps n independent ensembles built from cfg with seeds
// cfg.Seed .. cfg.Seed+n-1 and returns their final states.
func RunReplicas(ctx context.Context, cfg Config, registry *Registry, n int) ([]*ising.Ensemble, time.Duration, error) {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if err := validateConfig(cfg); err != nil {
		return nil, 0, err
	}
	if n <= 0 {
		return nil, 0, fmt.Errorf("replicas must be positive, got %d", n)
	}

	build, err := registry.Builder(cfg.Source, cfg.Dim, cfg.Params)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	out, err := ising.RunIndependent(ctx, n, cfg.Seed, cfg.Sweeps, build)
	return out, time.Since(start), err
}

func validateConfig(cfg Config) error {
	if cfg.Dim <= 0 {
		return fmt.Errorf("dim must be positive, got %d", cfg.Dim)
	}
	if cfg.Sweeps < 0 {
		return fmt.Errorf("sweeps must not be negative, got %d", cfg.Sweeps)
	}
	return nil
}
