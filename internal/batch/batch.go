package batch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/experiment"
	"gopkg.in/yaml.v3"
)

// Scenario is a named list of runs executed in order.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Runs        []Run  `yaml:"runs"`
}

// Run is one entry of a scenario. Preset, when set, supplies every field the
// entry leaves at its zero value.
type Run struct {
	Name   string              `yaml:"name"`
	Preset string              `yaml:"preset"`
	Dim    int                 `yaml:"dim"`
	Sweeps int                 `yaml:"sweeps"`
	Seed   int64               `yaml:"seed"`
	Source string              `yaml:"source"`
	Params config.ParamsConfig `yaml:"params"`
}

// Outcome pairs a run with its result.
type Outcome struct {
	Run    Run
	Config experiment.Config
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Resolve turns a scenario entry into an experiment configuration.
func (r Run) Resolve() (experiment.Config, error) {
	base := config.DefaultConfig()
	if r.Preset != "" {
		base = config.GetPreset(r.Preset)
		if base == nil {
			return experiment.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", r.Preset, config.ListPresets())
		}
	}

	if r.Dim != 0 {
		base.Dim = r.Dim
	}
	if r.Sweeps != 0 {
		base.Sweeps = r.Sweeps
	}
	if r.Seed != 0 {
		base.Seed = r.Seed
	}
	if r.Source != "" {
		base.Source = r.Source
	}
	if r.Params.CouplingConst != 0 {
		base.Params.CouplingConst = r.Params.CouplingConst
	}
	if r.Params.Beta != 0 {
		base.Params.Beta = r.Params.Beta
	}
	if r.Params.MagField != 0 {
		base.Params.MagField = r.Params.MagField
	}

	return experiment.Config{
		Dim:    base.Dim,
		Params: base.IsingParams(),
		Seed:   base.Seed,
		Source: base.Source,
		Sweeps: base.Sweeps,
	}, nil
}

// RunScenario executes every run of the scenario and stops at the first
// failure, returning the outcomes gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *log.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	outcomes := make([]Outcome, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		cfg, err := run.Resolve()
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}

		logger.Info("starting run",
			"index", i+1, "of", len(scenario.Runs), "name", run.Name,
			"dim", cfg.Dim, "beta", cfg.Params.Beta, "sweeps", cfg.Sweeps)

		exp := experiment.New(cfg, logger)
		if err := exp.Setup(registry); err != nil {
			return outcomes, fmt.Errorf("run %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}

		outcomes = append(outcomes, Outcome{Run: run, Config: cfg, Result: result})
	}

	return outcomes, nil
}
