package main

import (
	"fmt"
	"time"

	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/spf13/cobra"
)

// resolveConfig layers preset, config file, ISING_* environment and flags,
// later layers winning. A positional dimension beats --dim.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dim") {
		cfg.Dim = parseDim(dimArg)
	}
	if len(args) > 0 {
		cfg.Dim = parseDim(args[0])
	}
	if flags.Changed("beta") {
		cfg.Params.Beta = beta
	}
	if flags.Changed("coupling") {
		cfg.Params.CouplingConst = coupling
	}
	if flags.Changed("field") {
		cfg.Params.MagField = field
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("sweeps") {
		cfg.Sweeps = sweeps
	}
	if flags.Changed("source") {
		cfg.Source = source
	}

	if cfg.Dim <= 0 {
		logger.Warn("non-positive dimension, using default", "dim", cfg.Dim, "default", config.DefaultDim)
		cfg.Dim = config.DefaultDim
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// parseDim falls back to the default dimension with a warning.
func parseDim(arg string) int {
	dim, err := config.ParseDim(arg)
	if err != nil {
		logger.Warn("malformed dimension, using default", "err", err, "dim", dim)
	}
	return dim
}

func experimentConfig(cfg *config.Config) experiment.Config {
	return experiment.Config{
		Dim:    cfg.Dim,
		Params: cfg.IsingParams(),
		Seed:   cfg.Seed,
		Source: cfg.Source,
		Sweeps: cfg.Sweeps,
	}
}
