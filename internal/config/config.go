package config

import (
	"fmt"
	"os"

	"github.com/san-kum/isingsim/internal/ising"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDim      = 10
	DefaultCoupling = 1.0
	DefaultBeta     = 1.0
	DefaultField    = 1.0
	DefaultSweeps   = 1
	DefaultSource   = "pcg"
)

type Config struct {
	Dim    int          `yaml:"dim" env:"ISING_DIM"`
	Seed   int64        `yaml:"seed" env:"ISING_SEED"`
	Sweeps int          `yaml:"sweeps" env:"ISING_SWEEPS"`
	Source string       `yaml:"source" env:"ISING_SOURCE"`
	Params ParamsConfig `yaml:"params"`
}

type ParamsConfig struct {
	CouplingConst float64 `yaml:"coupling_const" env:"ISING_COUPLING"`
	Beta          float64 `yaml:"beta" env:"ISING_BETA"`
	MagField      float64 `yaml:"mag_field" env:"ISING_FIELD"`
}

func DefaultConfig() *Config {
	return &Config{
		Dim:    DefaultDim,
		Sweeps: DefaultSweeps,
		Source: DefaultSource,
		Params: ParamsConfig{
			CouplingConst: DefaultCoupling,
			Beta:          DefaultBeta,
			MagField:      DefaultField,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of a copy of base. Keys missing from the
// file keep the base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) IsingParams() ising.Params {
	return ising.Params{
		CouplingConst: c.Params.CouplingConst,
		Beta:          c.Params.Beta,
		MagField:      c.Params.MagField,
	}
}
