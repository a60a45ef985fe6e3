package config

import "sort"

// Presets are named starting points. Beta values bracket the critical
// coupling of the square lattice, ln(1+sqrt 2)/2 ~ 0.4407.
var Presets = map[string]*Config{
	"default": {
		Dim: DefaultDim, Sweeps: DefaultSweeps, Source: DefaultSource,
		Params: ParamsConfig{CouplingConst: 1.0, Beta: 1.0, MagField: 1.0},
	},
	"hot": {
		Dim: 32, Sweeps: 100, Source: DefaultSource,
		Params: ParamsConfig{CouplingConst: 1.0, Beta: 0.1},
	},
	"critical": {
		Dim: 64, Sweeps: 500, Source: DefaultSource,
		Params: ParamsConfig{CouplingConst: 1.0, Beta: 0.4407},
	},
	"cold": {
		Dim: 32, Sweeps: 200, Source: DefaultSource,
		Params: ParamsConfig{CouplingConst: 1.0, Beta: 2.0},
	},
	"antiferro": {
		Dim: 32, Sweeps: 200, Source: DefaultSource,
		Params: ParamsConfig{CouplingConst: -1.0, Beta: 1.0},
	},
	"large": {
		Dim: 256, Sweeps: 10, Source: DefaultSource,
		Params: ParamsConfig{CouplingConst: 1.0, Beta: 1.0, MagField: 1.0},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
