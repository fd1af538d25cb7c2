package config

import (
	"sort"

	"github.com/san-kum/cablesim/internal/dynamo"
)

func preset(mutate func(p *dynamo.Problem)) *Config {
	cfg := DefaultConfig()
	mutate(&cfg.Problem)
	return cfg
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"shallow": preset(func(p *dynamo.Problem) { p.C = 0.02 }),
	"heavy":   preset(func(p *dynamo.Problem) { p.C = 0.08 }),
	"level": preset(func(p *dynamo.Problem) {
		p.Y0, p.YF = 10, 10
	}),
	"steep": preset(func(p *dynamo.Problem) {
		p.Y0, p.YF = 25, 5
		p.Seed0, p.Seed1 = -2.0, -1.0
	}),
	"fine": preset(func(p *dynamo.Problem) {
		p.H, p.Tol = 0.001, 1e-8
	}),
}

// GetPreset returns a copy so callers may edit it freely.
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
