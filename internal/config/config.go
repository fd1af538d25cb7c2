package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cablesim/internal/analysis"
	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/shooting"
)

type Config struct {
	Problem       dynamo.Problem `yaml:"problem"`
	MaxIterations int            `yaml:"max_iterations"`
	Output        OutputConfig   `yaml:"output"`
}

type OutputConfig struct {
	Plot       bool   `yaml:"plot"`
	PNG        string `yaml:"png"`
	PolyDegree int    `yaml:"poly_degree"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:       dynamo.DefaultProblem(),
		MaxIterations: shooting.DefaultMaxIterations,
		Output: OutputConfig{
			PolyDegree: analysis.DefaultDegree,
		},
	}
}

// Load overlays the file on DefaultConfig, so omitted keys keep their
// defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver overlays the file on a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
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

// SolverOptions translates the non-problem settings.
func (c *Config) SolverOptions() []shooting.Option {
	if c.MaxIterations <= 0 {
		return nil
	}
	return []shooting.Option{shooting.WithMaxIterations(c.MaxIterations)}
}
