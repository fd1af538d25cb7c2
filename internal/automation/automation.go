// Package automation runs scripted sequences of cable problems and
// single-parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/cablesim/internal/config"
	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/logging"
	"github.com/san-kum/cablesim/internal/metrics"
	"github.com/san-kum/cablesim/internal/shooting"
	"github.com/san-kum/cablesim/internal/store"
)

// Scenario defines a scripted sequence of solves
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides
// individual problem parameters by name.
type ScenarioStep struct {
	Name          string             `yaml:"name"`
	Preset        string             `yaml:"preset"`
	Params        map[string]float64 `yaml:"params"`
	MaxIterations int                `yaml:"max_iterations"`
	Save          bool               `yaml:"save"`
}

// LoadScenario loads a scenario from a YAML file
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

type StepResult struct {
	Step    ScenarioStep
	Problem dynamo.Problem
	Result  *shooting.Result
	Elapsed time.Duration
	// RunID is set when the step was saved.
	RunID string
}

func (s ScenarioStep) config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if err := cfg.Problem.SetParams(s.Params); err != nil {
		return nil, err
	}
	if s.MaxIterations > 0 {
		cfg.MaxIterations = s.MaxIterations
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps marked save are stored in
// st when it is non-nil. The first invalid step aborts the scenario.
func RunScenario(ctx context.Context, scenario *Scenario, st *store.Store, logger *zap.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Info("scenario step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("name", step.Name),
		)

		cfg, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		opts := append(cfg.SolverOptions(), shooting.WithObserver(logging.NewIterationLogger(logger)))
		start := time.Now()
		res, err := shooting.Solve(cfg.Problem, opts...)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		sr := StepResult{Step: step, Problem: cfg.Problem, Result: res, Elapsed: time.Since(start)}
		logging.Summary(logger, res)

		if step.Save && st != nil {
			runID, err := st.Save(store.NewRunMetadata(cfg.Problem, res, sr.Elapsed), res.Trajectory)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = runID
		}

		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep solves the base problem across a range of one parameter
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds one sweep point. Properties are zero unless the run
// converged.
type SweepResult struct {
	ParamValue float64
	Slope      float64
	Status     shooting.Status
	Iterations int
	Properties metrics.Properties
	// Err is set when this parameter value made the problem invalid.
	Err error
}

// RunSweep executes a parameter sweep. Invalid points are recorded rather
// than aborting the sweep.
func RunSweep(ctx context.Context, base dynamo.Problem, sweep *ParameterSweep, opts ...shooting.Option) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if err := base.SetParam(sweep.ParamName, sweep.ParamMin); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		p := base
		_ = p.SetParam(sweep.ParamName, paramVal)

		res, err := shooting.Solve(p, opts...)
		if err != nil {
			results = append(results, SweepResult{ParamValue: paramVal, Err: err})
			continue
		}

		sr := SweepResult{
			ParamValue: paramVal,
			Slope:      res.Slope,
			Status:     res.Status,
			Iterations: res.Iterations,
		}
		if res.Converged {
			sr.Properties = metrics.Compute(p, res.Trajectory)
		}
		results = append(results, sr)
	}

	return results, nil
}
