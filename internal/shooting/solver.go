package shooting

import (
	"fmt"
	"math"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/integrators"
	"github.com/san-kum/cablesim/internal/physics"
)

const (
	DefaultMaxIterations = 100

	// DegenerateThreshold is the smallest |F(z_n) - F(z_n-1)| the secant
	// update divides by.
	DegenerateThreshold = 1e-14

	// WarningFactor scales Tol into the unreliable-output threshold.
	WarningFactor = 10.0
)

type Option func(*Solver)

// WithSystem replaces the cable vector field.
func WithSystem(dyn dynamo.System) Option {
	return func(s *Solver) { s.dyn = dyn }
}

func WithObserver(o Observer) Option {
	return func(s *Solver) { s.observers = append(s.observers, o) }
}

func WithMaxIterations(n int) Option {
	return func(s *Solver) { s.maxIterations = n }
}

type Solver struct {
	problem       dynamo.Problem
	dyn           dynamo.System
	integ         *integrators.RK4
	observers     []Observer
	maxIterations int
}

// New validates p before anything else happens; an invalid problem never
// reaches the integrator.
func New(p dynamo.Problem, opts ...Option) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &Solver{
		problem:       p,
		integ:         integrators.NewRK4(),
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.maxIterations < 1 {
		return nil, &dynamo.ConfigError{Field: "max_iterations", Value: float64(s.maxIterations), Reason: "must be at least 1"}
	}
	if s.dyn == nil {
		s.dyn = physics.NewCable(p.C)
	}
	return s, nil
}

// Solve is New followed by Solver.Solve.
func Solve(p dynamo.Problem, opts ...Option) (*Result, error) {
	s, err := New(p, opts...)
	if err != nil {
		return nil, err
	}
	return s.Solve(), nil
}

// Solve runs the secant search. It always returns a result; numerical
// failure is reported through Status and Warnings.
func (s *Solver) Solve() *Result {
	p := s.problem
	res := NewResidual(p, s.dyn, s.integ)

	prev := Iterate{Slope: p.Seed0, Residual: res.Eval(p.Seed0)}
	curr := Iterate{Slope: p.Seed1, Residual: res.Eval(p.Seed1)}
	seeds := [2]Iterate{prev, curr}

	status := Iterating
	iterations := 0

	// Negated comparisons keep NaN residuals from looking converged and
	// route a NaN denominator to the degenerate branch.
	for !(math.Abs(curr.Residual) <= p.Tol) && iterations < s.maxIterations {
		denom := curr.Residual - prev.Residual
		if !(math.Abs(denom) >= DegenerateThreshold) {
			status = DegenerateSecant
			break
		}

		z := curr.Slope - curr.Residual*(curr.Slope-prev.Slope)/denom
		iterations++

		next := Iterate{N: iterations, Slope: z, Residual: res.Eval(z)}
		for _, o := range s.observers {
			o.OnIterate(next)
		}

		prev, curr = curr, next
	}

	if status == Iterating {
		if math.Abs(curr.Residual) <= p.Tol {
			status = Converged
		} else {
			status = MaxIterationsReached
		}
	}

	// The returned trajectory is always recomputed from the reported slope.
	traj := res.Trajectory(curr.Slope)
	residual := traj.Final() - p.YF

	result := &Result{
		Slope:       curr.Slope,
		Trajectory:  traj,
		Iterations:  iterations,
		Converged:   status == Converged,
		Status:      status,
		Residual:    residual,
		Seeds:       seeds,
		Evaluations: res.Evaluations(),
	}

	switch status {
	case DegenerateSecant:
		result.Warnings = append(result.Warnings,
			fmt.Errorf("%w: |F(z_n)-F(z_n-1)| < %g after %d iterations", ErrDegenerateSecant, DegenerateThreshold, iterations))
	case MaxIterationsReached:
		result.Warnings = append(result.Warnings,
			fmt.Errorf("%w: %d iterations", ErrNonConvergence, iterations))
	}
	if !(math.Abs(residual) <= WarningFactor*p.Tol) {
		result.Warnings = append(result.Warnings,
			fmt.Errorf("%w: |F|=%.2e, tol=%.2e", ErrResidualAboveTolerance, math.Abs(residual), p.Tol))
	}
	if !traj.IsValid() {
		result.Warnings = append(result.Warnings, dynamo.ErrInvalidState)
	}

	return result
}
