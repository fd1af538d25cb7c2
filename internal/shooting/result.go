package shooting

import (
	"errors"

	"github.com/san-kum/cablesim/internal/dynamo"
)

// Status is the controller state. Initializing and Iterating are transient;
// the other three are terminal.
type Status int

const (
	Initializing Status = iota
	Iterating
	Converged
	MaxIterationsReached
	DegenerateSecant
)

func (s Status) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max_iterations_reached"
	case DegenerateSecant:
		return "degenerate_secant"
	default:
		return "unknown"
	}
}

func (s Status) Terminal() bool {
	return s >= Converged
}

// Iterate is one (slope, residual) evaluation. N is 0 for the two seeds and
// counts secant updates from 1.
type Iterate struct {
	N        int
	Slope    float64
	Residual float64
}

// Observer is notified once per accepted secant iterate.
type Observer interface {
	OnIterate(it Iterate)
}

type ObserverFunc func(it Iterate)

func (f ObserverFunc) OnIterate(it Iterate) { f(it) }

// Result is produced once per Solve and never mutated afterwards.
type Result struct {
	Slope      float64
	Trajectory *dynamo.Trajectory
	Iterations int
	Converged  bool
	Status     Status
	// Residual is y(xf) - yf of Trajectory.
	Residual float64
	Seeds    [2]Iterate
	// Evaluations counts integrator sweeps, including the final one.
	Evaluations int
	Warnings    []error
}

// Err joins the warnings, or returns nil for a clean run.
func (r *Result) Err() error {
	return errors.Join(r.Warnings...)
}
