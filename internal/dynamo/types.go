package dynamo

import "math"

// State is (height, slope) for the cable problem, but nothing here assumes
// a particular dimension.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is a first-order vector field dS/dx = f(x, S). Autonomous systems
// ignore x.
type System interface {
	Derive(x float64, s State) State
	StateDim() int
}

// Trajectory holds the integrated solution as three parallel sequences.
// Index 0 is the initial condition.
type Trajectory struct {
	X     []float64
	Y     []float64
	Slope []float64
}

func NewTrajectory(n int) *Trajectory {
	return &Trajectory{
		X:     make([]float64, n),
		Y:     make([]float64, n),
		Slope: make([]float64, n),
	}
}

func (t *Trajectory) Len() int {
	return len(t.X)
}

// Final returns the height at the last grid point.
func (t *Trajectory) Final() float64 {
	return t.Y[len(t.Y)-1]
}

func (t *Trajectory) IsValid() bool {
	return State(t.Y).IsValid() && State(t.Slope).IsValid()
}

// Argmin returns the index of the lowest point.
func (t *Trajectory) Argmin() int {
	idx := 0
	for i, y := range t.Y {
		if y < t.Y[idx] {
			idx = i
		}
	}
	return idx
}
