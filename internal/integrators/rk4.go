package integrators

import "github.com/san-kum/cablesim/internal/dynamo"

// RK4 is the classical fixed-step fourth-order Runge-Kutta scheme. The
// scratch buffers make a single RK4 unsafe for concurrent use; give each
// goroutine its own.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

// Step advances s from x to x+h.
func (r *RK4) Step(dyn dynamo.System, x float64, s dynamo.State, h float64) dynamo.State {
	n := len(s)
	r.ensureScratch(n)

	copy(r.k1, dyn.Derive(x, s))

	for i := 0; i < n; i++ {
		r.scratch[i] = s[i] + h*0.5*r.k1[i]
	}
	copy(r.k2, dyn.Derive(x+h*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = s[i] + h*0.5*r.k2[i]
	}
	copy(r.k3, dyn.Derive(x+h*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = s[i] + h*r.k3[i]
	}
	copy(r.k4, dyn.Derive(x+h, r.scratch))

	result := make(dynamo.State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = s[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}

// Integrate advances a (height, slope) state from x0 by steps fixed steps
// of h and returns a freshly allocated trajectory of length steps+1 with
// X[i] = x0 + i*h.
func (r *RK4) Integrate(dyn dynamo.System, s0 dynamo.State, x0, h float64, steps int) *dynamo.Trajectory {
	traj := dynamo.NewTrajectory(steps + 1)

	s := s0.Clone()
	traj.X[0] = x0
	traj.Y[0] = s[0]
	traj.Slope[0] = s[1]

	for i := 0; i < steps; i++ {
		x := x0 + float64(i)*h
		s = r.Step(dyn, x, s, h)

		traj.X[i+1] = x0 + float64(i+1)*h
		traj.Y[i+1] = s[0]
		traj.Slope[i+1] = s[1]
	}

	return traj
}

// IntegrateProblem runs Integrate from X0 with the problem's step H for
// StepCount steps.
func (r *RK4) IntegrateProblem(dyn dynamo.System, p dynamo.Problem, slope float64) *dynamo.Trajectory {
	return r.Integrate(dyn, dynamo.State{p.Y0, slope}, p.X0, p.H, p.StepCount())
}
