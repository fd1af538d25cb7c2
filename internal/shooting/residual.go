package shooting

import (
	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/integrators"
)

// Residual maps an initial slope to y(xf) - yf. Every evaluation performs
// one full integration.
type Residual struct {
	problem dynamo.Problem
	dyn     dynamo.System
	integ   *integrators.RK4
	evals   int
}

func NewResidual(p dynamo.Problem, dyn dynamo.System, integ *integrators.RK4) *Residual {
	return &Residual{problem: p, dyn: dyn, integ: integ}
}

// Trajectory integrates from (x0, y0) with the given slope.
func (r *Residual) Trajectory(slope float64) *dynamo.Trajectory {
	r.evals++
	return r.integ.IntegrateProblem(r.dyn, r.problem, slope)
}

func (r *Residual) Eval(slope float64) float64 {
	return r.Trajectory(slope).Final() - r.problem.YF
}

// Evaluations counts integrations performed so far.
func (r *Residual) Evaluations() int {
	return r.evals
}
