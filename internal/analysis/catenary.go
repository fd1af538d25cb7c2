package analysis

import (
	"math"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/integrators"
	"github.com/san-kum/cablesim/internal/physics"
)

// Catenary is y = A*cosh((x-B)/A) + D.
type Catenary struct {
	A, B, D float64
}

// NewCatenary returns the closed-form solution through (X0, Y0) with the
// given initial slope; A = 1/C.
func NewCatenary(p dynamo.Problem, slope float64) Catenary {
	a := 1 / p.C
	b := p.X0 - a*math.Asinh(slope)
	d := p.Y0 - a*math.Cosh((p.X0-b)/a)
	return Catenary{A: a, B: b, D: d}
}

func (c Catenary) Y(x float64) float64 {
	return c.A*math.Cosh((x-c.B)/c.A) + c.D
}

func (c Catenary) Slope(x float64) float64 {
	return math.Sinh((x - c.B) / c.A)
}

// AnalyticComparison is the deviation of a trajectory from the closed form.
type AnalyticComparison struct {
	Catenary Catenary
	MaxError float64
	RMSError float64
}

func CompareAnalytic(p dynamo.Problem, traj *dynamo.Trajectory, slope float64) AnalyticComparison {
	cat := NewCatenary(p, slope)
	errs := make([]float64, traj.Len())
	for i, x := range traj.X {
		errs[i] = math.Abs(traj.Y[i] - cat.Y(x))
	}
	st := NewStats(errs)
	return AnalyticComparison{Catenary: cat, MaxError: st.Max, RMSError: st.RMS}
}

// ConvergenceRow is one refinement level of a convergence study.
type ConvergenceRow struct {
	Steps int
	H     float64
	Error float64
	// Order is log2 of the error ratio to the previous row; zero on the
	// first row.
	Order float64
}

// ConvergenceStudy integrates the initial-value problem with slope at the
// problem's grid and levels-1 successive halvings, measuring the terminal
// height error against the closed form.
func ConvergenceStudy(p dynamo.Problem, slope float64, levels int) []ConvergenceRow {
	dyn := physics.NewCable(p.C)
	cat := NewCatenary(p, slope)

	rows := make([]ConvergenceRow, 0, levels)
	steps, h := p.StepCount(), p.H
	for i := 0; i < levels; i++ {
		traj := integrators.NewRK4().Integrate(dyn, dynamo.State{p.Y0, slope}, p.X0, h, steps)
		row := ConvergenceRow{
			Steps: steps,
			H:     h,
			Error: math.Abs(traj.Final() - cat.Y(traj.X[traj.Len()-1])),
		}
		if i > 0 && row.Error > 0 {
			row.Order = math.Log2(rows[i-1].Error / row.Error)
		}
		rows = append(rows, row)
		steps *= 2
		h /= 2
	}
	return rows
}
