package analysis

import "github.com/san-kum/cablesim/internal/dynamo"

// Differentiate estimates y' and y'' on a uniform grid. Interior points use
// central differences; the ends use second-order one-sided stencils for y'
// and the four-point stencil for y''.
func Differentiate(y []float64, h float64) (d1, d2 []float64, err error) {
	n := len(y)
	if n < 4 {
		return nil, nil, ErrTooFewPoints
	}
	d1 = make([]float64, n)
	d2 = make([]float64, n)
	h2 := h * h

	for i := 1; i < n-1; i++ {
		d1[i] = (y[i+1] - y[i-1]) / (2 * h)
		d2[i] = (y[i+1] - 2*y[i] + y[i-1]) / h2
	}

	d1[0] = (-3*y[0] + 4*y[1] - y[2]) / (2 * h)
	d1[n-1] = (3*y[n-1] - 4*y[n-2] + y[n-3]) / (2 * h)

	d2[0] = (2*y[0] - 5*y[1] + 4*y[2] - y[3]) / h2
	d2[n-1] = (2*y[n-1] - 5*y[n-2] + 4*y[n-3] - y[n-4]) / h2

	return d1, d2, nil
}

// Verification holds point-wise residuals of the cable equation.
type Verification struct {
	D1        []float64
	D2        []float64
	RHS       []float64
	Residuals []float64
	Stats     Stats
	Samples   []Sample
}

// VerifyFiniteDifference checks the trajectory heights alone; the
// integrator's slopes are not used.
func VerifyFiniteDifference(p dynamo.Problem, traj *dynamo.Trajectory) (*Verification, error) {
	d1, d2, err := Differentiate(traj.Y, gridStep(traj))
	if err != nil {
		return nil, err
	}
	rhs, res := equationResiduals(p.C, d1, d2)

	return &Verification{
		D1:        d1,
		D2:        d2,
		RHS:       rhs,
		Residuals: res,
		Stats:     NewStats(res),
		Samples:   samples(traj.X, d2, rhs, res),
	}, nil
}
