package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/cablesim/internal/dynamo"
)

// DefaultDegree is the degree of the verification polynomial.
const DefaultDegree = 4

// Polynomial stores coefficients in ascending order: p[0] + p[1]x + ...
type Polynomial []float64

func (p Polynomial) Eval(x float64) float64 {
	v := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + p[i]
	}
	return v
}

func (p Polynomial) Derivative() Polynomial {
	if len(p) <= 1 {
		return Polynomial{0}
	}
	d := make(Polynomial, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = float64(i) * p[i]
	}
	return d
}

func (p Polynomial) Degree() int {
	return len(p) - 1
}

// FitPolynomial solves the least-squares Vandermonde system by QR.
func FitPolynomial(x, y []float64, degree int) (Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("analysis: negative degree %d", degree)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("analysis: length mismatch %d != %d", len(x), len(y))
	}
	if len(x) <= degree {
		return nil, ErrTooFewPoints
	}

	a := mat.NewDense(len(x), degree+1, nil)
	for i, xi := range x {
		v := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, v)
			v *= xi
		}
	}

	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(len(y), y)); err != nil {
		return nil, fmt.Errorf("analysis: polynomial fit: %w", err)
	}
	return Polynomial(mat.Col(nil, 0, &c)), nil
}

// PolyVerification compares a fitted polynomial against the equation.
type PolyVerification struct {
	Poly      Polynomial
	Fitted    []float64
	D1        []float64
	D2        []float64
	RHS       []float64
	Residuals []float64
	Stats     Stats
	RSquared  float64
	Samples   []Sample
}

func VerifyPolynomial(p dynamo.Problem, traj *dynamo.Trajectory, degree int) (*PolyVerification, error) {
	poly, err := FitPolynomial(traj.X, traj.Y, degree)
	if err != nil {
		return nil, err
	}
	dp := poly.Derivative()
	d2p := dp.Derivative()

	n := traj.Len()
	fitted := make([]float64, n)
	d1 := make([]float64, n)
	d2 := make([]float64, n)
	for i, x := range traj.X {
		fitted[i] = poly.Eval(x)
		d1[i] = dp.Eval(x)
		d2[i] = d2p.Eval(x)
	}
	rhs, res := equationResiduals(p.C, d1, d2)

	return &PolyVerification{
		Poly:      poly,
		Fitted:    fitted,
		D1:        d1,
		D2:        d2,
		RHS:       rhs,
		Residuals: res,
		Stats:     NewStats(res),
		RSquared:  stat.RSquaredFrom(fitted, traj.Y, nil),
		Samples:   samples(traj.X, d2, rhs, res),
	}, nil
}
