package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/shooting"
)

func solveDefault(t *testing.T) (dynamo.Problem, *shooting.Result) {
	t.Helper()
	p := dynamo.DefaultProblem()
	res, err := shooting.Solve(p)
	require.NoError(t, err)
	require.True(t, res.Converged)
	return p, res
}

func TestDifferentiateQuadratic(t *testing.T) {
	h := 0.1
	y := make([]float64, 11)
	for i := range y {
		x := float64(i) * h
		y[i] = x * x
	}

	d1, d2, err := Differentiate(y, h)
	require.NoError(t, err)

	for i := range y {
		x := float64(i) * h
		assert.InDelta(t, 2*x, d1[i], 1e-9, "d1 at %d", i)
		assert.InDelta(t, 2.0, d2[i], 1e-9, "d2 at %d", i)
	}
}

func TestDifferentiateTooShort(t *testing.T) {
	_, _, err := Differentiate([]float64{1, 2, 3}, 0.1)
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestVerifyFiniteDifference(t *testing.T) {
	p, res := solveDefault(t)

	v, err := VerifyFiniteDifference(p, res.Trajectory)
	require.NoError(t, err)

	assert.Len(t, v.Residuals, res.Trajectory.Len())
	assert.Less(t, v.Stats.Max, 1e-4)
	assert.LessOrEqual(t, v.Stats.Mean, v.Stats.RMS)
	assert.LessOrEqual(t, v.Stats.RMS, v.Stats.Max)
	require.Len(t, v.Samples, 5)
	assert.Equal(t, p.X0, v.Samples[0].X)
	assert.Equal(t, p.XF, v.Samples[4].X)
}

func TestPolynomial(t *testing.T) {
	poly := Polynomial{1, -2, 0, 3} // 1 - 2x + 3x^3

	assert.InDelta(t, 1-4+24, poly.Eval(2), 1e-12)
	assert.Equal(t, Polynomial{-2, 0, 9}, poly.Derivative())
	assert.Equal(t, Polynomial{0, 18}, poly.Derivative().Derivative())
	assert.Equal(t, Polynomial{0}, Polynomial{5}.Derivative())
	assert.Equal(t, 3, poly.Degree())
}

func TestFitPolynomialRecoversQuartic(t *testing.T) {
	want := Polynomial{15, -0.9, 0.02, 1e-4, -2e-6}
	x := make([]float64, 201)
	y := make([]float64, len(x))
	for i := range x {
		x[i] = float64(i) * 0.01
		y[i] = want.Eval(x[i])
	}

	got, err := FitPolynomial(x, y, 4)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-8, "coefficient %d", i)
	}
}

func TestFitPolynomialErrors(t *testing.T) {
	_, err := FitPolynomial([]float64{0, 1}, []float64{0}, 1)
	assert.Error(t, err)

	_, err = FitPolynomial([]float64{0, 1}, []float64{0, 1}, 4)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = FitPolynomial([]float64{0, 1}, []float64{0, 1}, -1)
	assert.Error(t, err)
}

func TestVerifyPolynomial(t *testing.T) {
	p, res := solveDefault(t)

	v, err := VerifyPolynomial(p, res.Trajectory, DefaultDegree)
	require.NoError(t, err)

	assert.Equal(t, DefaultDegree, v.Poly.Degree())
	assert.Greater(t, v.RSquared, 0.9999)
	assert.Less(t, v.Stats.Max, 1e-3)
	assert.Len(t, v.Fitted, res.Trajectory.Len())
}

func TestCatenarySatisfiesBoundary(t *testing.T) {
	p := dynamo.DefaultProblem()
	cat := NewCatenary(p, -0.4)

	assert.InDelta(t, 1/p.C, cat.A, 1e-12)
	assert.InDelta(t, p.Y0, cat.Y(p.X0), 1e-12)
	assert.InDelta(t, -0.4, cat.Slope(p.X0), 1e-12)
}

func TestCompareAnalytic(t *testing.T) {
	p, res := solveDefault(t)

	cmp := CompareAnalytic(p, res.Trajectory, res.Slope)

	assert.Less(t, cmp.MaxError, 1e-8)
	assert.LessOrEqual(t, cmp.RMSError, cmp.MaxError)
	assert.InDelta(t, p.YF, cmp.Catenary.Y(p.XF), 1e-4)
}

func TestConvergenceStudy(t *testing.T) {
	p := dynamo.DefaultProblem()
	p.C, p.XF, p.Y0, p.H = 0.2, 10, 0, 1

	rows := ConvergenceStudy(p, -1, 3)
	require.Len(t, rows, 3)

	assert.Equal(t, 10, rows[0].Steps)
	assert.Equal(t, 40, rows[2].Steps)
	assert.Zero(t, rows[0].Order)
	for _, r := range rows[1:] {
		assert.InDelta(t, 4.0, r.Order, 1.0)
	}
}

func TestNewStats(t *testing.T) {
	st := NewStats([]float64{3, 4})

	assert.Equal(t, 4.0, st.Max)
	assert.Equal(t, 3.5, st.Mean)
	assert.InDelta(t, math.Sqrt(12.5), st.RMS, 1e-12)
	assert.Equal(t, Stats{}, NewStats(nil))
}
