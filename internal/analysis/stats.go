package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/cablesim/internal/dynamo"
)

var ErrTooFewPoints = errors.New("analysis: trajectory too short")

// Stats summarizes absolute residuals.
type Stats struct {
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	RMS  float64 `json:"rms"`
}

func NewStats(r []float64) Stats {
	if len(r) == 0 {
		return Stats{}
	}
	return Stats{
		Max:  floats.Max(r),
		Mean: stat.Mean(r, nil),
		RMS:  floats.Norm(r, 2) / math.Sqrt(float64(len(r))),
	}
}

// Sample is one row of a verification table.
type Sample struct {
	X        float64
	LHS      float64
	RHS      float64
	Residual float64
}

// sampleIndices picks the ends, quartiles and midpoint of n points.
func sampleIndices(n int) []int {
	return []int{0, n / 4, n / 2, 3 * n / 4, n - 1}
}

func samples(x, lhs, rhs, res []float64) []Sample {
	idx := sampleIndices(len(x))
	out := make([]Sample, 0, len(idx))
	for _, i := range idx {
		out = append(out, Sample{X: x[i], LHS: lhs[i], RHS: rhs[i], Residual: res[i]})
	}
	return out
}

// equationResiduals returns C*sqrt(1+d1^2) and |d2 - rhs|.
func equationResiduals(c float64, d1, d2 []float64) (rhs, res []float64) {
	rhs = make([]float64, len(d1))
	res = make([]float64, len(d1))
	for i := range d1 {
		rhs[i] = c * math.Hypot(1, d1[i])
		res[i] = math.Abs(d2[i] - rhs[i])
	}
	return rhs, res
}

func gridStep(traj *dynamo.Trajectory) float64 {
	return (traj.X[traj.Len()-1] - traj.X[0]) / float64(traj.Len()-1)
}
