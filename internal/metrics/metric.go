package metrics

import "github.com/san-kum/cablesim/internal/dynamo"

// Metric is a running reduction over the points of a trajectory.
type Metric interface {
	Name() string
	Observe(x float64, s dynamo.State)
	Value() float64
	Reset()
}

// Evaluate resets every metric, feeds it the whole trajectory and returns
// the values keyed by name.
func Evaluate(traj *dynamo.Trajectory, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	s := make(dynamo.State, 2)
	for i := range traj.X {
		s[0], s[1] = traj.Y[i], traj.Slope[i]
		for _, m := range ms {
			m.Observe(traj.X[i], s)
		}
	}

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
