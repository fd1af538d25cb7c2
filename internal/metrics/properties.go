package metrics

import "github.com/san-kum/cablesim/internal/dynamo"

// Properties are the derived physical quantities of a solved cable.
type Properties struct {
	ArcLength    float64 `json:"arc_length"`
	LowestX      float64 `json:"lowest_x"`
	LowestY      float64 `json:"lowest_y"`
	Sag          float64 `json:"sag"`
	TensionMin   float64 `json:"tension_min"`
	TensionMax   float64 `json:"tension_max"`
	CurvatureMax float64 `json:"curvature_max"`
	// CatenaryA is a = 1/C.
	CatenaryA float64 `json:"catenary_a"`
}

func DefaultMetrics(p dynamo.Problem) []Metric {
	return []Metric{
		NewArcLength(),
		NewLowestPoint(),
		NewSag(p.Y0),
		NewMinTension(p.C),
		NewMaxTension(p.C),
		NewMaxCurvature(p.C),
	}
}

func Compute(p dynamo.Problem, traj *dynamo.Trajectory) Properties {
	ms := DefaultMetrics(p)
	vals := Evaluate(traj, ms...)

	var lowestX float64
	for _, m := range ms {
		if l, ok := m.(*LowestPoint); ok {
			lowestX = l.At()
		}
	}

	return Properties{
		ArcLength:    vals["arc_length"],
		LowestX:      lowestX,
		LowestY:      vals["lowest_y"],
		Sag:          vals["sag"],
		TensionMin:   vals["tension_min"],
		TensionMax:   vals["tension_max"],
		CurvatureMax: vals["curvature_max"],
		CatenaryA:    1 / p.C,
	}
}
