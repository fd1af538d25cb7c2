package metrics

import (
	"math"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/physics"
)

// ArcLength is the left Riemann sum of sqrt(1+y'^2) dx.
type ArcLength struct {
	sum       float64
	prevX     float64
	prevSlope float64
	samples   int
}

func NewArcLength() *ArcLength { return &ArcLength{} }

func (a *ArcLength) Name() string { return "arc_length" }

func (a *ArcLength) Observe(x float64, s dynamo.State) {
	if a.samples > 0 {
		a.sum += math.Hypot(1, a.prevSlope) * (x - a.prevX)
	}
	a.prevX, a.prevSlope = x, s[1]
	a.samples++
}

func (a *ArcLength) Value() float64 { return a.sum }

func (a *ArcLength) Reset() {
	a.sum = 0
	a.samples = 0
}

// LowestPoint tracks the minimum height and where it occurs.
type LowestPoint struct {
	x, y    float64
	samples int
}

func NewLowestPoint() *LowestPoint { return &LowestPoint{} }

func (l *LowestPoint) Name() string { return "lowest_y" }

func (l *LowestPoint) Observe(x float64, s dynamo.State) {
	if l.samples == 0 || s[0] < l.y {
		l.x, l.y = x, s[0]
	}
	l.samples++
}

func (l *LowestPoint) Value() float64 { return l.y }

// At returns the abscissa of the lowest point.
func (l *LowestPoint) At() float64 { return l.x }

func (l *LowestPoint) Reset() {
	l.x, l.y = 0, 0
	l.samples = 0
}

// Sag is the drop from the left support to the lowest point.
type Sag struct {
	lowest LowestPoint
	y0     float64
}

func NewSag(y0 float64) *Sag { return &Sag{y0: y0} }

func (s *Sag) Name() string { return "sag" }

func (s *Sag) Observe(x float64, st dynamo.State) { s.lowest.Observe(x, st) }

func (s *Sag) Value() float64 {
	if s.lowest.samples == 0 {
		return 0
	}
	return s.y0 - s.lowest.y
}

func (s *Sag) Reset() { s.lowest.Reset() }

// Tension is T_H * sqrt(1+y'^2) with horizontal component T_H = 1/C,
// reduced to its minimum or maximum along the cable.
type Tension struct {
	name    string
	th      float64
	max     bool
	value   float64
	samples int
}

func NewMinTension(c float64) *Tension {
	return &Tension{name: "tension_min", th: 1 / c}
}

func NewMaxTension(c float64) *Tension {
	return &Tension{name: "tension_max", th: 1 / c, max: true}
}

func (t *Tension) Name() string { return t.name }

func (t *Tension) Observe(x float64, s dynamo.State) {
	v := t.th * math.Hypot(1, s[1])
	if t.samples == 0 || (t.max && v > t.value) || (!t.max && v < t.value) {
		t.value = v
	}
	t.samples++
}

func (t *Tension) Value() float64 { return t.value }

func (t *Tension) Reset() {
	t.value = 0
	t.samples = 0
}

// MaxCurvature is the largest |y''|/(1+y'^2)^(3/2), with y'' taken from
// the cable equation.
type MaxCurvature struct {
	cable *physics.Cable
	value float64
}

func NewMaxCurvature(c float64) *MaxCurvature {
	return &MaxCurvature{cable: physics.NewCable(c)}
}

func (m *MaxCurvature) Name() string { return "curvature_max" }

func (m *MaxCurvature) Observe(x float64, s dynamo.State) {
	m.value = math.Max(m.value, m.cable.Curvature(s[1]))
}

func (m *MaxCurvature) Value() float64 { return m.value }

func (m *MaxCurvature) Reset() { m.value = 0 }
