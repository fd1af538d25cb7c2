package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/cablesim/internal/dynamo"
)

// Cable is the second-order catenary equation written as a first-order
// system in (y, y').
type Cable struct {
	C float64
}

var _ dynamo.Configurable = (*Cable)(nil)

func NewCable(c float64) *Cable {
	return &Cable{C: c}
}

func (c *Cable) StateDim() int {
	return 2
}

func (c *Cable) Derive(x float64, s dynamo.State) dynamo.State {
	slope := s[1]
	// Hypot keeps sqrt(1+slope^2) exact without overflowing for large slopes.
	return dynamo.State{slope, c.C * math.Hypot(1, slope)}
}

// Curvature returns |y''| / (1+y'^2)^(3/2) using the equation itself for y''.
func (c *Cable) Curvature(slope float64) float64 {
	g := math.Hypot(1, slope)
	return math.Abs(c.C*g) / (g * g * g)
}

func (c *Cable) GetParams() map[string]float64 {
	return map[string]float64{"c": c.C}
}

func (c *Cable) SetParam(name string, value float64) error {
	if name != "c" {
		return fmt.Errorf("physics: cable has no parameter %q", name)
	}
	c.C = value
	return nil
}
