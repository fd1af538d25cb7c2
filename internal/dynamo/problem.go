package dynamo

import "math"

const (
	DefaultC     = 0.041
	DefaultX0    = 0.0
	DefaultY0    = 15.0
	DefaultXF    = 20.0
	DefaultYF    = 10.0
	DefaultH     = 0.01
	DefaultTol   = 1e-5
	DefaultSeed0 = -1.0
	DefaultSeed1 = -0.5
)

// Problem describes the cable boundary-value problem
//
//	y'' = C * sqrt(1 + y'^2),  y(X0) = Y0,  y(XF) = YF
//
// together with the numerical parameters of the shooting solver.
type Problem struct {
	C   float64 `yaml:"c" json:"c"`
	X0  float64 `yaml:"x0" json:"x0"`
	Y0  float64 `yaml:"y0" json:"y0"`
	XF  float64 `yaml:"xf" json:"xf"`
	YF  float64 `yaml:"yf" json:"yf"`
	H   float64 `yaml:"h" json:"h"`
	Tol float64 `yaml:"tol" json:"tol"`

	// Seed0 and Seed1 are the two initial slope guesses of the secant
	// search. The defaults bracket a downward-sagging cable for the default
	// geometry.
	Seed0 float64 `yaml:"seed0" json:"seed0"`
	Seed1 float64 `yaml:"seed1" json:"seed1"`
}

func DefaultProblem() Problem {
	return Problem{
		C:     DefaultC,
		X0:    DefaultX0,
		Y0:    DefaultY0,
		XF:    DefaultXF,
		YF:    DefaultYF,
		H:     DefaultH,
		Tol:   DefaultTol,
		Seed0: DefaultSeed0,
		Seed1: DefaultSeed1,
	}
}

// NewProblem builds a validated problem with the default secant seeds.
func NewProblem(c, x0, y0, xf, yf, h, tol float64) (Problem, error) {
	p := Problem{
		C: c, X0: x0, Y0: y0, XF: xf, YF: yf, H: h, Tol: tol,
		Seed0: DefaultSeed0,
		Seed1: DefaultSeed1,
	}
	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// Validate reports the first violated constraint as a *ConfigError.
func (p Problem) Validate() error {
	for _, name := range paramOrder {
		v := *p.param(name)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConfigError{Field: name, Value: v, Reason: "must be finite"}
		}
	}

	if p.C <= 0 {
		return &ConfigError{Field: "c", Value: p.C, Reason: "must be positive"}
	}
	if p.XF <= p.X0 {
		return &ConfigError{Field: "xf", Value: p.XF, Reason: "must be greater than x0"}
	}
	if p.H <= 0 || p.H >= p.XF-p.X0 {
		return &ConfigError{Field: "h", Value: p.H, Reason: "must be positive and smaller than xf-x0"}
	}
	if p.Tol <= 0 {
		return &ConfigError{Field: "tol", Value: p.Tol, Reason: "must be positive"}
	}
	return nil
}

// Span returns XF - X0.
func (p Problem) Span() float64 {
	return p.XF - p.X0
}

// StepCount is floor((XF-X0)/H). When H does not divide the span the
// sweep stops short of XF, at End().
func (p Problem) StepCount() int {
	return int(math.Floor(p.Span() / p.H))
}

// End is the abscissa reached after StepCount steps of H.
func (p Problem) End() float64 {
	return p.X0 + float64(p.StepCount())*p.H
}
