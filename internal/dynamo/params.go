package dynamo

import (
	"fmt"
	"sort"
)

// Configurable exposes named float parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

var _ Configurable = (*Problem)(nil)

// paramOrder is the canonical parameter order used for validation and
// listings.
var paramOrder = []string{"c", "x0", "y0", "xf", "yf", "h", "tol", "seed0", "seed1"}

func ParamNames() []string {
	return append([]string(nil), paramOrder...)
}

func (p *Problem) param(name string) *float64 {
	switch name {
	case "c":
		return &p.C
	case "x0":
		return &p.X0
	case "y0":
		return &p.Y0
	case "xf":
		return &p.XF
	case "yf":
		return &p.YF
	case "h":
		return &p.H
	case "tol":
		return &p.Tol
	case "seed0":
		return &p.Seed0
	case "seed1":
		return &p.Seed1
	}
	return nil
}

func (p *Problem) GetParams() map[string]float64 {
	params := make(map[string]float64, len(paramOrder))
	for _, name := range paramOrder {
		params[name] = *p.param(name)
	}
	return params
}

// SetParam assigns a parameter by its yaml name. It does not validate.
func (p *Problem) SetParam(name string, value float64) error {
	ptr := p.param(name)
	if ptr == nil {
		return fmt.Errorf("dynamo: unknown parameter %q", name)
	}
	*ptr = value
	return nil
}

// SetParams applies params in sorted key order and stops at the first
// unknown name.
func (p *Problem) SetParams(params map[string]float64) error {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := p.SetParam(name, params[name]); err != nil {
			return err
		}
	}
	return nil
}
