package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultProblem(t *testing.T) {
	p := DefaultProblem()

	if err := p.Validate(); err != nil {
		t.Fatalf("default problem invalid: %v", err)
	}
	if p.StepCount() != 2000 {
		t.Errorf("expected 2000 steps, got %d", p.StepCount())
	}
	if p.Seed0 != -1.0 || p.Seed1 != -0.5 {
		t.Errorf("unexpected seeds: %v %v", p.Seed0, p.Seed1)
	}
}

func TestProblem_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Problem)
		field  string
	}{
		{"zero c", func(p *Problem) { p.C = 0 }, "c"},
		{"negative c", func(p *Problem) { p.C = -0.041 }, "c"},
		{"zero h", func(p *Problem) { p.H = 0 }, "h"},
		{"negative h", func(p *Problem) { p.H = -0.01 }, "h"},
		{"h equals span", func(p *Problem) { p.H = 20 }, "h"},
		{"h exceeds span", func(p *Problem) { p.H = 25 }, "h"},
		{"zero tol", func(p *Problem) { p.Tol = 0 }, "tol"},
		{"negative tol", func(p *Problem) { p.Tol = -1e-5 }, "tol"},
		{"xf equals x0", func(p *Problem) { p.XF = p.X0 }, "xf"},
		{"xf before x0", func(p *Problem) { p.XF = -5 }, "xf"},
		{"nan y0", func(p *Problem) { p.Y0 = math.NaN() }, "y0"},
		{"inf seed", func(p *Problem) { p.Seed1 = math.Inf(-1) }, "seed1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProblem()
			tt.mutate(&p)

			err := p.Validate()
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestNewProblem(t *testing.T) {
	p, err := NewProblem(0.041, 0, 15, 20, 10, 0.01, 1e-5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Seed0 != DefaultSeed0 || p.Seed1 != DefaultSeed1 {
		t.Error("NewProblem did not apply default seeds")
	}

	if _, err := NewProblem(0, 0, 15, 20, 10, 0.01, 1e-5); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestProblem_StepCount(t *testing.T) {
	tests := []struct {
		x0, xf, h float64
		expected  int
	}{
		{0, 20, 0.01, 2000},
		{0, 0.3, 0.1, 2},
		{0, 1, 0.3, 3},
		{2, 5, 0.5, 6},
		{0, 10, 3, 3},
	}

	for _, tt := range tests {
		p := DefaultProblem()
		p.X0, p.XF, p.H = tt.x0, tt.xf, tt.h
		if got := p.StepCount(); got != tt.expected {
			t.Errorf("StepCount(%v, %v, %v) = %d, want %d", tt.x0, tt.xf, tt.h, got, tt.expected)
		}
	}
}

func TestProblem_End(t *testing.T) {
	p := DefaultProblem()
	if p.End() != p.XF {
		t.Errorf("End() = %v, want %v when h divides the span", p.End(), p.XF)
	}

	p.XF, p.H = 10, 3
	if got := p.End(); math.Abs(got-9) > 1e-15 {
		t.Errorf("End() = %v, want 9", got)
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "c", Value: -1, Reason: "must be positive"}
	expected := "dynamo: invalid configuration: c=-1 must be positive"
	if err.Error() != expected {
		t.Errorf("ConfigError.Error() = %q, want %q", err.Error(), expected)
	}
}
