// Package optim searches slope space for good secant seeds.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/integrators"
	"github.com/san-kum/cablesim/internal/physics"
	"github.com/san-kum/cablesim/internal/shooting"
)

// SlopeScan samples the shooting residual on a uniform slope grid.
type SlopeScan struct {
	from, to float64
	n        int
}

func NewSlopeScan(from, to float64, n int) (*SlopeScan, error) {
	if n < 2 {
		return nil, fmt.Errorf("optim: need at least 2 samples, got %d", n)
	}
	if !(from < to) {
		return nil, fmt.Errorf("optim: empty slope range [%g, %g]", from, to)
	}
	return &SlopeScan{from: from, to: to, n: n}, nil
}

type Sample struct {
	Slope    float64
	Residual float64
}

// Bracket is a pair of neighbouring samples whose residuals change sign.
type Bracket [2]Sample

type ScanResult struct {
	Samples []Sample
	// Best has the smallest |F|. A NaN residual only stays best while no
	// finite one has been seen.
	Best     Sample
	Brackets []Bracket

	best int
}

func (r *ScanResult) add(smp Sample) {
	r.Samples = append(r.Samples, smp)
	i := len(r.Samples) - 1

	if i == 0 || math.IsNaN(r.Best.Residual) && !math.IsNaN(smp.Residual) ||
		math.Abs(smp.Residual) < math.Abs(r.Best.Residual) {
		r.Best, r.best = smp, i
	}
	if i > 0 {
		prev := r.Samples[i-1]
		if prev.Residual == 0 || math.Signbit(prev.Residual) != math.Signbit(smp.Residual) {
			if !math.IsNaN(prev.Residual) && !math.IsNaN(smp.Residual) {
				r.Brackets = append(r.Brackets, Bracket{prev, smp})
			}
		}
	}
}

// Seeds returns the ends of the tightest bracket, or the best sample and
// its nearest neighbour when no sign change was seen. Both seeds are
// always sampled slopes.
func (r *ScanResult) Seeds() (seed0, seed1 float64, bracketed bool) {
	if len(r.Brackets) > 0 {
		best := r.Brackets[0]
		for _, b := range r.Brackets[1:] {
			if math.Abs(b[0].Residual)+math.Abs(b[1].Residual) < math.Abs(best[0].Residual)+math.Abs(best[1].Residual) {
				best = b
			}
		}
		return best[0].Slope, best[1].Slope, true
	}

	idx := r.best
	next := idx + 1
	if next == len(r.Samples) {
		next = idx - 1
	}
	return r.Best.Slope, r.Samples[next].Slope, false
}

// Search evaluates every grid slope for p. It stops early when ctx is done.
func (s *SlopeScan) Search(ctx context.Context, p dynamo.Problem) (*ScanResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	res := shooting.NewResidual(p, physics.NewCable(p.C), integrators.NewRK4())
	step := (s.to - s.from) / float64(s.n-1)

	out := &ScanResult{Samples: make([]Sample, 0, s.n)}

	for i := 0; i < s.n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		z := s.from + float64(i)*step
		if i == s.n-1 {
			z = s.to
		}
		out.add(Sample{Slope: z, Residual: res.Eval(z)})
	}

	return out, nil
}
