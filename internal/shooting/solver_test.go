package shooting_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/integrators"
	"github.com/san-kum/cablesim/internal/physics"
	"github.com/san-kum/cablesim/internal/shooting"
)

// countingSystem wraps a System and counts Derive calls.
type countingSystem struct {
	inner dynamo.System
	calls int
}

func (c *countingSystem) Derive(x float64, s dynamo.State) dynamo.State {
	c.calls++
	return c.inner.Derive(x, s)
}

func (c *countingSystem) StateDim() int { return c.inner.StateDim() }

// flatSystem keeps the height constant whatever the slope.
type flatSystem struct{}

func (flatSystem) Derive(x float64, s dynamo.State) dynamo.State { return dynamo.State{0, 0} }
func (flatSystem) StateDim() int                                 { return 2 }

var _ = Describe("Solver", func() {
	var problem dynamo.Problem

	BeforeEach(func() {
		problem = dynamo.DefaultProblem()
	})

	Describe("configuration validation", func() {
		DescribeTable("rejects malformed problems before integrating",
			func(mutate func(p *dynamo.Problem)) {
				mutate(&problem)
				counter := &countingSystem{inner: physics.NewCable(0.041)}

				res, err := shooting.Solve(problem, shooting.WithSystem(counter))

				Expect(err).To(MatchError(dynamo.ErrInvalidConfiguration))
				Expect(res).To(BeNil())
				Expect(counter.calls).To(BeZero())
			},
			Entry("C = 0", func(p *dynamo.Problem) { p.C = 0 }),
			Entry("C < 0", func(p *dynamo.Problem) { p.C = -1 }),
			Entry("h = 0", func(p *dynamo.Problem) { p.H = 0 }),
			Entry("h < 0", func(p *dynamo.Problem) { p.H = -0.01 }),
			Entry("h = xf - x0", func(p *dynamo.Problem) { p.H = 20 }),
			Entry("h > xf - x0", func(p *dynamo.Problem) { p.H = 21 }),
			Entry("tol = 0", func(p *dynamo.Problem) { p.Tol = 0 }),
			Entry("tol < 0", func(p *dynamo.Problem) { p.Tol = -1e-5 }),
			Entry("xf = x0", func(p *dynamo.Problem) { p.XF = 0 }),
			Entry("xf < x0", func(p *dynamo.Problem) { p.XF = -1 }),
		)

		It("rejects a non-positive iteration cap", func() {
			_, err := shooting.New(problem, shooting.WithMaxIterations(0))
			Expect(err).To(MatchError(dynamo.ErrInvalidConfiguration))
		})
	})

	Describe("default cable", func() {
		var (
			res      *shooting.Result
			iterates []shooting.Iterate
		)

		BeforeEach(func() {
			iterates = nil
			var err error
			res, err = shooting.Solve(problem, shooting.WithObserver(shooting.ObserverFunc(func(it shooting.Iterate) {
				iterates = append(iterates, it)
			})))
			Expect(err).NotTo(HaveOccurred())
		})

		It("converges well under the iteration cap", func() {
			Expect(res.Converged).To(BeTrue())
			Expect(res.Status).To(Equal(shooting.Converged))
			Expect(res.Iterations).To(BeNumerically("<", 20))
			Expect(res.Warnings).To(BeEmpty())
			Expect(res.Err()).NotTo(HaveOccurred())
		})

		It("hits the far boundary within tolerance", func() {
			traj := res.Trajectory
			Expect(traj.Len()).To(Equal(problem.StepCount() + 1))
			Expect(traj.X[traj.Len()-1]).To(Equal(problem.XF))
			Expect(math.Abs(traj.Final() - problem.YF)).To(BeNumerically("<=", problem.Tol))
			Expect(res.Residual).To(Equal(traj.Final() - problem.YF))
		})

		It("returns the trajectory of the reported slope", func() {
			Expect(res.Trajectory.Slope[0]).To(Equal(res.Slope))
			Expect(res.Trajectory.Y[0]).To(Equal(problem.Y0))
			Expect(res.Slope).To(BeNumerically("<", 0))
		})

		It("records the seeds", func() {
			Expect(res.Seeds[0].Slope).To(Equal(-1.0))
			Expect(res.Seeds[1].Slope).To(Equal(-0.5))
			Expect(res.Seeds[0].N).To(BeZero())
		})

		It("notifies observers once per accepted iterate", func() {
			Expect(iterates).To(HaveLen(res.Iterations))
			for i, it := range iterates {
				Expect(it.N).To(Equal(i + 1))
			}
			Expect(iterates[len(iterates)-1].Slope).To(Equal(res.Slope))
		})

		It("converges superlinearly near the root", func() {
			seq := append([]shooting.Iterate{res.Seeds[0], res.Seeds[1]}, iterates...)
			const k = 10.0
			for n := 2; n < len(seq); n++ {
				prev2 := math.Abs(seq[n-2].Residual)
				prev1 := math.Abs(seq[n-1].Residual)
				if prev1 > 1 {
					continue
				}
				Expect(math.Abs(seq[n].Residual)).To(BeNumerically("<=", k*prev1*prev2+1e-10),
					"iterate %d", n)
			}
		})

		It("performs one integration per residual plus the final sweep", func() {
			Expect(res.Evaluations).To(Equal(res.Iterations + 3))
		})
	})

	It("re-runs a full integration for every evaluation", func() {
		counter := &countingSystem{inner: physics.NewCable(problem.C)}
		res, err := shooting.Solve(problem, shooting.WithSystem(counter))
		Expect(err).NotTo(HaveOccurred())

		Expect(counter.calls).To(Equal(4 * problem.StepCount() * (res.Iterations + 3)))
	})

	It("is deterministic", func() {
		a, err := shooting.Solve(problem)
		Expect(err).NotTo(HaveOccurred())
		b, err := shooting.Solve(problem)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Slope).To(Equal(b.Slope))
		Expect(a.Iterations).To(Equal(b.Iterations))
		Expect(a.Trajectory.X).To(Equal(b.Trajectory.X))
		Expect(a.Trajectory.Y).To(Equal(b.Trajectory.Y))
		Expect(a.Trajectory.Slope).To(Equal(b.Trajectory.Slope))
	})

	Describe("degenerate secant", func() {
		It("stops when the residual does not depend on the slope", func() {
			res, err := shooting.Solve(problem, shooting.WithSystem(flatSystem{}))
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Status).To(Equal(shooting.DegenerateSecant))
			Expect(res.Converged).To(BeFalse())
			Expect(res.Iterations).To(BeZero())
			Expect(res.Slope).To(Equal(problem.Seed1))
			Expect(res.Residual).To(Equal(problem.Y0 - problem.YF))
			Expect(res.Err()).To(MatchError(shooting.ErrDegenerateSecant))
			Expect(res.Err()).To(MatchError(shooting.ErrResidualAboveTolerance))
		})

		It("stops when both seeds coincide", func() {
			problem.Seed0 = -0.5
			res, err := shooting.Solve(problem)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Status).To(Equal(shooting.DegenerateSecant))
			Expect(res.Trajectory.Slope[0]).To(Equal(-0.5))
		})
	})

	Describe("iteration cap", func() {
		It("returns the best available slope without failing", func() {
			problem.Tol = 1e-12
			res, err := shooting.Solve(problem, shooting.WithMaxIterations(1))
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Status).To(Equal(shooting.MaxIterationsReached))
			Expect(res.Converged).To(BeFalse())
			Expect(res.Iterations).To(Equal(1))
			Expect(res.Trajectory.Slope[0]).To(Equal(res.Slope))
			Expect(res.Err()).To(MatchError(shooting.ErrNonConvergence))
		})

		It("does not flag the residual when it is within ten times the tolerance", func() {
			problem.Tol = 1e-14
			capped, err := shooting.Solve(problem, shooting.WithMaxIterations(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(capped.Status).To(Equal(shooting.MaxIterationsReached))
			miss := math.Abs(capped.Residual)
			Expect(miss).To(BeNumerically(">", 0))

			problem.Tol = miss / 2
			res, err := shooting.Solve(problem, shooting.WithMaxIterations(2))
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Status).To(Equal(shooting.MaxIterationsReached))
			Expect(res.Iterations).To(Equal(2))
			Expect(math.Abs(res.Residual)).To(BeNumerically(">", problem.Tol))
			Expect(math.Abs(res.Residual)).To(BeNumerically("<=", 10*problem.Tol))
			Expect(res.Warnings).To(HaveLen(1))
			Expect(res.Err()).To(MatchError(shooting.ErrNonConvergence))
			Expect(errors.Is(res.Err(), shooting.ErrResidualAboveTolerance)).To(BeFalse())
		})
	})

	It("converges immediately when a seed already satisfies the boundary", func() {
		first, err := shooting.Solve(problem)
		Expect(err).NotTo(HaveOccurred())

		problem.Seed1 = first.Slope
		res, err := shooting.Solve(problem)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Status).To(Equal(shooting.Converged))
		Expect(res.Iterations).To(BeZero())
	})
})

var _ = Describe("Residual", func() {
	It("is the terminal height miss of one integration", func() {
		p := dynamo.DefaultProblem()
		res := shooting.NewResidual(p, physics.NewCable(p.C), integrators.NewRK4())

		traj := res.Trajectory(-0.8)
		Expect(res.Eval(-0.8)).To(Equal(traj.Final() - p.YF))
		Expect(res.Evaluations()).To(Equal(2))
	})

	It("grows with the initial slope", func() {
		p := dynamo.DefaultProblem()
		res := shooting.NewResidual(p, physics.NewCable(p.C), integrators.NewRK4())

		Expect(res.Eval(-0.5)).To(BeNumerically(">", res.Eval(-1.0)))
	})
})

var _ = Describe("Status", func() {
	DescribeTable("String",
		func(s shooting.Status, expected string, terminal bool) {
			Expect(s.String()).To(Equal(expected))
			Expect(s.Terminal()).To(Equal(terminal))
		},
		Entry(nil, shooting.Initializing, "initializing", false),
		Entry(nil, shooting.Iterating, "iterating", false),
		Entry(nil, shooting.Converged, "converged", true),
		Entry(nil, shooting.MaxIterationsReached, "max_iterations_reached", true),
		Entry(nil, shooting.DegenerateSecant, "degenerate_secant", true),
	)
})
