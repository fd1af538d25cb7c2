// Package analysis provides independent checks of a solved cable.
//
// None of these tools take part in the solve; they consume a trajectory
// read-only and report how well it satisfies the governing equation:
//
//   - [VerifyFiniteDifference]: re-estimates y' and y'' by finite differences
//   - [VerifyPolynomial]: fits a polynomial and differentiates it exactly
//   - [NewCatenary]: closed-form solution through the same initial condition
//   - [ConvergenceStudy]: observed order of the RK4 integrator
//
// # Residuals
//
// Every verification reports |y'' - C*sqrt(1+y'^2)| point by point together
// with its max, mean and RMS:
//
//	v, err := analysis.VerifyFiniteDifference(p, res.Trajectory)
//	if err == nil && v.Stats.Max > 1e-4 {
//	    // trajectory does not satisfy the equation
//	}
package analysis
