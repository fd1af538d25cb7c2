// Package shooting solves the cable boundary-value problem by the shooting
// method.
//
// A [Residual] turns a guessed initial slope into the signed miss distance
// at the far boundary by running one full RK4 integration. A [Solver]
// drives that residual to zero with the secant method:
//
//	res, err := shooting.Solve(dynamo.DefaultProblem())
//	if err != nil {
//	    return err // invalid configuration only
//	}
//	if !res.Converged {
//	    // best-effort answer; see res.Status and res.Warnings
//	}
//
// Numerical failure never surfaces as an error. Callers must check
// [Result.Converged] and [Result.Status].
//
// # Thread Safety
//
// A Solver owns its integrator scratch space and is not safe for concurrent
// use. [Solve] builds a fresh Solver per call.
package shooting
