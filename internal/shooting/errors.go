package shooting

import "errors"

// Recoverable run-time conditions. They are attached to Result.Warnings and
// never returned as the error of Solve.
var (
	ErrDegenerateSecant       = errors.New("shooting: secant denominator below threshold")
	ErrNonConvergence         = errors.New("shooting: iteration limit reached without convergence")
	ErrResidualAboveTolerance = errors.New("shooting: final residual exceeds 10x tolerance")
)
