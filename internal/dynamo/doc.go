// Package dynamo provides the core primitives shared by the cable solver.
//
// The package defines the types that flow between the numerical layers:
//
//   - [State]: vector holding the cable height and slope at one abscissa
//   - [System]: interface for first-order ODE systems (dS/dx = f(x, S))
//   - [Trajectory]: discretized solution returned by an integrator
//   - [Problem]: validated boundary-value problem parameters
//   - [Configurable]: named access to float parameters, used by flags and
//     batch scenarios
//
// # Example
//
//	p := dynamo.DefaultProblem()
//	if err := p.Validate(); err != nil {
//	    return err
//	}
//	n := p.StepCount()
//
// # Thread Safety
//
// All types are plain values. A [Trajectory] is owned by whoever requested
// it and is never shared by the integrator after it is returned.
package dynamo
