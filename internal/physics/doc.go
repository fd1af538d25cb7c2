// Package physics provides the vector fields integrated by the solver.
//
// Each model implements the [dynamo.System] interface:
//
//   - [Cable]: suspended cable, y'' = C * sqrt(1 + y'^2)
//
// # State Layout
//
// The cable state is (height, slope). The field is autonomous, so the
// abscissa passed to Derive is ignored.
package physics
