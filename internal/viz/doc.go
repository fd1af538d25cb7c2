// Package viz renders shooting runs in the terminal.
//
//   - [Model]: Bubble Tea program that follows a secant search iterate by
//     iterate and plots log10|F| as it shrinks
//   - [RenderSummary]: lipgloss panel for a finished run
//   - [PlotTrajectory]: asciigraph plots of y(x) and dy/dx
//
// # Key Bindings
//
//	q, ctrl+c - Quit
//	?         - Show help
package viz
