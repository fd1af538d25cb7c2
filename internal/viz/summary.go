package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/store"
)

func statusStyle(status string) string {
	switch status {
	case "converged":
		return StatusRunning.Render(strings.ToUpper(status))
	case "max_iterations_reached":
		return StatusWarning.Render(strings.ToUpper(status))
	default:
		return StatusFailed.Render(strings.ToUpper(status))
	}
}

// RenderSummary draws the run statistics and physical properties of a
// finished run.
func RenderSummary(meta store.RunMetadata) string {
	props := meta.Properties

	var s strings.Builder
	s.WriteString(HeaderStyle.Render("CABLE "+meta.ID) + "\n\n")
	s.WriteString(MetricLabel.Render("status") + statusStyle(meta.Status) + "\n")
	s.WriteString(row("initial slope", fmt.Sprintf("%.8f", meta.Slope)))
	s.WriteString(row("iterations", fmt.Sprintf("%d", meta.Iterations)))
	s.WriteString(row("residual", fmt.Sprintf("%.2e", meta.Residual)))
	s.WriteString(row("elapsed", fmt.Sprintf("%.3fs", meta.Elapsed)))
	s.WriteString("\n")
	s.WriteString(row("arc length", fmt.Sprintf("%.6f m", props.ArcLength)))
	s.WriteString(row("lowest point", fmt.Sprintf("(%.2f, %.6f) m", props.LowestX, props.LowestY)))
	s.WriteString(row("sag", fmt.Sprintf("%.6f m", props.Sag)))
	s.WriteString(row("tension", fmt.Sprintf("%.3f .. %.3f T_H", props.TensionMin, props.TensionMax)))
	s.WriteString(row("curvature max", fmt.Sprintf("%.6f 1/m", props.CurvatureMax)))
	s.WriteString(row("a = 1/C", fmt.Sprintf("%.3f m", props.CatenaryA)))

	for _, w := range meta.Warnings {
		s.WriteString("\n" + StatusWarning.Render("! "+w))
	}

	return GlassPanel.Render(strings.TrimRight(s.String(), "\n"))
}

// downsample keeps at most n evenly spaced values, always including the
// last one.
func downsample(values []float64, n int) []float64 {
	if len(values) <= n || n < 2 {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}

// PlotTrajectory returns asciigraph plots of y(x) and dy/dx.
func PlotTrajectory(traj *dynamo.Trajectory, height, width int) string {
	if traj.Len() == 0 {
		return ""
	}
	caption := fmt.Sprintf("x = %.2f .. %.2f", traj.X[0], traj.X[traj.Len()-1])

	shape := asciigraph.Plot(downsample(traj.Y, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("y(x), "+caption),
	)
	slope := asciigraph.Plot(downsample(traj.Slope, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("dy/dx, "+caption),
	)
	return shape + "\n\n" + slope
}
