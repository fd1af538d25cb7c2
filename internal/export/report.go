package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/cablesim/internal/store"
)

const rule = 60

// WriteReport writes the problem parameters, run statistics and physical
// properties of a stored run.
func WriteReport(w io.Writer, meta store.RunMetadata) error {
	p := meta.Problem
	props := meta.Properties

	var sb strings.Builder
	sb.WriteString("CABLE ANALYSIS REPORT\n")
	sb.WriteString(strings.Repeat("=", rule) + "\n\n")

	sb.WriteString("PARAMETERS:\n")
	fmt.Fprintf(&sb, "- constant C: %g 1/m\n", p.C)
	fmt.Fprintf(&sb, "- boundary conditions: y(%g) = %g m, y(%g) = %g m\n", p.X0, p.Y0, p.XF, p.YF)
	fmt.Fprintf(&sb, "- step: %g\n", p.H)
	fmt.Fprintf(&sb, "- tolerance: %g\n", p.Tol)
	fmt.Fprintf(&sb, "- seeds: %g, %g\n\n", p.Seed0, p.Seed1)

	sb.WriteString("RUN:\n")
	fmt.Fprintf(&sb, "- id: %s\n", meta.ID)
	fmt.Fprintf(&sb, "- status: %s\n", meta.Status)
	fmt.Fprintf(&sb, "- initial slope: %.8f\n", meta.Slope)
	fmt.Fprintf(&sb, "- iterations: %d\n", meta.Iterations)
	fmt.Fprintf(&sb, "- boundary residual: %.2e\n", meta.Residual)
	fmt.Fprintf(&sb, "- elapsed: %.3f s\n", meta.Elapsed)
	for _, warn := range meta.Warnings {
		fmt.Fprintf(&sb, "- warning: %s\n", warn)
	}
	sb.WriteString("\n")

	sb.WriteString("PHYSICAL PROPERTIES:\n")
	fmt.Fprintf(&sb, "- arc length: %.6f m\n", props.ArcLength)
	fmt.Fprintf(&sb, "- lowest point: x = %.2f m, y = %.6f m\n", props.LowestX, props.LowestY)
	fmt.Fprintf(&sb, "- sag: %.6f m\n", props.Sag)
	fmt.Fprintf(&sb, "- tension min: %.3f (T_H)\n", props.TensionMin)
	fmt.Fprintf(&sb, "- tension max: %.3f (T_H)\n", props.TensionMax)
	fmt.Fprintf(&sb, "- curvature max: %.6f 1/m\n", props.CurvatureMax)
	fmt.Fprintf(&sb, "- catenary parameter a = 1/C: %.3f m\n", props.CatenaryA)

	_, err := io.WriteString(w, sb.String())
	return err
}
