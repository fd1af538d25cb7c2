package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/cablesim/internal/analysis"
	"github.com/san-kum/cablesim/internal/dynamo"
)

// Columns selects the optional verification columns of WriteCSV.
type Columns struct {
	// Residuals adds residual_numeric; it must match the trajectory length.
	Residuals []float64
	// Poly adds y_poly and abs_diff.
	Poly analysis.Polynomial
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 8, 64)
}

func WriteCSV(w io.Writer, traj *dynamo.Trajectory, cols Columns) error {
	n := traj.Len()
	if cols.Residuals != nil && len(cols.Residuals) != n {
		return fmt.Errorf("export: %d residuals for %d points", len(cols.Residuals), n)
	}

	header := []string{"x", "y", "dydx"}
	if cols.Residuals != nil {
		header = append(header, "residual_numeric")
	}
	if cols.Poly != nil {
		header = append(header, "y_poly", "abs_diff")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		row := []string{formatFloat(traj.X[i]), formatFloat(traj.Y[i]), formatFloat(traj.Slope[i])}
		if cols.Residuals != nil {
			row = append(row, formatFloat(cols.Residuals[i]))
		}
		if cols.Poly != nil {
			yp := cols.Poly.Eval(traj.X[i])
			row = append(row, formatFloat(yp), formatFloat(math.Abs(traj.Y[i]-yp)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
