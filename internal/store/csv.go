package store

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/cablesim/internal/dynamo"
)

// WriteTrajectoryCSV writes x,y,dydx rows at full precision.
func WriteTrajectoryCSV(w io.Writer, traj *dynamo.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"x", "y", "dydx"}); err != nil {
		return err
	}
	for i := range traj.X {
		row := []string{
			strconv.FormatFloat(traj.X[i], 'g', -1, 64),
			strconv.FormatFloat(traj.Y[i], 'g', -1, 64),
			strconv.FormatFloat(traj.Slope[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
