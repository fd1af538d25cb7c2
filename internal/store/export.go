package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cablesim/internal/dynamo"
)

type ExportData struct {
	Run   RunMetadata `json:"run"`
	X     []float64   `json:"x"`
	Y     []float64   `json:"y"`
	Slope []float64   `json:"dydx"`
}

func NewExportData(meta RunMetadata, traj *dynamo.Trajectory) ExportData {
	return ExportData{Run: meta, X: traj.X, Y: traj.Y, Slope: traj.Slope}
}

func ExportJSON(path string, meta RunMetadata, traj *dynamo.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, traj)
}

func WriteJSON(w io.Writer, meta RunMetadata, traj *dynamo.Trajectory) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, traj))
}
