package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/cablesim/internal/analysis"
	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/metrics"
)

// logFloor replaces non-positive values on log axes.
const logFloor = 1e-16

var (
	blue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	green  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	purple = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	orange = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	black  = color.RGBA{A: 255}
)

// Figure is the data behind the 2x2 summary plot. FD and Poly are
// optional; without Poly the fourth panel shows the numerical y''.
type Figure struct {
	Problem    dynamo.Problem
	Trajectory *dynamo.Trajectory
	Properties metrics.Properties
	FD         *analysis.Verification
	Poly       *analysis.PolyVerification
}

func xys(x, y []float64, floor bool) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
		if floor && !(pts[i].Y > logFloor) {
			pts[i].Y = logFloor
		}
	}
	return pts
}

func addLine(p *plot.Plot, pts plotter.XYs, c color.Color, dashed bool, legend string) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(2)
	if dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	}
	p.Add(line)
	if legend != "" {
		p.Legend.Add(legend, line)
	}
	return nil
}

func addPoints(p *plot.Plot, pts plotter.XYs, c color.Color, legend string) error {
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(4)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	p.Legend.Add(legend, sc)
	return nil
}

func newPanel(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

func logPanel(p *plot.Plot) {
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
}

func shapePanel(fig Figure) (*plot.Plot, error) {
	traj, prob := fig.Trajectory, fig.Problem
	p := newPanel("Cable shape", "x (m)", "y (m)")

	if err := addLine(p, xys(traj.X, traj.Y, false), blue, false, "RK4"); err != nil {
		return nil, err
	}
	if fig.Poly != nil {
		if err := addLine(p, xys(traj.X, fig.Poly.Fitted, false), red, true, "polynomial"); err != nil {
			return nil, err
		}
	}
	bounds := plotter.XYs{{X: prob.X0, Y: prob.Y0}, {X: prob.XF, Y: prob.YF}}
	if err := addPoints(p, bounds, black, "boundary"); err != nil {
		return nil, err
	}
	lowest := plotter.XYs{{X: fig.Properties.LowestX, Y: fig.Properties.LowestY}}
	if err := addPoints(p, lowest, orange, "lowest point"); err != nil {
		return nil, err
	}
	return p, nil
}

func slopePanel(fig Figure) (*plot.Plot, error) {
	traj := fig.Trajectory
	p := newPanel("Slope", "x (m)", "dy/dx")
	if err := addLine(p, xys(traj.X, traj.Slope, false), green, false, "dy/dx"); err != nil {
		return nil, err
	}
	return p, nil
}

func residualPanel(fig Figure) (*plot.Plot, error) {
	traj := fig.Trajectory
	p := newPanel("Equation residuals", "x (m)", "|y'' - C sqrt(1+y'^2)|")
	if fig.FD == nil && fig.Poly == nil {
		return p, nil
	}
	logPanel(p)

	if fig.FD != nil {
		if err := addLine(p, xys(traj.X, fig.FD.Residuals, true), blue, false, "finite differences"); err != nil {
			return nil, err
		}
	}
	if fig.Poly != nil {
		if err := addLine(p, xys(traj.X, fig.Poly.Residuals, true), red, true, "polynomial"); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func lastPanel(fig Figure) (*plot.Plot, error) {
	traj := fig.Trajectory
	if fig.Poly != nil {
		p := newPanel("RK4 vs polynomial", "x (m)", "|y - P(x)|")
		logPanel(p)
		diff := make([]float64, traj.Len())
		for i := range diff {
			diff[i] = math.Abs(traj.Y[i] - fig.Poly.Fitted[i])
		}
		if err := addLine(p, xys(traj.X, diff, true), purple, false, ""); err != nil {
			return nil, err
		}
		return p, nil
	}

	p := newPanel("Curvature", "x (m)", "y''")
	if fig.FD != nil {
		if err := addLine(p, xys(traj.X, fig.FD.D2, false), orange, false, ""); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// WritePNG draws the figure as a width x height PNG.
func WritePNG(w io.Writer, fig Figure, width, height vg.Length) error {
	if fig.Trajectory == nil || fig.Trajectory.Len() == 0 {
		return fmt.Errorf("export: empty trajectory")
	}

	builders := []func(Figure) (*plot.Plot, error){shapePanel, slopePanel, residualPanel, lastPanel}
	panels := make([]*plot.Plot, len(builders))
	for i, build := range builders {
		p, err := build(fig)
		if err != nil {
			return fmt.Errorf("export: panel %d: %w", i+1, err)
		}
		panels[i] = p
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	grid := [][]*plot.Plot{panels[:2], panels[2:]}
	canvases := plot.Align(grid, tiles, dc)
	for i := range grid {
		for j, p := range grid[i] {
			p.Draw(canvases[i][j])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err := png.WriteTo(w)
	return err
}

// SavePlot writes the figure to path, creating parent directories.
func SavePlot(path string, fig Figure) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	if err := WritePNG(f, fig, 12*vg.Inch, 9*vg.Inch); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}
