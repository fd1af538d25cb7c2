package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/cablesim/internal/analysis"
	"github.com/san-kum/cablesim/internal/config"
	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/export"
	"github.com/san-kum/cablesim/internal/logging"
	"github.com/san-kum/cablesim/internal/shooting"
	"github.com/san-kum/cablesim/internal/store"
	"github.com/san-kum/cablesim/internal/viz"
)

// resolveConfig applies preset, then config file, then explicitly set
// flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	for _, name := range dynamo.ParamNames() {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return nil, err
		}
		if err := cfg.Problem.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = maxIter
	}
	if flags.Changed("plot") {
		cfg.Output.Plot = showPlot
	}
	if flags.Changed("png") {
		cfg.Output.PNG = pngPath
	}
	if flags.Changed("poly-degree") {
		cfg.Output.PolyDegree = polyDegree
	}

	return cfg, nil
}

func solveCable(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	opts := append(cfg.SolverOptions(), shooting.WithObserver(logging.NewIterationLogger(logger)))

	start := time.Now()
	res, err := shooting.Solve(cfg.Problem, opts...)
	if err != nil {
		return fmt.Errorf("invalid problem: %w", err)
	}
	elapsed := time.Since(start)

	logging.Seeds(logger, res)
	logging.Summary(logger, res)

	meta := store.NewRunMetadata(cfg.Problem, res, elapsed)
	runID, err := st.Save(meta, res.Trajectory)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	meta.ID = runID
	logger.Info("run saved", zap.String("id", runID), zap.String("dir", dataDir))

	fmt.Println(viz.RenderSummary(meta))

	if cfg.Output.Plot {
		fmt.Println()
		fmt.Println(viz.PlotTrajectory(res.Trajectory, 10, 80))
	}

	if cfg.Output.PNG != "" {
		if err := savePNG(cfg.Output.PNG, meta, res.Trajectory, cfg.Output.PolyDegree); err != nil {
			return err
		}
	}

	return nil
}

func buildFigure(meta store.RunMetadata, traj *dynamo.Trajectory, degree int) (export.Figure, error) {
	fig := export.Figure{
		Problem:    meta.Problem,
		Trajectory: traj,
		Properties: meta.Properties,
	}

	fd, err := analysis.VerifyFiniteDifference(meta.Problem, traj)
	if err != nil {
		return fig, fmt.Errorf("finite difference check: %w", err)
	}
	fig.FD = fd

	poly, err := analysis.VerifyPolynomial(meta.Problem, traj, degree)
	if err != nil {
		logger.Warn("polynomial fit skipped", zap.Error(err))
		return fig, nil
	}
	fig.Poly = poly
	return fig, nil
}

func savePNG(path string, meta store.RunMetadata, traj *dynamo.Trajectory, degree int) error {
	fig, err := buildFigure(meta, traj, degree)
	if err != nil {
		return err
	}
	if err := export.SavePlot(path, fig); err != nil {
		return err
	}
	logger.Info("figure saved", zap.String("path", path))
	fmt.Printf("figure: %s\n", path)
	return nil
}

func loadRun(runID string) (*store.RunMetadata, *dynamo.Trajectory, error) {
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}

	if traj.Len() == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, traj, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tC\tSPAN\tH\tSLOPE\tITER\tSTATUS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t[%g, %g]\t%g\t%.8f\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Problem.C,
			run.Problem.X0,
			run.Problem.XF,
			run.Problem.H,
			run.Slope,
			run.Iterations,
			run.Status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("status: %s\n", meta.Status)
	fmt.Printf("points: %d\n\n", traj.Len())
	fmt.Println(viz.PlotTrajectory(traj, 10, 80))

	if pngPath != "" {
		return savePNG(pngPath, *meta, traj, polyDegree)
	}
	return nil
}

func printSamples(w *tabwriter.Writer, lhs string, samples []analysis.Sample) {
	fmt.Fprintf(w, "x (m)\t%s\tC sqrt(1+y'^2)\tresidual\n", lhs)
	for _, s := range samples {
		fmt.Fprintf(w, "%.2f\t%.6f\t%.6f\t%.2e\n", s.X, s.LHS, s.RHS, s.Residual)
	}
}

func verifyRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	p := meta.Problem

	fd, err := analysis.VerifyFiniteDifference(p, traj)
	if err != nil {
		return fmt.Errorf("finite difference check: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "=== finite differences ===")
	fmt.Fprintf(w, "max residual\t%.2e\n", fd.Stats.Max)
	fmt.Fprintf(w, "mean residual\t%.2e\n", fd.Stats.Mean)
	fmt.Fprintf(w, "rms residual\t%.2e\n\n", fd.Stats.RMS)
	printSamples(w, "y''", fd.Samples)

	poly, err := analysis.VerifyPolynomial(p, traj, polyDegree)
	if err != nil {
		fmt.Fprintf(w, "\npolynomial fit failed: %v\n", err)
	} else {
		fmt.Fprintf(w, "\n=== polynomial (degree %d) ===\n", poly.Poly.Degree())
		for i := len(poly.Poly) - 1; i >= 0; i-- {
			fmt.Fprintf(w, "c_%d\t%.8e\n", i, poly.Poly[i])
		}
		fmt.Fprintf(w, "max residual\t%.2e\n", poly.Stats.Max)
		fmt.Fprintf(w, "mean residual\t%.2e\n", poly.Stats.Mean)
		fmt.Fprintf(w, "rms residual\t%.2e\n", poly.Stats.RMS)
		fmt.Fprintf(w, "R^2\t%.8f\n\n", poly.RSquared)
		printSamples(w, "P''", poly.Samples)
	}

	cmp := analysis.CompareAnalytic(p, traj, meta.Slope)
	fmt.Fprintln(w, "\n=== closed-form catenary ===")
	fmt.Fprintf(w, "a, b, d\t%.6f, %.6f, %.6f\n", cmp.Catenary.A, cmp.Catenary.B, cmp.Catenary.D)
	fmt.Fprintf(w, "max error\t%.2e m\n", cmp.MaxError)
	fmt.Fprintf(w, "rms error\t%.2e m\n", cmp.RMSError)

	return w.Flush()
}

func reportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return export.WriteReport(os.Stdout, *meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var cols export.Columns
	if withVerify {
		fd, err := analysis.VerifyFiniteDifference(meta.Problem, traj)
		if err != nil {
			return err
		}
		cols.Residuals = fd.Residuals

		poly, err := analysis.FitPolynomial(traj.X, traj.Y, polyDegree)
		if err != nil {
			return err
		}
		cols.Poly = poly
	}

	return export.WriteCSV(os.Stdout, traj, cols)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return store.WriteJSON(os.Stdout, *meta, traj)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tC\tY0\tYF\tSPAN\tH\tTOL\tSEEDS")

	for _, name := range config.ListPresets() {
		p := config.Presets[name].Problem
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t[%g, %g]\t%g\t%g\t%g, %g\n",
			name, p.C, p.Y0, p.YF, p.X0, p.XF, p.H, p.Tol, p.Seed0, p.Seed1)
	}

	return w.Flush()
}

func convergenceStudy(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if levels < 2 {
		return fmt.Errorf("levels must be at least 2, got %d", levels)
	}

	res, err := shooting.Solve(cfg.Problem, cfg.SolverOptions()...)
	if err != nil {
		return fmt.Errorf("invalid problem: %w", err)
	}
	logging.Summary(logger, res)

	rows := analysis.ConvergenceStudy(cfg.Problem, res.Slope, levels)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "slope\t%.10f\n\n", res.Slope)
	fmt.Fprintln(w, "STEPS\tH\t|y(xf) - exact|\tORDER")
	for i, r := range rows {
		order := "-"
		if i > 0 {
			order = fmt.Sprintf("%.2f", r.Order)
		}
		fmt.Fprintf(w, "%d\t%g\t%.3e\t%s\n", r.Steps, r.H, r.Error, order)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Problem.Validate(); err != nil {
		return fmt.Errorf("invalid problem: %w", err)
	}

	p := tea.NewProgram(viz.NewModel(cfg.Problem, delay, cfg.SolverOptions()...))
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(viz.Model)
	if !ok || !m.Done() {
		return nil
	}
	if m.Err() != nil {
		return m.Err()
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.NewRunMetadata(cfg.Problem, m.Result(), m.Elapsed()), m.Result().Trajectory)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	fmt.Printf("saved run: %s\n", runID)
	return nil
}
