package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/logging"
)

var (
	dataDir string
	verbose bool
	// Config file
	configFile string
	// Preset name
	preset string
	// Output
	showPlot   bool
	pngPath    string
	polyDegree int
	maxIter    int
	// Live view pause per iterate
	delay time.Duration
	// Convergence study refinement levels
	levels int
	// export-csv verification columns
	withVerify bool
	// Slope scan
	scanFrom float64
	scanTo   float64
	scanN    int
	// Parameter sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepN     int

	logger = zap.NewNop()
)

// problemUsage documents the problem parameters exposed as flags.
var problemUsage = map[string]string{
	"c":     "cable constant C (1/m)",
	"x0":    "left end x (m)",
	"y0":    "left end height (m)",
	"xf":    "right end x (m)",
	"yf":    "right end height (m)",
	"h":     "RK4 step",
	"tol":   "boundary residual tolerance",
	"seed0": "first slope guess",
	"seed1": "second slope guess",
}

func addProblemFlags(cmd *cobra.Command) {
	def := dynamo.DefaultProblem()
	params := def.GetParams()
	for _, name := range dynamo.ParamNames() {
		cmd.Flags().Float64(name, params[name], problemUsage[name])
	}
	cmd.Flags().IntVar(&maxIter, "max-iter", 100, "secant iteration cap")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cablesim",
		Short:         "hanging cable solver: RK4 shooting with secant iteration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The live view owns the terminal.
			if cmd.Name() == "live" {
				return nil
			}
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cablesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every secant iterate")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the cable problem and store the run",
		Args:  cobra.NoArgs,
		RunE:  solveCable,
	}
	addProblemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&showPlot, "plot", false, "print ascii plots of y and dy/dx")
	solveCmd.Flags().StringVar(&pngPath, "png", "", "write a 2x2 summary figure to this path")
	solveCmd.Flags().IntVar(&polyDegree, "poly-degree", 4, "degree of the verification polynomial")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot <run_id>",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngPath, "png", "", "also write a 2x2 summary figure to this path")
	plotCmd.Flags().IntVar(&polyDegree, "poly-degree", 4, "degree of the verification polynomial")

	verifyCmd := &cobra.Command{
		Use:   "verify <run_id>",
		Short: "check a stored run against the differential equation",
		Args:  cobra.ExactArgs(1),
		RunE:  verifyRun,
	}
	verifyCmd.Flags().IntVar(&polyDegree, "poly-degree", 4, "degree of the verification polynomial")

	reportCmd := &cobra.Command{
		Use:   "report <run_id>",
		Short: "print the text report of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  reportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv <run_id>",
		Short: "export run trajectory as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().BoolVar(&withVerify, "verify", false, "add residual and polynomial columns")
	exportCSVCmd.Flags().IntVar(&polyDegree, "poly-degree", 4, "degree of the verification polynomial")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json <run_id>",
		Short: "export run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	convergenceCmd := &cobra.Command{
		Use:   "convergence",
		Short: "measure the RK4 order against the closed-form catenary",
		Args:  cobra.NoArgs,
		RunE:  convergenceStudy,
	}
	addProblemFlags(convergenceCmd)
	convergenceCmd.Flags().IntVar(&levels, "levels", 5, "number of step halvings")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the secant search in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addProblemFlags(liveCmd)
	liveCmd.Flags().DurationVar(&delay, "delay", 250*time.Millisecond, "pause after each iterate")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "tabulate the boundary residual over a slope range and suggest seeds",
		Args:  cobra.NoArgs,
		RunE:  scanSlopes,
	}
	addProblemFlags(scanCmd)
	scanCmd.Flags().Float64Var(&scanFrom, "from", -3, "first slope")
	scanCmd.Flags().Float64Var(&scanTo, "to", 1, "last slope")
	scanCmd.Flags().IntVar(&scanN, "n", 21, "number of slopes")

	batchCmd := &cobra.Command{
		Use:   "batch <scenario.yaml>",
		Short: "run a scripted sequence of problems",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve across a range of one problem parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addProblemFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "c", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.02, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.08, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 7, "number of values")

	rootCmd.AddCommand(solveCmd, listCmd, plotCmd, verifyCmd, reportCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, convergenceCmd, liveCmd,
		scanCmd, batchCmd, sweepCmd)
	return rootCmd
}

// main exits with status 1 for invalid configuration and I/O errors;
// numerical failures are reported as run warnings.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
