package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/cablesim/internal/automation"
	"github.com/san-kum/cablesim/internal/optim"
	"github.com/san-kum/cablesim/internal/store"
)

func scanSlopes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	scan, err := optim.NewSlopeScan(scanFrom, scanTo, scanN)
	if err != nil {
		return err
	}
	out, err := scan.Search(cmd.Context(), cfg.Problem)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOPE\tF(SLOPE)")
	for _, s := range out.Samples {
		fmt.Fprintf(w, "%.6f\t%+.6e\n", s.Slope, s.Residual)
	}

	seed0, seed1, bracketed := out.Seeds()
	if bracketed {
		fmt.Fprintf(w, "\nsuggested seeds\t--seed0 %g --seed1 %g\n", seed0, seed1)
	} else {
		fmt.Fprintf(w, "\nno sign change; closest\t--seed0 %g --seed1 %g\n", seed0, seed1)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), scenario, st, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tSLOPE\tITER\tSTATUS\tRESIDUAL\tRUN")
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%.8f\t%d\t%s\t%.2e\t%s\n",
			i+1, r.Step.Name, r.Result.Slope, r.Result.Iterations, r.Result.Status, r.Result.Residual, runID)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepN,
	}
	results, err := automation.RunSweep(cmd.Context(), cfg.Problem, sweep, cfg.SolverOptions()...)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSLOPE\tITER\tSTATUS\tARC\tSAG\tT_MAX\n", sweepParam)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%g\t-\t-\tinvalid\t-\t-\t-\n", r.ParamValue)
			continue
		}
		fmt.Fprintf(w, "%g\t%.8f\t%d\t%s\t%.4f\t%.4f\t%.4f\n",
			r.ParamValue, r.Slope, r.Iterations, r.Status, r.Properties.ArcLength, r.Properties.Sag, r.Properties.TensionMax)
	}
	return w.Flush()
}
