package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/store"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestSolveAndInspect(t *testing.T) {
	dir := t.TempDir()

	if err := execute(t, "solve", "--data", dir, "--h", "0.1", "--plot"); err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	runs, err := store.New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.Status != "converged" || run.Problem.H != 0.1 {
		t.Errorf("unexpected run %+v", run)
	}

	for _, args := range [][]string{
		{"list", "--data", dir},
		{"plot", run.ID, "--data", dir},
		{"verify", run.ID, "--data", dir},
		{"report", run.ID, "--data", dir},
		{"export-csv", run.ID, "--data", dir, "--verify"},
		{"export-json", run.ID, "--data", dir},
	} {
		if err := execute(t, args...); err != nil {
			t.Errorf("%v failed: %v", args, err)
		}
	}
}

func TestSolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cable.yaml")
	if err := os.WriteFile(cfgPath, []byte("problem:\n  h: 0.5\n  tol: 0.0001\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "solve", "--data", dir, "--preset", "heavy", "--config", cfgPath, "--tol", "1e-6")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	runs, err := store.New(dir).List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d (%v)", len(runs), err)
	}
	p := runs[0].Problem
	if p.C != 0.08 {
		t.Errorf("preset C not applied: %v", p.C)
	}
	if p.H != 0.5 {
		t.Errorf("config h not applied: %v", p.H)
	}
	if p.Tol != 1e-6 {
		t.Errorf("flag tol not applied: %v", p.Tol)
	}
}

func TestSolveWritesPNG(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "out", "cable.png")

	if err := execute(t, "solve", "--data", dir, "--h", "0.1", "--png", png); err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if _, err := os.Stat(png); err != nil {
		t.Errorf("png not written: %v", err)
	}
}

func TestSolveInvalidProblem(t *testing.T) {
	dir := t.TempDir()

	err := execute(t, "solve", "--data", dir, "--c", "-1")
	if !errors.Is(err, dynamo.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration, got %v", err)
	}

	runs, _ := store.New(dir).List()
	if len(runs) != 0 {
		t.Errorf("invalid problem should not store a run")
	}
}

func TestUnknownPreset(t *testing.T) {
	if err := execute(t, "solve", "--data", t.TempDir(), "--preset", "nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPresetsAndConvergence(t *testing.T) {
	if err := execute(t, "presets"); err != nil {
		t.Errorf("presets failed: %v", err)
	}
	if err := execute(t, "convergence", "--h", "0.5", "--levels", "3"); err != nil {
		t.Errorf("convergence failed: %v", err)
	}
	if err := execute(t, "convergence", "--levels", "1"); err == nil {
		t.Error("expected error for a single level")
	}
}

func TestMissingRun(t *testing.T) {
	if err := execute(t, "verify", "nope", "--data", t.TempDir()); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestScanBatchSweep(t *testing.T) {
	dir := t.TempDir()
	scenario := filepath.Join(dir, "scenario.yaml")
	body := "name: pair\nsteps:\n  - name: a\n    params:\n      h: 0.5\n    save: true\n  - name: b\n    preset: shallow\n    params:\n      h: 0.5\n"
	if err := os.WriteFile(scenario, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "scan", "--h", "0.5", "--n", "9"); err != nil {
		t.Errorf("scan failed: %v", err)
	}
	if err := execute(t, "batch", scenario, "--data", dir); err != nil {
		t.Errorf("batch failed: %v", err)
	}
	if err := execute(t, "sweep", "--h", "0.5", "--n", "3"); err != nil {
		t.Errorf("sweep failed: %v", err)
	}
	if err := execute(t, "sweep", "--param", "mass"); err == nil {
		t.Error("expected error for unknown sweep parameter")
	}

	runs, err := store.New(dir).List()
	if err != nil || len(runs) != 1 {
		t.Errorf("expected 1 stored batch run, got %d (%v)", len(runs), err)
	}
}
