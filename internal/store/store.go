package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/metrics"
	"github.com/san-kum/cablesim/internal/shooting"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Problem    dynamo.Problem     `json:"problem"`
	Slope      float64            `json:"slope"`
	Iterations int                `json:"iterations"`
	Converged  bool               `json:"converged"`
	Status     string             `json:"status"`
	Residual   float64            `json:"residual"`
	Elapsed    float64            `json:"elapsed_seconds"`
	Points     int                `json:"points"`
	Warnings   []string           `json:"warnings,omitempty"`
	Properties metrics.Properties `json:"properties"`
}

// NewRunMetadata summarizes a solve. The ID is assigned by Save.
func NewRunMetadata(p dynamo.Problem, res *shooting.Result, elapsed time.Duration) RunMetadata {
	meta := RunMetadata{
		Timestamp:  time.Now(),
		Problem:    p,
		Slope:      res.Slope,
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Status:     res.Status.String(),
		Residual:   res.Residual,
		Elapsed:    elapsed.Seconds(),
		Points:     res.Trajectory.Len(),
		Properties: metrics.Compute(p, res.Trajectory),
	}
	for _, w := range res.Warnings {
		meta.Warnings = append(meta.Warnings, w.Error())
	}
	return meta
}

func (s *Store) Save(meta RunMetadata, traj *dynamo.Trajectory) (string, error) {
	meta.ID = fmt.Sprintf("cable_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteTrajectoryCSV(csvFile, traj); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*dynamo.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return dynamo.NewTrajectory(0), nil
	}

	traj := dynamo.NewTrajectory(len(records) - 1)
	for i, record := range records[1:] {
		cols := []*float64{&traj.X[i], &traj.Y[i], &traj.Slope[i]}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", trajectoryFile, i+2, err)
			}
			*cols[j] = v
		}
	}

	return traj, nil
}
