package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// ParamSummary is one per-parameter row of the end-of-run summary.
type ParamSummary struct {
	Name string  `csv:"name"`
	Min  float64 `csv:"min"`
	Max  float64 `csv:"max"`
	Best float64 `csv:"best"`
}

// OutputManager handles structured run output under a single directory.
// All methods are safe on a nil manager, which disables output.
type OutputManager struct {
	dir string
}

// NewOutputManager creates the output directory. Returns nil if dir is
// empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{dir: dir}, nil
}

// ProgressPath returns the path for the per-evaluation progress log.
func (om *OutputManager) ProgressPath() string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, "progress.csv")
}

// WriteSummary saves the per-parameter summary as CSV.
func (om *OutputManager) WriteSummary(rows []ParamSummary) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	if err := gocsv.Marshal(rows, f); err != nil {
		f.Close()
		return fmt.Errorf("writing summary: %w", err)
	}
	return f.Close()
}

// WriteStats saves the aggregate run statistics as CSV.
func (om *OutputManager) WriteStats(stats RunStats) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "stats.csv"))
	if err != nil {
		return fmt.Errorf("creating stats.csv: %w", err)
	}
	if err := gocsv.Marshal([]RunStats{stats}, f); err != nil {
		f.Close()
		return fmt.Errorf("writing stats: %w", err)
	}
	return f.Close()
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}
