// Package telemetry provides structured output for tuning runs: the
// per-evaluation progress log, the end-of-run summary, and utility
// statistics.
package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Progress writes the per-evaluation tuning log as CSV. Every row is
// flushed before Append returns so the file can be inspected while a
// long run is still going.
type Progress struct {
	file *os.File
	w    *csv.Writer
}

// NewProgress creates the progress log at path, truncating any prior
// content.
func NewProgress(path string) (*Progress, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating progress log: %w", err)
	}
	return &Progress{file: f, w: csv.NewWriter(f)}, nil
}

// Header writes the header row: Evaluation, one column per parameter
// name, Utility.
func (p *Progress) Header(names []string) error {
	row := make([]string, 0, len(names)+2)
	row = append(row, "Evaluation")
	row = append(row, names...)
	row = append(row, "Utility")
	return p.write(row)
}

// Append writes one evaluation record.
func (p *Progress) Append(evaluation int, vec []float64, utility float64) error {
	row := make([]string, 0, len(vec)+2)
	row = append(row, strconv.Itoa(evaluation))
	for _, v := range vec {
		row = append(row, fmt.Sprintf("%.6f", v))
	}
	row = append(row, fmt.Sprintf("%.6f", utility))
	return p.write(row)
}

func (p *Progress) write(row []string) error {
	if err := p.w.Write(row); err != nil {
		return fmt.Errorf("writing progress row: %w", err)
	}
	p.w.Flush()
	if err := p.w.Error(); err != nil {
		return fmt.Errorf("flushing progress row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (p *Progress) Close() error {
	p.w.Flush()
	if err := p.w.Error(); err != nil {
		p.file.Close()
		return err
	}
	return p.file.Close()
}

// ReadUtilities parses a finished progress log and returns the utility
// column in row order. Used for end-of-run reporting.
func ReadUtilities(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening progress log: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading progress log: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("progress log %s is empty", path)
	}

	// Skip the header row.
	utilities := make([]float64, 0, len(records)-1)
	for i, rec := range records[1:] {
		u, err := strconv.ParseFloat(rec[len(rec)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing utility in row %d: %w", i+1, err)
		}
		utilities = append(utilities, u)
	}
	return utilities, nil
}
