package revac

import (
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestTuneWritesProgressFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.csv")
	params := []Param{
		{Name: "a", Min: 0, Max: 1},
		{Name: "b", Min: -1, Max: 1},
	}
	objective := func(m map[string]float64) (float64, error) {
		return m["a"] + m["b"], nil
	}

	_, err := Tune(params, Options{
		Vectors: 6, Parents: 3, H: 2, Runs: 2, Evaluations: 40,
		Output: path,
		Rand:   rand.New(rand.NewSource(19)),
	}, objective)
	if err != nil {
		t.Fatalf("Tune: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening progress log: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading progress log: %v", err)
	}

	if len(records) != 41 {
		t.Fatalf("log has %d records, want header + 40 rows", len(records))
	}
	wantHeader := []string{"Evaluation", "a", "b", "Utility"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, records[0][i], col)
		}
	}
	for i, rec := range records[1:] {
		if len(rec) != 4 {
			t.Fatalf("row %d has %d columns, want 4", i, len(rec))
		}
	}
}
