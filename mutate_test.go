package revac

import (
	"math/rand"
	"testing"
)

func randomTable(rng *rand.Rand, n, dim int) [][]float64 {
	table := make([][]float64, n)
	for k := range table {
		vec := make([]float64, dim)
		for i := range vec {
			vec[i] = rng.Float64()*20 - 10
		}
		table[k] = vec
	}
	return table
}

func TestMarginalWindowWellFormed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(20)
		dim := 1 + rng.Intn(5)
		h := 1 + rng.Intn(n)
		table := randomTable(rng, n, dim)
		target := rng.Intn(n)

		for i := 0; i < dim; i++ {
			low, high := marginalWindow(table, target, h, i)
			if low > high {
				t.Fatalf("n=%d h=%d target=%d dim=%d: window [%v, %v] inverted", n, h, target, i, low, high)
			}
		}
	}
}

func TestMarginalWindowClampsToPopulationSpread(t *testing.T) {
	// Scenario: h exceeding the population on both sides degrades to
	// the observed min/max per dimension.
	rng := rand.New(rand.NewSource(8))
	n, dim := 7, 3
	table := randomTable(rng, n, dim)

	for i := 0; i < dim; i++ {
		min, max := table[0][i], table[0][i]
		for _, vec := range table[1:] {
			if vec[i] < min {
				min = vec[i]
			}
			if vec[i] > max {
				max = vec[i]
			}
		}
		for target := 0; target < n; target++ {
			low, high := marginalWindow(table, target, n+5, i)
			if low != min || high != max {
				t.Errorf("dim %d target %d: window [%v, %v], want [%v, %v]", i, target, low, high, min, max)
			}
		}
	}
}

func TestMarginalWindowAtExtremes(t *testing.T) {
	// One dimension, known values. Ranks follow the sorted order of
	// the slot values, so windows truncate at the edges.
	table := [][]float64{{5}, {1}, {3}, {9}, {7}}

	tests := []struct {
		name      string
		target    int
		h         int
		low, high float64
	}{
		{"lowest value, h=1", 1, 1, 1, 3},
		{"highest value, h=1", 3, 1, 7, 9},
		{"middle value, h=1", 0, 1, 3, 7},
		{"middle value, h=2", 0, 2, 1, 9},
		{"second lowest, h=2", 2, 2, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := marginalWindow(table, tt.target, tt.h, 0)
			if low != tt.low || high != tt.high {
				t.Errorf("window = [%v, %v], want [%v, %v]", low, high, tt.low, tt.high)
			}
		})
	}
}

func TestMutateStaysInsideWindows(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	table := randomTable(rng, 10, 4)
	target := 3
	h := 2

	// Windows depend only on the table, which mutate does not modify.
	type window struct{ low, high float64 }
	windows := make([]window, 4)
	for i := range windows {
		low, high := marginalWindow(table, target, h, i)
		windows[i] = window{low, high}
	}

	for trial := 0; trial < 20; trial++ {
		vec := mutate(rng, table, target, h)
		for i, v := range vec {
			if v < windows[i].low || v > windows[i].high {
				t.Fatalf("component %d = %v outside window [%v, %v]", i, v, windows[i].low, windows[i].high)
			}
		}
	}
}

func TestMutateDegenerateWindow(t *testing.T) {
	// All slots share the same value on a dimension; the window is a
	// single point and mutation must return exactly that value.
	table := [][]float64{{2, 1}, {2, 5}, {2, 3}}
	rng := rand.New(rand.NewSource(1))

	vec := mutate(rng, table, 1, 1)
	if vec[0] != 2 {
		t.Errorf("degenerate dimension mutated to %v, want 2", vec[0])
	}
}

func TestMutateDoesNotModifyTable(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	table := randomTable(rng, 6, 2)
	snapshot := make([][]float64, len(table))
	for k, vec := range table {
		snapshot[k] = append([]float64(nil), vec...)
	}

	mutate(rng, table, 2, 3)

	for k := range table {
		for i := range table[k] {
			if table[k][i] != snapshot[k][i] {
				t.Fatalf("table[%d][%d] changed from %v to %v", k, i, snapshot[k][i], table[k][i])
			}
		}
	}
}
