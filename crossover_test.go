package revac

import (
	"math/rand"
	"testing"
)

func TestCrossoverComponentsComeFromParents(t *testing.T) {
	// Scenario: the whole population as parent set. Every child
	// component must equal some parent's value on that dimension; the
	// operator selects, never interpolates.
	rng := rand.New(rand.NewSource(17))
	parents := randomTable(rng, 12, 5)

	for trial := 0; trial < 25; trial++ {
		child := crossover(rng, parents)
		if len(child) != 5 {
			t.Fatalf("child has %d components, want 5", len(child))
		}
		for i, v := range child {
			found := false
			for _, p := range parents {
				if p[i] == v {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("component %d = %v matches no parent on that dimension", i, v)
			}
		}
	}
}

func TestCrossoverSingleParent(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	parent := []float64{1.5, -2.5, 0}

	child := crossover(rng, [][]float64{parent})
	for i, v := range child {
		if v != parent[i] {
			t.Errorf("component %d = %v, want %v", i, v, parent[i])
		}
	}
}

func TestCrossoverPicksPerDimension(t *testing.T) {
	// With two maximally distinct parents and enough draws, children
	// must mix dimensions from both rather than cloning one parent.
	rng := rand.New(rand.NewSource(4))
	parents := [][]float64{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}

	mixed := false
	for trial := 0; trial < 100 && !mixed; trial++ {
		child := crossover(rng, parents)
		sawZero, sawOne := false, false
		for _, v := range child {
			if v == 0 {
				sawZero = true
			}
			if v == 1 {
				sawOne = true
			}
		}
		mixed = sawZero && sawOne
	}
	if !mixed {
		t.Error("no child mixed components of both parents in 100 draws")
	}
}
