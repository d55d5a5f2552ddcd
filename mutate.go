package revac

import (
	"math/rand"
	"sort"
)

// marginalWindow computes the value interval a mutated component for
// dimension dim is drawn from. Slot indices are stable-sorted by their
// value on that dimension; the window covers ranks within h of the
// target slot's rank, clamped to the population edges. Because the
// bounds come from a rank-sorted order, low <= high always holds.
func marginalWindow(table [][]float64, target, h, dim int) (low, high float64) {
	n := len(table)
	perm := make([]int, n)
	for k := range perm {
		perm[k] = k
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return table[perm[a]][dim] < table[perm[b]][dim]
	})

	pos := 0
	for rank, slot := range perm {
		if slot == target {
			pos = rank
			break
		}
	}

	lo, hi := pos-h, pos+h
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return table[perm[lo]][dim], table[perm[hi]][dim]
}

// mutate draws a new vector for the target slot, one component per
// dimension, each uniform within that dimension's marginal window
// around the target's rank. This is REVAC's relevance estimation: the
// window width adapts to how the population's values are spread on
// each dimension, with no explicit density model. The table is only
// read; the caller stores the result.
func mutate(rng *rand.Rand, table [][]float64, target, h int) []float64 {
	mutated := make([]float64, len(table[target]))
	for i := range mutated {
		low, high := marginalWindow(table, target, h, i)
		mutated[i] = low + rng.Float64()*(high-low)
	}
	return mutated
}
