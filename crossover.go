package revac

import "math/rand"

// crossover produces a child by independent per-dimension uniform
// selection among the parent set: for each dimension one parent is
// picked uniformly (with replacement across dimensions) and its value
// copied. This is multi-parent uniform crossover, not pairwise
// recombination, so every child component equals some parent's
// component on that dimension.
func crossover(rng *rand.Rand, parents [][]float64) []float64 {
	child := make([]float64, len(parents[0]))
	for i := range child {
		child[i] = parents[rng.Intn(len(parents))][i]
	}
	return child
}
