package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunStats holds aggregate utility statistics for a finished run.
type RunStats struct {
	Evaluations int     `csv:"evaluations"`
	BestUtility float64 `csv:"best_utility"`
	MeanUtility float64 `csv:"mean_utility"`
	StdUtility  float64 `csv:"std_utility"`
	P10         float64 `csv:"p10"`
	P50         float64 `csv:"p50"`
	P90         float64 `csv:"p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeRunStats aggregates the utility column of a finished run.
func ComputeRunStats(utilities []float64) RunStats {
	n := len(utilities)
	if n == 0 {
		return RunStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, utilities)
	sort.Float64s(sorted)

	return RunStats{
		Evaluations: n,
		BestUtility: sorted[0],
		MeanUtility: stat.Mean(utilities, nil),
		StdUtility:  stat.StdDev(utilities, nil),
		P10:         Percentile(sorted, 0.10),
		P50:         Percentile(sorted, 0.50),
		P90:         Percentile(sorted, 0.90),
	}
}
