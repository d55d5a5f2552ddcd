// Package revac implements REVAC (Relevance Estimation and Value
// Calibration), a steady-state evolutionary tuner for the numeric
// parameters of stochastic meta-heuristics. The meta-heuristic under
// tuning is treated as a black-box, noisy objective function: REVAC
// searches the space of parameter vectors, estimating per dimension
// which sub-range of values currently performs best and sampling new
// candidates from that range.
package revac

import (
	"fmt"
	"math"
)

// Param describes one tunable parameter: a name and an inclusive
// continuous range. The ordered parameter list fixes the dimensionality
// of every vector and the positional meaning of its components.
type Param struct {
	Name string
	Min  float64
	Max  float64
}

// validateParams checks the parameter list before any evaluation runs.
func validateParams(params []Param) error {
	if len(params) == 0 {
		return fmt.Errorf("no parameters to tune")
	}
	seen := make(map[string]bool, len(params))
	for i, p := range params {
		if p.Name == "" {
			return fmt.Errorf("parameter %d: empty name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("parameter %q: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if math.IsNaN(p.Min) || math.IsInf(p.Min, 0) || math.IsNaN(p.Max) || math.IsInf(p.Max, 0) {
			return fmt.Errorf("parameter %q: range bounds must be finite", p.Name)
		}
		if p.Min > p.Max {
			return fmt.Errorf("parameter %q: min %v exceeds max %v", p.Name, p.Min, p.Max)
		}
	}
	return nil
}

// names returns the parameter names in declaration order.
func names(params []Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}

// assignment zips a vector with the parameter list into the name-value
// mapping handed to the objective function. Component i always maps to
// params[i].
func assignment(vec []float64, params []Param) map[string]float64 {
	m := make(map[string]float64, len(params))
	for i, p := range params {
		m[p.Name] = vec[i]
	}
	return m
}
