package revac

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Objective scores one configuration of the meta-heuristic under
// tuning. It receives a mapping from parameter name to value, performs
// one stochastic run, and returns a scalar fitness where lower is
// better. Any error aborts the tuning run.
type Objective func(params map[string]float64) (float64, error)

// evaluate scores a vector by invoking the objective runs times and
// averaging. Each call is independent; results are never cached.
func evaluate(vec []float64, params []Param, objective Objective, runs int) (float64, error) {
	m := assignment(vec, params)
	fitness := make([]float64, runs)
	for r := range fitness {
		f, err := objective(m)
		if err != nil {
			return 0, fmt.Errorf("objective run %d: %w", r, err)
		}
		fitness[r] = f
	}
	return stat.Mean(fitness, nil), nil
}
