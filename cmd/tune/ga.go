package main

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize/functions"

	"github.com/pthm-cable/revac/config"
)

// GAParams are the numeric settings of the demo GA that REVAC
// calibrates.
type GAParams struct {
	MutationSigma  float64 // gaussian mutation step size
	MutationRate   float64 // per-gene mutation probability
	CrossoverRate  float64 // per-child blend probability
	TournamentSize int     // selection pressure
}

// GA is a small real-valued genetic algorithm minimizing a fixed
// benchmark function. One Run is one stochastic sample of how well a
// parameter setting performs; the tuner treats it as the black-box
// objective.
type GA struct {
	fn          func([]float64) float64
	dim         int
	population  int
	generations int
	lo, hi      float64 // per-coordinate search domain
}

// NewGA builds the demo GA from the objective section of the config.
func NewGA(cfg config.ObjectiveConfig) (*GA, error) {
	ga := &GA{
		dim:         cfg.Dim,
		population:  cfg.Population,
		generations: cfg.Generations,
		lo:          -5,
		hi:          5,
	}
	switch cfg.Function {
	case "rosenbrock":
		ga.fn = functions.ExtendedRosenbrock{}.Func
		ga.lo, ga.hi = -2.048, 2.048
	case "trigonometric":
		ga.fn = functions.Trigonometric{}.Func
	case "vardim":
		ga.fn = functions.VariablyDimensioned{}.Func
	default:
		return nil, fmt.Errorf("unknown objective function %q", cfg.Function)
	}
	if ga.dim < 2 {
		return nil, fmt.Errorf("objective dim must be at least 2, got %d", ga.dim)
	}
	if ga.population < 2 || ga.generations < 1 {
		return nil, fmt.Errorf("objective population and generations must be positive")
	}
	return ga, nil
}

// Run executes one full GA optimization under the given parameter
// setting and returns the best benchmark value reached. Lower is
// better; repeated calls with the same params differ by rng draws.
func (g *GA) Run(rng *rand.Rand, p GAParams) float64 {
	pop := make([][]float64, g.population)
	fitness := make([]float64, g.population)
	for k := range pop {
		ind := make([]float64, g.dim)
		for i := range ind {
			ind[i] = g.lo + rng.Float64()*(g.hi-g.lo)
		}
		pop[k] = ind
		fitness[k] = g.fn(ind)
	}

	tour := p.TournamentSize
	if tour < 2 {
		tour = 2
	}
	if tour > g.population {
		tour = g.population
	}

	best := floats.Min(fitness)
	for gen := 0; gen < g.generations; gen++ {
		next := make([][]float64, g.population)
		for k := range next {
			a := pop[g.tournament(rng, fitness, tour)]
			b := pop[g.tournament(rng, fitness, tour)]
			child := make([]float64, g.dim)
			for i := range child {
				if rng.Float64() < p.CrossoverRate {
					// Arithmetic blend of both tournament winners.
					w := rng.Float64()
					child[i] = w*a[i] + (1-w)*b[i]
				} else {
					child[i] = a[i]
				}
				if rng.Float64() < p.MutationRate {
					child[i] += rng.NormFloat64() * p.MutationSigma
				}
				if child[i] < g.lo {
					child[i] = g.lo
				}
				if child[i] > g.hi {
					child[i] = g.hi
				}
			}
			next[k] = child
		}
		pop = next
		for k, ind := range pop {
			fitness[k] = g.fn(ind)
		}
		if m := floats.Min(fitness); m < best {
			best = m
		}
	}
	return best
}

// tournament returns the index of the fittest of tour random picks.
func (g *GA) tournament(rng *rand.Rand, fitness []float64, tour int) int {
	winner := rng.Intn(len(fitness))
	for i := 1; i < tour; i++ {
		c := rng.Intn(len(fitness))
		if fitness[c] < fitness[winner] {
			winner = c
		}
	}
	return winner
}
