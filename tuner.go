package revac

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/pthm-cable/revac/telemetry"
)

// Options control a tuning run. Zero values take the documented
// defaults; an explicit Rand makes the run reproducible.
type Options struct {
	Vectors     int    // population size (default 80)
	Parents     int    // selection size, must be <= Vectors (default 40)
	H           int    // mutation window radius (default 10)
	Runs        int    // objective calls averaged per vector (default 5)
	Evaluations int    // total vector-evaluation budget (default 5000)
	Output      string // progress log path; empty disables file logging
	Log         ProgressLog
	Rand        *rand.Rand
}

// ProgressLog receives one record per vector evaluation. Header is
// written once before any rows; Append must be durably flushed before
// it returns so a long run stays inspectable while in progress.
type ProgressLog interface {
	Header(names []string) error
	Append(evaluation int, vec []float64, utility float64) error
}

// nopLog discards all records.
type nopLog struct{}

func (nopLog) Header([]string) error                { return nil }
func (nopLog) Append(int, []float64, float64) error { return nil }

func (o Options) withDefaults() Options {
	if o.Vectors == 0 {
		o.Vectors = 80
	}
	if o.Parents == 0 {
		o.Parents = 40
	}
	if o.H == 0 {
		o.H = 10
	}
	if o.Runs == 0 {
		o.Runs = 5
	}
	if o.Evaluations == 0 {
		o.Evaluations = 5000
	}
	return o
}

func (o Options) validate() error {
	if o.Vectors < 1 {
		return fmt.Errorf("vectors must be positive, got %d", o.Vectors)
	}
	if o.Parents < 1 || o.Parents > o.Vectors {
		return fmt.Errorf("parents must be in [1, vectors], got %d with vectors=%d", o.Parents, o.Vectors)
	}
	if o.H < 1 {
		return fmt.Errorf("h must be positive, got %d", o.H)
	}
	if o.Runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", o.Runs)
	}
	if o.Evaluations < 1 {
		return fmt.Errorf("evaluations must be positive, got %d", o.Evaluations)
	}
	return nil
}

// tuner owns the state of one in-progress run: the age-ordered
// population table, its parallel utility array, the best vector seen,
// and the evaluation counter. All state lives for a single Tune call.
type tuner struct {
	params    []Param
	opts      Options
	objective Objective
	rng       *rand.Rand
	log       ProgressLog

	table   [][]float64
	utility []float64
	oldest  int // next slot to overwrite; advances one per generation

	best        []float64
	bestUtility float64
	evals       int
}

func newTuner(params []Param, opts Options, objective Objective) *tuner {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	log := opts.Log
	if log == nil {
		log = nopLog{}
	}
	return &tuner{
		params:      params,
		opts:        opts,
		objective:   objective,
		rng:         rng,
		log:         log,
		table:       make([][]float64, opts.Vectors),
		utility:     make([]float64, opts.Vectors),
		bestUtility: math.Inf(1),
	}
}

// score evaluates a vector, records its utility in the given slot,
// logs it, and bumps the evaluation counter.
func (t *tuner) score(vec []float64, slot int) error {
	u, err := evaluate(vec, t.params, t.objective, t.opts.Runs)
	if err != nil {
		return err
	}
	t.utility[slot] = u
	if u < t.bestUtility {
		t.bestUtility = u
		t.best = append([]float64(nil), t.table[slot]...)
	}
	if err := t.log.Append(t.evals, vec, u); err != nil {
		return fmt.Errorf("appending progress row: %w", err)
	}
	t.evals++
	return nil
}

// seedPopulation fills every slot with a uniform random vector and
// scores as many as the budget allows.
func (t *tuner) seedPopulation() error {
	for k := range t.table {
		vec := make([]float64, len(t.params))
		for i, p := range t.params {
			vec[i] = p.Min + t.rng.Float64()*(p.Max-p.Min)
		}
		t.table[k] = vec
	}
	for k := range t.table {
		if t.evals >= t.opts.Evaluations {
			break
		}
		if err := t.score(t.table[k], k); err != nil {
			return err
		}
	}
	return nil
}

// selectParents stable-sorts slot indices by ascending utility and
// returns the vectors of the best opts.Parents slots.
func (t *tuner) selectParents() [][]float64 {
	ranked := make([]int, len(t.table))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return t.utility[ranked[a]] < t.utility[ranked[b]]
	})
	parents := make([][]float64, t.opts.Parents)
	for i := range parents {
		parents[i] = t.table[ranked[i]]
	}
	return parents
}

// step runs one steady-state generation: crossover a child from the
// current parent set, insert it at the oldest slot, rewrite that slot
// with the mutation drawn from the post-insert table, then score the
// pre-mutation child into the slot's utility. The child, not the
// stored mutated vector, is what gets evaluated and logged; the slot
// keeps the mutated vector and best-so-far pairs it with the child's
// utility. This matches the published REVAC procedure, so a slot's
// recorded utility can lag the vector currently occupying it.
func (t *tuner) step() error {
	child := crossover(t.rng, t.selectParents())
	t.table[t.oldest] = child
	t.table[t.oldest] = mutate(t.rng, t.table, t.oldest, t.opts.H)
	if err := t.score(child, t.oldest); err != nil {
		return err
	}
	t.oldest = (t.oldest + 1) % t.opts.Vectors
	return nil
}

// run drives the state machine to budget exhaustion and returns the
// best vector found as a name-value mapping.
func (t *tuner) run() (map[string]float64, error) {
	if err := t.log.Header(names(t.params)); err != nil {
		return nil, fmt.Errorf("writing progress header: %w", err)
	}
	if err := t.seedPopulation(); err != nil {
		return nil, err
	}
	for t.evals < t.opts.Evaluations {
		if err := t.step(); err != nil {
			return nil, err
		}
	}
	return assignment(t.best, t.params), nil
}

// Tune calibrates the given parameters against the objective and
// returns the best configuration found after the evaluation budget is
// spent. Every individual survives exactly Vectors generations before
// age-based replacement; fitness never shortens or extends a vector's
// lifetime. Any error from the objective or the progress sink aborts
// the run.
func Tune(params []Param, opts Options, objective Objective) (map[string]float64, error) {
	opts = opts.withDefaults()
	if err := validateParams(params); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if opts.Log == nil && opts.Output != "" {
		progress, err := telemetry.NewProgress(opts.Output)
		if err != nil {
			return nil, fmt.Errorf("opening progress log: %w", err)
		}
		defer progress.Close()
		opts.Log = progress
	}

	return newTuner(params, opts, objective).run()
}
