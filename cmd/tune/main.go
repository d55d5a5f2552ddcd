// Package main provides REVAC tuning of the demo GA's numeric
// parameters against a benchmark objective.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/pthm-cable/revac"
	"github.com/pthm-cable/revac/config"
	"github.com/pthm-cable/revac/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// progressPrinter wraps the progress log to print a per-evaluation
// status line with elapsed time and ETA.
type progressPrinter struct {
	inner revac.ProgressLog
	total int
	start time.Time
	count int
	best  float64
}

func (pp *progressPrinter) Header(names []string) error {
	return pp.inner.Header(names)
}

func (pp *progressPrinter) Append(evaluation int, vec []float64, utility float64) error {
	if err := pp.inner.Append(evaluation, vec, utility); err != nil {
		return err
	}
	pp.count++
	if utility < pp.best {
		pp.best = utility
	}

	elapsed := time.Since(pp.start)
	avgPerEval := elapsed / time.Duration(pp.count)
	remaining := time.Duration(pp.total-pp.count) * avgPerEval

	fmt.Printf("Eval %d/%d: utility=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
		pp.count, pp.total, utility, pp.best,
		formatDuration(elapsed), formatDuration(remaining))
	return nil
}

// overrides holds flag values layered over the loaded config. Zero
// values leave the config untouched.
type overrides struct {
	evals     int
	seed      int64
	outputDir string
	objective string
	dim       int
}

func (o overrides) apply(cfg *config.Config) {
	if o.evals > 0 {
		cfg.Tuner.Evaluations = o.evals
	}
	if o.seed != 0 {
		cfg.Tuner.Seed = o.seed
	}
	if o.outputDir != "" {
		cfg.Output.Dir = o.outputDir
	}
	if o.objective != "" {
		cfg.Objective.Function = o.objective
	}
	if o.dim > 0 {
		cfg.Objective.Dim = o.dim
	}
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	evals := flag.Int("evals", 0, "Override total evaluation budget")
	seed := flag.Int64("seed", 0, "Override random seed (0 = wall clock)")
	outputDir := flag.String("output", "", "Override output directory")
	objectiveFn := flag.String("objective", "", "Override objective function (rosenbrock, trigonometric, or vardim)")
	dim := flag.Int("dim", 0, "Override objective dimensionality")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	overrides{
		evals:     *evals,
		seed:      *seed,
		outputDir: *outputDir,
		objective: *objectiveFn,
		dim:       *dim,
	}.apply(cfg)

	out, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if out == nil {
		log.Fatal("output.dir must be set (config or -output)")
	}

	ga, err := NewGA(cfg.Objective)
	if err != nil {
		log.Fatalf("invalid objective: %v", err)
	}

	params := make([]revac.Param, len(cfg.Parameters))
	for i, p := range cfg.Parameters {
		params[i] = revac.Param{Name: p.Name, Min: p.Min, Max: p.Max}
	}

	seedVal := cfg.Tuner.Seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedVal))

	// Each objective call runs the GA once with a fresh rng stream so
	// repeated calls under the same parameters stay stochastic.
	objective := func(assignment map[string]float64) (float64, error) {
		p := GAParams{
			MutationSigma:  assignment["mutation_sigma"],
			MutationRate:   assignment["mutation_rate"],
			CrossoverRate:  assignment["crossover_rate"],
			TournamentSize: int(math.Round(assignment["tournament_size"])),
		}
		return ga.Run(rand.New(rand.NewSource(rng.Int63())), p), nil
	}

	progress, err := telemetry.NewProgress(out.ProgressPath())
	if err != nil {
		log.Fatalf("failed to create progress log: %v", err)
	}
	defer progress.Close()

	printer := &progressPrinter{
		inner: progress,
		total: cfg.Tuner.Evaluations,
		start: time.Now(),
		best:  math.Inf(1),
	}

	fmt.Printf("Tuning %d parameters of %s GA: vectors=%d parents=%d h=%d runs=%d evals=%d\n",
		len(params), cfg.Objective.Function, cfg.Tuner.Vectors, cfg.Tuner.Parents,
		cfg.Tuner.H, cfg.Tuner.Runs, cfg.Tuner.Evaluations)

	best, err := revac.Tune(params, revac.Options{
		Vectors:     cfg.Tuner.Vectors,
		Parents:     cfg.Tuner.Parents,
		H:           cfg.Tuner.H,
		Runs:        cfg.Tuner.Runs,
		Evaluations: cfg.Tuner.Evaluations,
		Log:         printer,
		Rand:        rng,
	}, objective)
	if err != nil {
		log.Fatalf("tuning failed: %v", err)
	}

	totalTime := time.Since(printer.start)
	fmt.Printf("\nTuning complete after %d evaluations in %s\n", printer.count, formatDuration(totalTime))
	fmt.Printf("Best utility: %.6f\n", printer.best)

	fmt.Println("\nBest parameters:")
	for _, p := range params {
		fmt.Printf("  %s: %.6f\n", p.Name, best[p.Name])
	}

	// Persist the winning setting as a ready-to-use config.
	summary := make([]telemetry.ParamSummary, len(params))
	for i, p := range params {
		summary[i] = telemetry.ParamSummary{Name: p.Name, Min: p.Min, Max: p.Max, Best: best[p.Name]}
	}
	if err := out.WriteSummary(summary); err != nil {
		log.Printf("failed to write summary: %v", err)
	}

	utilities, err := telemetry.ReadUtilities(out.ProgressPath())
	if err != nil {
		log.Printf("failed to read back progress log: %v", err)
	} else if err := out.WriteStats(telemetry.ComputeRunStats(utilities)); err != nil {
		log.Printf("failed to write stats: %v", err)
	}

	bestCfg := *cfg
	bestCfg.Parameters = make([]config.ParamConfig, len(cfg.Parameters))
	copy(bestCfg.Parameters, cfg.Parameters)
	for i := range bestCfg.Parameters {
		v := best[bestCfg.Parameters[i].Name]
		bestCfg.Parameters[i].Min = v
		bestCfg.Parameters[i].Max = v
	}
	configOutPath := filepath.Join(out.Dir(), "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
