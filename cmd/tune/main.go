// Package main tunes hover suspension parameters with CMA-ES. Each evaluation
// drops a character from several heights and scores how quickly and cleanly it
// settles at its ride height.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/hoverwalk/config"
)

type options struct {
	configPath string
	drops      string
	outputDir  string
	ticks      int
	maxEvals   int
	population int
}

// EvalRecord is one row of tune_log.csv.
type EvalRecord struct {
	Eval      int     `csv:"eval"`
	Fitness   float64 `csv:"fitness"`
	Strength  float64 `csv:"strength"`
	Damper    float64 `csv:"damper"`
	Overshoot float64 `csv:"overshoot"`
	SettleSec float64 `csv:"settle_sec"`
}

// evalLog numbers evaluations and appends them as CSV, header first.
type evalLog struct {
	w     io.Writer
	n     int
	limit int
	start time.Time
}

func newEvalLog(w io.Writer, limit int) *evalLog {
	return &evalLog{w: w, limit: limit, start: time.Now()}
}

func (l *evalLog) record(rec EvalRecord) (EvalRecord, error) {
	l.n++
	rec.Eval = l.n
	rows := []EvalRecord{rec}
	if l.n == 1 {
		return rec, gocsv.Marshal(rows, l.w)
	}
	return rec, gocsv.MarshalWithoutHeaders(rows, l.w)
}

// progress returns the elapsed time and a linear estimate of the time left.
func (l *evalLog) progress() (elapsed, remaining time.Duration) {
	elapsed = time.Since(l.start)
	if l.n == 0 {
		return elapsed, 0
	}
	remaining = time.Duration(max(l.limit-l.n, 0)) * (elapsed / time.Duration(l.n))
	return elapsed, remaining
}

// formatDuration prints 1h02m03s, or 2m03s under an hour.
func formatDuration(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	if s >= 3600 {
		return fmt.Sprintf("%dh%02dm%02ds", s/3600, s/60%60, s%60)
	}
	return fmt.Sprintf("%dm%02ds", s/60, s%60)
}

// parseHeights parses a comma-separated list of positive drop heights.
func parseHeights(s string) ([]float64, error) {
	var heights []float64
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("drop height %q: %w", part, err)
		}
		if h <= 0 {
			return nil, fmt.Errorf("drop height %v must be > 0", h)
		}
		heights = append(heights, h)
	}
	if len(heights) == 0 {
		return nil, errors.New("no drop heights")
	}
	return heights, nil
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.IntVar(&opts.ticks, "ticks", 240, "Simulation ticks per drop")
	flag.StringVar(&opts.drops, "drops", "2.0,3.3,3.9", "Comma-separated drop heights above the ground")
	flag.IntVar(&opts.maxEvals, "max-evals", 150, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.Parse()

	// Scene setup logs once per evaluation
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	if opts.outputDir == "" {
		return errors.New("--output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := config.Init(opts.configPath); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	baseCfg := config.Cfg()

	heights, err := parseHeights(opts.drops)
	if err != nil {
		return err
	}
	for _, h := range heights {
		if h >= baseCfg.Hover.RayLength {
			return fmt.Errorf("drop height %v is outside ray length %v", h, baseCfg.Hover.RayLength)
		}
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, int32(opts.ticks), heights, baseCfg)

	logFile, err := os.Create(filepath.Join(opts.outputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("create tuning log: %w", err)
	}
	defer logFile.Close()
	evals := newEvalLog(logFile, opts.maxEvals)

	objective := func(x []float64) float64 {
		raw := params.Denormalize(x)
		fitness := evaluator.Evaluate(raw)

		clamped := params.Clamp(raw)
		rec := EvalRecord{Fitness: fitness, Strength: clamped[0], Damper: clamped[1]}
		if last := evaluator.Last(); last != nil {
			rec.Overshoot, rec.SettleSec = last.Overshoot, last.SettleSec
		}
		rec, werr := evals.record(rec)
		if werr != nil {
			log.Printf("failed to write log row: %v", werr)
		}

		bestFitness := fitness
		if best, _ := evaluator.Best(); best != nil {
			bestFitness = best.Fitness
		}
		elapsed, remaining := evals.progress()
		fmt.Printf("Eval %d/%d: k=%.1f c=%.1f fitness=%.4f settle=%.2fs (best=%.4f) | elapsed: %s, ETA: %s\n",
			rec.Eval, opts.maxEvals, rec.Strength, rec.Damper, fitness, rec.SettleSec, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))
		return fitness
	}

	dim := params.Dim()
	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + 3*dim/2
	}
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize}
	// Drops already run in parallel, so CMA-ES evaluates serially.
	settings := &optimize.Settings{FuncEvaluations: opts.maxEvals}

	fmt.Printf("Starting CMA-ES tuning with %d parameters, population=%d, max_evals=%d\n", dim, popSize, opts.maxEvals)
	fmt.Printf("Drops per evaluation: %v, ticks per drop: %d\n", heights, opts.ticks)

	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	result, err := optimize.Minimize(optimize.Problem{Func: objective}, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best, bestParams := evaluator.Best()
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return errors.New("no successful evaluation")
	}

	elapsed, _ := evals.progress()
	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evals.n, formatDuration(elapsed))
	if best != nil {
		fmt.Printf("Best fitness: %.4f (overshoot %.3f, settle %.2fs)\n", best.Fitness, best.Overshoot, best.SettleSec)
	}
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.3f\n", spec.Path, bestParams[i])
	}

	return writeResults(opts, params, bestParams, best, baseCfg.Hover.RideHeight)
}

// writeResults saves best_config.yaml and, when an evaluation succeeded, the settle plot.
func writeResults(opts options, params *ParamVector, values []float64, best *Evaluation, ride float64) error {
	bestCfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	params.ApplyToConfig(bestCfg, values)

	cfgPath := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(cfgPath); err != nil {
		return fmt.Errorf("write best config: %w", err)
	}
	fmt.Printf("\nBest config saved to: %s\n", cfgPath)

	if best == nil {
		return nil
	}
	plotPath := filepath.Join(opts.outputDir, "settle.png")
	if err := saveSettlePlot(plotPath, best, ride); err != nil {
		log.Printf("failed to write settle plot: %v", err)
		return nil
	}
	fmt.Printf("Settle plot saved to: %s\n", plotPath)
	return nil
}
