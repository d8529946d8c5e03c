package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/hoverwalk/config"
	"github.com/pthm-cable/hoverwalk/game"
)

// Scene layout for settle runs: one character over a flat slab whose top is y=0.
var (
	groundCenter = [3]float64{0, -0.5, 0}
	groundHalf   = [3]float64{20, 0.5, 20}
)

// Fitness shaping.
const (
	settleTolerance = 0.05 // |distance - ride height| counted as settled
	overshootWeight = 2.0
	unsettledWeight = 1.0 // added once when a run never settles
)

// Trajectory is the probe distance of one settle run, sampled every tick.
type Trajectory struct {
	DropHeight float64
	Time       []float64
	Distance   []float64
}

// RunResult summarizes one drop.
type RunResult struct {
	ITAE      float64 // Time-weighted absolute ride error
	Overshoot float64 // Largest error on the far side of the ride height
	SettleSec float64 // -1 if never settled
	Misses    int     // Ticks without ground under the probe
	Path      Trajectory
}

// Evaluation aggregates all drops for one parameter vector.
type Evaluation struct {
	Fitness   float64
	Overshoot float64
	SettleSec float64
	Runs      []RunResult
}

// FitnessEvaluator runs headless settle simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	ticks       int32
	dropHeights []float64
	baseConfig  *config.Config

	mu       sync.Mutex
	best     *Evaluation
	bestX    []float64
	lastEval *Evaluation
}

// NewFitnessEvaluator creates a new evaluator. Each evaluation drops a single
// character from every height in dropHeights and runs it for ticks steps.
func NewFitnessEvaluator(params *ParamVector, ticks int32, dropHeights []float64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		ticks:       ticks,
		dropHeights: dropHeights,
		baseConfig:  baseCfg,
	}
}

// Best returns the best evaluation so far and the parameters that produced it.
func (fe *FitnessEvaluator) Best() (*Evaluation, []float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.best, fe.bestX
}

// Last returns the most recent evaluation.
func (fe *FitnessEvaluator) Last() *Evaluation {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastEval
}

// Evaluate computes fitness for raw parameter values (lower = better).
// All drops run in parallel.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	ev, err := fe.EvaluateDetailed(x)
	if err != nil {
		return math.Inf(1)
	}
	return ev.Fitness
}

// EvaluateDetailed runs every drop and returns the full breakdown.
func (fe *FitnessEvaluator) EvaluateDetailed(x []float64) (*Evaluation, error) {
	clamped := fe.params.Clamp(x)

	runs := make([]RunResult, len(fe.dropHeights))
	errs := make([]error, len(fe.dropHeights))
	var wg sync.WaitGroup

	for i, h := range fe.dropHeights {
		wg.Add(1)
		go func(idx int, height float64) {
			defer wg.Done()
			runs[idx], errs[idx] = fe.runDrop(clamped, height)
		}(i, h)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("drop %.2f: %w", fe.dropHeights[i], err)
		}
	}

	ev := fe.score(runs)

	fe.mu.Lock()
	if fe.best == nil || ev.Fitness < fe.best.Fitness {
		fe.best = ev
		fe.bestX = clamped
	}
	fe.lastEval = ev
	fe.mu.Unlock()

	return ev, nil
}

// score folds per-drop results into a single fitness value.
func (fe *FitnessEvaluator) score(runs []RunResult) *Evaluation {
	fitness := make([]float64, len(runs))
	overshoot := make([]float64, len(runs))
	settle := make([]float64, len(runs))

	rayLength := fe.baseConfig.Hover.RayLength
	dt := fe.baseConfig.Physics.DT
	horizon := float64(fe.ticks) * dt

	for i, r := range runs {
		f := r.ITAE + overshootWeight*r.Overshoot
		f += float64(r.Misses) * rayLength * dt
		if r.SettleSec < 0 {
			f += unsettledWeight
			settle[i] = horizon
		} else {
			settle[i] = r.SettleSec
		}
		fitness[i] = f
		overshoot[i] = r.Overshoot
	}

	return &Evaluation{
		Fitness:   stat.Mean(fitness, nil),
		Overshoot: stat.Mean(overshoot, nil),
		SettleSec: stat.Mean(settle, nil),
		Runs:      runs,
	}
}

// runDrop releases one character at dropHeight above the slab and records how
// the probe distance approaches the ride height.
func (fe *FitnessEvaluator) runDrop(values []float64, dropHeight float64) (RunResult, error) {
	cfg := fe.settleConfig(dropHeight)
	fe.params.ApplyToConfig(cfg, values)

	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		StepsPerUpdate: 1,
	})
	if err != nil {
		return RunResult{}, err
	}
	defer g.Unload()

	player, ok := g.Player()
	if !ok {
		return RunResult{}, fmt.Errorf("settle scene has no character")
	}

	dt := cfg.Physics.DT
	ride := cfg.Hover.RideHeight
	startSign := math.Copysign(1, dropHeight-ride)

	res := RunResult{
		SettleSec: -1,
		Path: Trajectory{
			DropHeight: dropHeight,
			Time:       make([]float64, 0, fe.ticks),
			Distance:   make([]float64, 0, fe.ticks),
		},
	}
	settledAt := -1.0

	for g.Tick() < fe.ticks {
		g.UpdateHeadless()
		t := float64(g.Tick()) * dt

		body, err := g.Body(player)
		if err != nil {
			return RunResult{}, err
		}
		if !body.Probe.Hit {
			res.Misses++
			settledAt = -1
			res.Path.Time = append(res.Path.Time, t)
			res.Path.Distance = append(res.Path.Distance, cfg.Hover.RayLength)
			continue
		}

		e := body.Probe.Distance - ride
		res.ITAE += t * math.Abs(e) * dt
		if e*startSign < 0 {
			res.Overshoot = max(res.Overshoot, math.Abs(e))
		}

		if math.Abs(e) <= settleTolerance {
			if settledAt < 0 {
				settledAt = t
			}
		} else {
			settledAt = -1
		}

		res.Path.Time = append(res.Path.Time, t)
		res.Path.Distance = append(res.Path.Distance, body.Probe.Distance)
	}

	res.SettleSec = settledAt
	return res, nil
}

// settleConfig copies the base config and replaces the scene with a single
// character over a flat slab. Terrain and platforms are disabled.
func (fe *FitnessEvaluator) settleConfig(dropHeight float64) *config.Config {
	cfg := *fe.baseConfig
	cfg.Terrain.Size = 0
	cfg.Scene = config.SceneConfig{
		Characters: []config.CharacterConfig{
			{Position: [3]float64{0, dropHeight, 0}},
		},
		Blocks: []config.BlockConfig{
			{Center: groundCenter, HalfExtents: groundHalf},
		},
	}
	return &cfg
}
