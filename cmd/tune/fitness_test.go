package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/hoverwalk/config"
)

func TestDefaultSuspensionSettles(t *testing.T) {
	cfg := config.Defaults()
	fe := NewFitnessEvaluator(NewParamVector(), 240, []float64{2.0, 3.3}, cfg)

	ev, err := fe.EvaluateDetailed([]float64{cfg.Hover.Strength, cfg.Hover.Damper})
	if err != nil {
		t.Fatal(err)
	}
	if len(ev.Runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(ev.Runs))
	}

	for _, run := range ev.Runs {
		if run.Misses != 0 {
			t.Errorf("drop %.1f: %d probe misses", run.Path.DropHeight, run.Misses)
		}
		if run.SettleSec < 0 || run.SettleSec > 1.5 {
			t.Errorf("drop %.1f: settle time %f, want within 1.5s", run.Path.DropHeight, run.SettleSec)
		}
		if len(run.Path.Time) != 240 {
			t.Errorf("drop %.1f: %d samples, want 240", run.Path.DropHeight, len(run.Path.Time))
		}

		// Spring sag under gravity: m*g/k
		last := run.Path.Distance[len(run.Path.Distance)-1]
		want := cfg.Hover.RideHeight + cfg.Physics.Gravity*cfg.Physics.CharacterMass/cfg.Hover.Strength
		if math.Abs(last-want) > 0.01 {
			t.Errorf("drop %.1f: final distance %f, want ~%f", run.Path.DropHeight, last, want)
		}
	}
}

func TestUndampedScoresWorse(t *testing.T) {
	cfg := config.Defaults()
	fe := NewFitnessEvaluator(NewParamVector(), 240, []float64{3.3}, cfg)

	damped := fe.Evaluate([]float64{900, 60})
	undamped := fe.Evaluate([]float64{900, 0})

	if math.IsInf(damped, 0) || math.IsInf(undamped, 0) {
		t.Fatalf("evaluation failed: damped=%f undamped=%f", damped, undamped)
	}
	if undamped <= damped {
		t.Errorf("undamped fitness %f should exceed damped %f", undamped, damped)
	}

	best, x := fe.Best()
	if best == nil || best.Fitness != damped {
		t.Errorf("best fitness = %v, want %f", best, damped)
	}
	if x[1] != 60 {
		t.Errorf("best damper = %f, want 60", x[1])
	}
}

func TestSettleConfigIsolatesScene(t *testing.T) {
	base := config.Defaults()
	fe := NewFitnessEvaluator(NewParamVector(), 10, []float64{3}, base)

	cfg := fe.settleConfig(3)
	if cfg.Terrain.Size != 0 {
		t.Errorf("terrain size = %f, want 0", cfg.Terrain.Size)
	}
	if len(cfg.Scene.Characters) != 1 || len(cfg.Scene.Platforms) != 0 {
		t.Errorf("scene = %+v, want one character and no platforms", cfg.Scene)
	}
	if base.Terrain.Size == 0 || len(base.Scene.Platforms) == 0 {
		t.Error("settle config modified the base config")
	}
}
