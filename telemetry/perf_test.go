package telemetry

import (
	"testing"
	"time"
)

// runTicks drives n ticks that spend each phase's duration in turn.
func runTicks(pc *PerfCollector, n int, phases []string, durs []time.Duration) {
	for range n {
		pc.StartTick()
		for i, phase := range phases {
			pc.StartPhase(phase)
			time.Sleep(durs[i])
		}
		pc.EndTick()
	}
}

func TestPerfCollector_TracksPhases(t *testing.T) {
	pc := NewPerfCollector(10)
	runTicks(pc, 5, []string{PhaseHover, PhasePhysics}, []time.Duration{100 * time.Microsecond, 200 * time.Microsecond})

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 || stats.TicksPerSecond <= 0 {
		t.Fatalf("expected positive tick timing, got %+v", stats)
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= avg <= max, got %v %v %v",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
	for _, phase := range []string{PhaseHover, PhasePhysics} {
		if stats.PhaseAvg[phase] <= 0 {
			t.Errorf("expected %s phase to be tracked", phase)
		}
	}
	if _, ok := stats.PhaseAvg[PhaseJump]; ok {
		t.Error("phase that never ran should be absent")
	}
}

func TestPerfCollector_RingDropsOldTicks(t *testing.T) {
	pc := NewPerfCollector(3)
	runTicks(pc, 3, []string{PhaseHover}, []time.Duration{2 * time.Millisecond})
	if got := len(pc.window()); got != 3 {
		t.Fatalf("window = %d, want 3", got)
	}

	runTicks(pc, 3, []string{PhaseHover}, []time.Duration{0})
	if got := len(pc.window()); got != 3 {
		t.Fatalf("window = %d after wrap, want 3", got)
	}
	if slowest := pc.Stats().MaxTickDuration; slowest >= 2*time.Millisecond {
		t.Errorf("slow ticks should have been evicted, max = %v", slowest)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)
	runTicks(pc, 5, []string{"fast", "slow"}, []time.Duration{10 * time.Microsecond, 100 * time.Microsecond})

	stats := pc.Stats()
	fast, slow := stats.PhasePct["fast"], stats.PhasePct["slow"]
	if slow <= fast {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slow, fast)
	}
	if total := fast + slow; total > 100.0001 {
		t.Errorf("phase shares exceed the tick: %v%%", total)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(0).Stats()

	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("expected zero timing for empty collector, got %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Fatal("a single frame has no interval")
	}
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseHover:   60,
			PhasePhysics: 30,
			PhaseJump:    10,
		},
	}

	row := stats.ToCSV(600)

	if row.WindowEnd != 600 || row.AvgTickUS != 250 {
		t.Errorf("unexpected header fields: %+v", row)
	}
	if row.HoverPct != 60 || row.PhysicsPct != 30 || row.JumpPct != 10 {
		t.Errorf("phase percentages not copied: %+v", row)
	}
	if row.MovementPct != 0 {
		t.Errorf("expected missing phase to be zero, got %v", row.MovementPct)
	}
}

func TestPerfStats_LogValueSkipsIdlePhases(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: time.Millisecond,
		PhasePct:        map[string]float64{PhaseHover: 42.26, PhaseSync: 0.05},
	}

	got := map[string]bool{}
	for _, a := range stats.LogValue().Group() {
		got[a.Key] = true
		if a.Key == "hover_pct" && a.Value.Float64() != 42.3 {
			t.Errorf("hover_pct = %v, want 42.3", a.Value.Float64())
		}
	}
	if !got["hover_pct"] || !got["avg_tick_us"] {
		t.Errorf("missing attrs: %v", got)
	}
	if got["sync_pct"] || got["fps"] {
		t.Errorf("idle phase or unset fps logged: %v", got)
	}
}
