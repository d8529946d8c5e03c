package telemetry

import (
	"context"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step. The system phases share their names with the
// system registry IDs so the tick driver can pass those through unchanged.
const (
	PhaseSync      = "sync"
	PhaseJump      = "jump"
	PhaseHover     = "hover"
	PhaseRotation  = "rotation"
	PhasePatrol    = "patrol"
	PhaseMovement  = "movement"
	PhaseDamping   = "damping"
	PhasePhysics   = "physics"
	PhaseTelemetry = "telemetry"
)

// Phases lists every phase in tick order.
var Phases = []string{
	PhaseSync, PhaseJump, PhaseHover, PhaseRotation, PhasePatrol,
	PhaseMovement, PhaseDamping, PhasePhysics, PhaseTelemetry,
}

type tickSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

func newTickSample() tickSample {
	return tickSample{phases: make(map[string]time.Duration, len(Phases))}
}

// PerfCollector times simulation phases over a ring of the most recent ticks.
// Phases are sequential: starting one closes the previous.
type PerfCollector struct {
	ring []tickSample
	next int
	full bool

	open    tickSample
	tickAt  time.Time
	phase   string
	phaseAt time.Time

	frameAt time.Time
	frame   time.Duration
}

// NewPerfCollector keeps the last window ticks. Non-positive windows default to 60.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		ring: make([]tickSample, window),
		open: newTickSample(),
	}
}

func (p *PerfCollector) StartTick() {
	p.tickAt = time.Now()
	p.open = newTickSample()
	p.phase = ""
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.open.phases[p.phase] += now.Sub(p.phaseAt)
	}
}

func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phase, p.phaseAt = name, now
}

func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""
	p.open.total = now.Sub(p.tickAt)

	p.ring[p.next] = p.open
	p.next++
	if p.next == len(p.ring) {
		p.next = 0
		p.full = true
	}
}

// RecordFrame measures the interval between rendered frames.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.frameAt.IsZero() {
		p.frame = now.Sub(p.frameAt)
	}
	p.frameAt = now
}

func (p *PerfCollector) window() []tickSample {
	if p.full {
		return p.ring
	}
	return p.ring[:p.next]
}

// PerfStats aggregates the collector window. PhasePct is each phase's share of the
// mean tick in percent.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats folds the current window. The maps are never nil.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		out.FPS = float64(time.Second) / float64(p.frame)
	}

	samples := p.window()
	if len(samples) == 0 {
		return out
	}

	ticks := make([]float64, len(samples))
	sums := make(map[string]time.Duration)
	for i, s := range samples {
		ticks[i] = float64(s.total)
		for name, d := range s.phases {
			sums[name] += d
		}
	}

	mean := stat.Mean(ticks, nil)
	out.AvgTickDuration = time.Duration(mean)
	out.MinTickDuration = time.Duration(floats.Min(ticks))
	out.MaxTickDuration = time.Duration(floats.Max(ticks))
	if mean > 0 {
		out.TicksPerSecond = float64(time.Second) / mean
	}

	n := time.Duration(len(samples))
	for name, sum := range sums {
		avg := sum / n
		out.PhaseAvg[name] = avg
		if mean > 0 {
			out.PhasePct[name] = float64(avg) / mean * 100
		}
	}
	return out
}

// attrs lists tick timing, then FPS when a window is open, then the share of every
// known phase above 0.1% in tick order.
func (s PerfStats) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", math.Round(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", math.Round(s.FPS)))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", math.Round(pct*10)/10))
		}
	}
	return attrs
}

// LogStats emits one "perf" record at info level.
func (s PerfStats) LogStats() {
	slog.LogAttrs(context.Background(), slog.LevelInfo, "perf", s.attrs()...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(s.attrs()...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	SyncPct      float64 `csv:"sync_pct"`
	JumpPct      float64 `csv:"jump_pct"`
	HoverPct     float64 `csv:"hover_pct"`
	RotationPct  float64 `csv:"rotation_pct"`
	PatrolPct    float64 `csv:"patrol_pct"`
	MovementPct  float64 `csv:"movement_pct"`
	DampingPct   float64 `csv:"damping_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd. Phases that did not
// run are zero.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	pct := s.PhasePct
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		SyncPct:      pct[PhaseSync],
		JumpPct:      pct[PhaseJump],
		HoverPct:     pct[PhaseHover],
		RotationPct:  pct[PhaseRotation],
		PatrolPct:    pct[PhasePatrol],
		MovementPct:  pct[PhaseMovement],
		DampingPct:   pct[PhaseDamping],
		PhysicsPct:   pct[PhasePhysics],
		TelemetryPct: pct[PhaseTelemetry],
	}
}
