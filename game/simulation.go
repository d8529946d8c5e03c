package game

import (
	"github.com/pthm-cable/hoverwalk/telemetry"
)

// RecordFrame marks a rendered frame for the perf collector.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// UpdateHeadless runs StepsPerUpdate simulation steps without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Step advances the simulation by exactly one tick, ignoring pause.
func (g *Game) Step() {
	g.simulationStep()
}

// simulationStep runs a single tick: scene sync, the registered systems in order,
// then telemetry.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	// Raycasts during the tick see colliders as of tick start
	g.perfCollector.StartPhase(telemetry.PhaseSync)
	g.physics.Sync()

	for _, s := range g.pipeline {
		g.perfCollector.StartPhase(s.id)
		s.run()
	}

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordTick()
	g.flushTelemetry()

	g.perfCollector.EndTick()
}
