package game

import (
	"log/slog"

	"github.com/pthm-cable/hoverwalk/telemetry"
)

// recordTick feeds this tick's events and body samples to the collector.
func (g *Game) recordTick() {
	hs := g.hover.Stats()
	g.collector.RecordEvents(telemetry.TickEvents{
		Jumps:    g.jump.Jumps(),
		Landings: hs.Landed,
		Liftoffs: hs.Lifted,
		Nudges:   hs.Nudges,
	})

	query := g.characterFilter.Query()
	for query.Next() {
		_, vel, hover, probe, _ := query.Get()
		v := vel.Linear
		g.collector.RecordBody(telemetry.BodySample{
			Grounded:   g.groundedMap.Has(query.Entity()),
			ProbeHit:   probe.Hit,
			Distance:   probe.Distance,
			RideHeight: hover.RideHeight,
			Speed:      flatSpeed(v[0], v[2]),
		})
	}
}

// flushTelemetry emits window stats once the window is full.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.numCharacters, g.numPlatforms)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if err := g.outputManager.WriteBodies(g.bodyRecords()); err != nil {
			slog.Error("failed to write bodies", "error", err)
		}
	}
}

// bodyRecords snapshots every character for the body trace.
func (g *Game) bodyRecords() []telemetry.BodyRecord {
	records := make([]telemetry.BodyRecord, 0, g.numCharacters)
	query := g.characterFilter.Query()
	for query.Next() {
		tr, vel, hover, probe, _ := query.Get()
		v := vel.Linear
		rec := telemetry.BodyRecord{
			Tick:          g.tick,
			Entity:        uint32(query.Entity().ID()),
			X:             tr.Position[0],
			Y:             tr.Position[1],
			Z:             tr.Position[2],
			Speed:         flatSpeed(v[0], v[2]),
			VerticalSpeed: v[1],
			Grounded:      g.groundedMap.Has(query.Entity()),
			ProbeHit:      probe.Hit,
		}
		if probe.Hit {
			rec.Distance = probe.Distance
			rec.RideError = probe.Distance - hover.RideHeight
		}
		records = append(records, rec)
	}
	return records
}
