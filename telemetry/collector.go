package telemetry

// BodySample is the per-body state sampled at the end of a tick.
type BodySample struct {
	Grounded   bool
	ProbeHit   bool
	Distance   float64 // Probe distance; only meaningful when ProbeHit
	RideHeight float64
	Speed      float64 // Horizontal speed
}

// TickEvents counts discrete events produced by one tick.
type TickEvents struct {
	Jumps    int
	Landings int
	Liftoffs int
	Nudges   int
}

// Collector accumulates samples within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Samples for current window
	bodySamples     int
	groundedSamples int
	rideErrors      []float64
	speeds          []float64

	// Event counters for current window
	jumps    int
	landings int
	liftoffs int
	nudges   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(1)
	if dt > 0 {
		ticksPerWindow = int32(windowDurationSec/dt + 0.5)
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		rideErrors:          make([]float64, 0, 1024),
		speeds:              make([]float64, 0, 1024),
	}
}

// RecordEvents adds one tick's event counts to the window.
func (c *Collector) RecordEvents(ev TickEvents) {
	c.jumps += ev.Jumps
	c.landings += ev.Landings
	c.liftoffs += ev.Liftoffs
	c.nudges += ev.Nudges
}

// RecordBody adds one body sample to the window.
func (c *Collector) RecordBody(s BodySample) {
	c.bodySamples++
	if s.Grounded {
		c.groundedSamples++
	}
	if s.ProbeHit {
		c.rideErrors = append(c.rideErrors, s.Distance-s.RideHeight)
	}
	c.speeds = append(c.speeds, s.Speed)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets the window.
// bodies and platforms are the population counts at window end.
func (c *Collector) Flush(currentTick int32, bodies, platforms int) WindowStats {
	var groundedRatio float64
	if c.bodySamples > 0 {
		groundedRatio = float64(c.groundedSamples) / float64(c.bodySamples)
	}

	rideMean, rideStd := MeanStd(c.rideErrors)
	speedMean, speedP90, speedMax := ComputeSpeedStats(c.speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Bodies:    bodies,
		Platforms: platforms,

		GroundedRatio: groundedRatio,
		RideErrorMean: rideMean,
		RideErrorStd:  rideStd,
		SpeedMean:     speedMean,
		SpeedP90:      speedP90,
		SpeedMax:      speedMax,

		Jumps:    c.jumps,
		Landings: c.landings,
		Liftoffs: c.liftoffs,
		Nudges:   c.nudges,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.bodySamples = 0
	c.groundedSamples = 0
	c.rideErrors = c.rideErrors[:0]
	c.speeds = c.speeds[:0]
	c.jumps = 0
	c.landings = 0
	c.liftoffs = 0
	c.nudges = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
