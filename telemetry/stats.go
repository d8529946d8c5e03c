package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Bodies    int `csv:"bodies"`
	Platforms int `csv:"platforms"`

	// Suspension
	GroundedRatio float64 `csv:"grounded_ratio"`  // Fraction of body samples with ground contact
	RideErrorMean float64 `csv:"ride_error_mean"` // Probe distance minus ride height
	RideErrorStd  float64 `csv:"ride_error_std"`

	// Locomotion (horizontal speed)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Events during window
	Jumps    int `csv:"jumps"`
	Landings int `csv:"landings"`
	Liftoffs int `csv:"liftoffs"`
	Nudges   int `csv:"nudges"`
}

// Percentile returns the p-th quantile of an ascending slice, interpolating
// linearly on the empirical CDF. p is clamped to [0, 1]; an empty slice gives 0.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(min(max(p, 0), 1), stat.LinInterp, sorted, nil)
}

// MeanStd returns the mean and unbiased standard deviation of values.
// Fewer than two values give a zero deviation.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// ComputeSpeedStats calculates mean, 90th percentile and maximum of speed samples.
func ComputeSpeedStats(values []float64) (mean, p90, maxSpeed float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.90), sorted[n-1]
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("platforms", s.Platforms),
		slog.Float64("grounded_ratio", s.GroundedRatio),
		slog.Float64("ride_error_mean", s.RideErrorMean),
		slog.Float64("ride_error_std", s.RideErrorStd),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Int("jumps", s.Jumps),
		slog.Int("landings", s.Landings),
		slog.Int("liftoffs", s.Liftoffs),
		slog.Int("nudges", s.Nudges),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"bodies", s.Bodies,
		"platforms", s.Platforms,
		"grounded_ratio", s.GroundedRatio,
		"ride_error_mean", s.RideErrorMean,
		"ride_error_std", s.RideErrorStd,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"jumps", s.Jumps,
		"landings", s.Landings,
		"liftoffs", s.Liftoffs,
		"nudges", s.Nudges,
	)
}
