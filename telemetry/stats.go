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
	Tanks int `csv:"tanks"`
	Mice  int `csv:"mice"`

	// State machine activity during window
	Transitions  int     `csv:"transitions"`
	Flaps        int     `csv:"flaps"`
	FlapsPer1000 float64 `csv:"flaps_per_1000"`
	Catches      int     `csv:"catches"`
	Evasions     int     `csv:"evasions"`

	// Fraction of agent-ticks spent in a state
	TankChaseFrac  float64 `csv:"tank_chase_frac"`
	TankCaughtFrac float64 `csv:"tank_caught_frac"`
	MouseEvadeFrac float64 `csv:"mouse_evade_frac"`

	// Distance to the cat
	TankDistMean  float64 `csv:"tank_dist_mean"`
	TankDistP10   float64 `csv:"tank_dist_p10"`
	TankDistP50   float64 `csv:"tank_dist_p50"`
	TankDistP90   float64 `csv:"tank_dist_p90"`
	MouseDistMean float64 `csv:"mouse_dist_mean"`
	MouseDistP10  float64 `csv:"mouse_dist_p10"`
	MouseDistP50  float64 `csv:"mouse_dist_p50"`
	MouseDistP90  float64 `csv:"mouse_dist_p90"`
}

// ComputeDistanceStats returns the mean, population standard deviation and
// empirical 10th/50th/90th percentiles of values. All zero when empty.
func ComputeDistanceStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("tanks", s.Tanks),
		slog.Int("mice", s.Mice),
		slog.Int("transitions", s.Transitions),
		slog.Int("flaps", s.Flaps),
		slog.Float64("flaps_per_1000", s.FlapsPer1000),
		slog.Int("catches", s.Catches),
		slog.Int("evasions", s.Evasions),
		slog.Float64("tank_chase_frac", s.TankChaseFrac),
		slog.Float64("tank_caught_frac", s.TankCaughtFrac),
		slog.Float64("mouse_evade_frac", s.MouseEvadeFrac),
		slog.Float64("tank_dist_mean", s.TankDistMean),
		slog.Float64("tank_dist_p50", s.TankDistP50),
		slog.Float64("mouse_dist_mean", s.MouseDistMean),
		slog.Float64("mouse_dist_p50", s.MouseDistP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("window stats", "stats", s)
}
