package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step.
const (
	PhaseInput     = "input"
	PhasePlayer    = "player"
	PhasePursuers  = "pursuers"
	PhaseEvaders   = "evaders"
	PhaseBounds    = "bounds"
	PhaseTelemetry = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{
	PhaseInput, PhasePlayer, PhasePursuers, PhaseEvaders, PhaseBounds, PhaseTelemetry,
}

const numPhases = 6

// phaseIndex maps a phase name to its slot, or -1 for unknown names.
func phaseIndex(phase string) int {
	for i, p := range Phases {
		if p == phase {
			return i
		}
	}
	return -1
}

// PerfCollector keeps a rolling window of tick timings. Ring buffers hold
// microseconds so the window can be summarised with gonum.
type PerfCollector struct {
	windowSize int
	next       int
	count      int

	tickUS  []float64
	phaseUS [numPhases][]float64
	agents  []float64

	// In-flight tick
	tickStart  time.Time
	phaseStart time.Time
	phase      int
	current    [numPhases]time.Duration

	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		windowSize: windowSize,
		tickUS:     make([]float64, windowSize),
		agents:     make([]float64, windowSize),
		phase:      -1,
	}
	for i := range p.phaseUS {
		p.phaseUS[i] = make([]float64, windowSize)
	}
	return p
}

// StartTick begins timing a tick. An unfinished tick is discarded.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = [numPhases]time.Duration{}
	p.phase = -1
}

// StartPhase ends the running phase and starts timing phase.
// Unknown phases stop phase accounting until the next known one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(phase)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick records the tick, which stepped agents AI agents.
func (p *PerfCollector) EndTick(agents int) {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1

	i := p.next
	p.tickUS[i] = micros(now.Sub(p.tickStart))
	for ph := range p.current {
		p.phaseUS[ph][i] = micros(p.current[ph])
	}
	p.agents[i] = float64(agents)

	p.next = (p.next + 1) % p.windowSize
	p.count = min(p.count+1, p.windowSize)
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

func fromMicros(us float64) time.Duration {
	return time.Duration(us * float64(time.Microsecond))
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick

	TicksPerSecond      float64
	AgentStepsPerSecond float64 // AI agent updates per wall-clock second

	// Graphics mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats summarises the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.count == 0 {
		return s
	}

	// The ring is filled from 0, so the first count slots are valid
	ticks := p.tickUS[:p.count]
	avg := stat.Mean(ticks, nil)
	s.AvgTickDuration = fromMicros(avg)
	s.MinTickDuration = fromMicros(floats.Min(ticks))
	s.MaxTickDuration = fromMicros(floats.Max(ticks))

	for i, name := range Phases {
		phAvg := stat.Mean(p.phaseUS[i][:p.count], nil)
		if phAvg == 0 {
			continue
		}
		s.PhaseAvg[name] = fromMicros(phAvg)
		if avg > 0 {
			s.PhasePct[name] = phAvg / avg * 100
		}
	}

	if avg > 0 {
		s.TicksPerSecond = 1e6 / avg
		s.AgentStepsPerSecond = s.TicksPerSecond * stat.Mean(p.agents[:p.count], nil)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
		slog.Int("agent_steps_per_sec", int(s.AgentStepsPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd        int32   `csv:"window_end"`
	AvgTickUS        int64   `csv:"avg_tick_us"`
	MinTickUS        int64   `csv:"min_tick_us"`
	MaxTickUS        int64   `csv:"max_tick_us"`
	TicksPerSec      float64 `csv:"ticks_per_sec"`
	AgentStepsPerSec float64 `csv:"agent_steps_per_sec"`
	FPS              float64 `csv:"fps"`
	InputPct         float64 `csv:"input_pct"`
	PlayerPct        float64 `csv:"player_pct"`
	PursuersPct      float64 `csv:"pursuers_pct"`
	EvadersPct       float64 `csv:"evaders_pct"`
	BoundsPct        float64 `csv:"bounds_pct"`
	TelemetryPct     float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:        windowEnd,
		AvgTickUS:        s.AvgTickDuration.Microseconds(),
		MinTickUS:        s.MinTickDuration.Microseconds(),
		MaxTickUS:        s.MaxTickDuration.Microseconds(),
		TicksPerSec:      s.TicksPerSecond,
		AgentStepsPerSec: s.AgentStepsPerSecond,
		FPS:              s.FPS,
		InputPct:         s.PhasePct[PhaseInput],
		PlayerPct:        s.PhasePct[PhasePlayer],
		PursuersPct:      s.PhasePct[PhasePursuers],
		EvadersPct:       s.PhasePct[PhaseEvaders],
		BoundsPct:        s.PhasePct[PhaseBounds],
		TelemetryPct:     s.PhasePct[PhaseTelemetry],
	}
}
