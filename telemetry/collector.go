package telemetry

import "github.com/pthm-cable/chase/components"

// lastTransition is the most recent transition of one agent.
type lastTransition struct {
	tick     int32
	from, to string
}

// Collector accumulates transitions and distance samples within a stats
// window and produces WindowStats.
type Collector struct {
	windowTicks int32
	flapWindow  int32
	dt          float64

	windowStartTick int32

	// Per-agent history survives window flushes so flaps spanning a
	// window boundary are still seen.
	last map[uint32]lastTransition

	// Current window
	transitions int
	flaps       int
	catches     int
	evasions    int
	tankDist    []float64
	mouseDist   []float64
	stateTicks  map[components.Kind]map[string]int

	// Run totals
	totalTransitions int
	totalFlaps       int
}

// NewCollector creates a collector.
// windowTicks: ticks per stats window
// flapWindow: a transition that undoes the previous one within this many ticks is a flap
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowTicks, flapWindow int32, dt float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		flapWindow:  flapWindow,
		dt:          dt,
		last:        make(map[uint32]lastTransition),
		stateTicks:  make(map[components.Kind]map[string]int),
	}
}

// RecordTransition counts a transition and returns it with Flap set when it
// reverses the same agent's previous transition within the flap window.
func (c *Collector) RecordTransition(ev TransitionEvent) TransitionEvent {
	if prev, ok := c.last[ev.AgentID]; ok {
		if ev.From == prev.to && ev.To == prev.from && ev.Tick-prev.tick <= c.flapWindow {
			ev.Flap = true
		}
	}
	c.last[ev.AgentID] = lastTransition{tick: ev.Tick, from: ev.From, to: ev.To}

	c.transitions++
	c.totalTransitions++
	if ev.Flap {
		c.flaps++
		c.totalFlaps++
	}

	switch ev.To {
	case "Caught":
		c.catches++
	case "Evading":
		c.evasions++
	}
	return ev
}

// RecordDistance samples an AI agent's distance to its target along with
// the state it ended the tick in.
func (c *Collector) RecordDistance(kind components.Kind, state string, distance float64) {
	switch kind {
	case components.KindTank:
		c.tankDist = append(c.tankDist, distance)
	case components.KindMouse:
		c.mouseDist = append(c.mouseDist, distance)
	default:
		return
	}

	m := c.stateTicks[kind]
	if m == nil {
		m = make(map[string]int)
		c.stateTicks[kind] = m
	}
	m[state]++
}

// Forget drops the history of a removed agent.
func (c *Collector) Forget(agentID uint32) {
	delete(c.last, agentID)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, tanks, mice int) WindowStats {
	tankMean, _, tankP10, tankP50, tankP90 := ComputeDistanceStats(c.tankDist)
	mouseMean, _, mouseP10, mouseP50, mouseP90 := ComputeDistanceStats(c.mouseDist)

	ticks := currentTick - c.windowStartTick
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Tanks: tanks,
		Mice:  mice,

		Transitions: c.transitions,
		Flaps:       c.flaps,
		Catches:     c.catches,
		Evasions:    c.evasions,

		TankChaseFrac:  c.stateFraction(components.KindTank, "Chasing"),
		TankCaughtFrac: c.stateFraction(components.KindTank, "Caught"),
		MouseEvadeFrac: c.stateFraction(components.KindMouse, "Evading"),

		TankDistMean:  tankMean,
		TankDistP10:   tankP10,
		TankDistP50:   tankP50,
		TankDistP90:   tankP90,
		MouseDistMean: mouseMean,
		MouseDistP10:  mouseP10,
		MouseDistP50:  mouseP50,
		MouseDistP90:  mouseP90,
	}
	if ticks > 0 {
		stats.FlapsPer1000 = float64(c.flaps) * 1000 / float64(ticks)
	}

	c.windowStartTick = currentTick
	c.transitions = 0
	c.flaps = 0
	c.catches = 0
	c.evasions = 0
	c.tankDist = c.tankDist[:0]
	c.mouseDist = c.mouseDist[:0]
	clear(c.stateTicks)

	return stats
}

func (c *Collector) stateFraction(kind components.Kind, state string) float64 {
	m := c.stateTicks[kind]
	var total int
	for _, n := range m {
		total += n
	}
	if total == 0 {
		return 0
	}
	return float64(m[state]) / float64(total)
}

// TotalTransitions returns the number of transitions recorded over the run.
func (c *Collector) TotalTransitions() int {
	return c.totalTransitions
}

// TotalFlaps returns the number of flaps recorded over the run.
func (c *Collector) TotalFlaps() int {
	return c.totalFlaps
}
