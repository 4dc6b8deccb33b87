// Package telemetry tracks behavior health: state transitions, flapping,
// distance statistics, bookmarks, and snapshots.
package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/chase/components"
)

// TransitionEvent records one agent changing behavior state.
type TransitionEvent struct {
	Tick     int32   `csv:"tick"`
	AgentID  uint32  `csv:"agent"`
	Kind     string  `csv:"kind"`
	From     string  `csv:"from"`
	To       string  `csv:"to"`
	Distance float64 `csv:"distance"`
	Flap     bool    `csv:"flap"` // reverses the agent's previous transition
}

// NewTransitionEvent creates a transition event. The states are recorded
// by their display labels.
func NewTransitionEvent(tick int32, agentID uint32, kind components.Kind, from, to fmt.Stringer, distance float64) TransitionEvent {
	return TransitionEvent{
		Tick:     tick,
		AgentID:  agentID,
		Kind:     kind.String(),
		From:     from.String(),
		To:       to.String(),
		Distance: distance,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (e TransitionEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(e.Tick)),
		slog.Int("agent", int(e.AgentID)),
		slog.String("kind", e.Kind),
		slog.String("from", e.From),
		slog.String("to", e.To),
		slog.Float64("distance", e.Distance),
		slog.Bool("flap", e.Flap),
	)
}

// TraceRecord is one agent's state at the end of a tick.
type TraceRecord struct {
	Tick        int32   `csv:"tick"`
	AgentID     uint32  `csv:"agent"`
	Kind        string  `csv:"kind"`
	State       string  `csv:"state"`
	X           float64 `csv:"x"`
	Y           float64 `csv:"y"`
	Orientation float64 `csv:"orientation"`
	Speed       float64 `csv:"speed"`
	Distance    float64 `csv:"distance"` // to the cat
}
