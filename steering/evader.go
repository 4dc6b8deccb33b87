package steering

import "gonum.org/v1/gonum/spatial/r2"

// EvaderState is the behavior state of a fleeing agent.
type EvaderState uint8

const (
	EvaderWandering EvaderState = iota // threat is a safe distance away
	EvaderEvading                      // running from the threat
)

// String returns the state label shown by renderers.
func (s EvaderState) String() string {
	switch s {
	case EvaderWandering:
		return "Wander"
	case EvaderEvading:
		return "Evading"
	}
	return "Unknown"
}

// EvaderThresholds are the distances of the evader machine.
type EvaderThresholds struct {
	EvadeDistance float64
	Hysteresis    float64
}

// NextEvaderState picks the state for this tick. Inside the dead band
// [EvadeDistance-Hysteresis, EvadeDistance+Hysteresis] the state is kept.
func NextEvaderState(current EvaderState, distance float64, t EvaderThresholds) EvaderState {
	switch {
	case distance > t.EvadeDistance+t.Hysteresis:
		return EvaderWandering
	case distance < t.EvadeDistance-t.Hysteresis:
		return EvaderEvading
	}
	return current
}

// FleePoint returns the point the evader runs toward: its own position
// pushed away from the threat along the threat-to-evader line.
func FleePoint(position, threat r2.Vec) r2.Vec {
	return r2.Add(position, r2.Scale(2, r2.Sub(position, threat)))
}
