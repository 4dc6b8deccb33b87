package steering

// PursuerState is the behavior state of a chasing agent.
type PursuerState uint8

const (
	PursuerWandering PursuerState = iota // target out of sight
	PursuerChasing                       // closing in on the target
	PursuerCaught                        // close enough to stop
)

// String returns the state label shown by renderers.
func (s PursuerState) String() string {
	switch s {
	case PursuerWandering:
		return "Wander"
	case PursuerChasing:
		return "Chasing"
	case PursuerCaught:
		return "Caught"
	}
	return "Unknown"
}

// PursuerThresholds are the base distances of the pursuer machine.
type PursuerThresholds struct {
	ChaseDistance  float64
	CaughtDistance float64
	Hysteresis     float64
}

// Effective returns the chase and caught thresholds for the current state.
// Each state shifts its own boundaries by half the hysteresis band so the
// agent prefers to stay where it is.
func (t PursuerThresholds) Effective(current PursuerState) (chase, caught float64) {
	chase, caught = t.ChaseDistance, t.CaughtDistance
	half := t.Hysteresis / 2
	switch current {
	case PursuerWandering:
		chase -= half
	case PursuerChasing:
		chase += half
		caught -= half
	case PursuerCaught:
		caught += half
	}
	return chase, caught
}

// NextPursuerState picks the state for this tick from the distance to the target.
func NextPursuerState(current PursuerState, distance float64, t PursuerThresholds) PursuerState {
	chase, caught := t.Effective(current)
	switch {
	case distance > chase:
		return PursuerWandering
	case distance > caught:
		return PursuerChasing
	default:
		return PursuerCaught
	}
}
