package steering

import "gonum.org/v1/gonum/spatial/r2"

// Kinematics is the moving part of an agent.
type Kinematics struct {
	Position    r2.Vec
	Orientation float64 // radians, kept in (-Pi, Pi]
	Wander      r2.Vec  // current wander direction, zero until first wander tick
	Speed       float64 // speed applied on the last step
}

// Motion holds per-kind movement limits and wander tuning.
type Motion struct {
	MaxSpeed          float64
	TurnSpeed         float64
	WanderSpeedFactor float64 // fraction of MaxSpeed used while wandering
	Wander            WanderParams
	Arena             Bounds
}

// StepPursuer advances a pursuer by one tick against target.
func StepPursuer(k Kinematics, state PursuerState, target r2.Vec, t PursuerThresholds, m Motion, rng RandSource) (Kinematics, PursuerState) {
	distance := r2.Norm(r2.Sub(target, k.Position))
	state = NextPursuerState(state, distance, t)

	switch state {
	case PursuerChasing:
		k.Orientation = TurnToFace(k.Position, target, k.Orientation, m.TurnSpeed)
		k.Speed = m.MaxSpeed
	case PursuerWandering:
		w := Wander(k.Position, k.Wander, k.Orientation, m.TurnSpeed, m.Arena, m.Wander, rng)
		k.Wander, k.Orientation = w.Direction, w.Orientation
		k.Speed = m.WanderSpeedFactor * m.MaxSpeed
	default:
		// Caught: stop, otherwise the pursuer overshoots and laps the target.
		k.Speed = 0
	}

	k.Position = Integrate(k.Position, k.Orientation, k.Speed)
	return k, state
}

// StepEvader advances an evader by one tick away from threat.
func StepEvader(k Kinematics, state EvaderState, threat r2.Vec, t EvaderThresholds, m Motion, rng RandSource) (Kinematics, EvaderState) {
	distance := r2.Norm(r2.Sub(threat, k.Position))
	state = NextEvaderState(state, distance, t)

	switch state {
	case EvaderEvading:
		k.Orientation = TurnToFace(k.Position, FleePoint(k.Position, threat), k.Orientation, m.TurnSpeed)
		k.Speed = m.MaxSpeed
	default:
		w := Wander(k.Position, k.Wander, k.Orientation, m.TurnSpeed, m.Arena, m.Wander, rng)
		k.Wander, k.Orientation = w.Direction, w.Orientation
		k.Speed = m.WanderSpeedFactor * m.MaxSpeed
	}

	k.Position = Integrate(k.Position, k.Orientation, k.Speed)
	return k, state
}
