// Package systems contains ECS systems for the simulation.
package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/steering"
)

// Transition is a behavior state change made during a step.
type Transition struct {
	Entity   ecs.Entity
	ID       uint32
	Kind     components.Kind
	From, To fmt.Stringer
	Distance float64 // distance to the target the decision was made at
}

// AgentParams holds the arena and wander tuning shared by AI agents.
type AgentParams struct {
	Wander steering.WanderParams
	Arena  steering.Bounds
}

// motion combines per-agent limits with the shared tuning.
func (p AgentParams) motion(m *components.Motion) steering.Motion {
	return steering.Motion{
		MaxSpeed:          m.MaxSpeed,
		TurnSpeed:         m.TurnSpeed,
		WanderSpeedFactor: m.WanderSpeedFactor,
		Wander:            p.Wander,
		Arena:             p.Arena,
	}
}

func kinematics(pos *components.Position, rot *components.Orientation, mot *components.Motion, wan *components.Wander) steering.Kinematics {
	return steering.Kinematics{
		Position:    pos.Vec(),
		Orientation: rot.Angle,
		Wander:      wan.Direction,
		Speed:       mot.Speed,
	}
}

func store(k steering.Kinematics, pos *components.Position, rot *components.Orientation, mot *components.Motion, wan *components.Wander) {
	pos.Set(k.Position)
	rot.Angle = k.Orientation
	mot.Speed = k.Speed
	wan.Direction = k.Wander
}

// randSource avoids handing steering a non-nil interface around a nil *rand.Rand.
func randSource(r *rand.Rand) steering.RandSource {
	if r == nil {
		return nil
	}
	return r
}
