// Package components defines ECS components for the simulation.
package components

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/steering"
)

// Kind identifies what an agent is.
type Kind uint8

const (
	KindCat   Kind = iota // player controlled
	KindTank              // pursuer
	KindMouse             // evader
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCat:
		return "Cat"
	case KindTank:
		return "Tank"
	case KindMouse:
		return "Mouse"
	}
	return "Unknown"
}

// Agent holds identity.
type Agent struct {
	ID   uint32 `inspect:"label"`
	Kind Kind   `inspect:"label"`
}

// Position represents an entity's world position.
type Position struct {
	X float64 `inspect:"label,fmt:%.1f"`
	Y float64 `inspect:"label,fmt:%.1f"`
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Set stores v.
func (p *Position) Set(v r2.Vec) { p.X, p.Y = v.X, v.Y }

// Orientation is the heading in radians, kept in (-Pi, Pi].
type Orientation struct {
	Angle float64 `inspect:"angle"`
}

// Motion holds movement limits and the speed applied last tick.
type Motion struct {
	MaxSpeed          float64 `inspect:"label,fmt:%.2f"`
	TurnSpeed         float64 `inspect:"label,fmt:%.2f"`
	WanderSpeedFactor float64 `inspect:"skip"`
	Speed             float64 `inspect:"label,fmt:%.2f"`
}

// Wander holds the wander direction and the agent's own random stream.
// Each agent owning its stream keeps runs reproducible when agents
// are updated in parallel.
type Wander struct {
	Direction r2.Vec     `inspect:"skip"`
	Rng       *rand.Rand `inspect:"skip"`
}

// Pursuer holds the chase state machine.
type Pursuer struct {
	State      steering.PursuerState      `inspect:"label"`
	Thresholds steering.PursuerThresholds `inspect:"skip"`
}

// Evader holds the evade state machine.
type Evader struct {
	State      steering.EvaderState      `inspect:"label"`
	Thresholds steering.EvaderThresholds `inspect:"skip"`
}

// Player tag component for the input-driven agent.
type Player struct{}
