package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/steering"
)

// PlayerSystem moves the input-driven agent.
type PlayerSystem struct {
	filter *ecs.Filter4[components.Position, components.Orientation, components.Motion, components.Player]
}

// NewPlayerSystem creates a new player system.
func NewPlayerSystem(w *ecs.World) *PlayerSystem {
	return &PlayerSystem{
		filter: ecs.NewFilter4[components.Position, components.Orientation, components.Motion, components.Player](w),
	}
}

// Update moves the player by intent (magnitude at most 1) times its max
// speed and returns the new position. ok is false when there is no player.
func (s *PlayerSystem) Update(intent r2.Vec) (position r2.Vec, ok bool) {
	query := s.filter.Query()
	for query.Next() {
		pos, rot, mot, _ := query.Get()

		step := r2.Scale(mot.MaxSpeed, intent)
		pos.Set(r2.Add(pos.Vec(), step))
		mot.Speed = r2.Norm(step)
		if mot.Speed > 0 {
			rot.Angle = steering.WrapAngle(math.Atan2(intent.Y, intent.X))
		}

		position, ok = pos.Vec(), true
	}
	return position, ok
}
