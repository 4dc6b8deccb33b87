package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/steering"
)

// BoundsSystem keeps every agent inside the arena.
type BoundsSystem struct {
	filter *ecs.Filter1[components.Position]
	arena  steering.Bounds
}

// NewBoundsSystem creates a new bounds system.
func NewBoundsSystem(w *ecs.World, arena steering.Bounds) *BoundsSystem {
	return &BoundsSystem{
		filter: ecs.NewFilter1[components.Position](w),
		arena:  arena,
	}
}

// Update clamps positions to the arena and returns how many were moved.
func (s *BoundsSystem) Update() int {
	clamped := 0
	query := s.filter.Query()
	for query.Next() {
		pos := query.Get()
		p := pos.Vec()
		if c := s.arena.Clamp(p); c != p {
			pos.Set(c)
			clamped++
		}
	}
	return clamped
}
