package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/steering"
)

// EvaderSnapshot is a detached copy of one evader.
type EvaderSnapshot struct {
	Entity     ecs.Entity
	ID         uint32
	Kin        steering.Kinematics
	State      steering.EvaderState
	Thresholds steering.EvaderThresholds
	Motion     steering.Motion
	Rng        steering.RandSource

	// Filled by Step
	Next      steering.Kinematics
	NextState steering.EvaderState
	Distance  float64
}

// Step computes the evader's next state away from threat.
func (s *EvaderSnapshot) Step(threat r2.Vec) {
	s.Distance = r2.Norm(r2.Sub(threat, s.Kin.Position))
	s.Next, s.NextState = steering.StepEvader(s.Kin, s.State, threat, s.Thresholds, s.Motion, s.Rng)
}

// EvaderSystem runs the evade state machine for every evader.
type EvaderSystem struct {
	filter *ecs.Filter6[components.Agent, components.Position, components.Orientation, components.Motion, components.Wander, components.Evader]
	posMap *ecs.Map[components.Position]
	rotMap *ecs.Map[components.Orientation]
	motMap *ecs.Map[components.Motion]
	wanMap *ecs.Map[components.Wander]
	evaMap *ecs.Map[components.Evader]
	params AgentParams

	scratch []EvaderSnapshot
}

// NewEvaderSystem creates a new evader system.
func NewEvaderSystem(w *ecs.World, params AgentParams) *EvaderSystem {
	return &EvaderSystem{
		filter: ecs.NewFilter6[components.Agent, components.Position, components.Orientation, components.Motion, components.Wander, components.Evader](w),
		posMap: ecs.NewMap[components.Position](w),
		rotMap: ecs.NewMap[components.Orientation](w),
		motMap: ecs.NewMap[components.Motion](w),
		wanMap: ecs.NewMap[components.Wander](w),
		evaMap: ecs.NewMap[components.Evader](w),
		params: params,
	}
}

// Collect appends a snapshot of every evader to dst.
func (s *EvaderSystem) Collect(dst []EvaderSnapshot) []EvaderSnapshot {
	query := s.filter.Query()
	for query.Next() {
		agent, pos, rot, mot, wan, eva := query.Get()
		dst = append(dst, EvaderSnapshot{
			Entity:     query.Entity(),
			ID:         agent.ID,
			Kin:        kinematics(pos, rot, mot, wan),
			State:      eva.State,
			Thresholds: eva.Thresholds,
			Motion:     s.params.motion(mot),
			Rng:        randSource(wan.Rng),
		})
	}
	return dst
}

// Apply writes stepped snapshots back to the world and appends any state
// changes to out.
func (s *EvaderSystem) Apply(snaps []EvaderSnapshot, out []Transition) []Transition {
	for i := range snaps {
		snap := &snaps[i]
		pos := s.posMap.Get(snap.Entity)
		rot := s.rotMap.Get(snap.Entity)
		mot := s.motMap.Get(snap.Entity)
		wan := s.wanMap.Get(snap.Entity)
		eva := s.evaMap.Get(snap.Entity)
		if pos == nil || rot == nil || mot == nil || wan == nil || eva == nil {
			continue
		}

		store(snap.Next, pos, rot, mot, wan)
		if snap.NextState != snap.State {
			out = append(out, Transition{
				Entity:   snap.Entity,
				ID:       snap.ID,
				Kind:     components.KindMouse,
				From:     snap.State,
				To:       snap.NextState,
				Distance: snap.Distance,
			})
		}
		eva.State = snap.NextState
	}
	return out
}

// Update steps every evader away from threat on the calling goroutine.
func (s *EvaderSystem) Update(threat r2.Vec, out []Transition) []Transition {
	s.scratch = s.Collect(s.scratch[:0])
	for i := range s.scratch {
		s.scratch[i].Step(threat)
	}
	return s.Apply(s.scratch, out)
}
