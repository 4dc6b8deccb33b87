package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/steering"
)

// PursuerSnapshot is a detached copy of one pursuer. Step only touches the
// snapshot, so snapshots can be stepped concurrently.
type PursuerSnapshot struct {
	Entity     ecs.Entity
	ID         uint32
	Kin        steering.Kinematics
	State      steering.PursuerState
	Thresholds steering.PursuerThresholds
	Motion     steering.Motion
	Rng        steering.RandSource

	// Filled by Step
	Next      steering.Kinematics
	NextState steering.PursuerState
	Distance  float64
}

// Step computes the pursuer's next state against target.
func (s *PursuerSnapshot) Step(target r2.Vec) {
	s.Distance = r2.Norm(r2.Sub(target, s.Kin.Position))
	s.Next, s.NextState = steering.StepPursuer(s.Kin, s.State, target, s.Thresholds, s.Motion, s.Rng)
}

// PursuerSystem runs the chase state machine for every pursuer.
type PursuerSystem struct {
	filter *ecs.Filter6[components.Agent, components.Position, components.Orientation, components.Motion, components.Wander, components.Pursuer]
	posMap *ecs.Map[components.Position]
	rotMap *ecs.Map[components.Orientation]
	motMap *ecs.Map[components.Motion]
	wanMap *ecs.Map[components.Wander]
	purMap *ecs.Map[components.Pursuer]
	params AgentParams

	scratch []PursuerSnapshot
}

// NewPursuerSystem creates a new pursuer system.
func NewPursuerSystem(w *ecs.World, params AgentParams) *PursuerSystem {
	return &PursuerSystem{
		filter: ecs.NewFilter6[components.Agent, components.Position, components.Orientation, components.Motion, components.Wander, components.Pursuer](w),
		posMap: ecs.NewMap[components.Position](w),
		rotMap: ecs.NewMap[components.Orientation](w),
		motMap: ecs.NewMap[components.Motion](w),
		wanMap: ecs.NewMap[components.Wander](w),
		purMap: ecs.NewMap[components.Pursuer](w),
		params: params,
	}
}

// Collect appends a snapshot of every pursuer to dst.
func (s *PursuerSystem) Collect(dst []PursuerSnapshot) []PursuerSnapshot {
	query := s.filter.Query()
	for query.Next() {
		agent, pos, rot, mot, wan, pur := query.Get()
		dst = append(dst, PursuerSnapshot{
			Entity:     query.Entity(),
			ID:         agent.ID,
			Kin:        kinematics(pos, rot, mot, wan),
			State:      pur.State,
			Thresholds: pur.Thresholds,
			Motion:     s.params.motion(mot),
			Rng:        randSource(wan.Rng),
		})
	}
	return dst
}

// Apply writes stepped snapshots back to the world and appends any state
// changes to out.
func (s *PursuerSystem) Apply(snaps []PursuerSnapshot, out []Transition) []Transition {
	for i := range snaps {
		snap := &snaps[i]
		pos := s.posMap.Get(snap.Entity)
		rot := s.rotMap.Get(snap.Entity)
		mot := s.motMap.Get(snap.Entity)
		wan := s.wanMap.Get(snap.Entity)
		pur := s.purMap.Get(snap.Entity)
		if pos == nil || rot == nil || mot == nil || wan == nil || pur == nil {
			continue
		}

		store(snap.Next, pos, rot, mot, wan)
		if snap.NextState != snap.State {
			out = append(out, Transition{
				Entity:   snap.Entity,
				ID:       snap.ID,
				Kind:     components.KindTank,
				From:     snap.State,
				To:       snap.NextState,
				Distance: snap.Distance,
			})
		}
		pur.State = snap.NextState
	}
	return out
}

// Update steps every pursuer toward target on the calling goroutine.
func (s *PursuerSystem) Update(target r2.Vec, out []Transition) []Transition {
	s.scratch = s.Collect(s.scratch[:0])
	for i := range s.scratch {
		s.scratch[i].Step(target)
	}
	return s.Apply(s.scratch, out)
}
