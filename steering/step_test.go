package steering

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func tankMotion() Motion {
	return Motion{
		MaxSpeed:  5,
		TurnSpeed: 0.1,
		Wander:    DefaultWanderParams(),
		Arena:     NewBounds(1920, 1080),
	}
}

func mouseMotion() Motion {
	return Motion{
		MaxSpeed:          8.5,
		TurnSpeed:         0.2,
		WanderSpeedFactor: 0.25,
		Wander:            DefaultWanderParams(),
		Arena:             NewBounds(1920, 1080),
	}
}

func TestStepPursuerChasesUntilCaught(t *testing.T) {
	target := r2.Vec{X: 400, Y: 300}
	k := Kinematics{Position: r2.Vec{X: 200, Y: 300}, Orientation: 0.3}
	state := PursuerWandering
	m := tankMotion()

	dist := r2.Norm(r2.Sub(target, k.Position))
	caughtAt := -1
	for tick := 0; tick < 200; tick++ {
		prev := state
		k, state = StepPursuer(k, state, target, tankThresholds, m, nil)
		d := r2.Norm(r2.Sub(target, k.Position))

		switch state {
		case PursuerChasing:
			if d >= dist {
				t.Fatalf("tick %d: distance %v did not decrease from %v while chasing", tick, d, dist)
			}
			if k.Speed != m.MaxSpeed {
				t.Fatalf("tick %d: chasing speed = %v, want %v", tick, k.Speed, m.MaxSpeed)
			}
		case PursuerCaught:
			if caughtAt < 0 {
				caughtAt = tick
				if prev != PursuerChasing {
					t.Errorf("caught from %v, want from Chasing", prev)
				}
			}
			if d != dist {
				t.Fatalf("tick %d: distance changed from %v to %v after caught", tick, dist, d)
			}
			if k.Speed != 0 {
				t.Fatalf("tick %d: caught speed = %v, want 0", tick, k.Speed)
			}
		default:
			t.Fatalf("tick %d: unexpected state %v", tick, state)
		}
		dist = d
	}

	if caughtAt < 0 {
		t.Fatal("pursuer never caught the target")
	}
	if dist > 52.5 {
		t.Errorf("resting distance %v, want within caught band", dist)
	}
}

func TestStepPursuerCaughtKeepsOrientation(t *testing.T) {
	k := Kinematics{Position: r2.Vec{X: 100, Y: 100}, Orientation: 2.0}
	next, state := StepPursuer(k, PursuerCaught, r2.Vec{X: 120, Y: 100}, tankThresholds, tankMotion(), nil)

	if state != PursuerCaught {
		t.Fatalf("state = %v, want Caught", state)
	}
	if next.Orientation != 2.0 || next.Position != k.Position {
		t.Errorf("caught agent moved: %+v", next)
	}
}

func TestStepPursuerWandersWhenFar(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := tankMotion()
	m.WanderSpeedFactor = 0.25

	k := Kinematics{Position: r2.Vec{X: 300, Y: 300}}
	next, state := StepPursuer(k, PursuerChasing, r2.Vec{X: 1800, Y: 900}, tankThresholds, m, rng)

	if state != PursuerWandering {
		t.Fatalf("state = %v, want Wander", state)
	}
	if next.Speed != 1.25 {
		t.Errorf("wander speed = %v, want 1.25", next.Speed)
	}
	if r2.Norm(next.Wander) == 0 {
		t.Error("wander direction not updated")
	}
}

func TestStepEvaderFlees(t *testing.T) {
	threat := r2.Vec{X: 0, Y: 0}
	k := Kinematics{Position: r2.Vec{X: 100, Y: 0}}

	next, state := StepEvader(k, EvaderWandering, threat, mouseThresholds, mouseMotion(), nil)
	if state != EvaderEvading {
		t.Fatalf("state = %v, want Evading", state)
	}
	if next.Orientation != 0 {
		t.Errorf("orientation = %v, want 0 (already facing away)", next.Orientation)
	}
	if want := (r2.Vec{X: 108.5, Y: 0}); r2.Norm(r2.Sub(next.Position, want)) > 1e-9 {
		t.Errorf("position = %v, want %v", next.Position, want)
	}
}

func TestStepEvaderTurnsAway(t *testing.T) {
	// Facing the threat: turns by the limit each tick until facing away.
	k := Kinematics{Position: r2.Vec{X: 100, Y: 100}, Orientation: math.Pi}
	threat := r2.Vec{X: 50, Y: 100}
	m := mouseMotion()
	m.MaxSpeed = 1e-9 // barely move, so the flee direction stays fixed

	state := EvaderWandering
	for i := 0; i < 20; i++ {
		prev := k.Orientation
		k, state = StepEvader(k, state, threat, mouseThresholds, m, nil)
		if turned := math.Abs(AngleBetween(prev, k.Orientation)); turned > m.TurnSpeed+1e-12 {
			t.Fatalf("turned %v, limit %v", turned, m.TurnSpeed)
		}
	}
	if state != EvaderEvading {
		t.Fatalf("state = %v, want Evading", state)
	}
	if d := math.Abs(AngleBetween(k.Orientation, 0)); d > 1e-6 {
		t.Errorf("orientation = %v, want facing away from threat (0)", k.Orientation)
	}
}

func TestStepEvaderWanderSpeed(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	k := Kinematics{Position: r2.Vec{X: 960, Y: 540}}
	next, state := StepEvader(k, EvaderEvading, r2.Vec{X: 100, Y: 100}, mouseThresholds, mouseMotion(), rng)

	if state != EvaderWandering {
		t.Fatalf("state = %v, want Wander", state)
	}
	if next.Speed != 0.25*8.5 {
		t.Errorf("speed = %v, want %v", next.Speed, 0.25*8.5)
	}
}

func TestStepEvaderDegenerateThreat(t *testing.T) {
	p := r2.Vec{X: 500, Y: 500}
	k := Kinematics{Position: p, Orientation: 1.0}

	next, state := StepEvader(k, EvaderWandering, p, mouseThresholds, mouseMotion(), nil)
	if state != EvaderEvading {
		t.Fatalf("state = %v, want Evading", state)
	}
	if next.Orientation != 1.0 {
		t.Errorf("orientation = %v, want unchanged 1.0", next.Orientation)
	}
	if math.IsNaN(next.Position.X) || math.IsNaN(next.Position.Y) {
		t.Errorf("position = %v, contains NaN", next.Position)
	}
}

func TestStepDeterministicWithSeed(t *testing.T) {
	run := func() (Kinematics, Kinematics) {
		rng := rand.New(rand.NewSource(99))
		tank := Kinematics{Position: r2.Vec{X: 480, Y: 540}}
		mouse := Kinematics{Position: r2.Vec{X: 1440, Y: 540}}
		cat := r2.Vec{X: 960, Y: 540}
		ts, ms := PursuerWandering, EvaderWandering
		for i := 0; i < 500; i++ {
			tank, ts = StepPursuer(tank, ts, cat, tankThresholds, tankMotion(), rng)
			mouse, ms = StepEvader(mouse, ms, cat, mouseThresholds, mouseMotion(), rng)
		}
		return tank, mouse
	}

	t1, m1 := run()
	t2, m2 := run()
	if t1 != t2 || m1 != m2 {
		t.Errorf("runs diverged: tank %+v vs %+v, mouse %+v vs %+v", t1, t2, m1, m2)
	}
}
