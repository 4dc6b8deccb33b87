package telemetry

import (
	"testing"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/steering"
)

func TestCollectorDetectsFlap(t *testing.T) {
	c := NewCollector(600, 30, 1.0/60)

	ev := c.RecordTransition(NewTransitionEvent(100, 1, components.KindTank, steering.PursuerWandering, steering.PursuerChasing, 240))
	if ev.Flap {
		t.Fatal("first transition marked as flap")
	}

	ev = c.RecordTransition(NewTransitionEvent(110, 1, components.KindTank, steering.PursuerChasing, steering.PursuerWandering, 260))
	if !ev.Flap {
		t.Error("reversal within window not marked as flap")
	}

	// Different agent doing the same does not interact with agent 1
	ev = c.RecordTransition(NewTransitionEvent(111, 2, components.KindTank, steering.PursuerChasing, steering.PursuerWandering, 260))
	if ev.Flap {
		t.Error("first transition of another agent marked as flap")
	}

	stats := c.Flush(600, 2, 0)
	if stats.Transitions != 3 || stats.Flaps != 1 {
		t.Errorf("transitions/flaps = %d/%d, want 3/1", stats.Transitions, stats.Flaps)
	}
	if stats.FlapsPer1000 != 1000.0/600 {
		t.Errorf("flaps per 1000 = %v, want %v", stats.FlapsPer1000, 1000.0/600)
	}
}

func TestCollectorFlapWindow(t *testing.T) {
	tests := []struct {
		name     string
		gap      int32
		wantFlap bool
	}{
		{"inside window", 5, true},
		{"at window edge", 30, true},
		{"outside window", 31, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(600, 30, 1.0/60)
			c.RecordTransition(NewTransitionEvent(0, 7, components.KindMouse, steering.EvaderWandering, steering.EvaderEvading, 139))
			ev := c.RecordTransition(NewTransitionEvent(tt.gap, 7, components.KindMouse, steering.EvaderEvading, steering.EvaderWandering, 261))
			if ev.Flap != tt.wantFlap {
				t.Errorf("flap = %v, want %v", ev.Flap, tt.wantFlap)
			}
		})
	}
}

func TestCollectorForwardProgressIsNotFlap(t *testing.T) {
	c := NewCollector(600, 30, 1.0/60)
	c.RecordTransition(NewTransitionEvent(0, 1, components.KindTank, steering.PursuerWandering, steering.PursuerChasing, 240))
	ev := c.RecordTransition(NewTransitionEvent(2, 1, components.KindTank, steering.PursuerChasing, steering.PursuerCaught, 50))
	if ev.Flap {
		t.Error("Chasing -> Caught after Wander -> Chasing is not a reversal")
	}

	stats := c.Flush(600, 1, 0)
	if stats.Catches != 1 {
		t.Errorf("catches = %d, want 1", stats.Catches)
	}
}

func TestCollectorFlushResetsWindow(t *testing.T) {
	c := NewCollector(10, 30, 0.1)

	if c.ShouldFlush(9) {
		t.Error("flushed before window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("did not flush at window end")
	}

	for i := 0; i < 4; i++ {
		c.RecordDistance(components.KindTank, "Chasing", 100)
	}
	c.RecordDistance(components.KindTank, "Caught", 50)
	c.RecordDistance(components.KindMouse, "Evading", 150)
	c.RecordDistance(components.KindCat, "", 1) // ignored

	stats := c.Flush(10, 1, 1)
	if stats.SimTimeSec != 1.0 {
		t.Errorf("sim time = %v, want 1.0", stats.SimTimeSec)
	}
	if stats.TankChaseFrac != 0.8 || stats.TankCaughtFrac != 0.2 {
		t.Errorf("tank fractions = %v/%v, want 0.8/0.2", stats.TankChaseFrac, stats.TankCaughtFrac)
	}
	if stats.MouseEvadeFrac != 1 {
		t.Errorf("mouse evade fraction = %v, want 1", stats.MouseEvadeFrac)
	}
	if stats.TankDistMean != 90 {
		t.Errorf("tank distance mean = %v, want 90", stats.TankDistMean)
	}

	next := c.Flush(20, 1, 1)
	if next.WindowStartTick != 10 || next.TankDistMean != 0 || next.TankChaseFrac != 0 {
		t.Errorf("window not reset: %+v", next)
	}
	if c.ShouldFlush(25) {
		t.Error("window start not advanced")
	}
}

func TestCollectorTotalsSurviveFlush(t *testing.T) {
	c := NewCollector(10, 30, 0.1)
	c.RecordTransition(NewTransitionEvent(1, 1, components.KindTank, steering.PursuerWandering, steering.PursuerChasing, 240))
	c.Flush(10, 1, 0)
	// Reversal across the window boundary still counts
	ev := c.RecordTransition(NewTransitionEvent(12, 1, components.KindTank, steering.PursuerChasing, steering.PursuerWandering, 260))

	if !ev.Flap {
		t.Error("flap across window boundary not detected")
	}
	if c.TotalTransitions() != 2 || c.TotalFlaps() != 1 {
		t.Errorf("totals = %d/%d, want 2/1", c.TotalTransitions(), c.TotalFlaps())
	}

	c.Forget(1)
	ev = c.RecordTransition(NewTransitionEvent(13, 1, components.KindTank, steering.PursuerWandering, steering.PursuerChasing, 240))
	if ev.Flap {
		t.Error("forgotten agent history still used")
	}
}
