package steering

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

var tankThresholds = PursuerThresholds{ChaseDistance: 250, CaughtDistance: 60, Hysteresis: 15}

var mouseThresholds = EvaderThresholds{EvadeDistance: 200, Hysteresis: 60}

func TestPursuerEffectiveThresholds(t *testing.T) {
	tests := []struct {
		state      PursuerState
		wantChase  float64
		wantCaught float64
	}{
		{PursuerWandering, 242.5, 60},
		{PursuerChasing, 257.5, 52.5},
		{PursuerCaught, 250, 67.5},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			chase, caught := tankThresholds.Effective(tt.state)
			if chase != tt.wantChase || caught != tt.wantCaught {
				t.Errorf("Effective(%v) = (%v, %v), want (%v, %v)",
					tt.state, chase, caught, tt.wantChase, tt.wantCaught)
			}
		})
	}
}

func TestNextPursuerState(t *testing.T) {
	tests := []struct {
		name     string
		current  PursuerState
		distance float64
		want     PursuerState
	}{
		{"far stays wandering", PursuerWandering, 300, PursuerWandering},
		{"inside base but outside shifted band", PursuerWandering, 250, PursuerWandering},
		{"just outside shifted band", PursuerWandering, 242.6, PursuerWandering},
		{"at shifted threshold starts chase", PursuerWandering, 242.5, PursuerChasing},
		{"wandering to caught directly", PursuerWandering, 10, PursuerCaught},
		{"chasing holds at upper edge", PursuerChasing, 257.5, PursuerChasing},
		{"chasing gives up past band", PursuerChasing, 257.6, PursuerWandering},
		{"chasing holds above caught band", PursuerChasing, 53, PursuerChasing},
		{"chasing catches at lower edge", PursuerChasing, 52.5, PursuerCaught},
		{"caught holds inside band", PursuerCaught, 67.5, PursuerCaught},
		{"caught resumes chase", PursuerCaught, 68, PursuerChasing},
		{"caught gives up when far", PursuerCaught, 251, PursuerWandering},
		{"zero distance", PursuerChasing, 0, PursuerCaught},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPursuerState(tt.current, tt.distance, tankThresholds); got != tt.want {
				t.Errorf("NextPursuerState(%v, %v) = %v, want %v", tt.current, tt.distance, got, tt.want)
			}
		})
	}
}

func TestPursuerDoesNotFlapInsideBand(t *testing.T) {
	// Oscillate inside (242.5, 257.5]: whichever state we start in is kept.
	distances := []float64{245, 255, 243, 257.5, 250, 242.6, 256}

	for _, start := range []PursuerState{PursuerWandering, PursuerChasing} {
		state := start
		for _, d := range distances {
			state = NextPursuerState(state, d, tankThresholds)
			if state != start {
				t.Errorf("started %v, flipped to %v at distance %v", start, state, d)
				break
			}
		}
	}
}

func TestPursuerApproachAndRetreat(t *testing.T) {
	state := PursuerWandering
	var transitions []PursuerState

	step := func(d float64) {
		next := NextPursuerState(state, d, tankThresholds)
		if next != state {
			transitions = append(transitions, next)
		}
		state = next
	}

	for d := 300.0; d >= 0; d-- {
		step(d)
	}
	for d := 0.0; d <= 300; d++ {
		step(d)
	}

	want := []PursuerState{PursuerChasing, PursuerCaught, PursuerChasing, PursuerWandering}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, transitions[i], want[i])
		}
	}
}

func TestNextEvaderState(t *testing.T) {
	tests := []struct {
		name     string
		current  EvaderState
		distance float64
		want     EvaderState
	}{
		{"far from evading", EvaderEvading, 261, EvaderWandering},
		{"far from wandering", EvaderWandering, 261, EvaderWandering},
		{"close from wandering", EvaderWandering, 139, EvaderEvading},
		{"close from evading", EvaderEvading, 139, EvaderEvading},
		{"dead band keeps wandering", EvaderWandering, 180, EvaderWandering},
		{"dead band keeps evading", EvaderEvading, 180, EvaderEvading},
		{"upper edge is inside band", EvaderEvading, 260, EvaderEvading},
		{"lower edge is inside band", EvaderWandering, 140, EvaderWandering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextEvaderState(tt.current, tt.distance, mouseThresholds); got != tt.want {
				t.Errorf("NextEvaderState(%v, %v) = %v, want %v", tt.current, tt.distance, got, tt.want)
			}
		})
	}
}

func TestFleePoint(t *testing.T) {
	got := FleePoint(r2.Vec{X: 10, Y: 5}, r2.Vec{X: 0, Y: 5})
	if want := (r2.Vec{X: 30, Y: 5}); got != want {
		t.Errorf("FleePoint = %v, want %v", got, want)
	}

	// Threat on top of the evader: no direction to flee along.
	p := r2.Vec{X: 7, Y: 7}
	if got := FleePoint(p, p); got != p {
		t.Errorf("degenerate FleePoint = %v, want %v", got, p)
	}
}

func TestStateStrings(t *testing.T) {
	if PursuerChasing.String() != "Chasing" || PursuerCaught.String() != "Caught" || PursuerWandering.String() != "Wander" {
		t.Error("unexpected pursuer labels")
	}
	if EvaderEvading.String() != "Evading" || EvaderWandering.String() != "Wander" {
		t.Error("unexpected evader labels")
	}
	if PursuerState(9).String() != "Unknown" {
		t.Error("out-of-range pursuer state should be Unknown")
	}
}
