package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chase/components"
)

func TestStateLabel(t *testing.T) {
	tests := []struct {
		kind  components.Kind
		state string
		want  string
	}{
		{components.KindTank, "Chasing", "Tank State: Chasing"},
		{components.KindMouse, "Evading", "Mouse State: Evading"},
		{components.KindTank, "Wander", "Tank State: Wander"},
	}

	for _, tt := range tests {
		if got := StateLabel(tt.kind, tt.state); got != tt.want {
			t.Errorf("StateLabel(%v, %q) = %q, want %q", tt.kind, tt.state, got, tt.want)
		}
	}
}

func TestHUDLines(t *testing.T) {
	h := NewHUD()
	lines := h.Lines(HUDData{
		Title:          "Chase",
		Tick:           42,
		StepsPerUpdate: 2,
		FPS:            60,
		Paused:         true,
		StateLabels:    []string{"Tank State: Caught"},
	})

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	if lines[1] != "Tick: 42 | Speed: 2x | FPS: 60 | PAUSED" {
		t.Errorf("status line = %q", lines[1])
	}
	if lines[2] != "Tank State: Caught" {
		t.Errorf("state line = %q", lines[2])
	}
}

func TestOverlayToggle(t *testing.T) {
	reg := NewOverlayRegistry()

	if reg.IsEnabled(OverlayTargetLines) {
		t.Fatal("overlays should start disabled")
	}
	if !reg.Toggle(OverlayTargetLines) || !reg.IsEnabled(OverlayTargetLines) {
		t.Error("toggle did not enable overlay")
	}
	if reg.Toggle(OverlayTargetLines) {
		t.Error("second toggle should disable overlay")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, on, ok := reg.HandleKeyPress(rl.KeyL)
	if !ok || id != OverlayStateLabels || !on {
		t.Errorf("HandleKeyPress(L) = %v, %v, %v", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key reported a toggle")
	}
}

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()
	cats := reg.Categories()
	if len(cats) != 2 || cats[0] != "visual" || cats[1] != "debug" {
		t.Errorf("Categories() = %v", cats)
	}
	if n := len(reg.ByCategory("visual")); n != 2 {
		t.Errorf("visual overlays = %d, want 2", n)
	}
}

func TestClampSteps(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 5: 5, 10: 10, 14: 10} {
		if got := clampSteps(in); got != want {
			t.Errorf("clampSteps(%d) = %d, want %d", in, got, want)
		}
	}
}
