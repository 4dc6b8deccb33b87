package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayStateLabels    OverlayID = "state_labels"
	OverlayTargetLines    OverlayID = "target_lines"
	OverlayThresholdRings OverlayID = "threshold_rings"
	OverlaySafeArea       OverlayID = "safe_area"
	OverlayPerf           OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // toggle key, 0 = none
	KeyLabel    string // e.g. "L"
	Category    string // "visual" or "debug"
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayStateLabels,
		Name:        "State Labels",
		Description: "Show each agent's behavior state next to it",
		Key:         rl.KeyL,
		KeyLabel:    "L",
		Category:    "visual",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayTargetLines,
		Name:        "Target Lines",
		Description: "Connect chasing and evading agents to the cat",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "visual",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayThresholdRings,
		Name:        "Threshold Rings",
		Description: "Show effective chase, caught and evade distances around the cat",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlaySafeArea,
		Name:        "Camera Safe Area",
		Description: "Outline where the cat may move before the camera scrolls",
		Key:         rl.KeyC,
		KeyLabel:    "C",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Perf Panel",
		Description: "Show per-phase step timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled sets an overlay's state. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// PollKeys drains this frame's key queue into HandleKeyPress.
func (r *OverlayRegistry) PollKeys() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		r.HandleKeyPress(key)
	}
}
