package systems

import "github.com/pthm-cable/chase/telemetry"

// SystemInfo describes a step phase for UI display.
type SystemInfo struct {
	ID          string // perf phase identifier
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "input", "ai")
}

// SystemRegistry holds metadata about all step phases.
// This keeps the UI and perf tracker naming in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases in execution order.
// Update this when adding new phases.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseInput, Name: "Input", Description: "Validates and filters the input frame", Category: "input"})
	r.Register(SystemInfo{ID: telemetry.PhasePlayer, Name: "Player", Description: "Moves the cat by its intent", Category: "input"})
	r.Register(SystemInfo{ID: telemetry.PhasePursuers, Name: "Pursuers", Description: "Chase state machine and steering", Category: "ai"})
	r.Register(SystemInfo{ID: telemetry.PhaseEvaders, Name: "Evaders", Description: "Evade state machine and steering", Category: "ai"})
	r.Register(SystemInfo{ID: telemetry.PhaseBounds, Name: "Bounds", Description: "Clamps agents to the arena", Category: "physics"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Records transitions and distances", Category: "internal"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns phases filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}
