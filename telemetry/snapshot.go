package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the simulation state at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	WorldWidth  float64 `json:"world_width"`
	WorldHeight float64 `json:"world_height"`

	Tick int32 `json:"tick"`

	Agents []AgentState `json:"agents"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// AgentState holds one agent's state.
type AgentState struct {
	ID          uint32  `json:"id"`
	Kind        string  `json:"kind"`
	State       string  `json:"state,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Orientation float64 `json:"orientation"`
	Speed       float64 `json:"speed"`
	WanderX     float64 `json:"wander_x"`
	WanderY     float64 `json:"wander_y"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
