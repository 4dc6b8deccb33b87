package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		Seed:        42,
		WorldWidth:  1920,
		WorldHeight: 1080,
		Tick:        1000,
		Agents: []AgentState{
			{ID: 0, Kind: "Cat", X: 960, Y: 540},
			{ID: 1, Kind: "Tank", State: "Chasing", X: 700, Y: 540, Orientation: 0.2, Speed: 5},
			{ID: 2, Kind: "Mouse", State: "Evading", X: 1200, Y: 500, Orientation: -0.4, Speed: 8.5, WanderX: 0.6, WanderY: 0.8},
		},
		Bookmark: &Bookmark{Type: BookmarkFirstCatch, Tick: 1000, Description: "test"},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not created at %s: %v", path, err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Seed != snapshot.Seed || loaded.Tick != snapshot.Tick {
		t.Errorf("header mismatch: got seed %d tick %d", loaded.Seed, loaded.Tick)
	}
	if len(loaded.Agents) != len(snapshot.Agents) {
		t.Fatalf("agents: got %d, want %d", len(loaded.Agents), len(snapshot.Agents))
	}
	for i := range snapshot.Agents {
		if loaded.Agents[i] != snapshot.Agents[i] {
			t.Errorf("agent %d: got %+v, want %+v", i, loaded.Agents[i], snapshot.Agents[i])
		}
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkFirstCatch {
		t.Errorf("bookmark not restored: %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := SaveSnapshot(&Snapshot{
		Version:  SnapshotVersion,
		Tick:     5000,
		Bookmark: &Bookmark{Type: BookmarkFlapStorm, Tick: 5000},
	}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_5000_flap_storm.json"); path != expected {
		t.Errorf("path = %s, want %s", path, expected)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_3000.json"); path != expected {
		t.Errorf("path = %s, want %s", path, expected)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "tick": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for unknown snapshot version")
	}
}
