package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/chase/config"
)

func TestNewOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("", true)
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}

	// All writes are no-ops on a nil manager
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteTrace([]TraceRecord{{Tick: 1}}); err != nil {
		t.Error(err)
	}
	if om.Tracing() {
		t.Error("nil manager reports tracing")
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, false)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 3; i++ {
		ev := TransitionEvent{Tick: int32(i), AgentID: 1, Kind: "Tank", From: "Wander", To: "Chasing", Distance: 240}
		if err := om.WriteTransition(ev); err != nil {
			t.Fatalf("WriteTransition: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "transitions.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if lines[0] != "tick,agent,kind,from,to,distance,flap" {
		t.Errorf("header = %q", lines[0])
	}

	var events []TransitionEvent
	if err := gocsv.UnmarshalBytes(data, &events); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(events) != 3 || events[2].Tick != 3 || events[2].To != "Chasing" {
		t.Errorf("round trip = %+v", events)
	}
}

func TestOutputManagerTraceOptional(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteTrace([]TraceRecord{{Tick: 1}}); err != nil {
		t.Error(err)
	}
	om.Close()

	if _, err := os.Stat(filepath.Join(dir, "trace.csv")); !os.IsNotExist(err) {
		t.Error("trace.csv created with tracing off")
	}
	for _, name := range []string{"telemetry.csv", "transitions.csv", "perf.csv", "bookmarks.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	om, err := NewOutputManager(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Tank.ChaseDistance != cfg.Tank.ChaseDistance {
		t.Errorf("chase distance = %v, want %v", loaded.Tank.ChaseDistance, cfg.Tank.ChaseDistance)
	}
	if !om.Tracing() {
		t.Error("tracing requested but not active")
	}
}
