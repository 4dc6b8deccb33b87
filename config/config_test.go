package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Tank.ChaseDistance != 250 || cfg.Tank.CaughtDistance != 60 || cfg.Tank.Hysteresis != 15 {
		t.Errorf("tank thresholds = %v/%v/%v, want 250/60/15",
			cfg.Tank.ChaseDistance, cfg.Tank.CaughtDistance, cfg.Tank.Hysteresis)
	}
	if cfg.Mouse.EvadeDistance != 200 || cfg.Mouse.Hysteresis != 60 {
		t.Errorf("mouse thresholds = %v/%v, want 200/60", cfg.Mouse.EvadeDistance, cfg.Mouse.Hysteresis)
	}
	if cfg.Mouse.WanderSpeedFactor != 0.25 {
		t.Errorf("mouse wander speed factor = %v, want 0.25", cfg.Mouse.WanderSpeedFactor)
	}

	// World falls back to the screen size
	if cfg.Derived.WorldWidth != 1920 || cfg.Derived.WorldHeight != 1080 {
		t.Errorf("world = %vx%v, want 1920x1080", cfg.Derived.WorldWidth, cfg.Derived.WorldHeight)
	}
	if cfg.Derived.WanderRadius != 540 {
		t.Errorf("wander radius = %v, want 540", cfg.Derived.WanderRadius)
	}
	if cfg.Derived.StatsTicks != 600 {
		t.Errorf("stats ticks = %d, want 600", cfg.Derived.StatsTicks)
	}
}

func TestOverlayOnlyOverwritesPresentFields(t *testing.T) {
	cfg, err := Parse([]byte("tank:\n  hysteresis: 30\nworld:\n  width: 4000\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Tank.Hysteresis != 30 {
		t.Errorf("hysteresis = %v, want 30", cfg.Tank.Hysteresis)
	}
	if cfg.Tank.ChaseDistance != 250 {
		t.Errorf("chase distance = %v, want default 250", cfg.Tank.ChaseDistance)
	}
	if cfg.Derived.WorldWidth != 4000 || cfg.Derived.WorldHeight != 1080 {
		t.Errorf("world = %vx%v, want 4000x1080", cfg.Derived.WorldWidth, cfg.Derived.WorldHeight)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"caught beyond chase", "tank:\n  caught_distance: 300\n"},
		{"overlapping pursuer bands", "tank:\n  hysteresis: 190\n"},
		{"evader band swallows threshold", "mouse:\n  hysteresis: 200\n"},
		{"negative turn speed", "mouse:\n  turn_speed: -0.1\n"},
		{"zero dt", "physics:\n  dt: 0\n"},
		{"negative population", "population:\n  tanks: -1\n"},
		{"deadzone too large", "cat:\n  deadzone: 1\n"},
		{"zero max speed", "tank:\n  max_speed: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.overlay))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalid", tt.overlay, err)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("tank: [unclosed"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if errors.Is(err, ErrInvalid) {
		t.Errorf("malformed YAML should be a parse error, not ErrInvalid: %v", err)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Parse([]byte("mouse:\n  evade_distance: 220\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Mouse.EvadeDistance != 220 {
		t.Errorf("evade distance after roundtrip = %v, want 220", loaded.Mouse.EvadeDistance)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() should panic before Init()")
		}
	}()
	Cfg()
}
