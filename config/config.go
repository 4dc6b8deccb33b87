// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Cat        CatConfig        `yaml:"cat"`
	Tank       TankConfig       `yaml:"tank"`
	Mouse      MouseConfig      `yaml:"mouse"`
	Wander     WanderConfig     `yaml:"wander"`
	Camera     CameraConfig     `yaml:"camera"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Parallel   ParallelConfig   `yaml:"parallel"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds arena dimensions.
// The arena can be larger than the screen; the camera follows the cat.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// PhysicsConfig holds tick timing.
type PhysicsConfig struct {
	DT             float64 `yaml:"dt"`               // seconds per tick in windowed mode
	StepsPerUpdate int     `yaml:"steps_per_update"` // ticks per Update call in headless mode
}

// PopulationConfig holds how many AI agents of each kind are spawned.
type PopulationConfig struct {
	Tanks int `yaml:"tanks"`
	Mice  int `yaml:"mice"`
}

// CatConfig holds the player-controlled agent parameters.
type CatConfig struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	Deadzone       float64 `yaml:"deadzone"`         // stick deadzone radius
	SpriteHalfSize float64 `yaml:"sprite_half_size"` // used by the follow camera
}

// TankConfig holds the pursuer parameters.
type TankConfig struct {
	MaxSpeed          float64 `yaml:"max_speed"`
	TurnSpeed         float64 `yaml:"turn_speed"`
	ChaseDistance     float64 `yaml:"chase_distance"`
	CaughtDistance    float64 `yaml:"caught_distance"`
	Hysteresis        float64 `yaml:"hysteresis"`
	WanderSpeedFactor float64 `yaml:"wander_speed_factor"` // fraction of max speed while wandering
}

// MouseConfig holds the evader parameters.
type MouseConfig struct {
	MaxSpeed          float64 `yaml:"max_speed"`
	TurnSpeed         float64 `yaml:"turn_speed"`
	EvadeDistance     float64 `yaml:"evade_distance"`
	Hysteresis        float64 `yaml:"hysteresis"`
	WanderSpeedFactor float64 `yaml:"wander_speed_factor"`
}

// WanderConfig holds the shared wander tuning.
type WanderConfig struct {
	Jitter       float64 `yaml:"jitter"`        // max per-tick perturbation of the wander direction
	FollowFactor float64 `yaml:"follow_factor"` // turn speed fraction toward the wander direction
	CenterPull   float64 `yaml:"center_pull"`   // turn speed fraction toward the arena center at the rim
}

// CameraConfig holds follow camera parameters.
type CameraConfig struct {
	SafeArea float64 `yaml:"safe_area"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	FlapWindow          int     `yaml:"flap_window"` // ticks
	Trace               bool    `yaml:"trace"`       // write per-tick agent rows
	BookmarkHistory     int     `yaml:"bookmark_history"`
}

// ParallelConfig holds parallel agent update settings.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // minimum AI agent count before fanning out
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldWidth   float64 // effective arena width
	WorldHeight  float64 // effective arena height
	CenterX      float64
	CenterY      float64
	WanderRadius float64 // half the shorter arena side
	StatsTicks   int32   // Telemetry.StatsWindow in ticks
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse merges the given YAML document over the embedded defaults,
// computes derived values and validates the result.
func Parse(overlay []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in overlay
	if len(overlay) > 0 {
		if err := yaml.Unmarshal(overlay, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldWidth = float64(worldW)
	c.Derived.WorldHeight = float64(worldH)
	c.Derived.CenterX = c.Derived.WorldWidth / 2
	c.Derived.CenterY = c.Derived.WorldHeight / 2
	c.Derived.WanderRadius = min(c.Derived.CenterX, c.Derived.CenterY)

	if c.Physics.DT > 0 {
		c.Derived.StatsTicks = int32(c.Telemetry.StatsWindow/c.Physics.DT + 0.5)
	}
	if c.Derived.StatsTicks < 1 {
		c.Derived.StatsTicks = 1
	}
}

// Validate checks that the thresholds describe usable state machines.
func (c *Config) Validate() error {
	switch {
	case c.Derived.WorldWidth < 0 || c.Derived.WorldHeight < 0:
		return fmt.Errorf("%w: negative world size %vx%v", ErrInvalid, c.Derived.WorldWidth, c.Derived.WorldHeight)
	case c.Derived.WorldWidth == 0 && c.Derived.WorldHeight == 0:
		return fmt.Errorf("%w: world has no size", ErrInvalid)
	case c.Physics.DT <= 0:
		return fmt.Errorf("%w: physics.dt must be positive, got %v", ErrInvalid, c.Physics.DT)
	case c.Population.Tanks < 0 || c.Population.Mice < 0:
		return fmt.Errorf("%w: negative population", ErrInvalid)
	case c.Cat.MaxSpeed <= 0 || c.Tank.MaxSpeed <= 0 || c.Mouse.MaxSpeed <= 0:
		return fmt.Errorf("%w: max speeds must be positive", ErrInvalid)
	case c.Cat.Deadzone < 0 || c.Cat.Deadzone >= 1:
		return fmt.Errorf("%w: cat.deadzone must be in [0, 1), got %v", ErrInvalid, c.Cat.Deadzone)
	case c.Tank.TurnSpeed < 0 || c.Mouse.TurnSpeed < 0:
		return fmt.Errorf("%w: turn speeds must not be negative", ErrInvalid)
	case c.Tank.Hysteresis < 0 || c.Mouse.Hysteresis < 0:
		return fmt.Errorf("%w: hysteresis must not be negative", ErrInvalid)
	case c.Tank.CaughtDistance < 0 || c.Tank.CaughtDistance >= c.Tank.ChaseDistance:
		return fmt.Errorf("%w: tank.caught_distance %v must be in [0, chase_distance %v)",
			ErrInvalid, c.Tank.CaughtDistance, c.Tank.ChaseDistance)
	case c.Tank.ChaseDistance-c.Tank.CaughtDistance <= c.Tank.Hysteresis:
		// Chasing band [caught+h/2, chase-h/2] would be empty
		return fmt.Errorf("%w: tank.hysteresis %v overlaps the chase band (%v..%v)",
			ErrInvalid, c.Tank.Hysteresis, c.Tank.CaughtDistance, c.Tank.ChaseDistance)
	case c.Mouse.Hysteresis >= c.Mouse.EvadeDistance:
		return fmt.Errorf("%w: mouse.hysteresis %v must be below evade_distance %v",
			ErrInvalid, c.Mouse.Hysteresis, c.Mouse.EvadeDistance)
	case c.Tank.WanderSpeedFactor < 0 || c.Mouse.WanderSpeedFactor < 0:
		return fmt.Errorf("%w: wander speed factors must not be negative", ErrInvalid)
	case c.Camera.SafeArea < 0 || c.Camera.SafeArea > 1:
		return fmt.Errorf("%w: camera.safe_area must be in [0, 1], got %v", ErrInvalid, c.Camera.SafeArea)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
