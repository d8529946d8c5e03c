// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Hover     HoverConfig     `yaml:"hover"`
	Movement  MovementConfig  `yaml:"movement"`
	Patrol    PatrolConfig    `yaml:"patrol"`
	Jump      JumpConfig      `yaml:"jump"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Scene     SceneConfig     `yaml:"scene"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds integrator parameters for the built-in physics world.
type PhysicsConfig struct {
	DT            float64 `yaml:"dt"`             // Fixed step in seconds
	Gravity       float64 `yaml:"gravity"`        // Vertical acceleration (negative = down)
	CharacterMass float64 `yaml:"character_mass"` // Mass of spawned characters
}

// HoverConfig holds the suspension applied to spawned characters.
type HoverConfig struct {
	RayLength  float64 `yaml:"ray_length"`
	RideHeight float64 `yaml:"ride_height"`
	Strength   float64 `yaml:"strength"`
	Damper     float64 `yaml:"damper"`
}

// MovementConfig holds locomotion parameters for spawned characters.
type MovementConfig struct {
	Acceleration float64 `yaml:"acceleration"`
	Deceleration float64 `yaml:"deceleration"`
	TopSpeed     float64 `yaml:"top_speed"`
}

// PatrolConfig holds platform patrol defaults.
type PatrolConfig struct {
	DistanceThreshold float64 `yaml:"distance_threshold"`
}

// JumpConfig holds jump parameters.
type JumpConfig struct {
	Impulse float64 `yaml:"impulse"`
}

// TerrainConfig holds heightfield generation parameters.
// Size 0 disables terrain; the scene then relies on box ground only.
type TerrainConfig struct {
	Size       float64 `yaml:"size"`       // Edge length in world units, centered on origin
	Resolution int     `yaml:"resolution"` // Samples per edge
	BaseHeight float64 `yaml:"base_height"`
	Amplitude  float64 `yaml:"amplitude"` // Peak deviation from base height
	Scale      float64 `yaml:"scale"`     // Base noise frequency
	Octaves    int     `yaml:"octaves"`   // FBM octaves
	Lacunarity float64 `yaml:"lacunarity"`
	Gain       float64 `yaml:"gain"`
	Seed       int64   `yaml:"seed"`
}

// SceneConfig describes what gets spawned at startup.
type SceneConfig struct {
	Characters []CharacterConfig `yaml:"characters"`
	Platforms  []PlatformConfig  `yaml:"platforms"`
	Blocks     []BlockConfig     `yaml:"blocks"`
}

// CharacterConfig places a hovering character. The first character is the player.
type CharacterConfig struct {
	Position [3]float64 `yaml:"position"`
}

// PlatformConfig describes a kinematic patrol platform.
type PlatformConfig struct {
	HalfExtents [3]float64   `yaml:"half_extents"`
	Waypoints   [][3]float64 `yaml:"waypoints"`
	Threshold   float64      `yaml:"threshold"` // 0 = patrol.distance_threshold
	Disabled    bool         `yaml:"disabled"`
}

// BlockConfig describes a fixed box in the scene.
type BlockConfig struct {
	Center      [3]float64 `yaml:"center"`
	HalfExtents [3]float64 `yaml:"half_extents"`
	Sensor      bool       `yaml:"sensor"`
}

// ParallelConfig holds worker pool settings.
type ParallelConfig struct {
	HoverThreshold int `yaml:"hover_threshold"` // Min hovering bodies before probes run in parallel
	Workers        int `yaml:"workers"`         // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TicksPerSecond float64 // 1 / Physics.DT
	StatsTicks     int32   // Telemetry.StatsWindow in ticks
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

// Set replaces the global configuration.
func Set(cfg *Config) {
	global = cfg
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks values that the tick loop cannot recover from.
// Component-level ranges (hover, movement, patrol) are checked again by their constructors.
func (c *Config) Validate() error {
	var errs []error
	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt %v must be > 0", c.Physics.DT))
	}
	if c.Physics.CharacterMass <= 0 {
		errs = append(errs, fmt.Errorf("physics.character_mass %v must be > 0", c.Physics.CharacterMass))
	}
	if c.Hover.RayLength <= 0 {
		errs = append(errs, fmt.Errorf("hover.ray_length %v must be > 0", c.Hover.RayLength))
	}
	if c.Hover.RideHeight <= 0 {
		errs = append(errs, fmt.Errorf("hover.ride_height %v must be > 0", c.Hover.RideHeight))
	}
	if c.Patrol.DistanceThreshold <= 0 {
		errs = append(errs, fmt.Errorf("patrol.distance_threshold %v must be > 0", c.Patrol.DistanceThreshold))
	}
	for i, p := range c.Scene.Platforms {
		if len(p.Waypoints) == 0 {
			errs = append(errs, fmt.Errorf("scene.platforms[%d]: no waypoints", i))
		}
		if p.Threshold < 0 {
			errs = append(errs, fmt.Errorf("scene.platforms[%d]: threshold %v must be >= 0", i, p.Threshold))
		}
	}
	if c.Terrain.Size > 0 && c.Terrain.Resolution < 2 {
		errs = append(errs, fmt.Errorf("terrain.resolution %d must be >= 2", c.Terrain.Resolution))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TicksPerSecond = 1.0 / c.Physics.DT

	ticks := int32(math.Round(c.Telemetry.StatsWindow / c.Physics.DT))
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.StatsTicks = ticks
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
