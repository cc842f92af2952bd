// Package config handles simulator and viewer configuration loading.
package config

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/eternal-forest/internal/game/forest"
)

// Config holds all settings.
type Config struct {
	Terrain    TerrainConfig    `yaml:"terrain"`
	World      WorldConfig      `yaml:"world"`
	Forest     ForestConfig     `yaml:"forest"`
	Simulation SimulationConfig `yaml:"simulation"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TerrainConfig holds the height map source and the region grid.
type TerrainConfig struct {
	HeightMap     string      `yaml:"heightmap"` // empty: generate from noise
	RegionSize    int         `yaml:"region_size"`
	RegionsNumber int         `yaml:"regions_number"`
	GroundSize    float32     `yaml:"ground_size"`
	HeightStep    float32     `yaml:"height_step"`
	Noise         NoiseConfig `yaml:"noise"`
}

// NoiseConfig holds procedural height map settings.
type NoiseConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Seed        int64   `yaml:"seed"`
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// WorldConfig holds the terrain root transform and the forest height band.
type WorldConfig struct {
	Scale           [3]float32 `yaml:"scale"`
	RotationAxis    [3]float32 `yaml:"rotation_axis"`
	RotationDegrees float32    `yaml:"rotation_degrees"`
	Position        [3]float32 `yaml:"position"`
	ProbeAltitude   float32    `yaml:"probe_altitude"`
	ForestMinHeight float32    `yaml:"forest_min_height"`
	ForestMaxHeight float32    `yaml:"forest_max_height"`
}

// ForestConfig holds the life field settings.
type ForestConfig struct {
	Enabled       bool    `yaml:"enabled"`
	TreeScale     float32 `yaml:"tree_scale"`
	forest.Config `yaml:",inline"`
}

// SimulationConfig holds headless run settings.
type SimulationConfig struct {
	Steps    int     `yaml:"steps"`     // frames to run
	TimeStep float64 `yaml:"time_step"` // simulated seconds per frame
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowBounds bool `yaml:"show_bounds"`
}

// TelemetryConfig holds output settings.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty disables CSV output
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			RegionSize:    64,
			RegionsNumber: 10,
			GroundSize:    512,
			HeightStep:    8,
			Noise: NoiseConfig{
				Width:       512,
				Height:      512,
				Seed:        1,
				Scale:       160,
				Octaves:     5,
				Persistence: 0.5,
				Lacunarity:  2,
			},
		},
		World: WorldConfig{
			Scale:           [3]float32{0.27, 0.27, 1},
			RotationAxis:    [3]float32{1, 0, 0},
			RotationDegrees: -90,
			ProbeAltitude:   10000,
			ForestMinHeight: 0.02,
			ForestMaxHeight: 0.75,
		},
		Forest: ForestConfig{
			Enabled:   true,
			TreeScale: 0.35,
			Config:    forest.DefaultConfig(),
		},
		Simulation: SimulationConfig{
			Steps:    120,
			TimeStep: 0.25,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	add := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf(format, args...))
	}

	t := c.Terrain
	if t.RegionSize <= 0 || t.RegionsNumber <= 0 {
		add("terrain: region_size and regions_number must be positive")
	}
	if t.GroundSize <= 0 || t.HeightStep <= 0 {
		add("terrain: ground_size and height_step must be positive")
	}
	if t.HeightMap == "" && (t.Noise.Width <= 0 || t.Noise.Height <= 0) {
		add("terrain.noise: width and height must be positive")
	}

	w := c.World
	if w.Scale[0] == 0 || w.Scale[1] == 0 || w.Scale[2] == 0 {
		add("world: scale components must be non-zero")
	}
	if w.ForestMinHeight > w.ForestMaxHeight {
		add("world: forest_min_height %g exceeds forest_max_height %g", w.ForestMinHeight, w.ForestMaxHeight)
	}

	if c.Forest.Enabled {
		if c.Forest.TreeScale <= 0 {
			add("forest: tree_scale must be positive")
		}
		if ferr := c.Forest.Config.Validate(); ferr != nil {
			err = multierr.Append(err, fmt.Errorf("forest: %w", ferr))
		}
	}

	if c.Simulation.Steps < 0 {
		add("simulation: steps must not be negative")
	}
	if c.Simulation.TimeStep <= 0 {
		add("simulation: time_step must be positive")
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		add("graphics: width and height must be positive")
	}

	if c.Logging.Level != "" {
		if _, lerr := zapcore.ParseLevel(c.Logging.Level); lerr != nil {
			add("logging: %v", lerr)
		}
	}
	return err
}
