package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagHeightMap  = flag.String("heightmap", "", "Height map image (png, jpeg, gif, bmp, tiff, tga)")
	flagSeed       = flag.Int64("seed", 0, "Seed for the forest and the generated height map")
	flagSteps      = flag.Int("steps", -1, "Simulation frames to run")
	flagOutput     = flag.String("output", "", "Telemetry output directory")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagProbe      = flag.String("probe", "", "Print the ground height at x,z and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Probe returns the point given with --probe.
func Probe() (x, z float32, ok bool, err error) {
	if *flagProbe == "" {
		return 0, 0, false, nil
	}
	x, z, err = ParsePoint(*flagProbe)
	if err != nil {
		return 0, 0, false, err
	}
	return x, z, true, nil
}

// ParsePoint parses "x,z".
func ParsePoint(s string) (x, z float32, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("point %q: want x,z", s)
	}
	xv, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	zv, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return float32(xv), float32(zv), nil
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowBounds = true
	}
	if *flagHeightMap != "" {
		cfg.Terrain.HeightMap = *flagHeightMap
	}
	if *flagSeed != 0 {
		cfg.Forest.Seed = uint64(*flagSeed)
		cfg.Terrain.Noise.Seed = *flagSeed
	}
	if *flagSteps >= 0 {
		cfg.Simulation.Steps = *flagSteps
	}
	if *flagOutput != "" {
		cfg.Telemetry.OutputDir = *flagOutput
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
