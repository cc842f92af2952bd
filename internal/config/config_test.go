package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Terrain defaults
	if cfg.Terrain.RegionSize != 64 || cfg.Terrain.RegionsNumber != 10 {
		t.Errorf("expected 10x10 regions of 64, got %d x %d", cfg.Terrain.RegionsNumber, cfg.Terrain.RegionSize)
	}
	if cfg.Terrain.GroundSize != 512 {
		t.Errorf("expected ground size 512, got %g", cfg.Terrain.GroundSize)
	}
	if cfg.Terrain.HeightMap != "" {
		t.Errorf("expected generated height map by default, got %s", cfg.Terrain.HeightMap)
	}

	// World defaults
	if cfg.World.Scale != [3]float32{0.27, 0.27, 1} {
		t.Errorf("unexpected world scale %v", cfg.World.Scale)
	}
	if cfg.World.RotationDegrees != -90 {
		t.Errorf("expected rotation -90, got %g", cfg.World.RotationDegrees)
	}

	// Forest defaults
	if !cfg.Forest.Enabled {
		t.Error("expected forest to be enabled by default")
	}
	if cfg.Forest.Quota != 1000 {
		t.Errorf("expected quota 1000, got %d", cfg.Forest.Quota)
	}
	if cfg.Forest.TickInterval != 1 {
		t.Errorf("expected tick interval 1, got %g", cfg.Forest.TickInterval)
	}

	// Graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Terrain.RegionSize = 0
	cfg.World.ForestMinHeight = 2
	cfg.Forest.BlockSize = 0
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"region_size", "forest_min_height", "block size", "logging"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidateDisabledForest(t *testing.T) {
	cfg := Default()
	cfg.Forest.Enabled = false
	cfg.Forest.BlockSize = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled forest settings should be ignored: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
terrain:
  heightmap: "maps/island.png"
  region_size: 32
  regions_number: 4

world:
  scale: [0.5, 0.5, 2]
  forest_min_height: 0.1

forest:
  enabled: true
  tree_scale: 0.2
  quota: 250
  block_size: 0.5
  seed: 42

simulation:
  steps: 10
  time_step: 0.5

graphics:
  width: 1920
  height: 1080
  fullscreen: true

telemetry:
  output_dir: "runs/a"

logging:
  level: "debug"
  log_file: "forest.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.HeightMap != "maps/island.png" {
		t.Errorf("expected height map maps/island.png, got %s", cfg.Terrain.HeightMap)
	}
	if cfg.Terrain.RegionSize != 32 || cfg.Terrain.RegionsNumber != 4 {
		t.Errorf("unexpected region grid %d x %d", cfg.Terrain.RegionsNumber, cfg.Terrain.RegionSize)
	}
	// Untouched keys keep their defaults.
	if cfg.Terrain.GroundSize != 512 {
		t.Errorf("expected ground size 512, got %g", cfg.Terrain.GroundSize)
	}

	if cfg.World.Scale != [3]float32{0.5, 0.5, 2} {
		t.Errorf("unexpected world scale %v", cfg.World.Scale)
	}
	if cfg.World.ForestMinHeight != 0.1 {
		t.Errorf("expected forest min height 0.1, got %g", cfg.World.ForestMinHeight)
	}

	if cfg.Forest.Quota != 250 {
		t.Errorf("expected quota 250, got %d", cfg.Forest.Quota)
	}
	if cfg.Forest.BlockSize != 0.5 {
		t.Errorf("expected block size 0.5, got %g", cfg.Forest.BlockSize)
	}
	if cfg.Forest.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Forest.Seed)
	}
	if cfg.Forest.SeedFactor != 6 {
		t.Errorf("expected default seed factor 6, got %g", cfg.Forest.SeedFactor)
	}
	if cfg.Forest.TreeScale != 0.2 {
		t.Errorf("expected tree scale 0.2, got %g", cfg.Forest.TreeScale)
	}

	if cfg.Simulation.Steps != 10 || cfg.Simulation.TimeStep != 0.5 {
		t.Errorf("unexpected simulation %+v", cfg.Simulation)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("unexpected resolution %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}

	if cfg.Telemetry.OutputDir != "runs/a" {
		t.Errorf("expected output dir runs/a, got %s", cfg.Telemetry.OutputDir)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "forest.log" {
		t.Errorf("expected log file 'forest.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/forest.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// Only meaningful when the user has no config of their own.
	if _, err := os.Stat(filepath.Join(ConfigDir(), FileName)); err == nil {
		t.Skip("user config present")
	}

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowBounds {
					t.Error("expected show_bounds to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "heightmap flag",
			setup: func() { *flagHeightMap = "hills.tga" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.HeightMap != "hills.tga" {
					t.Errorf("expected height map hills.tga, got %s", cfg.Terrain.HeightMap)
				}
			},
			teardown: func() { *flagHeightMap = "" },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Forest.Seed != 7 {
					t.Errorf("expected forest seed 7, got %d", cfg.Forest.Seed)
				}
				if cfg.Terrain.Noise.Seed != 7 {
					t.Errorf("expected noise seed 7, got %d", cfg.Terrain.Noise.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "steps and output flags",
			setup: func() { *flagSteps = 0; *flagOutput = "out" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Simulation.Steps != 0 {
					t.Errorf("expected 0 steps, got %d", cfg.Simulation.Steps)
				}
				if cfg.Telemetry.OutputDir != "out" {
					t.Errorf("expected output dir out, got %s", cfg.Telemetry.OutputDir)
				}
			},
			teardown: func() { *flagSteps = -1; *flagOutput = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	if err := os.WriteFile(configPath, []byte("forest:\n  block_size: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected invalid config to be rejected")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Forest.Quota = 77
	cfg.World.Position = [3]float32{1, 2, 3}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Forest.Quota != 77 {
		t.Errorf("expected quota 77, got %d", loaded.Forest.Quota)
	}
	if loaded.World.Position != [3]float32{1, 2, 3} {
		t.Errorf("unexpected position %v", loaded.World.Position)
	}
}

func TestParsePoint(t *testing.T) {
	x, z, err := ParsePoint(" 1.5, -2 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if x != 1.5 || z != -2 {
		t.Errorf("expected (1.5, -2), got (%g, %g)", x, z)
	}

	for _, bad := range []string{"", "1", "1,2,3", "a,1"} {
		if _, _, err := ParsePoint(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestSaveToRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := Default()
	cfg.Simulation.TimeStep = 0
	if err := cfg.SaveTo(path); err == nil {
		t.Fatal("expected invalid config to be refused")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file to be written, stat err = %v", err)
	}
}
