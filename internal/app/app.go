// Package app assembles a world from configuration and runs the headless
// forest simulation.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/eternal-forest/internal/config"
	"github.com/Faultbox/eternal-forest/internal/engine/heightmap"
	"github.com/Faultbox/eternal-forest/internal/engine/scene"
	"github.com/Faultbox/eternal-forest/internal/engine/terrain"
	"github.com/Faultbox/eternal-forest/internal/game/world"
	"github.com/Faultbox/eternal-forest/internal/logger"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// App holds everything built from one configuration.
type App struct {
	Config *config.Config
	Image  *heightmap.Image
	Graph  *scene.Graph
	World  *world.World
}

// New loads or generates the height map and builds the world in a fresh
// scene graph.
func New(cfg *config.Config) (*App, error) {
	img, err := HeightMap(cfg.Terrain)
	if err != nil {
		return nil, err
	}

	graph := scene.NewGraph()
	w, err := world.New(graph, img, WorldConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	lo, hi := img.MinMax()
	logger.Named("app").Info("world ready",
		zap.Int("width", img.Width()),
		zap.Int("height", img.Height()),
		zap.Float32("sample_min", lo),
		zap.Float32("sample_max", hi),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("entities", graph.EntityCount()),
		zap.Int("triangles", w.Terrain().TriangleCount()))

	return &App{Config: cfg, Image: img, Graph: graph, World: w}, nil
}

// HeightMap loads the configured image, or generates one from noise when no
// path is set.
func HeightMap(cfg config.TerrainConfig) (*heightmap.Image, error) {
	if cfg.HeightMap != "" {
		return heightmap.Load(cfg.HeightMap)
	}
	n := cfg.Noise
	return heightmap.Generate(heightmap.NoiseOptions{
		Width:       n.Width,
		Height:      n.Height,
		Seed:        n.Seed,
		Scale:       n.Scale,
		Octaves:     n.Octaves,
		Persistence: n.Persistence,
		Lacunarity:  n.Lacunarity,
	})
}

// WorldConfig maps the file settings onto the world settings.
func WorldConfig(cfg *config.Config) world.Config {
	w := cfg.World
	return world.Config{
		Terrain: terrain.Options{
			RegionSize:    cfg.Terrain.RegionSize,
			RegionsNumber: cfg.Terrain.RegionsNumber,
			GroundSize:    cfg.Terrain.GroundSize,
			HeightStep:    cfg.Terrain.HeightStep,
		},
		Scale:           math.V3(w.Scale),
		RotationAxis:    math.V3(w.RotationAxis),
		RotationDegrees: w.RotationDegrees,
		Position:        math.V3(w.Position),
		ProbeAltitude:   w.ProbeAltitude,
		ForestMinHeight: w.ForestMinHeight,
		ForestMaxHeight: w.ForestMaxHeight,
		ForestEnabled:   cfg.Forest.Enabled,
		Forest:          cfg.Forest.Config,
		TreeScale:       cfg.Forest.TreeScale,
	}
}
