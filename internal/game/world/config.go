package world

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/eternal-forest/internal/engine/terrain"
	"github.com/Faultbox/eternal-forest/internal/game/forest"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// Config describes how the terrain is placed in the world and whether a
// forest grows on it.
type Config struct {
	Terrain terrain.Options

	// Root transform of the terrain: scale, then rotation, then position.
	Scale           math.Vec3
	RotationAxis    math.Vec3
	RotationDegrees float32
	Position        math.Vec3

	// ProbeAltitude is the world height ground probes are cast down from.
	ProbeAltitude float32

	// Normalized height band, as fractions of HeightStep, where trees grow.
	ForestMinHeight float32
	ForestMaxHeight float32

	ForestEnabled bool
	Forest        forest.Config
	TreeScale     float32
}

// DefaultConfig lays the height field flat with height pointing up.
func DefaultConfig() Config {
	return Config{
		Terrain:         terrain.DefaultOptions(),
		Scale:           math.Vec3{X: 0.27, Y: 0.27, Z: 1},
		RotationAxis:    math.UnitX,
		RotationDegrees: -90,
		ProbeAltitude:   10000,
		ForestMinHeight: 0.02,
		ForestMaxHeight: 0.75,
		ForestEnabled:   true,
		Forest:          forest.DefaultConfig(),
		TreeScale:       0.35,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	err := c.Terrain.Validate()
	if c.Scale.X == 0 || c.Scale.Y == 0 || c.Scale.Z == 0 {
		err = multierr.Append(err, fmt.Errorf("world: scale components must be non-zero, got %v", c.Scale))
	}
	if c.RotationAxis.Length() == 0 {
		err = multierr.Append(err, fmt.Errorf("world: rotation axis must be non-zero"))
	}
	if c.ForestMinHeight > c.ForestMaxHeight {
		err = multierr.Append(err, fmt.Errorf("world: forest height band [%g, %g] is inverted",
			c.ForestMinHeight, c.ForestMaxHeight))
	}
	if c.ForestEnabled {
		if c.TreeScale <= 0 {
			err = multierr.Append(err, fmt.Errorf("world: tree scale must be positive, got %g", c.TreeScale))
		}
		err = multierr.Append(err, c.Forest.Validate())
	}
	return err
}

// Orientation returns the root rotation.
func (c Config) Orientation() math.Quat {
	return math.QuatFromDegrees(c.RotationAxis, c.RotationDegrees)
}
