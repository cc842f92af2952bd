// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/eternal-forest/pkg/math"
)

// Sun is a directional light placed by two angles in degrees.
// Longitude turns around +Y starting at +Z; latitude is the elevation
// above the horizon.
type Sun struct {
	Longitude float32
	Latitude  float32
	Diffuse   [3]float32
	Ambient   [3]float32
}

// DefaultSun is a warm afternoon light.
func DefaultSun() Sun {
	return Sun{
		Longitude: 45,
		Latitude:  50,
		Diffuse:   [3]float32{1.0, 0.95, 0.85},
		Ambient:   [3]float32{0.35, 0.38, 0.45},
	}
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	return SunDirection(s.Longitude, s.Latitude)
}

// SunDirection converts longitude and latitude in degrees to a unit vector
// pointing towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := float64(longitude) * gomath.Pi / 180.0
	lat := float64(latitude) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(lat) * gomath.Sin(lon)),
		Y: float32(gomath.Sin(lat)),
		Z: float32(gomath.Cos(lat) * gomath.Cos(lon)),
	}
}
