package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name    string
		lon     float32
		lat     float32
		x, y, z float32
	}{
		{"zenith", 0, 90, 0, 1, 0},
		{"horizon south", 0, 0, 0, 0, 1},
		{"horizon east", 90, 0, 1, 0, 0},
		{"behind", 180, 0, 0, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := SunDirection(tt.lon, tt.lat)
			assert.InDelta(t, tt.x, d.X, 1e-6)
			assert.InDelta(t, tt.y, d.Y, 1e-6)
			assert.InDelta(t, tt.z, d.Z, 1e-6)
		})
	}
}

func TestDefaultSunIsAboveHorizon(t *testing.T) {
	d := DefaultSun().Direction()
	assert.InDelta(t, 1, d.Length(), 1e-6)
	assert.Greater(t, d.Y, float32(0))
}
