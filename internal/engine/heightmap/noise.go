package heightmap

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
)

// NoiseOptions configures procedural height generation.
type NoiseOptions struct {
	Width       int
	Height      int
	Seed        int64
	Scale       float64 // feature size in pixels
	Octaves     int
	Persistence float64 // amplitude falloff per octave
	Lacunarity  float64 // frequency growth per octave
}

// DefaultNoiseOptions returns settings that give rolling hills on a
// 512x512 picture.
func DefaultNoiseOptions() NoiseOptions {
	return NoiseOptions{
		Width:       512,
		Height:      512,
		Seed:        1,
		Scale:       160,
		Octaves:     5,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

// Generate builds a height map from fractal simplex noise, stretched so the
// lowest sample is 0 and the highest is 1.
func Generate(opts NoiseOptions) (*Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("heightmap: invalid noise size %dx%d", opts.Width, opts.Height)
	}
	if opts.Scale <= 0 || opts.Octaves <= 0 {
		return nil, fmt.Errorf("heightmap: noise scale and octaves must be positive")
	}

	noise := opensimplex.New(opts.Seed)
	raw := make([]float64, opts.Width*opts.Height)
	lo, hi := raw[0], raw[0]

	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			amp, freq, sum := 1.0, 1.0/opts.Scale, 0.0
			for o := 0; o < opts.Octaves; o++ {
				sum += amp * noise.Eval2(float64(x)*freq, float64(y)*freq)
				amp *= opts.Persistence
				freq *= opts.Lacunarity
			}
			i := y*opts.Width + x
			raw[i] = sum
			if i == 0 || sum < lo {
				lo = sum
			}
			if i == 0 || sum > hi {
				hi = sum
			}
		}
	}

	samples := make([]float32, len(raw))
	if span := hi - lo; span > 0 {
		for i, v := range raw {
			samples[i] = float32((v - lo) / span)
		}
	}
	return New(opts.Width, opts.Height, samples)
}
