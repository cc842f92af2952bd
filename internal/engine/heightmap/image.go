// Package heightmap holds the immutable scalar grid that backs terrain
// elevation, with loaders for image files and a procedural generator.
package heightmap

import (
	"fmt"
	"image"
	"image/color"
)

// Image is an immutable grid of normalized height samples in [0, 1].
// Row 0 is the top row of the source picture.
type Image struct {
	width   int
	height  int
	samples []float32
}

// New builds an Image from row-major samples. Values are clamped to [0, 1].
func New(width, height int, samples []float32) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("heightmap: invalid size %dx%d", width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("heightmap: got %d samples for %dx%d", len(samples), width, height)
	}
	data := make([]float32, len(samples))
	for i, s := range samples {
		data[i] = clamp01(s)
	}
	return &Image{width: width, height: height, samples: data}, nil
}

// Uniform builds an Image where every sample is value.
func Uniform(width, height int, value float32) (*Image, error) {
	samples := make([]float32, width*height)
	for i := range samples {
		samples[i] = value
	}
	return New(width, height, samples)
}

// FromImage converts a decoded picture to heights using its red channel.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("heightmap: empty image")
	}
	samples := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			samples[y*w+x] = float32(r) / 0xffff
		}
	}
	return &Image{width: w, height: h, samples: samples}, nil
}

// Width returns the number of columns.
func (m *Image) Width() int { return m.width }

// Height returns the number of rows.
func (m *Image) Height() int { return m.height }

// At returns the sample at column x, row y. It panics when the pixel is
// outside the image.
func (m *Image) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		panic(fmt.Sprintf("heightmap: pixel (%d, %d) outside %dx%d image", x, y, m.width, m.height))
	}
	return m.samples[y*m.width+x]
}

// Gray renders the samples as an 8-bit grayscale picture.
func (m *Image) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(m.samples[y*m.width+x]*255 + 0.5)})
		}
	}
	return img
}

// MinMax returns the smallest and largest sample.
func (m *Image) MinMax() (lo, hi float32) {
	lo, hi = m.samples[0], m.samples[0]
	for _, s := range m.samples[1:] {
		lo = min(lo, s)
		hi = max(hi, s)
	}
	return lo, hi
}

func clamp01(v float32) float32 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
