package debug

import (
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/eternal-forest/internal/engine/picking"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

var white = [4]float32{1, 1, 1, 1}

func TestBBoxWireframe(t *testing.T) {
	box := picking.NewAABB(0, 0, 0, 1, 2, 3)
	verts := GenerateBBoxWireframeVertices(box, 0, white)
	require.Len(t, verts, BBoxWireframeVertexCount)

	for _, v := range verts {
		assert.True(t, box.Contains(math.V3(v.Position)), "vertex %v outside box", v.Position)
		assert.Equal(t, white, v.Color)
	}

	// Every edge runs along exactly one axis.
	for i := 0; i < len(verts); i += 2 {
		a, b := verts[i].Position, verts[i+1].Position
		diff := 0
		for k := range 3 {
			if a[k] != b[k] {
				diff++
			}
		}
		assert.Equal(t, 1, diff, "edge %d", i/2)
	}
}

func TestBBoxWireframePadding(t *testing.T) {
	verts := GenerateBBoxWireframeVertices(picking.NewAABB(0, 0, 0, 1, 1, 1), 0.5, white)
	assert.Equal(t, [3]float32{-0.5, -0.5, -0.5}, verts[0].Position)
	assert.Equal(t, [3]float32{1.5, -0.5, -0.5}, verts[1].Position)
}

func TestBBoxWireframeNull(t *testing.T) {
	assert.Nil(t, GenerateBBoxWireframeVertices(picking.NullAABB(), 0, white))
	boxes := []picking.AABB{picking.NewAABB(0, 0, 0, 1, 1, 1), picking.NullAABB(), picking.NewAABB(2, 2, 2, 3, 3, 3)}
	assert.Len(t, GenerateBBoxesWireframe(boxes, 0, white), 2*BBoxWireframeVertexCount)
}

type flatGrid struct{ w, d int }

func (g flatGrid) Size() (int, int) { return g.w, g.d }

func (g flatGrid) CellCenter(x, z int) math.Vec3 {
	return math.Vec3{X: float32(x) + 0.5, Y: 1, Z: float32(z) + 0.5}
}

func TestCellOverlay(t *testing.T) {
	r := NewCellGridRenderer(flatGrid{3, 2}, 1, 0.1)

	verts := r.GenerateCellOverlay(func(x, z int) ([4]float32, bool) {
		return white, x == z
	})
	// Cells (0,0) and (1,1).
	require.Len(t, verts, 12)
	for _, v := range verts {
		assert.InDelta(t, 1.1, v.Position[1], 1e-6)
	}

	// Triangles face up.
	for i := 0; i < len(verts); i += 3 {
		a := math.V3(verts[i].Position)
		b := math.V3(verts[i+1].Position)
		c := math.V3(verts[i+2].Position)
		n := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, n.Y, float32(0))
	}
}

func TestCellGridLines(t *testing.T) {
	r := NewCellGridRenderer(flatGrid{3, 2}, 1, 0)
	verts := r.GenerateGridLines(0, white)
	// (3+1) lines along Z and (2+1) along X.
	require.Len(t, verts, 14)
	assert.Equal(t, [3]float32{0, 0, 0}, verts[0].Position)
	assert.Equal(t, [3]float32{0, 0, 2}, verts[1].Position)
	assert.Equal(t, [3]float32{3, 0, 2}, verts[13].Position)

	assert.Nil(t, NewCellGridRenderer(nil, 1, 0))
	assert.Nil(t, NewCellGridRenderer(flatGrid{0, 0}, 1, 0).GenerateGridLines(0, white))
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "shot")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// Two rows: bottom red, top blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Contains(t, name, "shot_2024-05-01_12-00-00_001.png")

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b)

	next, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.NotEqual(t, name, next)
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	_, err := NewScreenshotCapture(t.TempDir(), "shot").CaptureFromPixels([]byte{1, 2, 3}, 1, 1)
	assert.Error(t, err)
}
