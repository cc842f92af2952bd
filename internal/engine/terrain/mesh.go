package terrain

import (
	"fmt"
	"image"

	"github.com/Faultbox/eternal-forest/internal/engine/heightmap"
	"github.com/Faultbox/eternal-forest/internal/engine/picking"
	"github.com/Faultbox/eternal-forest/internal/engine/scene"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// sourceRect returns the pixels of img that region (rx, ry) samples.
// Regions count from the bottom of the picture so image rows flip into +Y.
// Each rectangle overlaps its neighbours by one pixel and is clamped so
// pictures smaller than the region grid still give every region one pixel.
func sourceRect(w, h, regions, rx, ry int) image.Rectangle {
	rw := (w + regions - 1) / regions
	rh := (h + regions - 1) / regions

	left := min(rx*rw, w-1)
	top := min(ry*rh, h-1)

	x0 := left
	x1 := min(left+rw+1, w)
	y1 := h - top
	y0 := h - min(top+rh+1, h)

	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y0 >= y1 {
		y0 = y1 - 1
	}
	return image.Rect(x0, y0, x1, y1)
}

// sampleIndex maps vertex i of n onto a source span of size pixels.
func sampleIndex(i, n, size int) int {
	return int(float32(i) / float32(n) * float32(size-1))
}

func texCoord(pixel, size int) float32 {
	if size <= 1 {
		return 0
	}
	return float32(pixel) / float32(size-1)
}

// buildRegion tessellates region (rx, ry). Every cell gets its own four
// vertices in the order (x,y), (x+1,y), (x,y+1), (x+1,y+1) and two triangles
// (1,2,0) and (3,2,1) facing +Z.
func buildRegion(img *heightmap.Image, opts Options, rx, ry int) ([]scene.Vertex, []uint32, *Region) {
	rs := opts.RegionSize
	step := opts.VertexStep()
	half := opts.GroundSize / 2
	w, h := img.Width(), img.Height()

	src := sourceRect(w, h, opts.RegionsNumber, rx, ry)
	region := &Region{
		ID: ry*opts.RegionsNumber + rx,
		Offset: math.Vec2{
			X: -half + float32(rx*rs)*step,
			Y: -half + float32(ry*rs)*step,
		},
		Step:      math.Vec3{X: step, Y: step, Z: opts.HeightStep},
		TexOffset: math.Vec2{X: texCoord(src.Min.X, w), Y: texCoord(src.Min.Y, h)},
		Source:    src,
	}

	// Corner samples are shared by up to four cells.
	corner := make([]scene.Vertex, (rs+1)*(rs+1))
	for y := 0; y <= rs; y++ {
		py := src.Min.Y + src.Dy() - 1 - sampleIndex(y, rs, src.Dy())
		for x := 0; x <= rs; x++ {
			px := src.Min.X + sampleIndex(x, rs, src.Dx())
			v := img.At(px, py)
			corner[y*(rs+1)+x] = scene.Vertex{
				Position: [3]float32{
					float32(x)*step + region.Offset.X,
					float32(y)*step + region.Offset.Y,
					v * opts.HeightStep,
				},
				Color:    [4]float32{v, v, v, 1},
				TexCoord: [2]float32{texCoord(px, w), texCoord(py, h)},
			}
		}
	}

	vertices := make([]scene.Vertex, 0, opts.VerticesPerRegion())
	indices := make([]uint32, 0, rs*rs*6)
	region.rows = make([]picking.AABB, rs)

	for y := 0; y < rs; y++ {
		row := picking.NullAABB()
		for x := 0; x < rs; x++ {
			base := uint32(len(vertices))
			quad := [4]scene.Vertex{
				corner[y*(rs+1)+x],
				corner[y*(rs+1)+x+1],
				corner[(y+1)*(rs+1)+x],
				corner[(y+1)*(rs+1)+x+1],
			}
			for _, q := range quad {
				row = row.MergePoint(math.V3(q.Position))
			}
			vertices = append(vertices, quad[:]...)
			indices = append(indices,
				base+1, base+2, base,
				base+3, base+2, base+1,
			)
		}
		region.rows[y] = row
	}

	return vertices, indices, region
}

func regionMeshName(terrain string, id int) string {
	return fmt.Sprintf("%s/region-%d", terrain, id)
}
