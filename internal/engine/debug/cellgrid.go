package debug

import (
	"github.com/Faultbox/eternal-forest/internal/engine/scene"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// Grid is a square-celled field laid over the XZ plane.
type Grid interface {
	Size() (width, depth int)
	CellCenter(x, z int) math.Vec3
}

// CellColorFunc picks the overlay color of a cell. Cells reported as not ok
// are left out.
type CellColorFunc func(x, z int) (color [4]float32, ok bool)

// CellGridRenderer generates overlays for a cell grid.
type CellGridRenderer struct {
	grid  Grid
	block float32
	lift  float32 // raise above the ground to avoid z-fighting
}

// NewCellGridRenderer creates a renderer for cells of the given side length.
func NewCellGridRenderer(grid Grid, block, lift float32) *CellGridRenderer {
	if grid == nil {
		return nil
	}
	return &CellGridRenderer{grid: grid, block: block, lift: lift}
}

// GenerateCellOverlay generates a flat quad per colored cell as a triangle
// list, wound counter-clockwise seen from above.
func (r *CellGridRenderer) GenerateCellOverlay(color CellColorFunc) []scene.Vertex {
	width, depth := r.grid.Size()
	inset := r.block * 0.45

	var vertices []scene.Vertex
	for z := range depth {
		for x := range width {
			c, ok := color(x, z)
			if !ok {
				continue
			}
			center := r.grid.CellCenter(x, z)
			y := center.Y + r.lift
			x0, x1 := center.X-inset, center.X+inset
			z0, z1 := center.Z-inset, center.Z+inset

			vertices = append(vertices,
				scene.Vertex{Position: [3]float32{x0, y, z0}, Color: c},
				scene.Vertex{Position: [3]float32{x1, y, z1}, Color: c},
				scene.Vertex{Position: [3]float32{x1, y, z0}, Color: c},
				scene.Vertex{Position: [3]float32{x0, y, z0}, Color: c},
				scene.Vertex{Position: [3]float32{x0, y, z1}, Color: c},
				scene.Vertex{Position: [3]float32{x1, y, z1}, Color: c},
			)
		}
	}
	return vertices
}

// GenerateGridLines generates the cell borders at a fixed height as a line
// list.
func (r *CellGridRenderer) GenerateGridLines(height float32, color [4]float32) []scene.Vertex {
	width, depth := r.grid.Size()
	if width == 0 || depth == 0 {
		return nil
	}
	half := r.block / 2
	first := r.grid.CellCenter(0, 0)
	last := r.grid.CellCenter(width-1, depth-1)
	minX, minZ := first.X-half, first.Z-half
	maxX, maxZ := last.X+half, last.Z+half

	vertices := make([]scene.Vertex, 0, 2*(width+depth+2))
	for x := 0; x <= width; x++ {
		wx := minX + float32(x)*r.block
		vertices = append(vertices,
			scene.Vertex{Position: [3]float32{wx, height, minZ}, Color: color},
			scene.Vertex{Position: [3]float32{wx, height, maxZ}, Color: color},
		)
	}
	for z := 0; z <= depth; z++ {
		wz := minZ + float32(z)*r.block
		vertices = append(vertices,
			scene.Vertex{Position: [3]float32{minX, height, wz}, Color: color},
			scene.Vertex{Position: [3]float32{maxX, height, wz}, Color: color},
		)
	}
	return vertices
}
