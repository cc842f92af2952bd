// Package terrain tessellates a height image into square regions and answers
// height and ray queries against the resulting meshes.
//
// Terrain-local space has the ground plane on X/Y and height along +Z.
package terrain

import (
	"fmt"
	"image"

	"github.com/Faultbox/eternal-forest/internal/engine/picking"
	"github.com/Faultbox/eternal-forest/internal/engine/scene"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// Options controls the size and resolution of the terrain grid.
type Options struct {
	RegionSize    int     // cells per region side
	RegionsNumber int     // regions per terrain side
	GroundSize    float32 // world units per terrain side
	HeightStep    float32 // world height of a sample of 1.0
}

// DefaultOptions returns a 10x10 grid of 64-cell regions over 512 units.
func DefaultOptions() Options {
	return Options{
		RegionSize:    64,
		RegionsNumber: 10,
		GroundSize:    512,
		HeightStep:    8,
	}
}

// Validate checks that every size is positive.
func (o Options) Validate() error {
	switch {
	case o.RegionSize <= 0:
		return fmt.Errorf("terrain: region size must be positive, got %d", o.RegionSize)
	case o.RegionsNumber <= 0:
		return fmt.Errorf("terrain: regions number must be positive, got %d", o.RegionsNumber)
	case o.GroundSize <= 0:
		return fmt.Errorf("terrain: ground size must be positive, got %g", o.GroundSize)
	case o.HeightStep <= 0:
		return fmt.Errorf("terrain: height step must be positive, got %g", o.HeightStep)
	}
	return nil
}

// VertexStep is the distance between neighbouring vertices on the plane.
func (o Options) VertexStep() float32 {
	return o.GroundSize / float32(o.RegionsNumber*o.RegionSize)
}

// VerticesPerRegion is the vertex count of every region mesh.
func (o Options) VerticesPerRegion() int {
	return o.RegionSize * o.RegionSize * 4
}

// SceneManager creates the meshes and entities that make up the terrain.
type SceneManager interface {
	CreateMesh(name string, vertices []scene.Vertex, indices []uint32) (*scene.Mesh, error)
	CreateEntity(mesh *scene.Mesh) *scene.Entity
}

// Region is one tessellated tile of the terrain.
type Region struct {
	ID        int
	Offset    math.Vec2       // local position of the region's first vertex
	Step      math.Vec3       // X/Y vertex spacing and height scale
	TexOffset math.Vec2       // texture coordinate of Source.Min
	Source    image.Rectangle // height image pixels sampled by the region
	Mesh      *scene.Mesh
	Entity    *scene.Entity
	Bounds    picking.AABB

	// rows[i] bounds the quads of cell row i.
	rows []picking.AABB
}
