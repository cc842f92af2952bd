// Package scene is an in-memory scene graph: transform nodes, shared meshes
// and the entities that place a mesh under a node.
package scene

import (
	"fmt"

	"github.com/Faultbox/eternal-forest/internal/engine/picking"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// Vertex is the interleaved vertex layout shared by every mesh.
type Vertex struct {
	Position [3]float32
	Color    [4]float32
	TexCoord [2]float32
}

// Vertex layout in bytes.
const (
	VertexStride         = 36
	VertexPositionOffset = 0
	VertexColorOffset    = 12
	VertexTexCoordOffset = 28
)

// Mesh is an indexed triangle list. Meshes are immutable once created and
// may be shared by many entities.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   picking.AABB
}

// NewMesh validates the index list and computes the bounding box.
func NewMesh(name string, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh %q: index count %d is not a multiple of 3", name, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("mesh %q: index %d at %d out of range (%d vertices)", name, idx, i, len(vertices))
		}
	}

	bounds := picking.NullAABB()
	for _, v := range vertices {
		bounds = bounds.MergePoint(math.V3(v.Position))
	}

	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
	}, nil
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Entity is one placement of a mesh. It is visible while attached to a node.
type Entity struct {
	graph     *Graph
	mesh      *Mesh
	node      *Node
	destroyed bool
}

// Mesh returns the mesh drawn by the entity.
func (e *Entity) Mesh() *Mesh { return e.mesh }

// Node returns the node the entity is attached to, or nil.
func (e *Entity) Node() *Node { return e.node }

// Destroyed reports whether Destroy has been called.
func (e *Entity) Destroyed() bool { return e.destroyed }

// WorldBounds returns the mesh bounds in world space, or a null box when the
// entity is detached.
func (e *Entity) WorldBounds() picking.AABB {
	if e.node == nil {
		return picking.NullAABB()
	}
	return e.mesh.Bounds.Transform(e.node.WorldMatrix())
}

// Destroy detaches the entity and removes it from its graph. Calling it
// again has no effect.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	if e.node != nil {
		e.node.Detach(e)
	}
	e.destroyed = true
	e.graph.entities--
}
