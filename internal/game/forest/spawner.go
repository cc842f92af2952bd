package forest

import (
	"fmt"

	"github.com/Faultbox/eternal-forest/internal/engine/scene"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// TreeMeshName is the name of the shared tree mesh in the scene graph.
const TreeMeshName = "forest/tree"

// GraphSpawner places trees as pyramid entities under the graph root.
type GraphSpawner struct {
	graph *scene.Graph
	mesh  *scene.Mesh
	scale float32
}

// NewGraphSpawner registers the tree mesh on graph. scale sizes every tree.
func NewGraphSpawner(graph *scene.Graph, scale float32) (*GraphSpawner, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("forest: tree scale must be positive, got %g", scale)
	}
	mesh, ok := graph.Mesh(TreeMeshName)
	if !ok {
		vertices, indices := scene.Pyramid(1, 2.5, [4]float32{0.18, 0.55, 0.2, 1})
		var err error
		mesh, err = graph.CreateMesh(TreeMeshName, vertices, indices)
		if err != nil {
			return nil, fmt.Errorf("forest: tree mesh: %w", err)
		}
	}
	return &GraphSpawner{graph: graph, mesh: mesh, scale: scale}, nil
}

// Spawn creates a node at pos holding one tree entity.
func (s *GraphSpawner) Spawn(pos math.Vec3) Placeholder {
	node := s.graph.Root().CreateChild("tree")
	node.SetScale(math.Vec3{X: s.scale, Y: s.scale, Z: s.scale})
	node.SetPosition(pos)
	node.Attach(s.graph.CreateEntity(s.mesh))
	return treeNode{node}
}

type treeNode struct {
	node *scene.Node
}

// Destroy removes the tree node and its entity.
func (t treeNode) Destroy() {
	t.node.Destroy()
}
