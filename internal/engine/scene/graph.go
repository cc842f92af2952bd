package scene

import (
	"fmt"
)

// Graph owns the root node and the named meshes.
type Graph struct {
	root     *Node
	meshes   map[string]*Mesh
	nodes    int
	entities int
}

// NewGraph returns an empty graph with a root node at the origin.
func NewGraph() *Graph {
	g := &Graph{meshes: make(map[string]*Mesh)}
	g.root = newNode(g, nil, "root")
	g.nodes = 1
	return g
}

// Root returns the root node.
func (g *Graph) Root() *Node { return g.root }

// CreateMesh registers a mesh under a unique name.
func (g *Graph) CreateMesh(name string, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if _, ok := g.meshes[name]; ok {
		return nil, fmt.Errorf("mesh %q already exists", name)
	}
	m, err := NewMesh(name, vertices, indices)
	if err != nil {
		return nil, err
	}
	g.meshes[name] = m
	return m, nil
}

// Mesh looks up a mesh by name.
func (g *Graph) Mesh(name string) (*Mesh, bool) {
	m, ok := g.meshes[name]
	return m, ok
}

// CreateEntity returns a detached entity drawing mesh.
func (g *Graph) CreateEntity(mesh *Mesh) *Entity {
	if mesh == nil {
		panic("scene: CreateEntity with nil mesh")
	}
	g.entities++
	return &Entity{graph: g, mesh: mesh}
}

// NodeCount returns the number of live nodes, root included.
func (g *Graph) NodeCount() int { return g.nodes }

// EntityCount returns the number of entities not yet destroyed.
func (g *Graph) EntityCount() int { return g.entities }

// VisitEntities calls fn for every entity attached below the root.
func (g *Graph) VisitEntities(fn func(e *Entity)) {
	g.root.Walk(func(n *Node) bool {
		for _, e := range n.entities {
			fn(e)
		}
		return true
	})
}
