package scene

import (
	"fmt"
	"slices"

	"github.com/Faultbox/eternal-forest/pkg/math"
)

// Node is a transform in the scene graph. Its local transform applies scale,
// then orientation, then position, relative to its parent.
type Node struct {
	name     string
	graph    *Graph
	parent   *Node
	children []*Node
	entities []*Entity

	position    math.Vec3
	scale       math.Vec3
	orientation math.Quat
	destroyed   bool
}

func newNode(g *Graph, parent *Node, name string) *Node {
	return &Node{
		name:        name,
		graph:       g,
		parent:      parent,
		scale:       math.Vec3{X: 1, Y: 1, Z: 1},
		orientation: math.QuatIdentity(),
	}
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Entities returns the attached entities. The slice must not be modified.
func (n *Node) Entities() []*Entity { return n.entities }

// CreateChild adds a child node with identity transform.
func (n *Node) CreateChild(name string) *Node {
	if n.destroyed {
		panic(fmt.Sprintf("scene: CreateChild on destroyed node %q", n.name))
	}
	child := newNode(n.graph, n, name)
	n.children = append(n.children, child)
	n.graph.nodes++
	return child
}

// SetPosition sets the translation relative to the parent.
func (n *Node) SetPosition(p math.Vec3) { n.position = p }

// SetScale sets the scale relative to the parent.
func (n *Node) SetScale(s math.Vec3) { n.scale = s }

// SetOrientation sets the rotation relative to the parent.
func (n *Node) SetOrientation(q math.Quat) { n.orientation = q.Normalize() }

// Position returns the translation relative to the parent.
func (n *Node) Position() math.Vec3 { return n.position }

// Scale returns the scale relative to the parent.
func (n *Node) Scale() math.Vec3 { return n.scale }

// Orientation returns the rotation relative to the parent.
func (n *Node) Orientation() math.Quat { return n.orientation }

// LocalTransform returns the node-to-parent matrix.
func (n *Node) LocalTransform() math.Mat4 {
	return math.MakeTransform(n.position, n.scale, n.orientation)
}

// InverseLocalTransform returns the parent-to-node matrix.
func (n *Node) InverseLocalTransform() math.Mat4 {
	return math.MakeInverseTransform(n.position, n.scale, n.orientation)
}

// WorldMatrix returns the node-to-world matrix.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalTransform()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalTransform().Mul(m)
	}
	return m
}

// Attach places e under this node. An entity can be attached to one node
// at a time.
func (n *Node) Attach(e *Entity) {
	switch {
	case e.destroyed:
		panic("scene: attaching a destroyed entity")
	case n.destroyed:
		panic(fmt.Sprintf("scene: attaching to destroyed node %q", n.name))
	case e.node != nil:
		panic(fmt.Sprintf("scene: entity already attached to node %q", e.node.name))
	}
	e.node = n
	n.entities = append(n.entities, e)
}

// Detach removes e from this node. Detaching an entity that is not attached
// here does nothing.
func (n *Node) Detach(e *Entity) {
	i := slices.Index(n.entities, e)
	if i < 0 {
		return
	}
	n.entities = slices.Delete(n.entities, i, i+1)
	e.node = nil
}

// Destroy removes the node and its subtree from the graph and destroys every
// entity attached in that subtree. The root cannot be destroyed.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	if n.parent == nil {
		panic("scene: the root node cannot be destroyed")
	}
	if i := slices.Index(n.parent.children, n); i >= 0 {
		n.parent.children = slices.Delete(n.parent.children, i, i+1)
	}
	n.destroySubtree()
}

func (n *Node) destroySubtree() {
	for _, c := range n.children {
		c.destroySubtree()
	}
	for len(n.entities) > 0 {
		n.entities[len(n.entities)-1].Destroy()
	}
	n.children = nil
	n.destroyed = true
	n.graph.nodes--
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
