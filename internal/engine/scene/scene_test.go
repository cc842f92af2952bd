package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/eternal-forest/pkg/math"
)

func quad() ([]Vertex, []uint32) {
	return []Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{2, 0, 0}},
		{Position: [3]float32{0, 3, 1}},
		{Position: [3]float32{2, 3, -1}},
	}, []uint32{1, 2, 0, 3, 2, 1}
}

func TestCreateMesh(t *testing.T) {
	g := NewGraph()
	v, idx := quad()

	m, err := g.CreateMesh("quad", v, idx)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, math.Vec3{X: 0, Y: 0, Z: -1}, m.Bounds.Min)
	assert.Equal(t, math.Vec3{X: 2, Y: 3, Z: 1}, m.Bounds.Max)

	got, ok := g.Mesh("quad")
	assert.True(t, ok)
	assert.Same(t, m, got)

	_, err = g.CreateMesh("quad", v, idx)
	assert.Error(t, err, "duplicate name")
}

func TestCreateMeshValidatesIndices(t *testing.T) {
	g := NewGraph()
	v, _ := quad()

	_, err := g.CreateMesh("short", v, []uint32{0, 1})
	assert.Error(t, err)
	_, err = g.CreateMesh("range", v, []uint32{0, 1, 4})
	assert.Error(t, err)
}

func TestWorldMatrixComposesParents(t *testing.T) {
	g := NewGraph()
	parent := g.Root().CreateChild("parent")
	parent.SetScale(math.Vec3{X: 2, Y: 2, Z: 2})
	parent.SetOrientation(math.QuatFromDegrees(math.UnitX, -90))
	parent.SetPosition(math.Vec3{X: 1, Y: 0, Z: 0})

	child := parent.CreateChild("child")
	child.SetPosition(math.Vec3{X: 0, Y: 0, Z: 1})

	// child origin: (0,0,1) -> scaled (0,0,2) -> rotated (0,2,0) -> moved (1,2,0)
	p := child.WorldMatrix().TransformAffine(math.Vec3{})
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, 0, p.Z, 1e-5)

	back := parent.InverseLocalTransform().TransformAffine(parent.LocalTransform().TransformAffine(math.Vec3{X: 3, Y: 4, Z: 5}))
	assert.InDelta(t, 3, back.X, 1e-4)
	assert.InDelta(t, 4, back.Y, 1e-4)
	assert.InDelta(t, 5, back.Z, 1e-4)
}

func TestAttachDetach(t *testing.T) {
	g := NewGraph()
	v, idx := quad()
	m, err := g.CreateMesh("quad", v, idx)
	require.NoError(t, err)

	n := g.Root().CreateChild("n")
	e := g.CreateEntity(m)
	assert.Nil(t, e.Node())
	assert.True(t, e.WorldBounds().IsNull())

	n.Attach(e)
	assert.Same(t, n, e.Node())
	assert.Len(t, n.Entities(), 1)
	assert.Panics(t, func() { g.Root().Attach(e) }, "double attach")

	n.Detach(e)
	assert.Nil(t, e.Node())
	assert.Empty(t, n.Entities())
	n.Detach(e) // no-op
}

func TestEntityDestroy(t *testing.T) {
	g := NewGraph()
	v, idx := quad()
	m, _ := g.CreateMesh("quad", v, idx)

	n := g.Root().CreateChild("n")
	e := g.CreateEntity(m)
	n.Attach(e)
	require.Equal(t, 1, g.EntityCount())

	e.Destroy()
	assert.True(t, e.Destroyed())
	assert.Empty(t, n.Entities())
	assert.Equal(t, 0, g.EntityCount())

	e.Destroy()
	assert.Equal(t, 0, g.EntityCount())
	assert.Panics(t, func() { n.Attach(e) })
}

func TestNodeDestroySubtree(t *testing.T) {
	g := NewGraph()
	v, idx := quad()
	m, _ := g.CreateMesh("quad", v, idx)

	a := g.Root().CreateChild("a")
	b := a.CreateChild("b")
	a.Attach(g.CreateEntity(m))
	b.Attach(g.CreateEntity(m))
	require.Equal(t, 3, g.NodeCount())
	require.Equal(t, 2, g.EntityCount())

	a.Destroy()
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.EntityCount())
	assert.Empty(t, g.Root().Children())
	assert.Panics(t, func() { a.CreateChild("c") })
	assert.Panics(t, func() { g.Root().Destroy() })
}

func TestVisitEntities(t *testing.T) {
	g := NewGraph()
	v, idx := quad()
	m, _ := g.CreateMesh("quad", v, idx)

	for _, name := range []string{"a", "b", "c"} {
		g.Root().CreateChild(name).Attach(g.CreateEntity(m))
	}
	g.CreateEntity(m) // detached, not visited

	count := 0
	g.VisitEntities(func(*Entity) { count++ })
	assert.Equal(t, 3, count)
}

func TestPyramidFacesOutward(t *testing.T) {
	vertices, indices := Pyramid(2, 3, [4]float32{0, 1, 0, 1})
	require.Len(t, indices, 18)

	center := math.Vec3{X: 0, Y: 1, Z: 0}
	for i := 0; i < len(indices); i += 3 {
		a := math.V3(vertices[indices[i]].Position)
		b := math.V3(vertices[indices[i+1]].Position)
		c := math.V3(vertices[indices[i+2]].Position)
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		assert.Greater(t, normal.Dot(centroid.Sub(center)), float32(0), "triangle %d faces inward", i/3)
	}
}
