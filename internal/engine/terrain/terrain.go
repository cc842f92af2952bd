package terrain

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/eternal-forest/internal/engine/heightmap"
	"github.com/Faultbox/eternal-forest/internal/engine/picking"
	"github.com/Faultbox/eternal-forest/internal/engine/scene"
	"github.com/Faultbox/eternal-forest/internal/logger"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// Terrain owns a height image and the region meshes built from it.
type Terrain struct {
	name string
	mgr  SceneManager
	opts Options
	log  *zap.Logger

	img     *heightmap.Image
	node    *scene.Node
	regions []*Region
	bounds  picking.AABB
}

// New creates an empty terrain. Call LoadFromHeightMap to build it.
func New(name string, mgr SceneManager, opts Options) (*Terrain, error) {
	if mgr == nil {
		return nil, fmt.Errorf("terrain %q: nil scene manager", name)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Terrain{
		name:   name,
		mgr:    mgr,
		opts:   opts,
		log:    logger.Named("terrain").With(zap.String("name", name)),
		bounds: picking.NullAABB(),
	}, nil
}

// LoadFromHeightMap tessellates img into regions attached to a new child of
// parent. A terrain is built once; a second call panics.
func (t *Terrain) LoadFromHeightMap(img *heightmap.Image, parent *scene.Node) error {
	if t.img != nil {
		panic(fmt.Sprintf("terrain %q: height map already loaded", t.name))
	}
	if img == nil || parent == nil {
		panic(fmt.Sprintf("terrain %q: LoadFromHeightMap needs an image and a parent node", t.name))
	}

	node := parent.CreateChild(t.name)
	n := t.opts.RegionsNumber
	regions := make([]*Region, 0, n*n)
	bounds := picking.NullAABB()

	for ry := 0; ry < n; ry++ {
		for rx := 0; rx < n; rx++ {
			vertices, indices, region := buildRegion(img, t.opts, rx, ry)

			mesh, err := t.mgr.CreateMesh(regionMeshName(t.name, region.ID), vertices, indices)
			if err != nil {
				node.Destroy()
				return fmt.Errorf("terrain %q region %d: %w", t.name, region.ID, err)
			}
			region.Mesh = mesh
			region.Bounds = mesh.Bounds
			region.Entity = t.mgr.CreateEntity(mesh)
			node.Attach(region.Entity)

			bounds = bounds.Merge(region.Bounds)
			regions = append(regions, region)
		}
	}

	t.img = img
	t.node = node
	t.regions = regions
	t.bounds = bounds

	t.log.Info("terrain built",
		zap.Int("image_width", img.Width()),
		zap.Int("image_height", img.Height()),
		zap.Int("regions", len(regions)),
		zap.Int("triangles", t.TriangleCount()))
	return nil
}

// Loaded reports whether LoadFromHeightMap has succeeded.
func (t *Terrain) Loaded() bool { return t.img != nil }

// GetHeightAt returns the raw sample at normalized image coordinates
// s, t in [0, 1]. It panics before the terrain is built or when the
// coordinates are out of range.
func (t *Terrain) GetHeightAt(s, u float32) float32 {
	if t.img == nil {
		panic(fmt.Sprintf("terrain %q: GetHeightAt before LoadFromHeightMap", t.name))
	}
	if s < 0 || s > 1 || u < 0 || u > 1 {
		panic(fmt.Sprintf("terrain %q: GetHeightAt(%g, %g) outside [0, 1]", t.name, s, u))
	}
	x := int(s * float32(t.img.Width()-1))
	y := int(u * float32(t.img.Height()-1))
	return t.img.At(x, y)
}

// GetIntersectionLocalSpace casts ray, given in terrain-local space, against
// the region meshes. Only front faces count. The nearest hit wins; on equal
// distances the first triangle found is kept.
func (t *Terrain) GetIntersectionLocalSpace(ray picking.Ray) (bool, math.Vec3) {
	if _, hit := ray.IntersectAABB(t.bounds); !hit {
		return false, math.Vec3{}
	}

	best := float32(gomath.Inf(1))
	found := false
	quadsPerRow := t.opts.RegionSize * 4

	for _, r := range t.regions {
		if _, hit := ray.IntersectAABB(r.Bounds); !hit {
			continue
		}
		v := r.Mesh.Vertices
		if len(v) != t.opts.VerticesPerRegion() {
			panic(fmt.Sprintf("terrain %q region %d: %d vertices, want %d",
				t.name, r.ID, len(v), t.opts.VerticesPerRegion()))
		}

		for row, rowBounds := range r.rows {
			if _, hit := ray.IntersectAABB(rowBounds); !hit {
				continue
			}
			start := row * quadsPerRow
			for q := start; q < start+quadsPerRow; q += 4 {
				v0 := math.V3(v[q].Position)
				v1 := math.V3(v[q+1].Position)
				v2 := math.V3(v[q+2].Position)
				v3 := math.V3(v[q+3].Position)

				if d, ok := ray.IntersectTriangle(v1, v2, v0); ok && d < best {
					best, found = d, true
				}
				if d, ok := ray.IntersectTriangle(v3, v2, v1); ok && d < best {
					best, found = d, true
				}
			}
		}
	}

	if !found {
		return false, math.Vec3{}
	}
	return true, ray.Point(best)
}

// Regions returns the regions in row-major order from the bottom-left.
func (t *Terrain) Regions() []*Region { return t.regions }

// Bounds returns the union of all region boxes in terrain-local space.
func (t *Terrain) Bounds() picking.AABB { return t.bounds }

// Node returns the node holding the region entities, nil before loading.
func (t *Terrain) Node() *scene.Node { return t.node }

// Options returns the grid settings.
func (t *Terrain) Options() Options { return t.opts }

// Image returns the height image, nil before loading.
func (t *Terrain) Image() *heightmap.Image { return t.img }

// Name returns the terrain name.
func (t *Terrain) Name() string { return t.name }

// TriangleCount returns the number of triangles over all regions.
func (t *Terrain) TriangleCount() int {
	n := 0
	for _, r := range t.regions {
		n += r.Mesh.TriangleCount()
	}
	return n
}
