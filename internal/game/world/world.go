// Package world places the terrain in world space and owns the forest that
// grows on it.
package world

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/eternal-forest/internal/engine/heightmap"
	"github.com/Faultbox/eternal-forest/internal/engine/picking"
	"github.com/Faultbox/eternal-forest/internal/engine/scene"
	"github.com/Faultbox/eternal-forest/internal/engine/terrain"
	"github.com/Faultbox/eternal-forest/internal/game/forest"
	"github.com/Faultbox/eternal-forest/internal/logger"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

// World is the coordinate facade over the terrain.
type World struct {
	cfg     Config
	graph   *scene.Graph
	root    *scene.Node
	terrain *terrain.Terrain
	forest  *forest.Forest
	log     *zap.Logger

	transform    math.Mat4 // terrain-local to world
	inverse      math.Mat4 // world to terrain-local
	forestBounds picking.AABB
}

// New builds the terrain from img under a new root node of graph and, when
// enabled, the forest over it.
func New(graph *scene.Graph, img *heightmap.Image, cfg Config) (*World, error) {
	if graph == nil || img == nil {
		return nil, fmt.Errorf("world: graph and height image are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root := graph.Root().CreateChild("world")
	root.SetScale(cfg.Scale)
	root.SetOrientation(cfg.Orientation())
	root.SetPosition(cfg.Position)

	w := &World{
		cfg:       cfg,
		graph:     graph,
		root:      root,
		log:       logger.Named("world"),
		transform: root.WorldMatrix(),
		inverse:   math.MakeInverseTransform(root.Position(), root.Scale(), root.Orientation()),
	}

	t, err := terrain.New("ground", graph, cfg.Terrain)
	if err != nil {
		root.Destroy()
		return nil, err
	}
	if err := t.LoadFromHeightMap(img, root); err != nil {
		root.Destroy()
		return nil, fmt.Errorf("world: %w", err)
	}
	w.terrain = t
	w.forestBounds = w.computeForestBounds()

	if cfg.ForestEnabled {
		spawner, err := forest.NewGraphSpawner(graph, cfg.TreeScale)
		if err != nil {
			root.Destroy()
			return nil, err
		}
		f, err := forest.New(w, spawner, w.forestBounds, cfg.Forest)
		if err != nil {
			root.Destroy()
			return nil, err
		}
		w.forest = f
	}

	w.log.Info("world created",
		zap.Stringer("forest_min", vec(w.forestBounds.Min)),
		zap.Stringer("forest_max", vec(w.forestBounds.Max)),
		zap.Bool("forest", w.forest != nil))
	return w, nil
}

// computeForestBounds takes the terrain box in local space, replaces its
// height range with the configured band and maps the result to world space.
func (w *World) computeForestBounds() picking.AABB {
	tb := w.terrain.Bounds()
	step := w.cfg.Terrain.HeightStep
	local := picking.AABB{
		Min: math.Vec3{X: tb.Min.X, Y: tb.Min.Y, Z: w.cfg.ForestMinHeight * step},
		Max: math.Vec3{X: tb.Max.X, Y: tb.Max.Y, Z: w.cfg.ForestMaxHeight * step},
	}
	return local.Transform(w.transform)
}

// ToLocal maps a world-space ray into terrain-local space. The origin goes
// through the full inverse transform, the direction through its linear part
// and is re-normalized.
func (w *World) ToLocal(ray picking.Ray) picking.Ray {
	return picking.Ray{
		Origin:    w.inverse.TransformAffine(ray.Origin),
		Direction: w.inverse.TransformDirVec3(ray.Direction).Normalize(),
	}
}

// GetIntersection casts a world-space ray at the terrain and returns the hit
// point in world space. The entity result is reserved and always nil.
func (w *World) GetIntersection(ray picking.Ray) (bool, math.Vec3, *scene.Entity) {
	hit, p := w.terrain.GetIntersectionLocalSpace(w.ToLocal(ray))
	if !hit {
		return false, math.Vec3{}, nil
	}
	return true, w.transform.TransformAffine(p), nil
}

// GetGroundHeightAt returns the world height of the terrain under (x, z),
// or +Inf when the vertical probe misses.
func (w *World) GetGroundHeightAt(x, z float32) float32 {
	probe := picking.Ray{
		Origin:    math.Vec3{X: x, Y: w.cfg.ProbeAltitude, Z: z},
		Direction: math.Vec3{Y: -1},
	}
	hit, p, _ := w.GetIntersection(probe)
	if !hit {
		return float32(gomath.Inf(1))
	}
	return p.Y
}

// Update advances the forest, if any, to time.
func (w *World) Update(time float64) {
	if w.forest != nil {
		w.forest.Update(time)
	}
}

// ForestBounds returns the world-space box the forest grows in.
func (w *World) ForestBounds() picking.AABB { return w.forestBounds }

// Terrain returns the terrain.
func (w *World) Terrain() *terrain.Terrain { return w.terrain }

// Forest returns the forest, nil when disabled.
func (w *World) Forest() *forest.Forest { return w.forest }

// Transform returns the terrain-local to world matrix.
func (w *World) Transform() math.Mat4 { return w.transform }

// Root returns the node carrying the root transform.
func (w *World) Root() *scene.Node { return w.root }

// Graph returns the scene graph the world was built in.
func (w *World) Graph() *scene.Graph { return w.graph }

// Config returns the world settings.
func (w *World) Config() Config { return w.cfg }

type vec math.Vec3

func (v vec) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
