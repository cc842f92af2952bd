// Package forest runs the vegetation life field: a double-buffered cellular
// automaton laid over the terrain where trees are born and survive with
// three or four living neighbours.
package forest

import (
	"fmt"
	gomath "math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/eternal-forest/internal/engine/picking"
	"github.com/Faultbox/eternal-forest/internal/engine/tick"
	"github.com/Faultbox/eternal-forest/internal/logger"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

const seedAttempts = 10

// Ground answers height queries in world space. A miss is +Inf.
type Ground interface {
	GetGroundHeightAt(x, z float32) float32
}

// Placeholder is the visual stand-in for one tree.
type Placeholder interface {
	Destroy()
}

// Spawner creates tree placeholders at world positions.
type Spawner interface {
	Spawn(pos math.Vec3) Placeholder
}

// Stats summarizes the current generation.
type Stats struct {
	Generation int
	Trees      int
	Empty      int
	Blocked    int
	Births     int // during the last step
	Deaths     int // during the last step
}

// Forest is the vegetation life field.
type Forest struct {
	cfg     Config
	ground  Ground
	spawner Spawner
	bounds  picking.AABB
	gate    *tick.Gate
	rng     *rand.Rand
	log     *zap.Logger

	width, depth int
	offset       math.Vec2 // world X/Z of the grid corner
	fields       [2]field
	cur          int

	initialized bool
	generation  int
	births      int
	deaths      int
}

// New creates a forest over bounds. The X and Z extents of bounds give the
// grid; its Y range is the band of ground heights where trees may grow.
func New(ground Ground, spawner Spawner, bounds picking.AABB, cfg Config) (*Forest, error) {
	if ground == nil || spawner == nil {
		return nil, fmt.Errorf("forest: ground and spawner are required")
	}
	if bounds.IsNull() {
		return nil, fmt.Errorf("forest: empty bounds")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("forest config: %w", err)
	}
	gate, err := tick.New(cfg.TickInterval)
	if err != nil {
		return nil, fmt.Errorf("forest tick: %w", err)
	}

	return &Forest{
		cfg:     cfg,
		ground:  ground,
		spawner: spawner,
		bounds:  bounds,
		gate:    gate,
		rng:     rand.New(rand.NewPCG(cfg.Seed, 0)),
		log:     logger.Named("forest"),
	}, nil
}

// Initialized reports whether InitField has run.
func (f *Forest) Initialized() bool { return f.initialized }

// Size returns the grid dimensions along X and Z.
func (f *Forest) Size() (width, depth int) { return f.width, f.depth }

// Bounds returns the world-space box the forest was created with.
func (f *Forest) Bounds() picking.AABB { return f.bounds }

// Config returns the forest settings.
func (f *Forest) Config() Config { return f.cfg }

// CellAt returns the current state of cell (x, z). It panics outside the grid.
func (f *Forest) CellAt(x, z int) Cell {
	if x < 0 || z < 0 || x >= f.width || z >= f.depth {
		panic(fmt.Sprintf("forest: cell (%d, %d) outside %dx%d field", x, z, f.width, f.depth))
	}
	return f.fields[f.cur][z*f.width+x]
}

// CellCenter returns the world position of the center of cell (x, z) at its
// cached ground height.
func (f *Forest) CellCenter(x, z int) math.Vec3 {
	return f.cellPosition(x, z, f.CellAt(x, z).Height)
}

// InitField sizes the grid, classifies every cell against the ground and
// plants up to startAmount trees. It runs once; later calls are ignored.
func (f *Forest) InitField(startAmount int) {
	if f.initialized {
		f.log.Warn("field already initialized, ignoring InitField")
		return
	}

	b := f.cfg.BlockSize
	extent := f.bounds.Size()
	f.width = int(extent.X / b)
	f.depth = int(extent.Z / b)
	f.offset = math.Vec2{
		X: f.bounds.Min.X + 0.5*float32(gomath.Mod(float64(extent.X), float64(b))),
		Y: f.bounds.Min.Z + 0.5*float32(gomath.Mod(float64(extent.Z), float64(b))),
	}

	cells := make(field, f.width*f.depth)
	for z := 0; z < f.depth; z++ {
		for x := 0; x < f.width; x++ {
			i := z*f.width + x
			if f.border(x, z) {
				cells[i].State = StateBlocked
				continue
			}
			p := f.cellPosition(x, z, 0)
			h := f.ground.GetGroundHeightAt(p.X, p.Z)
			cells[i].Height = h
			if h >= f.bounds.Min.Y && h <= f.bounds.Max.Y {
				cells[i].State = StateEmpty
			} else {
				cells[i].State = StateBlocked
			}
		}
	}
	f.fields[0] = cells
	f.fields[1] = make(field, len(cells))
	copy(f.fields[1], cells)
	f.cur = 0
	f.initialized = true

	planted := f.seed(min(startAmount, f.width*f.depth))

	f.log.Info("forest field initialized",
		zap.Int("width", f.width),
		zap.Int("depth", f.depth),
		zap.Int("empty", f.count(StateEmpty)),
		zap.Int("blocked", f.count(StateBlocked)),
		zap.Int("planted", planted))
}

func (f *Forest) border(x, z int) bool {
	return x == 0 || z == 0 || x == f.width-1 || z == f.depth-1
}

// seed makes amount planting attempts of up to ten random interior cells
// each and returns the number of trees planted.
func (f *Forest) seed(amount int) int {
	if f.width < 3 || f.depth < 3 {
		return 0
	}
	cells := f.fields[f.cur]
	planted := 0
	for range amount {
		for range seedAttempts {
			x := 1 + f.rng.IntN(f.width-2)
			z := 1 + f.rng.IntN(f.depth-2)
			c := &cells[z*f.width+x]
			if c.State != StateEmpty {
				continue
			}
			c.State = StateTree
			c.placeholder = f.spawner.Spawn(f.cellPosition(x, z, c.Height))
			planted++
			break
		}
	}
	return planted
}

func (f *Forest) cellPosition(x, z int, height float32) math.Vec3 {
	b := f.cfg.BlockSize
	return math.Vec3{
		X: f.offset.X + (float32(x)+0.5)*b,
		Y: height,
		Z: f.offset.Y + (float32(z)+0.5)*b,
	}
}

// UpdateField advances the field one generation. Trees with fewer than
// three or more than four living neighbours die; empty cells with three or
// four are born. It panics before InitField.
func (f *Forest) UpdateField() {
	if !f.initialized {
		panic("forest: UpdateField before InitField")
	}

	cur := f.fields[f.cur]
	next := f.fields[1-f.cur]
	births, deaths := 0, 0

	for z := 0; z < f.depth; z++ {
		for x := 0; x < f.width; x++ {
			i := z*f.width + x
			c := cur[i]
			next[i] = c

			if c.State == StateBlocked {
				continue
			}
			n := cur.liveNeighbours(x, z, f.width)

			switch c.State {
			case StateTree:
				if !survives(n) {
					c.placeholder.Destroy()
					cur[i].placeholder = nil
					next[i].State = StateEmpty
					next[i].placeholder = nil
					deaths++
				}
			case StateEmpty:
				if born(n) {
					next[i].State = StateTree
					next[i].placeholder = f.spawner.Spawn(f.cellPosition(x, z, c.Height))
					births++
				}
			}
		}
	}

	f.cur = 1 - f.cur
	f.generation++
	f.births, f.deaths = births, deaths

	f.log.Debug("forest generation",
		zap.Int("generation", f.generation),
		zap.Int("births", births),
		zap.Int("deaths", deaths))
}

// Update drives the field from the frame clock. The first call initializes
// the field; later calls step it whenever the tick interval has elapsed.
func (f *Forest) Update(time float64) {
	if !f.initialized {
		f.InitField(f.cfg.StartAmount())
		return
	}
	if f.gate.Tick(time) {
		f.UpdateField()
	}
}

// Stats returns counts for the current generation.
func (f *Forest) Stats() Stats {
	return Stats{
		Generation: f.generation,
		Trees:      f.count(StateTree),
		Empty:      f.count(StateEmpty),
		Blocked:    f.count(StateBlocked),
		Births:     f.births,
		Deaths:     f.deaths,
	}
}

// TreeHeights returns the ground height under every living tree.
func (f *Forest) TreeHeights() []float64 {
	var out []float64
	for _, c := range f.fields[f.cur] {
		if c.State == StateTree {
			out = append(out, float64(c.Height))
		}
	}
	return out
}

func (f *Forest) count(s State) int {
	n := 0
	for _, c := range f.fields[f.cur] {
		if c.State == s {
			n++
		}
	}
	return n
}
