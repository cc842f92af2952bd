// Package game implements the interactive viewer loop.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/eternal-forest/internal/app"
	"github.com/Faultbox/eternal-forest/internal/engine/camera"
	"github.com/Faultbox/eternal-forest/internal/engine/debug"
	"github.com/Faultbox/eternal-forest/internal/engine/input"
	"github.com/Faultbox/eternal-forest/internal/engine/lighting"
	"github.com/Faultbox/eternal-forest/internal/engine/picking"
	"github.com/Faultbox/eternal-forest/internal/engine/renderer"
	"github.com/Faultbox/eternal-forest/internal/engine/window"
	"github.com/Faultbox/eternal-forest/internal/game/forest"
	"github.com/Faultbox/eternal-forest/internal/game/world"
	"github.com/Faultbox/eternal-forest/internal/logger"
	"github.com/Faultbox/eternal-forest/pkg/math"
)

const title = "Eternal Forest"

var (
	regionColor = [4]float32{0.9, 0.8, 0.2, 1}
	forestColor = [4]float32{0.2, 0.9, 0.3, 1}
	pickColor   = [4]float32{1, 0.2, 0.2, 1}
)

// Game is the viewer: one world, a window and an orbit camera.
type Game struct {
	app      *app.App
	world    *world.World
	running  bool
	paused   bool
	simTime  float64
	log      *zap.Logger
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *debug.ScreenshotCapture
	cells    *debug.CellGridRenderer

	showBounds bool
	showCells  bool
	picked     *math.Vec3
}

// New opens the window and prepares rendering for a.
func New(a *app.App) (*Game, error) {
	cfg := a.Config.Graphics
	g := &Game{
		app:        a,
		world:      a.World,
		log:        logger.Named("game"),
		camera:     camera.NewOrbitCamera(),
		shots:      debug.NewScreenshotCapture(a.Config.Telemetry.OutputDir, "forest"),
		showBounds: cfg.ShowBounds,
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The GL context must exist before the renderer.
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: [4]float32{0.45, 0.6, 0.8, 1},
		Sun:        lighting.DefaultSun(),
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.resetCamera()

	g.log.Info("game initialized",
		zap.Int("width", width),
		zap.Int("height", height))
	return g, nil
}

// Run starts the main loop and returns when the window closes.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		g.update(dt)
		g.render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(g.status(frameCount))
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.renderer.Resize(event.Width, event.Height)

		case input.EventMouseMove:
			if g.input.IsButtonDown(input.ButtonRight) {
				g.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}

		case input.EventMouseWheel:
			g.camera.HandleZoom(event.Wheel)

		case input.EventMouseDown:
			if event.Button == input.ButtonLeft {
				g.pick(event.MouseX, event.MouseY)
			}

		case input.EventKeyDown:
			g.handleKey(event.Key)
		}
	}
}

func (g *Game) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		g.running = false
	case sdl.SCANCODE_SPACE:
		g.paused = !g.paused
		g.log.Info("simulation paused", zap.Bool("paused", g.paused))
	case sdl.SCANCODE_B:
		g.showBounds = !g.showBounds
	case sdl.SCANCODE_G:
		g.showCells = !g.showCells
	case sdl.SCANCODE_R:
		g.resetCamera()
	case sdl.SCANCODE_F12:
		g.screenshot()
	}
}

func (g *Game) update(dt float64) {
	keys := sdl.GetKeyboardState()
	var forward, right, up float32
	if keys[sdl.SCANCODE_W] != 0 {
		forward++
	}
	if keys[sdl.SCANCODE_S] != 0 {
		forward--
	}
	if keys[sdl.SCANCODE_D] != 0 {
		right++
	}
	if keys[sdl.SCANCODE_A] != 0 {
		right--
	}
	if keys[sdl.SCANCODE_E] != 0 {
		up++
	}
	if keys[sdl.SCANCODE_Q] != 0 {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		g.camera.HandleMovement(forward, right, up)
	}

	if !g.paused {
		g.simTime += dt
	}
	g.world.Update(g.simTime)
}

func (g *Game) render() {
	viewProj := g.camera.ViewProjection(g.renderer.Aspect())

	g.renderer.Begin()
	g.renderer.Render(g.app.Graph, viewProj)

	if g.showCells {
		if cells := g.cellRenderer(); cells != nil {
			g.renderer.DrawTriangles(cells.GenerateCellOverlay(cellColor(g.world.Forest())), viewProj)
		}
	}

	if g.showBounds {
		var boxes []picking.AABB
		for _, r := range g.world.Terrain().Regions() {
			boxes = append(boxes, r.Bounds.Transform(g.world.Transform()))
		}
		g.renderer.DrawLines(debug.GenerateBBoxesWireframe(boxes, 0, regionColor), viewProj)
		g.renderer.DrawLines(debug.GenerateBBoxWireframeVertices(g.world.ForestBounds(), 0, forestColor), viewProj)
	}

	if g.picked != nil {
		p := *g.picked
		const s = 0.3
		marker := picking.NewAABB(p.X-s, p.Y, p.Z-s, p.X+s, p.Y+2*s, p.Z+s)
		g.renderer.DrawLines(debug.GenerateBBoxWireframeVertices(marker, 0, pickColor), viewProj)
	}

	g.renderer.End()
}

// cellRenderer is created once the field exists.
func (g *Game) cellRenderer() *debug.CellGridRenderer {
	f := g.world.Forest()
	if f == nil || !f.Initialized() {
		return nil
	}
	if g.cells == nil {
		g.cells = debug.NewCellGridRenderer(f, f.Config().BlockSize, 0.02)
	}
	return g.cells
}

func (g *Game) pick(x, y int) {
	width, height := g.renderer.Size()
	inv := g.camera.ViewProjection(g.renderer.Aspect()).Inverse()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(width), float32(height), inv)

	hit, p, _ := g.world.GetIntersection(ray)
	if !hit {
		g.picked = nil
		g.log.Info("pick missed", zap.Int("x", x), zap.Int("y", y))
		return
	}
	g.picked = &p
	g.log.Info("picked ground",
		zap.Float32("x", p.X),
		zap.Float32("y", p.Y),
		zap.Float32("z", p.Z),
		zap.Float32("height", g.world.GetGroundHeightAt(p.X, p.Z)))
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	name, err := g.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", name))
}

func (g *Game) resetCamera() {
	box := g.world.Terrain().Bounds().Transform(g.world.Transform())
	g.camera.MaxDistance = max(g.camera.MaxDistance, box.Size().Length()*2)
	g.camera.FitToBounds(box)
}

func (g *Game) status(fps int) string {
	s := fmt.Sprintf("%s | %d fps", title, fps)
	if f := g.world.Forest(); f != nil && f.Initialized() {
		st := f.Stats()
		s += fmt.Sprintf(" | gen %d | trees %d", st.Generation, st.Trees)
	}
	if g.paused {
		s += " | paused"
	}
	return s
}

// cellColor shades trees green and blocked cells red. Empty cells are left
// out.
func cellColor(f *forest.Forest) debug.CellColorFunc {
	return func(x, z int) ([4]float32, bool) {
		switch f.CellAt(x, z).State {
		case forest.StateTree:
			return [4]float32{0.1, 0.7, 0.2, 0.6}, true
		case forest.StateBlocked:
			return [4]float32{0.7, 0.1, 0.1, 0.35}, true
		default:
			return [4]float32{}, false
		}
	}
}
