// Package ebitenhost presents an arbor World in an Ebitengine window. It
// translates mouse input into World pointer calls, orbits and zooms the
// camera, applies the requested cursor, and draws the scene with a flat
// shaded triangle renderer.
package ebitenhost

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/config"
)

// Options configures a Game.
type Options struct {
	Title         string
	Width, Height int
	// DragDeadZone is the pointer travel in pixels before a press becomes an
	// orbit drag.
	DragDeadZone float64
	// OrbitSpeed is radians of orbit per pixel of drag.
	OrbitSpeed float64
	// ZoomStep is the distance factor per wheel notch.
	ZoomStep      float64
	ScreenshotDir string
	Debug         bool
	// Update advances the simulation each tick. Defaults to World.Update.
	Update func(dt float32)
	Logger *zap.Logger
}

// OptionsFromConfig maps the window, camera and interaction sections of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		DragDeadZone:  cfg.Interaction.DragDeadZone,
		OrbitSpeed:    cfg.Camera.OrbitSpeed,
		ZoomStep:      cfg.Camera.ZoomStep,
		ScreenshotDir: "screenshots",
	}
}

// Game implements ebiten.Game for a World.
type Game struct {
	world    *arbor.World
	opts     Options
	log      *zap.Logger
	renderer Renderer
	overlay  *overlay
	orbit    orbitDrag

	lastX, lastY  int
	width, height int
	cursor        arbor.CursorStyle
}

// NewGame creates a Game that drives w.
func NewGame(w *arbor.World, opts Options) (*Game, error) {
	if opts.Update == nil {
		opts.Update = w.Update
	}
	if opts.Logger == nil {
		opts.Logger = w.Logger()
	}
	if opts.ZoomStep <= 0 || opts.ZoomStep >= 1 {
		opts.ZoomStep = 0.9
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	ov, err := newOverlay()
	if err != nil {
		return nil, err
	}
	return &Game{
		world:   w,
		opts:    opts,
		log:     opts.Logger.Named("host"),
		overlay: ov,
		orbit:   orbitDrag{deadZone: opts.DragDeadZone, speed: opts.OrbitSpeed},
		lastX:   -1,
		lastY:   -1,
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g.log.Info("window open",
		zap.String("title", g.opts.Title),
		zap.Int("width", g.opts.Width),
		zap.Int("height", g.opts.Height))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if !g.world.Injecting() {
		g.handlePointer()
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.world.Camera().Zoom(math.Pow(g.opts.ZoomStep, wy))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.opts.Debug = !g.opts.Debug
	}

	g.opts.Update(float32(1.0 / float64(ebiten.TPS())))
	g.applyCursor()
	return nil
}

func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	if x != g.lastX || y != g.lastY {
		g.lastX, g.lastY = x, y
		g.world.PointerMove(fx, fy)
		if dAz, dPolar, ok := g.orbit.move(fx, fy); ok && !g.world.TransformControl().Dragging() {
			g.world.Camera().Orbit(dAz, dPolar)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.world.PointerDown(fx, fy)
		g.orbit.press(fx, fy)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.world.PointerUp(fx, fy)
		g.orbit.release()
	}
}

func (g *Game) applyCursor() {
	style := g.world.Cursor().Style()
	if style == g.cursor {
		return
	}
	g.cursor = style
	ebiten.SetCursorShape(cursorShape(style))
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world)
	g.overlay.drawLabels(screen, g.world)
	flushScreenshots(screen, g.opts.ScreenshotDir, g.world.TakeScreenshotRequests(), g.log)
	if g.opts.Debug {
		g.overlay.drawDebug(screen, g.world, g.renderer.Stats())
	}
}

// Layout implements ebiten.Game. A size change resizes the World viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.world.SetViewport(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func cursorShape(style arbor.CursorStyle) ebiten.CursorShapeType {
	if style == arbor.CursorPointer {
		return ebiten.CursorShapePointer
	}
	return ebiten.CursorShapeDefault
}

// orbitDrag turns a held primary button into camera orbit deltas once the
// pointer has travelled past the dead zone.
type orbitDrag struct {
	deadZone, speed float64

	held   bool
	active bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64
}

func (o *orbitDrag) press(x, y float64) {
	o.held = true
	o.active = false
	o.startX, o.startY = x, y
	o.lastX, o.lastY = x, y
}

func (o *orbitDrag) release() {
	o.held = false
	o.active = false
}

// move returns the azimuth and polar deltas for a pointer move. ok is false
// while no orbit drag is running.
func (o *orbitDrag) move(x, y float64) (dAzimuth, dPolar float64, ok bool) {
	if !o.held {
		return 0, 0, false
	}
	if !o.active {
		if math.Hypot(x-o.startX, y-o.startY) < o.deadZone {
			return 0, 0, false
		}
		o.active = true
	}
	dx, dy := x-o.lastX, y-o.lastY
	o.lastX, o.lastY = x, y
	return -dx * o.speed, -dy * o.speed, true
}
