//go:build ebiten

package app

import (
	"image/color"

	"life-canvas/internal/anim"
	"life-canvas/internal/core"
	"life-canvas/internal/geom"
	"life-canvas/internal/perf"
	"life-canvas/internal/render"
	"life-canvas/internal/sim"
	"life-canvas/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the control panel next to the board.
const HUDWidth = 200

var keyActions = map[ebiten.Key]ui.Action{
	ebiten.KeySpace: ui.ActionPlayPause,
	ebiten.KeyN:     ui.ActionStep,
	ebiten.KeyR:     ui.ActionReset,
	ebiten.KeyC:     ui.ActionClear,
	ebiten.KeyMinus: ui.ActionSlower,
	ebiten.KeyEqual: ui.ActionFaster,
}

// Game adapts a simulation controller to the ebiten.Game interface. Ebiten's
// update loop is the host: it pumps the frame queue and delivers clicks.
type Game struct {
	ctrl    *sim.Controller
	surface *render.Raster
	frames  *anim.FrameQueue
	clock   *core.FixedStep

	board   *ebiten.Image
	hud     *ui.HUD
	overlay *ui.Overlay

	boardW, boardH int
}

// New constructs a Game. frames must be the host the controller was built on.
func New(ctrl *sim.Controller, surface *render.Raster, frames *anim.FrameQueue, fps, steps int, monitor *perf.Monitor) *Game {
	w, h := surface.Size()
	return &Game{
		ctrl:    ctrl,
		surface: surface,
		frames:  frames,
		clock:   core.NewFixedStep(fps),
		board:   ebiten.NewImage(w, h),
		hud:     ui.NewHUD(ctrl, HUDWidth, steps, "Game of Life"),
		overlay: ui.NewOverlay(monitor),
		boardW:  w,
		boardH:  h,
	}
}

// Update handles input and fires due animation frames.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for k, a := range keyActions {
		if inpututil.IsKeyJustPressed(k) {
			g.hud.Trigger(a)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if x < g.boardW && y < g.boardH {
			// Layout keeps the logical screen at canvas size, so cursor
			// coordinates are already canvas pixels.
			w, h := float64(g.boardW), float64(g.boardH)
			err := g.ctrl.HandlePointer(geom.Pointer{
				X: float64(x), Y: float64(y),
				CanvasWidth: w, CanvasHeight: h,
				DisplayWidth: w, DisplayHeight: h,
			})
			g.hud.Report(err)
		}
	}
	g.hud.Update(g.boardW)
	g.overlay.Update()

	if g.clock.ShouldStep() {
		g.frames.Advance()
	}
	return nil
}

// Draw uploads the board raster and paints the HUD beside it.
func (g *Game) Draw(screen *ebiten.Image) {
	// Dead cells are cleared to transparent; show them on white.
	screen.Fill(color.White)
	g.board.WritePixels(g.surface.Image().Pix)
	screen.DrawImage(g.board, nil)
	_, h := g.Layout(0, 0)
	g.hud.Draw(screen, g.boardW, h)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.boardW + HUDWidth, max(g.boardH, g.hud.Panel().Height())
}

// Close pauses the simulation.
func (g *Game) Close() { g.ctrl.Close() }
