//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the control panel to the right of the board.
type HUD struct {
	panel    *Panel
	controls Controls
	title    string

	img          *ebiten.Image
	pixel        *ebiten.Image
	panelOffsetX int
}

// NewHUD constructs a HUD driving controls, width pixels wide.
func NewHUD(controls Controls, width, steps int, title string) *HUD {
	h := &HUD{panel: NewPanel(width, steps), controls: controls, title: title}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

// Panel exposes the layout and steps selector.
func (h *HUD) Panel() *Panel { return h.panel }

// Trigger performs an action as if its button was clicked.
func (h *HUD) Trigger(a Action) {
	h.panel.Report(h.panel.Do(h.controls, a))
}

// Report shows the outcome of an operation started outside the panel, such
// as a click on the board.
func (h *HUD) Report(err error) { h.panel.Report(err) }

// Update handles clicks that land on the panel.
func (h *HUD) Update(panelOffsetX int) {
	h.panelOffsetX = panelOffsetX
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	h.Trigger(h.panel.HitTest(mx-h.panelOffsetX, my))
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	width := h.panel.Width()
	if width <= 0 || height <= 0 {
		return
	}
	if h.img == nil || h.img.Bounds().Dx() != width || h.img.Bounds().Dy() != height {
		h.img = ebiten.NewImage(width, height)
	}
	h.img.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.img, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	running := h.controls.IsRunning()
	for _, b := range h.panel.Buttons {
		h.drawButton(b.Rect, h.panel.Label(b.Action, running), h.panel.Enabled(b.Action, running))
	}
	var stepsRow image.Rectangle
	for _, b := range h.panel.Buttons {
		if b.Action == ActionSlower {
			stepsRow = b.Rect
		}
	}
	text.Draw(h.img, h.panel.StepsLabel(), face, panelPadding, stepsRow.Min.Y+labelBaseline-6, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	if msg := h.panel.Status(); msg != "" {
		text.Draw(h.img, msg, face, panelPadding, h.panel.Height(), color.RGBA{R: 255, G: 110, B: 90, A: 255})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.img, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.img.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.img, label, face, x, y, fg)
}
