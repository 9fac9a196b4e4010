//go:build ebiten

package ui

import (
	"image/color"

	"life-canvas/internal/perf"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the frame-rate panel on top of the board. F toggles it.
type Overlay struct {
	monitor *perf.Monitor
	show    bool
	bg      *ebiten.Image
}

// NewOverlay constructs an overlay reading from monitor.
func NewOverlay(monitor *perf.Monitor) *Overlay {
	o := &Overlay{monitor: monitor}
	o.bg = ebiten.NewImage(1, 1)
	o.bg.Fill(color.Black)
	return o
}

// Update toggles visibility.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || o.monitor == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(180, 76)
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleAlpha(0.7)
	screen.DrawImage(o.bg, op)
	text.Draw(screen, o.monitor.String(), basicfont.Face7x13, 10, 20, color.RGBA{R: 120, G: 255, B: 140, A: 255})
}
