package render

import "image/color"

// Surface is the 2-D drawing contract the renderer paints through. It mirrors
// the path, stroke, fill and clear primitives of an immediate-mode canvas.
type Surface interface {
	// SetSize resizes the backing store, discarding its contents.
	SetSize(width, height int)
	Size() (width, height int)

	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, c color.Color)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Stroke paints every segment added since BeginPath in one pass.
	Stroke(lineWidth float64, c color.Color)
}
