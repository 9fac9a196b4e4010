package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

type segment struct {
	x0, y0, x1, y1 float32
}

// Raster is a Surface backed by an in-memory RGBA image. Strokes are
// rasterized with antialiasing; fills and clears snap to whole pixels.
type Raster struct {
	img  *image.RGBA
	ras  *vector.Rasterizer
	path []segment

	penX, penY float32
}

// NewRaster allocates a transparent w*h raster.
func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.SetSize(w, h)
	return r
}

// SetSize reallocates the image, discarding its contents.
func (r *Raster) SetSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.ras = vector.NewRasterizer(w, h)
	r.path = r.path[:0]
}

// Size returns the image size in pixels.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing image. It is overwritten by later drawing.
func (r *Raster) Image() *image.RGBA { return r.img }

// ClearRect makes the covered pixels transparent.
func (r *Raster) ClearRect(x, y, w, h float64) {
	fillRGBA(r.img, r.pixelRect(x, y, w, h), [4]byte{})
}

// FillRect paints the covered pixels with c, replacing what was there.
func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	fillRGBA(r.img, r.pixelRect(x, y, w, h), rgba8(c))
}

// BeginPath discards the current path.
func (r *Raster) BeginPath() { r.path = r.path[:0] }

// MoveTo starts a new subpath at (x, y).
func (r *Raster) MoveTo(x, y float64) { r.penX, r.penY = float32(x), float32(y) }

// LineTo adds a segment from the pen to (x, y).
func (r *Raster) LineTo(x, y float64) {
	r.path = append(r.path, segment{r.penX, r.penY, float32(x), float32(y)})
	r.penX, r.penY = float32(x), float32(y)
}

// Stroke outlines each path segment as a lineWidth wide quad and composites
// all of them over the image in a single rasterizer pass.
func (r *Raster) Stroke(lineWidth float64, c color.Color) {
	if lineWidth <= 0 || len(r.path) == 0 || r.img.Bounds().Empty() {
		return
	}
	w, h := r.Size()
	r.ras.Reset(w, h)
	half := float32(lineWidth / 2)
	for _, s := range r.path {
		dx, dy := s.x1-s.x0, s.y1-s.y0
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		r.ras.MoveTo(s.x0+nx, s.y0+ny)
		r.ras.LineTo(s.x1+nx, s.y1+ny)
		r.ras.LineTo(s.x1-nx, s.y1-ny)
		r.ras.LineTo(s.x0-nx, s.y0-ny)
		r.ras.ClosePath()
	}
	r.ras.DrawOp = draw.Over
	r.ras.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// WritePNG encodes the current image as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) pixelRect(x, y, w, h float64) image.Rectangle {
	rect := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	return rect.Intersect(r.img.Bounds())
}
