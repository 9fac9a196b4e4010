package render

import (
	"errors"

	"life-canvas/internal/bitgrid"
	"life-canvas/internal/core"
	"life-canvas/internal/geom"
)

// ErrNoSurface is returned when a renderer is built without a drawing surface.
var ErrNoSurface = errors.New("render: no drawing surface")

// Renderer paints a board's grid lines and cells onto a Surface.
type Renderer struct {
	surface Surface
	mapper  geom.Mapper
	cfg     core.GridConfig
}

// NewRenderer binds a renderer to surface for the given board.
func NewRenderer(surface Surface, cfg core.GridConfig) (*Renderer, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	return &Renderer{surface: surface, mapper: geom.NewMapper(cfg), cfg: cfg}, nil
}

// Surface returns the surface the renderer paints on.
func (r *Renderer) Surface() Surface { return r.surface }

// RenderGrid strokes width+1 vertical and height+1 horizontal lines as one path.
func (r *Renderer) RenderGrid() {
	s := r.surface
	w, h := r.mapper.Extent()
	s.BeginPath()
	for i := 0; i <= r.cfg.Width; i++ {
		x := r.mapper.LineCoordinate(i)
		s.MoveTo(x, 0)
		s.LineTo(x, h)
	}
	for i := 0; i <= r.cfg.Height; i++ {
		y := r.mapper.LineCoordinate(i)
		s.MoveTo(0, y)
		s.LineTo(w, y)
	}
	s.Stroke(r.cfg.GridSize, r.cfg.GridColor)
}

// RenderCells fills live cells and clears dead ones so the grid beneath stays
// visible.
func (r *Renderer) RenderCells(g bitgrid.Grid) {
	s := r.surface
	for row := 0; row < r.cfg.Height; row++ {
		for col := 0; col < r.cfg.Width; col++ {
			rect := r.mapper.CellRect(row, col)
			if g.Alive(r.mapper.Index(row, col)) {
				s.FillRect(rect.X, rect.Y, rect.Size, rect.Size, r.cfg.AliveColor)
				continue
			}
			s.ClearRect(rect.X, rect.Y, rect.Size, rect.Size)
		}
	}
}

// RenderAll clears the whole surface, then draws grid and cells.
func (r *Renderer) RenderAll(g bitgrid.Grid) {
	w, h := r.surface.Size()
	r.surface.ClearRect(0, 0, float64(w), float64(h))
	r.RenderGrid()
	r.RenderCells(g)
}
