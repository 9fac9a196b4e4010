// Package geom maps between grid cells, linear cell indices and canvas pixels.
package geom

import (
	"math"

	"life-canvas/internal/core"
)

// Cell addresses one board cell.
type Cell struct {
	Row    int
	Column int
}

// Rect is the pixel square covered by one cell.
type Rect struct {
	X, Y float64
	Size float64
}

// Mapper performs coordinate arithmetic for one board configuration.
type Mapper struct {
	width, height int
	cell, grid    float64
}

// NewMapper builds a Mapper for cfg.
func NewMapper(cfg core.GridConfig) Mapper {
	return Mapper{width: cfg.Width, height: cfg.Height, cell: cfg.CellSize, grid: cfg.GridSize}
}

// Index returns the row-major linear index of (row, column).
func (m Mapper) Index(row, column int) int { return row*m.width + column }

// Decompose inverts Index.
func (m Mapper) Decompose(index int) Cell {
	return Cell{Row: index / m.width, Column: index % m.width}
}

// CellRect returns the pixel square of (row, column), inside the grid lines.
func (m Mapper) CellRect(row, column int) Rect {
	pitch := m.cell + m.grid
	return Rect{
		X:    float64(column)*pitch + m.grid,
		Y:    float64(row)*pitch + m.grid,
		Size: m.cell,
	}
}

// LineCoordinate returns the center of the axisIndex-th grid line, measured
// along either axis.
func (m Mapper) LineCoordinate(axisIndex int) float64 {
	return m.grid/2 + float64(axisIndex)*(m.cell+m.grid)
}

// Extent returns the canvas extent covered by the board and its lines.
func (m Mapper) Extent() (float64, float64) {
	pitch := m.cell + m.grid
	return pitch*float64(m.width) + m.grid, pitch*float64(m.height) + m.grid
}

// Pointer describes a pointer event in display coordinates along with the
// geometry of the element it landed on.
type Pointer struct {
	X, Y float64

	// CanvasWidth and CanvasHeight are the backing store size in device pixels.
	CanvasWidth, CanvasHeight float64
	// DisplayWidth and DisplayHeight are the size the canvas is shown at.
	DisplayWidth, DisplayHeight float64
}

// PointerToCell resolves p to the nearest in-bounds cell. Positions outside
// the board, including negative ones, clamp to the edge rows and columns.
func (m Mapper) PointerToCell(p Pointer) Cell {
	scaleX, scaleY := 1.0, 1.0
	if p.DisplayWidth > 0 {
		scaleX = p.CanvasWidth / p.DisplayWidth
	}
	if p.DisplayHeight > 0 {
		scaleY = p.CanvasHeight / p.DisplayHeight
	}
	pitch := m.cell + m.grid
	col := math.Floor(p.X * scaleX / pitch)
	row := math.Floor(p.Y * scaleY / pitch)
	return Cell{Row: clamp(row, m.height-1), Column: clamp(col, m.width-1)}
}

func clamp(v float64, max int) int {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > float64(max):
		return max
	}
	return int(v)
}
