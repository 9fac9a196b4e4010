package core

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidConfig is returned when a GridConfig cannot describe a board.
var ErrInvalidConfig = errors.New("invalid grid config")

// GridConfig fixes the board dimensions and pixel geometry of one simulation.
type GridConfig struct {
	Width    int
	Height   int
	CellSize float64
	GridSize float64

	GridColor  color.Color
	AliveColor color.Color
}

// DefaultGridConfig returns a 64x64 board with 8px cells and 1px grid lines.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Width:      64,
		Height:     64,
		CellSize:   8,
		GridSize:   1,
		GridColor:  color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff},
		AliveColor: color.RGBA{A: 0xff},
	}
}

// Validate reports whether the configuration can back a packed cell buffer.
func (c GridConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case (c.Width*c.Height)%8 != 0:
		return fmt.Errorf("%w: %dx%d cells is not a multiple of 8", ErrInvalidConfig, c.Width, c.Height)
	case !(c.CellSize > 0) || math.IsInf(c.CellSize, 0):
		return fmt.Errorf("%w: cell size %v must be positive", ErrInvalidConfig, c.CellSize)
	case !(c.GridSize >= 0) || math.IsInf(c.GridSize, 0):
		return fmt.Errorf("%w: grid size %v must not be negative", ErrInvalidConfig, c.GridSize)
	case c.GridColor == nil || c.AliveColor == nil:
		return fmt.Errorf("%w: colors must be set", ErrInvalidConfig)
	}
	return nil
}

// Cells returns the number of cells on the board.
func (c GridConfig) Cells() int { return c.Width * c.Height }

// BufferLen returns the number of bytes needed to hold one bit per cell.
func (c GridConfig) BufferLen() int { return (c.Cells() + 7) / 8 }

// Pitch is the distance in pixels between the origins of adjacent cells.
func (c GridConfig) Pitch() float64 { return c.CellSize + c.GridSize }

// CanvasSize returns the pixel size of a canvas that fits the board with a
// grid line on every edge.
func (c GridConfig) CanvasSize() (int, int) {
	w := c.Pitch()*float64(c.Width) + c.GridSize
	h := c.Pitch()*float64(c.Height) + c.GridSize
	return int(math.Ceil(w)), int(math.Ceil(h))
}
