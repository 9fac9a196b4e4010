// Package bitgrid decodes packed one-bit-per-cell buffers and tracks whether a
// borrowed buffer is still valid.
package bitgrid

import "fmt"

// IsAlive reports whether bit index of buf is set. Bits are numbered LSB first
// within each byte. An index past the end of buf panics.
func IsAlive(index int, buf []byte) bool {
	mask := byte(1) << (index & 7)
	return buf[index>>3]&mask == mask
}

// Grid is a decoded view of a packed buffer with known dimensions.
type Grid struct {
	W, H int
	buf  []byte
}

// NewGrid wraps buf as a w*h board. The buffer must hold at least one bit per
// cell and the cell count must be byte aligned.
func NewGrid(w, h int, buf []byte) (Grid, error) {
	n := w * h
	if w <= 0 || h <= 0 || n%8 != 0 {
		return Grid{}, fmt.Errorf("bitgrid: %dx%d is not a byte aligned board", w, h)
	}
	if len(buf) < n/8 {
		return Grid{}, fmt.Errorf("bitgrid: buffer holds %d bytes, %dx%d needs %d", len(buf), w, h, n/8)
	}
	return Grid{W: w, H: h, buf: buf}, nil
}

// Len returns the number of cells.
func (g Grid) Len() int { return g.W * g.H }

// Alive reports whether the cell at index is alive. Indices outside the board
// are a programming error and panic.
func (g Grid) Alive(index int) bool {
	if uint(index) >= uint(g.W*g.H) {
		panic(fmt.Sprintf("bitgrid: cell index %d outside %dx%d board", index, g.W, g.H))
	}
	return IsAlive(index, g.buf)
}

// AliveAt reports whether the cell at (row, column) is alive.
func (g Grid) AliveAt(row, column int) bool {
	if uint(row) >= uint(g.H) || uint(column) >= uint(g.W) {
		panic(fmt.Sprintf("bitgrid: cell (%d,%d) outside %dx%d board", row, column, g.W, g.H))
	}
	return IsAlive(row*g.W+column, g.buf)
}

// Count returns the number of live cells.
func (g Grid) Count() int {
	n := 0
	for i := 0; i < g.Len(); i++ {
		if IsAlive(i, g.buf) {
			n++
		}
	}
	return n
}

// Tracker hands out views of a borrowed buffer and invalidates them when the
// owner of the buffer is mutated.
type Tracker struct {
	epoch uint64
}

// Invalidate marks every outstanding view as stale.
func (t *Tracker) Invalidate() { t.epoch++ }

// Borrow returns a view over buf valid until the next Invalidate.
func (t *Tracker) Borrow(g Grid) View {
	return View{grid: g, epoch: t.epoch, tracker: t}
}

// View is a Grid that knows when it has gone stale.
type View struct {
	grid    Grid
	epoch   uint64
	tracker *Tracker
}

// Valid reports whether the view may still be read.
func (v View) Valid() bool {
	return v.tracker != nil && v.tracker.epoch == v.epoch
}

// Grid returns the decoded grid, panicking if the view is stale.
func (v View) Grid() Grid {
	if !v.Valid() {
		panic("bitgrid: stale cell buffer view used after engine mutation")
	}
	return v.grid
}
