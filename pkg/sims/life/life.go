package life

import (
	"fmt"
	"strconv"

	icore "life-canvas/internal/core"
	"life-canvas/pkg/core"
)

// Config holds parameters for the Life engine.
type Config struct {
	Width   int
	Height  int
	Seed    int64
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 64, Seed: 42, Density: 0.5}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

// Life implements Conway's Game of Life on a packed bit board with toroidal
// wrapping. Two buffers alternate on every tick, so the slice handed out by
// CellBufferView changes identity after Tick.
type Life struct {
	w, h    int
	density float64
	rng     *core.RNG
	cur     []byte
	nxt     []byte
}

// New returns a Life engine with the provided dimensions and an empty board.
func New(w, h int) *Life {
	return NewWithConfig(Config{Width: w, Height: h, Seed: DefaultConfig().Seed, Density: DefaultConfig().Density})
}

// NewWithConfig returns a Life engine configured from the provided options.
func NewWithConfig(cfg Config) *Life {
	n := (cfg.Width*cfg.Height + 7) / 8
	return &Life{
		w:       cfg.Width,
		h:       cfg.Height,
		density: cfg.Density,
		rng:     core.NewRNG(cfg.Seed),
		cur:     make([]byte, n),
		nxt:     make([]byte, n),
	}
}

// Size returns the board dimensions.
func (l *Life) Size() (int, int) { return l.w, l.h }

// CellBufferView exposes the current generation's packed bits.
func (l *Life) CellBufferView() []byte { return l.cur }

// InitializeCells reseeds the board. Successive calls continue the same
// random stream, so each reset yields a new pattern.
func (l *Life) InitializeCells() error {
	l.rng.FillBits(l.cur, l.w*l.h, l.density)
	return nil
}

// ClearCells kills every cell.
func (l *Life) ClearCells() error {
	clear(l.cur)
	return nil
}

// ToggleCell flips one cell.
func (l *Life) ToggleCell(index int) error {
	if index < 0 || index >= l.w*l.h {
		return fmt.Errorf("life: cell index %d outside %dx%d board", index, l.w, l.h)
	}
	l.cur[index>>3] ^= 1 << (index & 7)
	return nil
}

// SetCells forces the given (row, column) cells to alive or dead.
func (l *Life) SetCells(cells [][2]int, alive bool) {
	for _, rc := range cells {
		i := rc[0]*l.w + rc[1]
		if alive {
			l.cur[i>>3] |= 1 << (i & 7)
		} else {
			l.cur[i>>3] &^= 1 << (i & 7)
		}
	}
}

// Alive reports whether the cell at (row, column) is alive.
func (l *Life) Alive(row, column int) bool {
	i := row*l.w + column
	return l.cur[i>>3]&(1<<(i&7)) != 0
}

// Tick advances the board by one generation.
func (l *Life) Tick() error {
	w, h := l.w, l.h
	clear(l.nxt)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := (x + dx + w) % w
					ny := (y + dy + h) % h
					ni := ny*w + nx
					neighbors += int(l.cur[ni>>3]>>(ni&7)) & 1
				}
			}
			idx := y*w + x
			alive := l.cur[idx>>3]&(1<<(idx&7)) != 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				l.nxt[idx>>3] |= 1 << (idx & 7)
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
	return nil
}

func init() {
	icore.RegisterEngine("life", func(width, height int, opts map[string]string) (icore.Engine, error) {
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("life: invalid size %dx%d", width, height)
		}
		c := FromMap(opts)
		c.Width, c.Height = width, height
		return NewWithConfig(c), nil
	})
}
