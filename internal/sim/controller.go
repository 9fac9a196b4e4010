// Package sim ties an external Life engine to a drawing surface and a host
// frame clock, exposing play, pause, step, reset, clear and pointer toggling.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"life-canvas/internal/anim"
	"life-canvas/internal/bitgrid"
	"life-canvas/internal/core"
	"life-canvas/internal/geom"
	"life-canvas/internal/render"
)

var (
	// ErrNoEngine is returned when a controller is built without an engine.
	ErrNoEngine = errors.New("sim: no engine")
	// ErrNoSurface is returned when a controller is built without a surface.
	ErrNoSurface = render.ErrNoSurface
	// ErrNoHost is returned when a controller is built without a frame host.
	ErrNoHost = errors.New("sim: no frame host")
	// ErrInvalidSteps is returned by Run and Step for step counts below one.
	ErrInvalidSteps = anim.ErrInvalidSteps
)

// FrameObserver is notified after every rendered frame.
type FrameObserver interface {
	FrameRendered(at time.Time)
}

// Options carries the collaborators a Controller needs.
type Options struct {
	Engine  core.Engine
	Surface render.Surface
	Host    anim.FrameRequester

	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Observer, if set, sees every render.
	Observer FrameObserver
}

// Controller owns one simulation instance: its grid configuration, its
// engine, and the render and animation pipeline built on top of them.
type Controller struct {
	cfg      core.GridConfig
	engine   core.Engine
	mapper   geom.Mapper
	renderer *render.Renderer
	sched    *anim.Scheduler
	views    bitgrid.Tracker
	log      *slog.Logger
	observer FrameObserver
	now      func() time.Time
}

// New validates cfg, sizes the surface for the board and performs the initial
// full render. Nothing is drawn if any precondition fails.
func New(cfg core.GridConfig, opts Options) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Engine == nil {
		return nil, ErrNoEngine
	}
	if opts.Host == nil {
		return nil, ErrNoHost
	}
	renderer, err := render.NewRenderer(opts.Surface, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := bitgrid.NewGrid(cfg.Width, cfg.Height, opts.Engine.CellBufferView()); err != nil {
		return nil, fmt.Errorf("sim: engine buffer: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		cfg:      cfg,
		engine:   opts.Engine,
		mapper:   geom.NewMapper(cfg),
		renderer: renderer,
		log:      logger.With("width", cfg.Width, "height", cfg.Height),
		observer: opts.Observer,
		now:      time.Now,
	}
	c.sched = anim.NewScheduler(opts.Host, c.tick, c.renderAll, c.frameFailed)

	opts.Surface.SetSize(cfg.CanvasSize())
	c.renderAll()
	return c, nil
}

// Config returns the board configuration.
func (c *Controller) Config() core.GridConfig { return c.cfg }

// Mapper returns the coordinate mapper for the board.
func (c *Controller) Mapper() geom.Mapper { return c.mapper }

// Surface returns the surface the controller paints on.
func (c *Controller) Surface() render.Surface { return c.renderer.Surface() }

// Run starts the animation loop, advancing stepsPerFrame generations per
// frame. It does nothing if the loop is already running.
func (c *Controller) Run(stepsPerFrame int) error {
	if c.sched.Running() {
		return nil
	}
	if err := c.sched.Run(stepsPerFrame); err != nil {
		return err
	}
	c.log.Debug("simulation running", "steps_per_frame", stepsPerFrame)
	return nil
}

// Pause stops the animation loop. No scheduled frame fires after it returns.
func (c *Controller) Pause() {
	if !c.sched.Running() {
		return
	}
	c.sched.Pause()
	c.log.Debug("simulation paused")
}

// Close tears the controller down, cancelling any scheduled frame.
func (c *Controller) Close() { c.Pause() }

// Step advances stepsPerFrame generations and renders once. The running
// state is unchanged.
func (c *Controller) Step(stepsPerFrame int) error {
	return c.sched.Step(stepsPerFrame)
}

// IsRunning reports whether a frame is scheduled.
func (c *Controller) IsRunning() bool { return c.sched.Running() }

// Reset reseeds the engine's starting pattern and repaints.
func (c *Controller) Reset() error {
	return c.mutate("initialize cells", c.engine.InitializeCells)
}

// Clear kills every cell and repaints.
func (c *Controller) Clear() error {
	return c.mutate("clear cells", c.engine.ClearCells)
}

// HandlePointer toggles the cell under p and repaints. Positions outside the
// board clamp to the nearest edge cell.
func (c *Controller) HandlePointer(p geom.Pointer) error {
	cell := c.mapper.PointerToCell(p)
	return c.ToggleCell(cell.Row, cell.Column)
}

// ToggleCell flips the cell at (row, column) and repaints.
func (c *Controller) ToggleCell(row, column int) error {
	if row < 0 || row >= c.cfg.Height || column < 0 || column >= c.cfg.Width {
		return fmt.Errorf("sim: cell (%d,%d) outside %dx%d board", row, column, c.cfg.Width, c.cfg.Height)
	}
	index := c.mapper.Index(row, column)
	return c.mutate("toggle cell", func() error { return c.engine.ToggleCell(index) })
}

// Cells borrows a decoded view of the current generation. The view panics if
// read after the next engine mutation.
func (c *Controller) Cells() bitgrid.View {
	g, err := bitgrid.NewGrid(c.cfg.Width, c.cfg.Height, c.engine.CellBufferView())
	if err != nil {
		panic(fmt.Sprintf("sim: engine returned an unusable buffer: %v", err))
	}
	return c.views.Borrow(g)
}

// Alive reports whether the cell at (row, column) is alive right now.
func (c *Controller) Alive(row, column int) bool {
	return c.Cells().Grid().AliveAt(row, column)
}

// Population returns the number of live cells.
func (c *Controller) Population() int {
	return c.Cells().Grid().Count()
}

func (c *Controller) mutate(op string, fn func() error) error {
	err := fn()
	c.views.Invalidate()
	if err != nil {
		return fmt.Errorf("sim: %s: %w", op, err)
	}
	c.renderAll()
	return nil
}

func (c *Controller) tick() error {
	err := c.engine.Tick()
	c.views.Invalidate()
	return err
}

func (c *Controller) renderAll() {
	c.renderer.RenderAll(c.Cells().Grid())
	if c.observer != nil {
		c.observer.FrameRendered(c.now())
	}
}

func (c *Controller) frameFailed(err error) {
	c.log.Error("animation frame failed, pausing", "err", err)
}
