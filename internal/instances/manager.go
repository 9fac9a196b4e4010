// Package instances keeps several independent simulations side by side, each
// with its own engine, surface and controller.
package instances

import (
	"fmt"
	"log/slog"
	"sort"

	"life-canvas/internal/anim"
	"life-canvas/internal/core"
	"life-canvas/internal/render"
	"life-canvas/internal/sim"
)

// Instance is one named simulation.
type Instance struct {
	Name       string
	Index      int
	Controller *sim.Controller
	Surface    *render.Raster
	Engine     core.Engine
}

// Manager creates and tracks named instances. All instances share one frame
// host, so their animation frames interleave on the host's goroutine.
type Manager struct {
	host      anim.FrameRequester
	cfg       core.GridConfig
	engine    string
	opts      map[string]string
	log       *slog.Logger
	observe   func(name string) sim.FrameObserver
	instances map[string]*Instance
	next      int
}

// Config selects the board and engine used for new instances.
type Config struct {
	Grid       core.GridConfig
	Engine     string
	EngineOpts map[string]string
	Logger     *slog.Logger
	// Observe, if set, supplies a frame observer for each new instance.
	Observe func(name string) sim.FrameObserver
}

// DefaultGrid returns the board new instances get unless configured
// otherwise: 96x96 cells of 4px with 1px lines.
func DefaultGrid() core.GridConfig {
	g := core.DefaultGridConfig()
	g.Width, g.Height = 96, 96
	g.CellSize, g.GridSize = 4, 1
	return g
}

// NewManager returns an empty manager bound to host.
func NewManager(host anim.FrameRequester, cfg Config) *Manager {
	if cfg.Engine == "" {
		cfg.Engine = "life"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		host:      host,
		cfg:       cfg.Grid,
		engine:    cfg.Engine,
		opts:      cfg.EngineOpts,
		log:       logger,
		observe:   cfg.Observe,
		instances: map[string]*Instance{},
	}
}

// Add builds a new instance named simulation-instance-N, N counting up from
// zero and never reused.
func (m *Manager) Add() (*Instance, error) {
	name := fmt.Sprintf("simulation-instance-%d", m.next)
	engine, err := core.NewEngine(m.engine, m.cfg.Width, m.cfg.Height, m.opts)
	if err != nil {
		return nil, fmt.Errorf("instances: %s: %w", name, err)
	}
	if err := engine.InitializeCells(); err != nil {
		return nil, fmt.Errorf("instances: %s: seed: %w", name, err)
	}
	surface := render.NewRaster(m.cfg.CanvasSize())
	var observer sim.FrameObserver
	if m.observe != nil {
		observer = m.observe(name)
	}
	ctrl, err := sim.New(m.cfg, sim.Options{
		Engine:   engine,
		Surface:  surface,
		Host:     m.host,
		Logger:   m.log.With("instance", name),
		Observer: observer,
	})
	if err != nil {
		closeEngine(engine)
		return nil, fmt.Errorf("instances: %s: %w", name, err)
	}
	inst := &Instance{Name: name, Index: m.next, Controller: ctrl, Surface: surface, Engine: engine}
	m.instances[name] = inst
	m.next++
	m.log.Info("instance added", "instance", name)
	return inst, nil
}

// Get returns the named instance.
func (m *Manager) Get(name string) (*Instance, bool) {
	inst, ok := m.instances[name]
	return inst, ok
}

// Delete pauses and drops the named instance. It reports whether the name
// was known.
func (m *Manager) Delete(name string) bool {
	inst, ok := m.instances[name]
	if !ok {
		return false
	}
	inst.Controller.Close()
	closeEngine(inst.Engine)
	delete(m.instances, name)
	m.log.Info("instance deleted", "instance", name)
	return true
}

// Names lists instance names in creation order.
func (m *Manager) Names() []string {
	list := m.List()
	names := make([]string, len(list))
	for i, inst := range list {
		names[i] = inst.Name
	}
	return names
}

// List returns instances in creation order.
func (m *Manager) List() []*Instance {
	list := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		list = append(list, inst)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Index < list[j].Index })
	return list
}

// Len returns the number of live instances.
func (m *Manager) Len() int { return len(m.instances) }

// Close deletes every instance.
func (m *Manager) Close() {
	for _, name := range m.Names() {
		m.Delete(name)
	}
}

func closeEngine(e core.Engine) {
	if c, ok := e.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}
