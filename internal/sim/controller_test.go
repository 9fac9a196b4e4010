package sim

import (
	"errors"
	"slices"
	"testing"
	"time"

	"life-canvas/internal/anim"
	"life-canvas/internal/core"
	"life-canvas/internal/geom"
	"life-canvas/internal/render"
	"life-canvas/pkg/sims/life"
)

type harness struct {
	ctrl    *Controller
	engine  *life.Life
	frames  *anim.FrameQueue
	surface *render.Raster
}

func newHarness(t *testing.T, w, h int) *harness {
	t.Helper()
	cfg := core.DefaultGridConfig()
	cfg.Width, cfg.Height = w, h
	hs := &harness{engine: life.New(w, h), frames: anim.NewFrameQueue(), surface: render.NewRaster(1, 1)}
	ctrl, err := New(cfg, Options{Engine: hs.engine, Surface: hs.surface, Host: hs.frames})
	if err != nil {
		t.Fatal(err)
	}
	hs.ctrl = ctrl
	return hs
}

func (h *harness) snapshot() []byte {
	return append([]byte(nil), h.surface.Image().Pix...)
}

type countingObserver struct{ frames int }

func (o *countingObserver) FrameRendered(time.Time) { o.frames++ }

func TestNewBindsCanvasAndRenders(t *testing.T) {
	h := newHarness(t, 16, 8)
	w, ht := h.surface.Size()
	if w != 16*9+1 || ht != 8*9+1 {
		t.Fatalf("canvas = %dx%d", w, ht)
	}
	if h.surface.Image().RGBAAt(0, 4).A == 0 {
		t.Fatal("initial render should have drawn grid lines")
	}
}

func TestNewRejectsBadInputs(t *testing.T) {
	cfg := core.DefaultGridConfig()
	cfg.Width, cfg.Height = 8, 8
	engine := life.New(8, 8)
	frames := anim.NewFrameQueue()

	if _, err := New(cfg, Options{Engine: engine, Host: frames}); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("missing surface: %v", err)
	}
	if _, err := New(cfg, Options{Surface: render.NewRaster(1, 1), Host: frames}); !errors.Is(err, ErrNoEngine) {
		t.Fatalf("missing engine: %v", err)
	}
	if _, err := New(cfg, Options{Engine: engine, Surface: render.NewRaster(1, 1)}); !errors.Is(err, ErrNoHost) {
		t.Fatalf("missing host: %v", err)
	}

	odd := cfg
	odd.Width, odd.Height = 3, 3
	surface := render.NewRaster(1, 1)
	if _, err := New(odd, Options{Engine: life.New(3, 3), Surface: surface, Host: frames}); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("3x3 board: %v", err)
	}
	if w, h := surface.Size(); w != 1 || h != 1 {
		t.Fatal("failed construction must not touch the surface")
	}
}

func TestRunningPolarity(t *testing.T) {
	h := newHarness(t, 8, 8)
	if h.ctrl.IsRunning() {
		t.Fatal("new controller should be paused")
	}
	if err := h.ctrl.Run(1); err != nil {
		t.Fatal(err)
	}
	if !h.ctrl.IsRunning() {
		t.Fatal("IsRunning should be true after Run")
	}
	h.ctrl.Pause()
	if h.ctrl.IsRunning() {
		t.Fatal("IsRunning should be false after Pause")
	}
}

func TestRunPauseSameTick(t *testing.T) {
	cfg := core.DefaultGridConfig()
	cfg.Width, cfg.Height = 8, 8
	obs := &countingObserver{}
	frames := anim.NewFrameQueue()
	ctrl, err := New(cfg, Options{Engine: life.New(8, 8), Surface: render.NewRaster(1, 1), Host: frames, Observer: obs})
	if err != nil {
		t.Fatal(err)
	}
	initial := obs.frames

	if err := ctrl.Run(1); err != nil {
		t.Fatal(err)
	}
	ctrl.Pause()
	if obs.frames-initial != 1 {
		t.Fatalf("frames rendered by run+pause = %d, want 1", obs.frames-initial)
	}
	frames.Advance()
	if obs.frames-initial != 1 {
		t.Fatal("a frame rendered after pause returned")
	}
}

func TestRunTwiceKeepsOneFrame(t *testing.T) {
	h := newHarness(t, 8, 8)
	_ = h.ctrl.Run(1)
	_ = h.ctrl.Run(1)
	if h.frames.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", h.frames.Pending())
	}
	h.ctrl.Pause()
	h.ctrl.Pause()
	if h.ctrl.IsRunning() || h.frames.Pending() != 0 {
		t.Fatal("double pause should leave nothing scheduled")
	}
}

func TestBlinkerCanvasPeriodTwo(t *testing.T) {
	h := newHarness(t, 8, 8)
	h.engine.SetCells([][2]int{{2, 3}, {3, 3}, {4, 3}}, true)
	if err := h.ctrl.Step(1); err != nil {
		t.Fatal(err)
	}
	if err := h.ctrl.Step(1); err != nil {
		t.Fatal(err)
	}
	gen2 := h.snapshot()
	if !h.ctrl.Alive(3, 3) || h.ctrl.Population() != 3 {
		t.Fatal("blinker should be back after two steps")
	}

	if err := h.ctrl.Step(1); err != nil {
		t.Fatal(err)
	}
	gen3 := h.snapshot()
	if err := h.ctrl.Step(1); err != nil {
		t.Fatal(err)
	}
	if slices.Equal(gen2, gen3) {
		t.Fatal("odd generation should look different")
	}
	if !slices.Equal(gen2, h.snapshot()) {
		t.Fatal("canvas at generation 2 and 4 should be identical")
	}
}

func TestHandlePointerTogglesOneCell(t *testing.T) {
	h := newHarness(t, 8, 8)
	w, ht := h.surface.Size()
	p := geom.Pointer{
		X: 3*9 + 4, Y: 2*9 + 4,
		CanvasWidth: float64(w), CanvasHeight: float64(ht),
		DisplayWidth: float64(w), DisplayHeight: float64(ht),
	}
	if err := h.ctrl.HandlePointer(p); err != nil {
		t.Fatal(err)
	}
	g := h.ctrl.Cells().Grid()
	for i := 0; i < g.Len(); i++ {
		want := i == h.ctrl.Mapper().Index(2, 3)
		if g.Alive(i) != want {
			t.Fatalf("cell %d alive=%v, want %v", i, g.Alive(i), want)
		}
	}
}

func TestHandlePointerClampsOutside(t *testing.T) {
	h := newHarness(t, 8, 8)
	if err := h.ctrl.HandlePointer(geom.Pointer{X: -5, Y: -5}); err != nil {
		t.Fatal(err)
	}
	if err := h.ctrl.HandlePointer(geom.Pointer{X: 1e6, Y: 1e6}); err != nil {
		t.Fatal(err)
	}
	if !h.ctrl.Alive(0, 0) || !h.ctrl.Alive(7, 7) || h.ctrl.Population() != 2 {
		t.Fatal("out of bounds clicks should toggle the corner cells")
	}
}

func TestClearKillsEverything(t *testing.T) {
	h := newHarness(t, 16, 16)
	if err := h.ctrl.Reset(); err != nil {
		t.Fatal(err)
	}
	if h.ctrl.Population() == 0 {
		t.Fatal("reset should seed some live cells")
	}
	if err := h.ctrl.Clear(); err != nil {
		t.Fatal(err)
	}
	if h.ctrl.Population() != 0 {
		t.Fatalf("population after clear = %d", h.ctrl.Population())
	}
}

func TestViewStaleAfterStep(t *testing.T) {
	h := newHarness(t, 8, 8)
	view := h.ctrl.Cells()
	if err := h.ctrl.Step(1); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("reading a view across a tick should panic")
		}
	}()
	view.Grid()
}

type flakyEngine struct {
	*life.Life
	ticks  int
	failAt int
}

func (f *flakyEngine) Tick() error {
	f.ticks++
	if f.ticks == f.failAt {
		return errors.New("connection reset")
	}
	return f.Life.Tick()
}

func TestEngineFailurePausesLoop(t *testing.T) {
	cfg := core.DefaultGridConfig()
	cfg.Width, cfg.Height = 8, 8
	frames := anim.NewFrameQueue()
	engine := &flakyEngine{Life: life.New(8, 8), failAt: 3}
	ctrl, err := New(cfg, Options{Engine: engine, Surface: render.NewRaster(1, 1), Host: frames})
	if err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Run(1); err != nil {
		t.Fatal(err)
	}
	frames.Advance()
	frames.Advance()
	if ctrl.IsRunning() || frames.Pending() != 0 {
		t.Fatal("engine failure inside a frame should pause the loop")
	}
	if err := ctrl.Step(1); err != nil {
		t.Fatalf("step after recovery: %v", err)
	}
}

func TestStepRejectsZero(t *testing.T) {
	h := newHarness(t, 8, 8)
	if err := h.ctrl.Step(0); !errors.Is(err, ErrInvalidSteps) {
		t.Fatalf("got %v", err)
	}
	if err := h.ctrl.Run(-1); !errors.Is(err, ErrInvalidSteps) || h.ctrl.IsRunning() {
		t.Fatalf("run(-1) = %v", err)
	}
}
