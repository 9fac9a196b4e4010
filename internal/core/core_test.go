package core

import (
	"errors"
	"testing"
	"time"
)

func TestGridConfigValidate(t *testing.T) {
	good := DefaultGridConfig()
	if err := good.Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}

	bad := []func(*GridConfig){
		func(c *GridConfig) { c.Width = 0 },
		func(c *GridConfig) { c.Height = -3 },
		func(c *GridConfig) { c.Width, c.Height = 3, 3 },
		func(c *GridConfig) { c.CellSize = 0 },
		func(c *GridConfig) { c.GridSize = -1 },
		func(c *GridConfig) { c.AliveColor = nil },
	}
	for i, mutate := range bad {
		cfg := DefaultGridConfig()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: got %v, want ErrInvalidConfig", i, err)
		}
	}
}

func TestCanvasSize(t *testing.T) {
	cfg := DefaultGridConfig()
	cfg.Width, cfg.Height = 64, 32
	w, h := cfg.CanvasSize()
	if w != 9*64+1 || h != 9*32+1 {
		t.Fatalf("canvas = %dx%d, want %dx%d", w, h, 9*64+1, 9*32+1)
	}
	if cfg.BufferLen() != 64*32/8 {
		t.Fatalf("buffer len = %d", cfg.BufferLen())
	}
}

func TestFixedStep(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	if !fs.ShouldStep() {
		t.Fatal("first call should step")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	now = now.Add(100 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("one period elapsed, should step")
	}
	now = now.Add(time.Second)
	if !fs.ShouldStep() || !fs.ShouldStep() || fs.ShouldStep() {
		t.Fatal("a stall should deliver at most one extra frame")
	}
	if fs.Period() != 100*time.Millisecond {
		t.Fatalf("period = %v", fs.Period())
	}
}

func TestNewEngineUnknown(t *testing.T) {
	if _, err := NewEngine("no-such-engine", 8, 8, nil); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}
