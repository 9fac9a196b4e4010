package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"life-canvas/internal/core"
	"life-canvas/internal/render"
	"life-canvas/internal/sim"
	"life-canvas/pkg/sims/life"
)

func TestLoopRunsFramesAndCalls(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loop := NewLoop(500)
	ticks := make(chan int, 16)
	loop.AfterFrame(func(frame int) {
		select {
		case ticks <- frame:
		default:
		}
	})

	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	cfg := core.DefaultGridConfig()
	cfg.Width, cfg.Height = 8, 8
	engine := life.New(8, 8)
	engine.SetCells([][2]int{{2, 3}, {3, 3}, {4, 3}}, true)

	var ctrl *sim.Controller
	var err error
	if doErr := loop.Do(ctx, func() {
		ctrl, err = sim.New(cfg, sim.Options{Engine: engine, Surface: render.NewRaster(1, 1), Host: loop.Frames()})
		if err == nil {
			err = ctrl.Run(1)
		}
	}); doErr != nil {
		t.Fatal(doErr)
	}
	if err != nil {
		t.Fatal(err)
	}

	for seen := 0; seen < 3; {
		select {
		case <-ticks:
			seen++
		case <-ctx.Done():
			t.Fatal("loop never ticked")
		}
	}

	var pending int
	var running bool
	if err := loop.Do(ctx, func() {
		ctrl.Pause()
		pending = loop.Frames().Pending()
		running = ctrl.IsRunning()
	}); err != nil {
		t.Fatal(err)
	}
	if pending != 0 || running {
		t.Fatalf("after pause: pending=%d running=%v", pending, running)
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("run returned %v", err)
	}
}

func TestDoHonorsContext(t *testing.T) {
	loop := NewLoop(60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := loop.Do(ctx, func() {}); !errors.Is(err, context.Canceled) {
		t.Fatalf("do on a loop that is not running = %v", err)
	}
}

func TestAfterCountsFromCall(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loop := NewLoop(500)
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	// Let some frames pass before the measured work starts.
	var early <-chan struct{}
	if err := loop.Do(ctx, func() { early = loop.After(3) }); err != nil {
		t.Fatal(err)
	}
	select {
	case <-early:
	case <-ctx.Done():
		t.Fatal("loop never ticked")
	}

	var start int
	var done <-chan struct{}
	if err := loop.Do(ctx, func() {
		start = loop.Frame()
		done = loop.After(5)
	}); err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("waiter never fired")
	}
	var end int
	if err := loop.Do(ctx, func() { end = loop.Frame() }); err != nil {
		t.Fatal(err)
	}
	if end-start < 5 {
		t.Fatalf("waiter fired after %d frames, want at least 5", end-start)
	}

	cancel()
	<-errc
}

func TestAfterZeroIsClosed(t *testing.T) {
	loop := NewLoop(60)
	select {
	case <-loop.After(0):
	default:
		t.Fatal("After(0) should already be closed")
	}
}
