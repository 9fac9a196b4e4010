// Command lifectl runs simulations headless for a fixed number of frames and
// writes a PNG of each board plus per-instance frame timings.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"life-canvas/internal/config"
	"life-canvas/internal/host"
	"life-canvas/internal/instances"
	"life-canvas/internal/perf"
	_ "life-canvas/internal/remote"
	"life-canvas/internal/sim"
	_ "life-canvas/pkg/sims/life"

	"golang.org/x/sync/errgroup"
)

type artifact struct {
	path string
	data []byte
}

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	grid, err := cfg.Grid()
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if cfg.Run.Frames < 1 || cfg.Run.Instances < 1 {
		return errors.New("frames and instances must be at least 1")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := host.NewLoop(cfg.Run.FPS)
	// done is created on the loop goroutine once every instance is running,
	// so each instance sees the full frame count.
	var done <-chan struct{}

	monitors := map[string]*perf.Monitor{}
	mgr := instances.NewManager(loop.Frames(), instances.Config{
		Grid:       grid,
		Engine:     cfg.Engine.Name,
		EngineOpts: cfg.EngineOptions(),
		Observe: func(name string) sim.FrameObserver {
			m := perf.NewMonitor(perf.DefaultWindow, true)
			monitors[name] = m
			return m
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := loop.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	var artifacts []artifact
	g.Go(func() error {
		defer cancel()
		var startErr error
		if err := loop.Do(gctx, func() {
			for i := 0; i < cfg.Run.Instances; i++ {
				inst, err := mgr.Add()
				if err != nil {
					startErr = err
					return
				}
				if err := inst.Controller.Run(cfg.Run.StepsPerFrame); err != nil {
					startErr = err
					return
				}
			}
			done = loop.After(cfg.Run.Frames)
		}); err != nil {
			return err
		}
		if startErr != nil {
			return startErr
		}

		select {
		case <-done:
		case <-gctx.Done():
			return gctx.Err()
		}

		var collectErr error
		if err := loop.Do(gctx, func() {
			artifacts, collectErr = collect(mgr, monitors, cfg.Output.Dir)
			mgr.Close()
		}); err != nil {
			return err
		}
		return collectErr
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("interrupted before the last frame; nothing written")
			return nil
		}
		return err
	}
	return write(cfg.Output.Dir, artifacts)
}

// collect snapshots every instance. It runs on the loop goroutine.
func collect(mgr *instances.Manager, monitors map[string]*perf.Monitor, dir string) ([]artifact, error) {
	var out []artifact
	for _, inst := range mgr.List() {
		inst.Controller.Pause()
		var img bytes.Buffer
		if err := inst.Surface.WritePNG(&img); err != nil {
			return nil, fmt.Errorf("%s: png: %w", inst.Name, err)
		}
		out = append(out, artifact{path: filepath.Join(dir, inst.Name+".png"), data: img.Bytes()})

		m := monitors[inst.Name]
		var samples bytes.Buffer
		if err := m.WriteCSV(&samples); err != nil {
			return nil, fmt.Errorf("%s: %w", inst.Name, err)
		}
		out = append(out, artifact{path: filepath.Join(dir, inst.Name+"-perf.csv"), data: samples.Bytes()})

		slog.Info("instance finished",
			"instance", inst.Name,
			"population", inst.Controller.Population(),
			"perf", m.Stats(),
		)
	}
	return out, nil
}

func write(dir string, artifacts []artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	var g errgroup.Group
	for _, a := range artifacts {
		a := a
		g.Go(func() error {
			if err := os.WriteFile(a.path, a.data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", a.path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("artifacts written", "dir", dir, "files", len(artifacts))
	return nil
}
