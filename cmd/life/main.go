//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"life-canvas/internal/anim"
	"life-canvas/internal/app"
	"life-canvas/internal/config"
	"life-canvas/internal/core"
	"life-canvas/internal/perf"
	_ "life-canvas/internal/remote"
	"life-canvas/internal/render"
	"life-canvas/internal/sim"
	_ "life-canvas/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	grid, err := cfg.Grid()
	if err != nil {
		log.Fatalf("board: %v", err)
	}
	engine, err := core.NewEngine(cfg.Engine.Name, grid.Width, grid.Height, cfg.EngineOptions())
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	if err := engine.InitializeCells(); err != nil {
		log.Fatalf("engine: seed: %v", err)
	}

	surface := render.NewRaster(grid.CanvasSize())
	frames := anim.NewFrameQueue()
	monitor := perf.NewMonitor(perf.DefaultWindow, false)
	ctrl, err := sim.New(grid, sim.Options{Engine: engine, Surface: surface, Host: frames, Observer: monitor})
	if err != nil {
		log.Fatalf("simulation: %v", err)
	}

	game := app.New(ctrl, surface, frames, cfg.Run.FPS, cfg.Run.StepsPerFrame, monitor)
	defer game.Close()
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("life-canvas: " + cfg.Engine.Name)
	ebiten.SetTPS(max(cfg.Run.FPS, ebiten.DefaultTPS))
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
