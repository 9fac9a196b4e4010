// Package config loads application settings from embedded defaults, an
// optional YAML file and command-line flags, in that order of precedence.
package config

import (
	_ "embed"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"life-canvas/internal/core"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every setting shared by the binaries.
type Config struct {
	Board  BoardConfig  `yaml:"board"`
	Run    RunConfig    `yaml:"run"`
	Engine EngineConfig `yaml:"engine"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`

	// File is the YAML file overlaid on the defaults, if any.
	File string `yaml:"-"`
}

// BoardConfig describes the board and its pixel geometry.
type BoardConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	CellSize   float64 `yaml:"cell_size"`
	GridSize   float64 `yaml:"grid_size"`
	GridColor  string  `yaml:"grid_color"`
	AliveColor string  `yaml:"alive_color"`
}

// RunConfig controls pacing and how much work a run does.
type RunConfig struct {
	StepsPerFrame int `yaml:"steps_per_frame"`
	FPS           int `yaml:"fps"`
	Frames        int `yaml:"frames"`
	Instances     int `yaml:"instances"`
}

// EngineConfig selects and parameterizes the automaton engine.
type EngineConfig struct {
	Name    string  `yaml:"name"`
	Seed    int64   `yaml:"seed"`
	Density float64 `yaml:"density"`
	URL     string  `yaml:"url"`
}

// OutputConfig controls where artifacts and logs go.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	LogLevel string `yaml:"log_level"`
}

// ServerConfig controls the engine server.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns the embedded defaults.
func Default() *Config {
	c := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return c
}

// Load overlays the YAML file at path onto the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.File = path
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Board.Width, "width", c.Board.Width, "board width in cells")
	fs.IntVar(&c.Board.Height, "height", c.Board.Height, "board height in cells")
	fs.Float64Var(&c.Board.CellSize, "cell-size", c.Board.CellSize, "cell edge in pixels")
	fs.Float64Var(&c.Board.GridSize, "grid-size", c.Board.GridSize, "grid line width in pixels")
	fs.StringVar(&c.Board.GridColor, "grid-color", c.Board.GridColor, "grid line color (#RRGGBB)")
	fs.StringVar(&c.Board.AliveColor, "alive-color", c.Board.AliveColor, "live cell color (#RRGGBB)")
	fs.IntVar(&c.Run.StepsPerFrame, "steps", c.Run.StepsPerFrame, "generations per frame")
	fs.IntVar(&c.Run.FPS, "fps", c.Run.FPS, "frames per second")
	fs.IntVar(&c.Run.Frames, "frames", c.Run.Frames, "frames to run in headless mode")
	fs.IntVar(&c.Run.Instances, "instances", c.Run.Instances, "number of simulation instances")
	fs.StringVar(&c.Engine.Name, "engine", c.Engine.Name, "engine to use")
	fs.Int64Var(&c.Engine.Seed, "seed", c.Engine.Seed, "seed for the starting pattern")
	fs.Float64Var(&c.Engine.Density, "density", c.Engine.Density, "chance a cell starts alive")
	fs.StringVar(&c.Engine.URL, "engine-url", c.Engine.URL, "websocket URL of a remote engine server")
	fs.StringVar(&c.Output.Dir, "out", c.Output.Dir, "output directory")
	fs.StringVar(&c.Output.LogLevel, "log-level", c.Output.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.Server.Listen, "listen", c.Server.Listen, "engine server listen address")
}

// Parse applies a -config file, if given, and then the flags, so explicit
// flags win over the file.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	c := Default()
	path := configPathFromArgs(args)
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return nil, err
		}
	}
	c.Bind(fs)
	fs.String("config", path, "YAML config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func configPathFromArgs(args []string) string {
	for i, a := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// Grid converts the board section into a validated GridConfig.
func (c *Config) Grid() (core.GridConfig, error) {
	gridColor, err := ParseColor(c.Board.GridColor)
	if err != nil {
		return core.GridConfig{}, fmt.Errorf("grid color: %w", err)
	}
	aliveColor, err := ParseColor(c.Board.AliveColor)
	if err != nil {
		return core.GridConfig{}, fmt.Errorf("alive color: %w", err)
	}
	g := core.GridConfig{
		Width:      c.Board.Width,
		Height:     c.Board.Height,
		CellSize:   c.Board.CellSize,
		GridSize:   c.Board.GridSize,
		GridColor:  gridColor,
		AliveColor: aliveColor,
	}
	if err := g.Validate(); err != nil {
		return core.GridConfig{}, err
	}
	return g, nil
}

// EngineOptions returns the engine section as factory options.
func (c *Config) EngineOptions() map[string]string {
	opts := map[string]string{
		"seed":    strconv.FormatInt(c.Engine.Seed, 10),
		"density": strconv.FormatFloat(c.Engine.Density, 'f', -1, 64),
	}
	if c.Engine.URL != "" {
		opts["url"] = c.Engine.URL
	}
	return opts
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Output.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseColor parses #RGB or #RRGGBB (the # is optional) into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
