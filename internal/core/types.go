package core

import (
	"fmt"
	"sort"
)

// Engine is the capability the controller needs from a Life implementation.
// Mutating calls invalidate any slice previously returned by CellBufferView.
type Engine interface {
	InitializeCells() error
	ClearCells() error
	Tick() error
	ToggleCell(index int) error
	// CellBufferView returns the packed cell bits, one bit per cell, LSB first
	// within each byte, row-major. The slice is borrowed: it may be reused or
	// replaced by the next mutating call.
	CellBufferView() []byte
}

// Factory constructs an Engine for a width*height board using optional
// string options (flag-style key/value pairs).
type Factory func(width, height int, opts map[string]string) (Engine, error)

var engines = map[string]Factory{}

// RegisterEngine adds an engine factory under the provided name.
func RegisterEngine(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// Engines exposes the registry of available engine factories.
func Engines() map[string]Factory {
	return engines
}

// EngineNames returns the registered engine names in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEngine looks up the named factory and builds an engine with it.
func NewEngine(name string, width, height int, opts map[string]string) (Engine, error) {
	f, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (have %v)", name, EngineNames())
	}
	return f(width, height, opts)
}
