//go:build !ebiten

package ui

// HUD is a no-op placeholder for headless builds. Panel carries the layout
// and control logic in every build.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(Controls, int, int, string) *HUD { return nil }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}

// Report is a no-op in the headless build.
func (h *HUD) Report(error) {}
