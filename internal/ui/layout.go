package ui

import (
	"fmt"
	"image"
)

// Action is a control the HUD can trigger on a simulation.
type Action int

const (
	ActionNone Action = iota
	ActionPlayPause
	ActionStep
	ActionReset
	ActionClear
	ActionSlower
	ActionFaster
)

// Controls is the surface of a simulation the HUD drives.
type Controls interface {
	Run(stepsPerFrame int) error
	Pause()
	Step(stepsPerFrame int) error
	Reset() error
	Clear() error
	IsRunning() bool
}

// Button is one clickable HUD rectangle, in panel coordinates.
type Button struct {
	Action Action
	Rect   image.Rectangle
}

// StepControl is the bounded steps-per-frame selector.
type StepControl struct {
	Value int
	Min   int
	Max   int
	Step  int
}

// CanAdjust reports whether moving one step in direction stays within bounds.
func (s StepControl) CanAdjust(direction int) bool {
	if direction == 0 {
		return false
	}
	target := s.Value + direction*max(s.Step, 1)
	return target >= s.Min && target <= s.Max
}

// Adjust moves the value one step in direction, clamping to the bounds, and
// reports whether it changed.
func (s *StepControl) Adjust(direction int) bool {
	if direction == 0 {
		return false
	}
	target := s.Value + direction*max(s.Step, 1)
	target = min(max(target, s.Min), s.Max)
	if target == s.Value {
		return false
	}
	s.Value = target
	return true
}

// Panel lays out the HUD and maps clicks to controller operations. It holds
// the chosen steps per frame but no simulation state.
type Panel struct {
	Buttons []Button
	Steps   StepControl
	width   int
	status  string
}

// NewPanel lays out a panel width pixels wide, starting at steps per frame.
func NewPanel(width, steps int) *Panel {
	p := &Panel{width: width, Steps: StepControl{Value: steps, Min: 1, Max: 100, Step: 1}}
	p.Steps.Value = min(max(steps, p.Steps.Min), p.Steps.Max)
	p.layout()
	return p
}

// Width returns the panel width in pixels.
func (p *Panel) Width() int { return p.width }

// Height returns the height needed to show every control.
func (p *Panel) Height() int { return controlsTop + 5*lineHeight + panelPadding }

func (p *Panel) layout() {
	full := p.width - 2*panelPadding
	row := func(i int) int { return controlsTop + i*lineHeight + (lineHeight-buttonSize)/2 }
	p.Buttons = p.Buttons[:0]
	for i, a := range []Action{ActionPlayPause, ActionStep, ActionReset, ActionClear} {
		y := row(i)
		p.Buttons = append(p.Buttons, Button{Action: a, Rect: image.Rect(panelPadding, y, panelPadding+full, y+buttonSize)})
	}
	y := row(4)
	plus := image.Rect(p.width-panelPadding-buttonSize, y, p.width-panelPadding, y+buttonSize)
	minus := image.Rect(plus.Min.X-buttonGap-buttonSize, y, plus.Min.X-buttonGap, y+buttonSize)
	p.Buttons = append(p.Buttons, Button{Action: ActionSlower, Rect: minus}, Button{Action: ActionFaster, Rect: plus})
}

// HitTest returns the action under panel coordinates (x, y).
func (p *Panel) HitTest(x, y int) Action {
	for _, b := range p.Buttons {
		if pointInRect(x, y, b.Rect) {
			return b.Action
		}
	}
	return ActionNone
}

// Label returns the caption of a button.
func (p *Panel) Label(a Action, running bool) string {
	switch a {
	case ActionPlayPause:
		if running {
			return "Pause"
		}
		return "Play"
	case ActionStep:
		return "Step"
	case ActionReset:
		return "Reset"
	case ActionClear:
		return "Clear"
	case ActionSlower:
		return "-"
	case ActionFaster:
		return "+"
	}
	return ""
}

// StepsLabel describes the current steps-per-frame choice.
func (p *Panel) StepsLabel() string { return fmt.Sprintf("Steps/frame %d", p.Steps.Value) }

// Enabled reports whether a button can be used in the current state.
func (p *Panel) Enabled(a Action, running bool) bool {
	switch a {
	case ActionStep:
		return !running
	case ActionSlower:
		return p.Steps.CanAdjust(-1)
	case ActionFaster:
		return p.Steps.CanAdjust(1)
	case ActionNone:
		return false
	}
	return true
}

// Click performs whatever sits under (x, y).
func (p *Panel) Click(c Controls, x, y int) (Action, error) {
	a := p.HitTest(x, y)
	return a, p.Do(c, a)
}

// Report records the outcome of the last user operation. A nil err clears
// the message.
func (p *Panel) Report(err error) {
	if err == nil {
		p.status = ""
		return
	}
	p.status = err.Error()
}

// Status returns the message from the last failed operation, if any.
func (p *Panel) Status() string { return p.status }

// Do performs a on c. Disabled actions are ignored.
func (p *Panel) Do(c Controls, a Action) error {
	running := c.IsRunning()
	if !p.Enabled(a, running) {
		return nil
	}
	switch a {
	case ActionPlayPause:
		if running {
			c.Pause()
			return nil
		}
		return c.Run(p.Steps.Value)
	case ActionStep:
		return c.Step(p.Steps.Value)
	case ActionReset:
		return c.Reset()
	case ActionClear:
		return c.Clear()
	case ActionSlower:
		p.Steps.Adjust(-1)
	case ActionFaster:
		p.Steps.Adjust(1)
	}
	return nil
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)
