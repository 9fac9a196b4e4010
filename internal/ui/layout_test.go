package ui

import (
	"errors"
	"fmt"
	"testing"
)

type fakeControls struct {
	running bool
	calls   []string
	steps   int
}

func (f *fakeControls) Run(n int) error {
	f.running, f.steps = true, n
	f.calls = append(f.calls, "run")
	return nil
}
func (f *fakeControls) Pause() {
	f.running = false
	f.calls = append(f.calls, "pause")
}
func (f *fakeControls) Step(n int) error {
	f.steps = n
	f.calls = append(f.calls, "step")
	return nil
}
func (f *fakeControls) Reset() error    { f.calls = append(f.calls, "reset"); return nil }
func (f *fakeControls) Clear() error    { f.calls = append(f.calls, "clear"); return nil }
func (f *fakeControls) IsRunning() bool { return f.running }

func center(p *Panel, a Action) (int, int) {
	for _, b := range p.Buttons {
		if b.Action == a {
			return (b.Rect.Min.X + b.Rect.Max.X) / 2, (b.Rect.Min.Y + b.Rect.Max.Y) / 2
		}
	}
	return -1, -1
}

func TestPanelPlayPauseToggles(t *testing.T) {
	p := NewPanel(200, 3)
	c := &fakeControls{}
	x, y := center(p, ActionPlayPause)

	if a, err := p.Click(c, x, y); a != ActionPlayPause || err != nil {
		t.Fatalf("click = %v, %v", a, err)
	}
	if !c.running || c.steps != 3 {
		t.Fatalf("play should run with 3 steps, got running=%v steps=%d", c.running, c.steps)
	}
	if p.Label(ActionPlayPause, c.running) != "Pause" {
		t.Fatal("running panel should offer pause")
	}
	p.Click(c, x, y)
	if c.running {
		t.Fatal("second click should pause")
	}
}

func TestStepDisabledWhileRunning(t *testing.T) {
	p := NewPanel(200, 1)
	c := &fakeControls{running: true}
	x, y := center(p, ActionStep)
	p.Click(c, x, y)
	if len(c.calls) != 0 {
		t.Fatalf("step while running should be ignored, calls=%v", c.calls)
	}
	c.running = false
	p.Click(c, x, y)
	if len(c.calls) != 1 || c.calls[0] != "step" {
		t.Fatalf("calls = %v", c.calls)
	}
}

func TestStepsBounds(t *testing.T) {
	p := NewPanel(200, 1)
	c := &fakeControls{}
	mx, my := center(p, ActionSlower)
	px, py := center(p, ActionFaster)

	p.Click(c, mx, my)
	if p.Steps.Value != 1 || p.Enabled(ActionSlower, false) {
		t.Fatal("steps must not drop below 1")
	}
	for i := 0; i < 150; i++ {
		p.Click(c, px, py)
	}
	if p.Steps.Value != 100 || p.Enabled(ActionFaster, false) {
		t.Fatalf("steps = %d, want capped at 100", p.Steps.Value)
	}
	if NewPanel(200, 0).Steps.Value != 1 {
		t.Fatal("initial steps should clamp into range")
	}
}

func TestResetClearAndMiss(t *testing.T) {
	p := NewPanel(200, 1)
	c := &fakeControls{}
	x, y := center(p, ActionReset)
	p.Click(c, x, y)
	x, y = center(p, ActionClear)
	p.Click(c, x, y)
	if a, _ := p.Click(c, -10, -10); a != ActionNone {
		t.Fatalf("miss hit %v", a)
	}
	if len(c.calls) != 2 || c.calls[0] != "reset" || c.calls[1] != "clear" {
		t.Fatalf("calls = %v", c.calls)
	}
}

type failingControls struct{ fakeControls }

func (f *failingControls) Reset() error { return errors.New("engine unreachable") }

func TestReportKeepsLastFailure(t *testing.T) {
	p := NewPanel(200, 1)
	c := &failingControls{}
	p.Report(p.Do(c, ActionReset))
	if p.Status() != "engine unreachable" {
		t.Fatalf("status = %q", p.Status())
	}

	// A failed board click lands in the same place as a failed button.
	p.Report(fmt.Errorf("toggle cell: %w", errors.New("connection reset")))
	if p.Status() != "toggle cell: connection reset" {
		t.Fatalf("status = %q", p.Status())
	}

	p.Report(p.Do(c, ActionClear))
	if p.Status() != "" {
		t.Fatalf("a successful operation should clear the status, got %q", p.Status())
	}
}
