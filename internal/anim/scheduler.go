// Package anim drives a simulation one frame at a time on top of a host's
// per-frame callback facility.
package anim

import (
	"errors"
	"fmt"
)

// ErrInvalidSteps is returned when fewer than one generation per frame is requested.
var ErrInvalidSteps = errors.New("steps per frame must be at least 1")

// Scheduler is a two-state machine, paused or running. While running exactly
// one frame callback is outstanding on the host; each one advances the
// simulation, renders, and schedules the next.
type Scheduler struct {
	host    FrameRequester
	advance func() error
	render  func()
	onError func(error)

	handle Handle
	steps  int
}

// NewScheduler builds a paused scheduler. advance moves the simulation one
// generation; render repaints it. onError, if non-nil, receives failures from
// scheduled frames, after which the scheduler is paused.
func NewScheduler(host FrameRequester, advance func() error, render func(), onError func(error)) *Scheduler {
	return &Scheduler{host: host, advance: advance, render: render, onError: onError}
}

// Running reports whether a frame is scheduled.
func (s *Scheduler) Running() bool { return s.handle != 0 }

// StepsPerFrame returns the generations advanced per frame by the running loop.
func (s *Scheduler) StepsPerFrame() int { return s.steps }

// Run renders one frame immediately and keeps scheduling frames until Pause.
// Calling Run while running does nothing, even with a different step count.
func (s *Scheduler) Run(steps int) error {
	if s.handle != 0 {
		return nil
	}
	if err := s.Step(steps); err != nil {
		return err
	}
	s.steps = steps
	s.handle = s.host.RequestFrame(s.tick)
	return nil
}

// Pause cancels the outstanding frame. Once it returns no scheduled frame
// will advance the simulation.
func (s *Scheduler) Pause() {
	if s.handle == 0 {
		return
	}
	s.host.CancelFrame(s.handle)
	s.handle = 0
}

// Step advances steps generations and renders once, without changing state.
// If an advance fails after earlier ones succeeded, the generation reached is
// rendered before the error is returned.
func (s *Scheduler) Step(steps int) error {
	if steps < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	for i := 0; i < steps; i++ {
		if err := s.advance(); err != nil {
			if i > 0 {
				s.render()
			}
			return fmt.Errorf("advance generation %d of %d: %w", i+1, steps, err)
		}
	}
	s.render()
	return nil
}

func (s *Scheduler) tick() {
	fired := s.handle
	err := s.Step(s.steps)
	if s.handle != fired {
		// Paused or restarted from inside the frame.
		return
	}
	if err != nil {
		s.handle = 0
		if s.onError != nil {
			s.onError(err)
		}
		return
	}
	s.handle = s.host.RequestFrame(s.tick)
}
