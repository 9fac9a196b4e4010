// Package host provides a headless frame host: one goroutine that fires
// scheduled frames at a fixed rate and runs user operations between them.
package host

import (
	"context"
	"time"

	"life-canvas/internal/anim"
	"life-canvas/internal/core"
)

type call struct {
	fn   func()
	done chan struct{}
}

// Loop owns a FrameQueue and is the only goroutine allowed to touch it or any
// controller bound to it. Work from other goroutines goes through Do.
type Loop struct {
	frames     *anim.FrameQueue
	clock      *core.FixedStep
	calls      chan call
	afterFrame func(frame int)
	frame      int
	waiters    []waiter
}

type waiter struct {
	at   int
	done chan struct{}
}

// NewLoop returns a loop that fires frames fps times per second.
func NewLoop(fps int) *Loop {
	return &Loop{
		frames: anim.NewFrameQueue(),
		clock:  core.NewFixedStep(fps),
		calls:  make(chan call),
	}
}

// Frames returns the loop's frame host.
func (l *Loop) Frames() *anim.FrameQueue { return l.frames }

// AfterFrame registers fn to run on the loop goroutine after every frame
// tick, with the number of ticks so far. It must be called before Run.
func (l *Loop) AfterFrame(fn func(frame int)) { l.afterFrame = fn }

// Run services frames and calls until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.clock.Period())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-l.calls:
			c.fn()
			close(c.done)
		case <-ticker.C:
			l.frames.Advance()
			l.frame++
			if l.afterFrame != nil {
				l.afterFrame(l.frame)
			}
			l.wake()
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish. Because fn
// never overlaps a frame, it sees the simulation between frames only.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	c := call{fn: fn, done: make(chan struct{})}
	select {
	case l.calls <- c:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Frame returns the number of frame ticks so far. Call it on the loop
// goroutine.
func (l *Loop) Frame() int { return l.frame }

// After returns a channel closed once n more frames have fired. Counting
// starts at the call, so call it on the loop goroutine (inside Do) right after
// starting the work to be measured.
func (l *Loop) After(n int) <-chan struct{} {
	w := waiter{at: l.frame + n, done: make(chan struct{})}
	if n <= 0 {
		close(w.done)
		return w.done
	}
	l.waiters = append(l.waiters, w)
	return w.done
}

func (l *Loop) wake() {
	kept := l.waiters[:0]
	for _, w := range l.waiters {
		if l.frame >= w.at {
			close(w.done)
			continue
		}
		kept = append(kept, w)
	}
	l.waiters = kept
}
