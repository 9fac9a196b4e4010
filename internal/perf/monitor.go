// Package perf measures frame rate over a rolling window of rendered frames.
package perf

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/gocarina/gocsv"
)

// DefaultWindow is the number of frames the rolling statistics cover.
const DefaultWindow = 100

// Sample is one measured frame, as exported to CSV.
type Sample struct {
	Frame   int     `csv:"frame"`
	AtNanos int64   `csv:"at_unix_nano"`
	DeltaMs float64 `csv:"delta_ms"`
	FPS     float64 `csv:"fps"`
}

// Stats summarizes the rolling window.
type Stats struct {
	Latest float64
	Min    float64
	Max    float64
	Avg    float64
	Count  int
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("latest", int(math.Round(s.Latest))),
		slog.Int("min", int(math.Round(s.Min))),
		slog.Int("max", int(math.Round(s.Max))),
		slog.Int("avg", int(math.Round(s.Avg))),
		slog.Int("frames", s.Count),
	)
}

// Monitor records the time between rendered frames. It satisfies
// sim.FrameObserver. It is not safe for concurrent use.
type Monitor struct {
	window  int
	fps     []float64
	prev    time.Time
	frames  int
	history []Sample
	keep    bool
}

// NewMonitor returns a monitor over the last window frames. When keepHistory
// is set every sample is retained for WriteCSV.
func NewMonitor(window int, keepHistory bool) *Monitor {
	if window < 1 {
		window = DefaultWindow
	}
	return &Monitor{window: window, keep: keepHistory}
}

// FrameRendered records a frame painted at the given time. The first frame
// only starts the clock.
func (m *Monitor) FrameRendered(at time.Time) {
	m.frames++
	if m.prev.IsZero() {
		m.prev = at
		return
	}
	delta := at.Sub(m.prev)
	m.prev = at
	if delta <= 0 {
		return
	}
	fps := float64(time.Second) / float64(delta)
	m.fps = append(m.fps, fps)
	if len(m.fps) > m.window {
		m.fps = m.fps[1:]
	}
	if m.keep {
		m.history = append(m.history, Sample{
			Frame:   m.frames,
			AtNanos: at.UnixNano(),
			DeltaMs: float64(delta) / float64(time.Millisecond),
			FPS:     fps,
		})
	}
}

// Stats returns the rolling window summary.
func (m *Monitor) Stats() Stats {
	if len(m.fps) == 0 {
		return Stats{}
	}
	s := Stats{Latest: m.fps[len(m.fps)-1], Min: math.Inf(1), Max: math.Inf(-1), Count: len(m.fps)}
	sum := 0.0
	for _, v := range m.fps {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		sum += v
	}
	s.Avg = sum / float64(len(m.fps))
	return s
}

// String renders the summary as a small text panel.
func (m *Monitor) String() string {
	s := m.Stats()
	return fmt.Sprintf("Frames Per Second:\n"+
		"          latest = %d\n"+
		"min. of last %d = %d\n"+
		"max. of last %d = %d\n"+
		"avg. of last %d = %d",
		int(math.Round(s.Latest)),
		m.window, int(math.Round(s.Min)),
		m.window, int(math.Round(s.Max)),
		m.window, int(math.Round(s.Avg)))
}

// History returns the retained samples.
func (m *Monitor) History() []Sample { return m.history }

// WriteCSV writes the retained samples with a header row.
func (m *Monitor) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(m.history, w); err != nil {
		return fmt.Errorf("writing perf samples: %w", err)
	}
	return nil
}
