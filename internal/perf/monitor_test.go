package perf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
)

func TestStatsOverWindow(t *testing.T) {
	m := NewMonitor(3, true)
	at := time.Unix(100, 0)
	m.FrameRendered(at)
	for _, d := range []time.Duration{100, 50, 20, 10} {
		at = at.Add(d * time.Millisecond)
		m.FrameRendered(at)
	}
	s := m.Stats()
	// Window keeps the last three frames: 20, 50 and 100 fps.
	if s.Count != 3 || s.Latest != 100 || s.Min != 20 || s.Max != 100 {
		t.Fatalf("stats = %+v", s)
	}
	if s.Avg < 56.6 || s.Avg > 56.7 {
		t.Fatalf("avg = %v", s.Avg)
	}
	if !strings.Contains(m.String(), "latest = 100") || !strings.Contains(m.String(), "min. of last 3 = 20") {
		t.Fatalf("panel = %q", m.String())
	}
}

func TestEmptyMonitor(t *testing.T) {
	m := NewMonitor(0, false)
	m.FrameRendered(time.Unix(1, 0))
	if m.Stats().Count != 0 {
		t.Fatal("a single frame has no rate")
	}
	if len(m.History()) != 0 {
		t.Fatal("history disabled")
	}
}

func TestWriteCSV(t *testing.T) {
	m := NewMonitor(10, true)
	at := time.Unix(0, 0)
	for i := 0; i < 4; i++ {
		m.FrameRendered(at)
		at = at.Add(25 * time.Millisecond)
	}
	var buf bytes.Buffer
	if err := m.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "frame,at_unix_nano,delta_ms,fps") {
		t.Fatalf("csv header = %q", buf.String())
	}
	var back []Sample
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if len(back) != 3 || back[0].FPS != 40 || back[2].Frame != 4 {
		t.Fatalf("samples = %+v", back)
	}
}
