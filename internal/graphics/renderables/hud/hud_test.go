package hud

import (
	"strings"
	"testing"
	"time"

	"windswept/internal/profiling"
)

func TestFrameStatsWindow(t *testing.T) {
	var s frameStats
	for i := 1; i <= historyLen+10; i++ {
		s.record(time.Duration(i)*time.Millisecond, 0, 0)
	}
	if len(s.history) != historyLen {
		t.Fatalf("History holds %d frames", len(s.history))
	}
	if s.min != 11*time.Millisecond || s.max != 70*time.Millisecond {
		t.Errorf("min %v max %v", s.min, s.max)
	}
	if want := (11 + 70) * time.Millisecond / 2; s.avg != want {
		t.Errorf("avg %v, want %v", s.avg, want)
	}
}

func TestFrameStatsLines(t *testing.T) {
	profiling.ResetTick()
	defer profiling.ResetTick()
	func() {
		defer profiling.Track("water.ScanCascades")()
		time.Sleep(2 * time.Millisecond)
	}()

	var s frameStats
	s.record(16*time.Millisecond, 5*time.Millisecond, 9*time.Millisecond)
	lines := s.lines()
	if !strings.HasPrefix(lines[0], "Frame: 16.00ms") {
		t.Errorf("First line %q", lines[0])
	}
	if !strings.Contains(lines[1], "Render: 9.00ms") {
		t.Errorf("Second line %q", lines[1])
	}
	found := false
	for _, l := range lines {
		if strings.HasPrefix(l, "water.ScanCascades:") {
			found = true
		}
	}
	if !found {
		t.Errorf("Tracked bucket missing from %q", lines)
	}
}

func TestFPSCounter(t *testing.T) {
	var c fpsCounter
	start := time.Unix(100, 0)
	for i := 0; i < 30; i++ {
		if got := c.frame(start.Add(time.Duration(i) * 10 * time.Millisecond)); got != 0 {
			t.Fatalf("Frame %d reported %d before a full second", i, got)
		}
	}
	if got := c.frame(start.Add(time.Second)); got != 31 {
		t.Errorf("First window counted %d frames, want 31", got)
	}
	if got := c.frame(start.Add(1500 * time.Millisecond)); got != 31 {
		t.Errorf("Count changed mid-window: %d", got)
	}
}

func TestToggleProfiling(t *testing.T) {
	h := NewHUD(640, 480)
	if h.ShowProfiling() {
		t.Fatalf("Profiling on by default")
	}
	h.ToggleProfiling()
	if !h.ShowProfiling() {
		t.Errorf("Toggle did not enable profiling")
	}
}
