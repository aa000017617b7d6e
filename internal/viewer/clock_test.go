package viewer

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/driver"
	"windswept/internal/physics"
	"windswept/internal/registry"
	"windswept/internal/wind"
	"windswept/internal/world"
)

func TestTickClockAdvance(t *testing.T) {
	var c tickClock
	// 20 ticks per second is one tick every 0.05s
	if n := c.advance(0.03, 20, false); n != 0 {
		t.Errorf("0.03s gave %d ticks", n)
	}
	if n := c.advance(0.03, 20, false); n != 1 {
		t.Errorf("0.06s gave %d ticks", n)
	}
	if n := c.advance(0.5, 20, false); n != maxCatchUp {
		t.Errorf("Hitch gave %d ticks, want %d", n, maxCatchUp)
	}
	if c.acc != 0 {
		t.Errorf("Hitch kept %f seconds of backlog", c.acc)
	}
	if n := c.advance(10, 20, true); n != 0 {
		t.Errorf("Paused clock gave %d ticks", n)
	}
	if n := c.advance(0.001, 0, false); n != 1 {
		t.Errorf("Unthrottled clock gave %d ticks", n)
	}
}

func TestNextWindType(t *testing.T) {
	tests := []struct {
		in, want wind.Type
	}{
		{wind.None, wind.Soft},
		{wind.Soft, wind.Normal},
		{wind.Heavy, wind.Storm},
		{wind.Storm, wind.None},
	}
	for _, tt := range tests {
		if got := NextWindType(tt.in); got != tt.want {
			t.Errorf("NextWindType(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func flatWorld() *world.World {
	w := world.New(registry.Properties(), world.NewFlatGenerator(64))
	w.EnsureArea(world.BlockPos{}, 1)
	return w
}

func TestStatusLines(t *testing.T) {
	w := flatWorld()
	rep := driver.Report{Tick: 42, Impacts: 3, Edges: 7, Pending: 2}

	lines := statusLines(rep, w, 11, physics.RaycastResult{}, true, false)
	if len(lines) != 3 {
		t.Fatalf("Got %d lines: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "Tick 42") || !strings.HasSuffix(lines[0], "camera follow") {
		t.Errorf("First line %q", lines[0])
	}
	if lines[2] != "Impacts 3  edges 7  particles 11  pending 2" {
		t.Errorf("Counter line %q", lines[2])
	}

	hovered := raycast(w, mgl64.Vec3{0.5, 70, 0.5}, mgl64.Vec3{0, -1, 0})
	if !hovered.Hit {
		t.Fatalf("Looking straight down missed the ground")
	}
	lines = statusLines(rep, w, 0, hovered, false, true)
	if len(lines) != 5 {
		t.Fatalf("Got %d lines: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[3], "Looking at grass") {
		t.Errorf("Hover line %q", lines[3])
	}
	if lines[4] != "PAUSED" {
		t.Errorf("Last line %q", lines[4])
	}
	if !strings.HasSuffix(lines[0], "camera free") {
		t.Errorf("First line %q", lines[0])
	}
}

func TestRaycastRejectsDegenerateDirections(t *testing.T) {
	w := flatWorld()
	eye := mgl64.Vec3{0.5, 70, 0.5}
	if r := raycast(w, eye, mgl64.Vec3{}); r.Hit {
		t.Errorf("Zero direction hit %v", r.HitPosition)
	}
	if r := raycast(w, eye, mgl64.Vec3{math.NaN(), -1, 0}); r.Hit {
		t.Errorf("NaN direction hit %v", r.HitPosition)
	}
}
