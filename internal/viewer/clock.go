package viewer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/driver"
	"windswept/internal/physics"
	"windswept/internal/wind"
	"windswept/internal/world"
)

// maxCatchUp bounds the ticks run in one frame after a hitch.
const maxCatchUp = 5

// tickClock converts frame time into whole simulation ticks.
type tickClock struct {
	acc float64
}

// advance returns how many ticks are due after dt seconds at rate ticks per second.
// An unthrottled rate runs one tick per frame. Paused time does not accumulate.
func (c *tickClock) advance(dt float64, rate int, paused bool) int {
	if paused {
		c.acc = 0
		return 0
	}
	if rate <= 0 {
		c.acc = 0
		return 1
	}
	step := 1 / float64(rate)
	c.acc += dt
	n := int(c.acc / step)
	if n > maxCatchUp {
		c.acc = 0
		return maxCatchUp
	}
	c.acc -= float64(n) * step
	return n
}

// NextWindType cycles none, soft, normal, heavy, storm and back.
func NextWindType(t wind.Type) wind.Type {
	return (t + 1) % (wind.Storm + 1)
}

// statusLines formats the HUD text for one frame.
func statusLines(rep driver.Report, w *world.World, particles int, hovered physics.RaycastResult, follow, paused bool) []string {
	camera := "free"
	if follow {
		camera = "follow"
	}
	lines := []string{
		fmt.Sprintf("Tick %d  day %d  camera %s", rep.Tick, w.CurrentDayIndex(), camera),
		fmt.Sprintf("Wind: %s", rep.Wind),
		fmt.Sprintf("Impacts %d  edges %d  particles %d  pending %d", rep.Impacts, rep.Edges, particles, rep.Pending),
	}
	if hovered.Hit {
		lines = append(lines, fmt.Sprintf("Looking at %s %s  %.1fm", w.Block(hovered.HitPosition), hovered.HitPosition, hovered.Distance))
	}
	if paused {
		lines = append(lines, "PAUSED")
	}
	return lines
}

// raycast looks from the camera for the first non-air cell.
func raycast(w *world.World, eye, dir mgl64.Vec3) physics.RaycastResult {
	if dir.Len() == 0 || math.IsNaN(dir.X()) {
		return physics.RaycastResult{}
	}
	return physics.Raycast(eye, dir.Normalize(), physics.MinReachDistance, physics.MaxReachDistance, w)
}
