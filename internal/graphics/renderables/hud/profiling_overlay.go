package hud

import (
	"fmt"
	"strings"
	"time"

	"windswept/internal/profiling"
)

const historyLen = 60

// frameStats keeps a rolling window of frame timings
type frameStats struct {
	lastTotal  time.Duration
	lastUpdate time.Duration
	lastRender time.Duration

	history []time.Duration
	min     time.Duration
	max     time.Duration
	avg     time.Duration
}

func (s *frameStats) record(total, update, render time.Duration) {
	s.lastTotal, s.lastUpdate, s.lastRender = total, update, render

	if len(s.history) >= historyLen {
		s.history = s.history[1:]
	}
	s.history = append(s.history, total)

	var sum time.Duration
	s.min, s.max = total, total
	for _, d := range s.history {
		sum += d
		s.min = min(s.min, d)
		s.max = max(s.max, d)
	}
	s.avg = sum / time.Duration(len(s.history))
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// lines renders the breakdown shown under the status lines
func (s *frameStats) lines() []string {
	lines := make([]string, 0, 16)
	lines = append(lines,
		fmt.Sprintf("Frame: %.2fms (avg %.2fms, min %.2fms, max %.2fms)", ms(s.lastTotal), ms(s.avg), ms(s.min), ms(s.max)),
		fmt.Sprintf("Update: %.2fms | Render: %.2fms", ms(s.lastUpdate), ms(s.lastRender)))

	waterMs := ms(profiling.SumWithPrefix("water."))
	entityMs := ms(profiling.SumWithPrefix("entityfx."))
	ambientMs := ms(profiling.SumWithPrefix("ambient."))
	particleMs := ms(profiling.SumWithPrefix("particles."))
	worldMs := ms(profiling.SumWithPrefix("world.")) + ms(profiling.SumWithPrefix("game."))
	lines = append(lines, fmt.Sprintf("Tick -> water: %.2fms, entities: %.2fms, ambient: %.2fms, particles: %.2fms, world: %.2fms",
		waterMs, entityMs, ambientMs, particleMs, worldMs))

	if top := profiling.TopN(8); top != "" {
		for line := range strings.SplitSeq(top, ", ") {
			if line != "" && !strings.Contains(line, ":0ms") {
				lines = append(lines, line)
			}
		}
	}
	return lines
}
