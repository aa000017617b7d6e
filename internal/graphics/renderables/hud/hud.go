// Package hud draws text over the scene: frame rate, session status and the optional
// profiling breakdown.
package hud

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"windswept/internal/graphics"
	renderer "windswept/internal/graphics/renderer"
	"windswept/internal/profiling"
)

const (
	fontPixels = 24
	textScale  = 0.6
	lineStep   = float32(17)
	marginX    = float32(10)
	marginY    = float32(24)
)

var (
	statusColor  = mgl32.Vec3{1, 1, 1}
	profileColor = mgl32.Vec3{1, 0.9, 0.5}
)

// fpsCounter counts frames over one second windows.
type fpsCounter struct {
	since  time.Time
	frames int
	last   int
}

func (c *fpsCounter) frame(now time.Time) int {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	if now.Sub(c.since) >= time.Second {
		c.last, c.frames, c.since = c.frames, 0, now
	}
	return c.last
}

type HUD struct {
	text          *graphics.FontRenderer
	width, height int
	fps           fpsCounter
	stats         frameStats
	profiling     bool
}

func NewHUD(width, height int) *HUD {
	return &HUD{width: width, height: height}
}

func (h *HUD) Init() error {
	atlas, err := graphics.BuildFontAtlas(fontPixels)
	if err != nil {
		return err
	}
	h.text, err = graphics.NewFontRenderer(atlas, h.width, h.height)
	return err
}

func (h *HUD) Render(ctx renderer.RenderContext) {
	lines := make([]string, 0, len(ctx.Status)+1)
	lines = append(lines, fmt.Sprintf("FPS: %d", h.fps.frame(time.Now())))
	lines = append(lines, ctx.Status...)
	h.text.RenderLines(lines, marginX, marginY, lineStep, textScale, statusColor)

	if !h.profiling {
		return
	}
	defer profiling.Track("renderer.hud")()
	y := marginY + float32(len(lines)+1)*lineStep
	h.text.RenderLines(h.stats.lines(), marginX, y, lineStep, textScale, profileColor)
}

func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	if h.text != nil {
		h.text.SetViewport(width, height)
	}
}

func (h *HUD) Dispose() {
	if h.text != nil {
		h.text.Dispose()
	}
}

// ToggleProfiling shows or hides the per-bucket timings.
func (h *HUD) ToggleProfiling() { h.profiling = !h.profiling }

func (h *HUD) ShowProfiling() bool { return h.profiling }

// ProfilingSetFrame records the previous frame's timings.
func (h *HUD) ProfilingSetFrame(total, update, render time.Duration) {
	h.stats.record(total, update, render)
}
