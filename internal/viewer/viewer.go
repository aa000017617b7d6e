// Package viewer is the windowed front end: it steps a session in real time and draws the
// terrain, the live particles and the detected water features from a free or following camera.
package viewer

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"windswept/internal/config"
	"windswept/internal/game"
	"windswept/internal/graphics/renderables/crosshair"
	"windswept/internal/graphics/renderables/direction"
	"windswept/internal/graphics/renderables/hud"
	"windswept/internal/graphics/renderables/points"
	"windswept/internal/graphics/renderables/terrain"
	"windswept/internal/graphics/renderables/wireframe"
	renderer "windswept/internal/graphics/renderer"
	"windswept/internal/input"
	"windswept/internal/particles"
	"windswept/internal/profiling"
	"windswept/internal/water"
	"windswept/internal/world"
)

const (
	flySpeed       = 8.0
	fastMultiplier = 4.0
	edgeScanFrames = 30
	burstSeconds   = 3
	mapRadius      = 64
	mapScale       = 4
)

// Options configures a Viewer.
type Options struct {
	Width, Height int
	// FPS caps the frame rate; zero leaves it uncapped.
	FPS int
	// TerrainRadius is how many columns around the camera are meshed.
	TerrainRadius int
	// MapDir is where F2 writes feature maps.
	MapDir string
	Log    logrus.FieldLogger
}

// Viewer owns the window loop for one session
type Viewer struct {
	window   *glfw.Window
	renderer *renderer.Renderer
	hud      *hud.HUD
	input    *input.InputManager
	session  *game.Session
	log      logrus.FieldLogger
	limiter  *game.TickLimiter
	mapDir   string

	follow bool
	clock  tickClock
	frame  int64

	edges     []water.Edge
	edgeRng   *rand.Rand
	particles []particles.Particle
	lastTime  time.Time
}

// New builds the renderer on the current GL context and routes the window's input.
func New(window *glfw.Window, s *game.Session, opts Options) (*Viewer, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	h := hud.NewHUD(opts.Width, opts.Height)
	wf := wireframe.NewWireframe()
	wf.IntensityCap = s.Driver.Context().Tuning.Cascade.IntensityCap
	r, err := renderer.NewRenderer(opts.Width, opts.Height,
		terrain.NewTerrain(opts.TerrainRadius),
		wf,
		points.NewPoints(),
		crosshair.NewCrosshair(),
		direction.NewDirection(),
		h,
	)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}

	v := &Viewer{
		window:   window,
		renderer: r,
		hud:      h,
		input:    input.NewInputManager(),
		session:  s,
		log:      log,
		limiter:  game.NewFrameLimiter(opts.FPS),
		mapDir:   opts.MapDir,
		follow:   true,
		edgeRng:  rand.New(rand.NewSource(1)),
		lastTime: time.Now(),
	}
	v.input.SetCallbacks(window)
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !v.follow && v.input.IsActive(input.ActionLook) {
			v.renderer.GetCamera().HandleMouseMovement(xpos, ypos)
		}
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if width > 0 && height > 0 {
			v.renderer.UpdateViewport(width, height)
		}
	})
	if p, ok := s.World.Player(); ok {
		r.GetCamera().Follow(p)
	}
	return v, nil
}

// Run draws frames until the window closes or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	for !v.window.ShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		v.tick()
	}
	return nil
}

// Dispose releases every GL resource. The window stays open.
func (v *Viewer) Dispose() {
	v.renderer.Dispose()
}

func (v *Viewer) tick() {
	now := time.Now()
	dt := now.Sub(v.lastTime).Seconds()
	v.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	v.handleInputActions()

	updateStart := time.Now()
	steps := v.clock.advance(dt, config.GetTickRate(), v.session.Paused)
	for i := 0; i < steps; i++ {
		v.session.Step()
	}
	updateDur := time.Since(updateStart)

	cam := v.renderer.GetCamera()
	player, hasPlayer := v.session.World.Player()
	if v.follow && hasPlayer {
		cam.Follow(player)
	} else if !v.session.Paused {
		v.moveCamera(dt)
	}

	if v.frame%edgeScanFrames == 0 {
		center := world.PosOf(mgl64.Vec3{float64(cam.Position.X()), float64(cam.Position.Y()), float64(cam.Position.Z())})
		v.edges = v.session.Driver.Detector().ScanShoreline(center, v.edgeRng)
	}
	v.frame++

	eye := mgl64.Vec3{float64(cam.Position.X()), float64(cam.Position.Y()), float64(cam.Position.Z())}
	front := cam.Front()
	hovered := raycast(v.session.World, eye, mgl64.Vec3{float64(front.X()), float64(front.Y()), float64(front.Z())})

	v.particles = v.session.Particles.Snapshot(v.particles)
	rep := v.session.LastReport()

	renderStart := time.Now()
	v.renderer.Render(renderer.RenderContext{
		World:     v.session.World,
		DT:        dt,
		Particles: v.particles,
		Impacts:   v.session.Driver.Cascades().Impacts(),
		Edges:     v.edges,
		Wind:      v.session.Driver.Wind(),
		Hovered:   hovered,
		Status:    statusLines(rep, v.session.World, len(v.particles), hovered, v.follow, v.session.Paused),
	}, v.session.World.IsRaining(), v.follow && hasPlayer && player.Sprinting)
	renderDur := time.Since(renderStart)

	func() { defer profiling.Track("glfw.SwapBuffers")(); v.window.SwapBuffers() }()
	v.input.PostUpdate()

	v.hud.ProfilingSetFrame(time.Since(now), updateDur, renderDur)
	v.limiter.Wait(v.session.Paused)
}

func (v *Viewer) moveCamera(dt float64) {
	strafe, forward := v.input.Axis()
	var up float64
	if v.input.IsActive(input.ActionFlyUp) {
		up++
	}
	if v.input.IsActive(input.ActionFlyDown) {
		up--
	}
	speed := flySpeed
	if v.input.IsActive(input.ActionFast) {
		speed *= fastMultiplier
	}
	v.renderer.GetCamera().Move(float32(strafe), float32(forward), float32(up), float32(speed*dt))
}

func (v *Viewer) handleInputActions() {
	im := v.input
	d := v.session.Driver

	if im.JustPressed(input.ActionPause) {
		v.session.Paused = !v.session.Paused
		v.log.WithField("paused", v.session.Paused).Info("Pause toggled")
	}
	if im.JustPressed(input.ActionToggleFollow) {
		v.follow = !v.follow
		v.renderer.GetCamera().ResetMouse()
	}
	if im.JustPressed(input.ActionLook) {
		v.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		v.renderer.GetCamera().ResetMouse()
	}
	if im.JustReleased(input.ActionLook) {
		v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	if im.JustPressed(input.ActionCycleWind) {
		st := d.Wind()
		d.SetWind(st.Direction, NextWindType(st.Type))
	}
	v.force(im, input.ActionForceCascade, "cascade", d.ForceCascade)
	v.force(im, input.ActionForceRipple, "ripple", d.ForceRipples)
	v.force(im, input.ActionForceDust, "dustcloud", d.ForceDust)
	if im.JustPressed(input.ActionToggleMute) {
		config.SetMuted(!config.GetMuted())
		v.log.WithField("muted", config.GetMuted()).Info("Audio toggled")
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		v.hud.ToggleProfiling()
	}
	if im.JustPressed(input.ActionSaveMap) {
		path := filepath.Join(v.mapDir, fmt.Sprintf("windswept-%d.png", v.session.Ticks()))
		if err := v.session.SaveMap(path, mapRadius, mapScale); err != nil {
			v.log.WithError(err).Warn("Could not save the feature map")
		}
	}
}

func (v *Viewer) force(im *input.InputManager, a input.Action, name string, f func(int) (int, error)) {
	if !im.JustPressed(a) {
		return
	}
	if _, err := f(burstSeconds); err != nil {
		v.log.WithError(err).WithField("effect", name).Warn("Burst refused")
	}
}
