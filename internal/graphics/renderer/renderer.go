package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"windswept/internal/graphics"
	"windswept/internal/wind"
)

const (
	normalFOV       = graphics.DefaultFOV
	sprintFOV       = 70.0
	fovPerSecond    = 100.0
	stormDarkening  = 0.55
	rainDarkening   = 0.25
	windDarkenRange = 4.0
)

var (
	clearSky = mgl32.Vec3{0.53, 0.81, 0.92}
	stormSky = mgl32.Vec3{0.32, 0.36, 0.42}
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera

	currentFOV float32
}

// NewRenderer configures GL state and initializes every renderable in order
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	r := &Renderer{
		renderables: rs,
		camera:      graphics.NewCamera(width, height),
		currentFOV:  normalFOV,
	}
	for _, rd := range rs {
		if err := rd.Init(); err != nil {
			r.Dispose()
			return nil, err
		}
		rd.SetViewport(width, height)
	}
	return r, nil
}

// Render clears to a sky tinted by the weather, fills in the camera matrices and draws every
// renderable. sprinting widens the FOV the way a running player sees it.
func (r *Renderer) Render(ctx RenderContext, raining, sprinting bool) {
	sky := SkyColor(ctx.Wind, raining)
	gl.ClearColor(sky.X(), sky.Y(), sky.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	target := float32(normalFOV)
	if sprinting {
		target = sprintFOV
	}
	r.currentFOV = StepFOV(r.currentFOV, target, ctx.DT)
	r.camera.FOV = r.currentFOV

	ctx.Camera = r.camera
	ctx.View = r.camera.GetViewMatrix()
	ctx.Proj = r.camera.GetProjectionMatrix()
	ctx.Sky = sky

	for _, rd := range r.renderables {
		rd.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// UpdateViewport updates the camera and every renderable after a resize
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
	for _, rd := range r.renderables {
		rd.SetViewport(width, height)
	}
}

// SkyColor darkens the clear sky toward storm grey with wind strength and rain.
func SkyColor(st wind.State, raining bool) mgl32.Vec3 {
	t := float32(min(st.Strength()/windDarkenRange, 1)) * stormDarkening
	if raining {
		t += rainDarkening
	}
	t = mgl32.Clamp(t, 0, 1)
	return clearSky.Mul(1 - t).Add(stormSky.Mul(t))
}

// StepFOV moves current toward target by at most fovPerSecond*dt degrees.
func StepFOV(current, target float32, dt float64) float32 {
	step := float32(dt) * fovPerSecond
	if current < target {
		return min(current+step, target)
	}
	return max(current-step, target)
}
