// Package crosshair draws the screen-center reticle, tinted by what the view ray hits.
package crosshair

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"windswept/internal/graphics"
	renderer "windswept/internal/graphics/renderer"
	"windswept/internal/physics"
	"windswept/internal/profiling"
	"windswept/internal/world"
)

const (
	arm = float32(0.02)
	gap = float32(0.005)
)

var (
	missTint  = mgl32.Vec4{1, 1, 1, 0.35}
	solidTint = mgl32.Vec4{1, 1, 1, 1}
	fluidTint = mgl32.Vec4{0.3, 0.75, 1, 1}
)

// Segments are four arms around an open center, as line-list pairs in clip space.
var Segments = []float32{
	-arm, 0, -gap, 0,
	gap, 0, arm, 0,
	0, -arm, 0, -gap,
	0, gap, 0, arm,
}

// FluidGrid is the lookup Tint needs. *world.World satisfies it.
type FluidGrid interface {
	FluidAt(pos world.BlockPos) world.FluidState
}

// Tint is faint when nothing is in reach and blue when the ray stops in water.
func Tint(g FluidGrid, hovered physics.RaycastResult) mgl32.Vec4 {
	if !hovered.Hit {
		return missTint
	}
	if g != nil && g.FluidAt(hovered.HitPosition) != world.FluidNone {
		return fluidTint
	}
	return solidTint
}

// Crosshair marks the point the viewer raycasts through
type Crosshair struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

func NewCrosshair() *Crosshair {
	return &Crosshair{}
}

func (c *Crosshair) Init() error {
	var err error
	if c.shader, err = graphics.LoadShader("crosshair"); err != nil {
		return err
	}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(Segments)*4, gl.Ptr(Segments), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return nil
}

func (c *Crosshair) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.crosshair")()

	var g FluidGrid
	if ctx.World != nil {
		g = ctx.World
	}
	tint := Tint(g, ctx.Hovered)

	c.shader.Use()
	c.shader.SetFloat("aspectRatio", ctx.Camera.AspectRatio)
	c.shader.SetVector4("tint", tint.X(), tint.Y(), tint.Z(), tint.W())

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(Segments)/2))
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// SetViewport is a no-op; the aspect ratio comes from the camera.
func (c *Crosshair) SetViewport(width, height int) {}

func (c *Crosshair) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
	if c.shader != nil {
		c.shader.Delete()
	}
}
