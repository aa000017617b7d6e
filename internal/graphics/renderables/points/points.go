// Package points draws live particles as round, fading sprites.
package points

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"windswept/internal/emission"
	"windswept/internal/graphics"
	renderer "windswept/internal/graphics/renderer"
	"windswept/internal/particles"
	"windswept/internal/profiling"
)

const (
	// FloatsPerVertex is position, RGBA, then size.
	FloatsPerVertex = 8
	pointScale      = 120.0
)

var kindColors = map[emission.Kind]mgl32.Vec4{
	emission.KindWind:        {0.95, 0.95, 0.95, 0.6},
	emission.KindCascade:     {0.85, 0.93, 1.0, 0.85},
	emission.KindWave:        {0.55, 0.75, 1.0, 0.8},
	emission.KindFoam:        {1.0, 1.0, 1.0, 0.9},
	emission.KindSplash:      {0.7, 0.85, 1.0, 0.85},
	emission.KindRipple:      {0.4, 0.6, 0.95, 0.7},
	emission.KindWaterSplash: {0.6, 0.8, 1.0, 0.85},
	emission.KindDustCloud:   {0.72, 0.64, 0.5, 0.7},
	emission.KindFootprint:   {0.3, 0.25, 0.2, 0.9},
}

// KindColor is the base RGBA for an effect kind.
func KindColor(k emission.Kind) mgl32.Vec4 {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return mgl32.Vec4{1, 0, 1, 1}
}

// AppendVertices writes one vertex per particle. Alpha fades out over the second half of the
// lifetime.
func AppendVertices(dst []float32, ps []particles.Particle) []float32 {
	for i := range ps {
		p := &ps[i]
		c := KindColor(p.Kind())
		fade := float32(1)
		if prog := p.Progress(); prog > 0.5 {
			fade = float32(max(0, 2*(1-prog)))
		}
		dst = append(dst,
			float32(p.Position.X()), float32(p.Position.Y()), float32(p.Position.Z()),
			c.X(), c.Y(), c.Z(), c.W()*fade,
			float32(max(p.Scale, 0.1)))
	}
	return dst
}

// Points implements particle rendering
type Points struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
	verts  []float32
}

// NewPoints creates a new particle renderable
func NewPoints() *Points {
	return &Points{}
}

// Init compiles the shader and allocates the streaming buffer
func (p *Points) Init() error {
	var err error
	p.shader, err = graphics.LoadShader("points")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	stride := int32(FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 7*4)
	gl.BindVertexArray(0)
	return nil
}

// Render uploads this frame's particles and draws them blended over the scene
func (p *Points) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.points")()

	p.verts = AppendVertices(p.verts[:0], ctx.Particles)
	if len(p.verts) == 0 {
		return
	}

	p.shader.Use()
	p.shader.SetMatrix4("view", ctx.View)
	p.shader.SetMatrix4("proj", ctx.Proj)
	p.shader.SetFloat("pointScale", pointScale)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)

	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	size := len(p.verts) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(p.verts))
	gl.DrawArrays(gl.POINTS, 0, int32(len(p.verts)/FloatsPerVertex))

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// SetViewport is a no-op; point sizes scale with distance only.
func (p *Points) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (p *Points) Dispose() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.shader != nil {
		p.shader.Delete()
	}
}
