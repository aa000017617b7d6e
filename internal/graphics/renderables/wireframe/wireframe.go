// Package wireframe outlines detected water features and the hovered cell.
package wireframe

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"windswept/internal/graphics"
	renderer "windswept/internal/graphics/renderer"
	"windswept/internal/profiling"
	"windswept/internal/water"
	"windswept/internal/world"
)

var (
	calmImpact  = mgl32.Vec3{1.0, 0.85, 0.2}
	heavyImpact = mgl32.Vec3{0.9, 0.1, 0.1}
	shoreColor  = mgl32.Vec3{0.1, 0.9, 0.9}
	cliffColor  = mgl32.Vec3{0.95, 0.5, 0.1}
	hoverColor  = mgl32.Vec3{0, 0, 0}
)

var cubeVertices = cubeEdges()

// cubeEdges joins every pair of unit cube corners that differ on one axis.
func cubeEdges() []float32 {
	var out []float32
	for a := 0; a < 8; a++ {
		for axis := 0; axis < 3; axis++ {
			bit := 1 << axis
			if a&bit != 0 {
				continue
			}
			out = append(out, corner(a)...)
			out = append(out, corner(a|bit)...)
		}
	}
	return out
}

func corner(i int) []float32 {
	c := make([]float32, 3)
	for axis := range c {
		c[axis] = -0.5
		if i&(1<<axis) != 0 {
			c[axis] = 0.5
		}
	}
	return c
}

// ImpactColor shades an impact from yellow at intensity 1 to red at the cap.
func ImpactColor(intensity, ceiling float64) mgl32.Vec3 {
	t := float32(0)
	if ceiling > 1 {
		t = float32((intensity - 1) / (ceiling - 1))
	}
	t = mgl32.Clamp(t, 0, 1)
	return calmImpact.Add(heavyImpact.Sub(calmImpact).Mul(t))
}

// EdgeColor tells cliffs apart from beach edges.
func EdgeColor(e water.Edge) mgl32.Vec3 {
	if e.IsCliff {
		return cliffColor
	}
	return shoreColor
}

type Wireframe struct {
	shader   *graphics.Shader
	vao, vbo uint32
	// IntensityCap maps impact intensity onto the colour ramp.
	IntensityCap float64
}

func NewWireframe() *Wireframe {
	return &Wireframe{IntensityCap: 2.5}
}

func (w *Wireframe) Init() error {
	sh, err := graphics.LoadShader("wireframe")
	if err != nil {
		return err
	}
	w.shader = sh

	gl.GenVertexArrays(1, &w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindVertexArray(w.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return nil
}

func (w *Wireframe) Render(ctx renderer.RenderContext) {
	if len(ctx.Impacts) == 0 && len(ctx.Edges) == 0 && !ctx.Hovered.Hit {
		return
	}
	defer profiling.Track("renderer.wireframe")()

	w.shader.Use()
	w.shader.SetMatrix4("proj", ctx.Proj)
	w.shader.SetMatrix4("view", ctx.View)
	gl.BindVertexArray(w.vao)

	for _, im := range ctx.Impacts {
		w.outline(im.Position, 1.02, ImpactColor(im.Intensity, w.IntensityCap))
	}
	for _, e := range ctx.Edges {
		w.outline(e.Position, 1.0, EdgeColor(e))
	}
	if ctx.Hovered.Hit {
		w.outline(ctx.Hovered.HitPosition, 1.01, hoverColor)
	}
	gl.BindVertexArray(0)
}

func (w *Wireframe) outline(pos world.BlockPos, scale float32, c mgl32.Vec3) {
	w.shader.SetMatrix4("model", Model(pos, scale))
	w.shader.SetVector3("color", c.X(), c.Y(), c.Z())
	gl.DrawArrays(gl.LINES, 0, int32(len(cubeVertices)/3))
}

// Model places the unit cube over the cell at pos, grown by scale around its center.
func Model(pos world.BlockPos, scale float32) mgl32.Mat4 {
	center := pos.Center()
	return mgl32.Translate3D(float32(center.X()), float32(center.Y()), float32(center.Z())).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

func (w *Wireframe) SetViewport(width, height int) {}

func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}
