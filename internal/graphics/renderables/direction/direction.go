// Package direction draws the wind compass: an arrow showing where the wind blows relative to
// the camera, sized by wind strength, over the letter of the camera heading.
package direction

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/graphics"
	renderer "windswept/internal/graphics/renderer"
	"windswept/internal/profiling"
	"windswept/internal/wind"
)

const (
	arrowY  = -0.85
	letterY = -0.72
)

// span is a run of vertices in the shared buffer.
type span struct {
	first, count int32
	mode         uint32
}

// shapes lists every outline drawn by the compass, in buffer order. The arrow is a shaft
// loop and a head loop pointing up; letters are line pairs.
var shapes = []struct {
	name   string
	mode   uint32
	points []float32
}{
	{"shaft", gl.LINE_LOOP, []float32{-0.01, -0.08, 0.01, -0.08, 0.01, -0.02, -0.01, -0.02}},
	{"head", gl.LINE_LOOP, []float32{-0.03, -0.02, 0.03, -0.02, 0, 0.02}},
	{"N", gl.LINES, []float32{
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, -0.02,
		0.02, -0.02, 0.02, 0.02,
	}},
	{"E", gl.LINES, []float32{
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, 0.02,
		-0.02, 0, 0.01, 0,
		-0.02, -0.02, 0.02, -0.02,
	}},
	{"S", gl.LINES, []float32{
		0.02, 0.02, -0.02, 0.02,
		-0.02, 0.02, -0.02, 0,
		-0.02, 0, 0.02, 0,
		0.02, 0, 0.02, -0.02,
		0.02, -0.02, -0.02, -0.02,
	}},
	{"W", gl.LINES, []float32{
		-0.02, 0.02, -0.02, -0.02,
		-0.02, -0.02, -0.01, 0,
		-0.01, 0, 0.01, -0.02,
		0.01, -0.02, 0.02, 0,
		0.02, 0, 0.02, 0.02,
	}},
}

// layout packs shapes into one vertex slice and indexes the spans by name.
func layout() ([]float32, map[string]span) {
	var verts []float32
	spans := make(map[string]span, len(shapes))
	for _, s := range shapes {
		spans[s.name] = span{first: int32(len(verts) / 2), count: int32(len(s.points) / 2), mode: s.mode}
		verts = append(verts, s.points...)
	}
	return verts, spans
}

var typeColors = [...]mgl32.Vec3{
	wind.None:   {0.5, 0.5, 0.5},
	wind.Soft:   {1.0, 1.0, 1.0},
	wind.Normal: {1.0, 0.9, 0.2},
	wind.Heavy:  {1.0, 0.55, 0.1},
	wind.Storm:  {1.0, 0.1, 0.1},
}

// ArrowRotation is the counter-clockwise screen rotation, in radians, that points the arrow
// where the wind blows relative to a camera facing camYaw degrees.
func ArrowRotation(dir mgl64.Vec3, camYaw float32) float32 {
	windYaw := mgl64.RadToDeg(math.Atan2(-dir.X(), dir.Z()))
	return -mgl32.DegToRad(float32(windYaw) - camYaw)
}

// ArrowScale grows the arrow with wind strength.
func ArrowScale(strength float64) float32 {
	return mgl32.Clamp(float32(0.75+0.125*strength), 0.75, 1.25)
}

// Cardinal names the compass direction a camera facing yaw degrees looks toward.
// Yaw 0 faces +Z, which is south.
func Cardinal(yaw float32) string {
	deg := math.Mod(float64(yaw), 360)
	if deg < 0 {
		deg += 360
	}
	return [...]string{"S", "W", "N", "E"}[int(math.Floor((deg+45)/90))%4]
}

// TypeColor is the arrow colour for a wind type.
func TypeColor(t wind.Type) mgl32.Vec3 {
	if int(t) >= len(typeColors) {
		return typeColors[wind.None]
	}
	return typeColors[t]
}

type Direction struct {
	shader   *graphics.Shader
	vao, vbo uint32
	spans    map[string]span
}

func NewDirection() *Direction {
	return &Direction{}
}

func (d *Direction) Init() error {
	sh, err := graphics.LoadShader("direction")
	if err != nil {
		return err
	}
	d.shader = sh

	verts, spans := layout()
	d.spans = spans
	gl.GenVertexArrays(1, &d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return nil
}

func (d *Direction) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.direction")()

	d.shader.Use()
	d.shader.SetFloat("aspectRatio", ctx.Camera.AspectRatio)
	d.shader.SetFloat("positionX", 0)
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(d.vao)

	if st := ctx.Wind; st.Type != wind.None {
		d.place(TypeColor(st.Type), arrowY, ArrowRotation(st.Direction, ctx.Camera.Yaw), ArrowScale(st.Strength()))
		d.draw("shaft")
		d.draw("head")
	}
	d.place(mgl32.Vec3{1, 1, 1}, letterY, 0, 1)
	d.draw(Cardinal(ctx.Camera.Yaw))

	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (d *Direction) place(c mgl32.Vec3, y, rotation, scale float32) {
	d.shader.SetVector3("directionColor", c.X(), c.Y(), c.Z())
	d.shader.SetFloat("positionY", y)
	d.shader.SetFloat("rotation", rotation)
	d.shader.SetFloat("scale", scale)
}

func (d *Direction) draw(name string) {
	if s, ok := d.spans[name]; ok {
		gl.DrawArrays(s.mode, s.first, s.count)
	}
}

func (d *Direction) SetViewport(width, height int) {}

func (d *Direction) Dispose() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		gl.DeleteBuffers(1, &d.vbo)
	}
	if d.shader != nil {
		d.shader.Delete()
	}
}
