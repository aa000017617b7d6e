// Package terrain draws the loaded surface as flat-shaded column tops and the exposed sides
// between columns of different heights.
package terrain

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/graphics"
	renderer "windswept/internal/graphics/renderer"
	"windswept/internal/profiling"
	"windswept/internal/world"
)

const (
	// FloatsPerVertex is position then color.
	FloatsPerVertex = 6
	vertsPerQuad    = 6

	defaultRadius   = 48
	rebuildDistance = 8
	fogStartFrac    = 0.6
)

// side shading by Cardinals order: N, S, W, E
var sideShade = [4]float32{0.8, 0.8, 0.65, 0.65}

// Grid is what the mesher reads. *world.World satisfies it.
type Grid interface {
	TopSurfaceY(x, z int) int
	Block(pos world.BlockPos) world.BlockType
}

// BuildMesh returns triangles for the (2*radius+1)² columns around center. Columns with
// nothing loaded are skipped and so are sides facing them.
func BuildMesh(g Grid, center world.BlockPos, radius int) []float32 {
	defer profiling.Track("renderer.terrain.BuildMesh")()

	var out []float32
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			top := g.TopSurfaceY(x, z)
			if top == 0 {
				continue
			}
			color := world.BlockColor(g.Block(world.BlockPos{X: x, Y: top - 1, Z: z}))
			fx, fy, fz := float32(x), float32(top), float32(z)
			out = appendQuad(out, color,
				mgl32.Vec3{fx, fy, fz}, mgl32.Vec3{fx + 1, fy, fz},
				mgl32.Vec3{fx + 1, fy, fz + 1}, mgl32.Vec3{fx, fy, fz + 1})

			for i, off := range world.Cardinals {
				ntop := g.TopSurfaceY(x+off.X, z+off.Z)
				if ntop == 0 || ntop >= top {
					continue
				}
				a, b := sideEdge(fx, fz, off)
				lo, hi := float32(ntop), fy
				out = appendQuad(out, color.Mul(sideShade[i]),
					mgl32.Vec3{a.X(), lo, a.Y()}, mgl32.Vec3{b.X(), lo, b.Y()},
					mgl32.Vec3{b.X(), hi, b.Y()}, mgl32.Vec3{a.X(), hi, a.Y()})
			}
		}
	}
	return out
}

// sideEdge returns the XZ endpoints of the column edge facing off.
func sideEdge(x, z float32, off world.BlockPos) (mgl32.Vec2, mgl32.Vec2) {
	switch {
	case off.Z < 0:
		return mgl32.Vec2{x, z}, mgl32.Vec2{x + 1, z}
	case off.Z > 0:
		return mgl32.Vec2{x, z + 1}, mgl32.Vec2{x + 1, z + 1}
	case off.X < 0:
		return mgl32.Vec2{x, z}, mgl32.Vec2{x, z + 1}
	default:
		return mgl32.Vec2{x + 1, z}, mgl32.Vec2{x + 1, z + 1}
	}
}

func appendQuad(out []float32, c mgl32.Vec3, a, b, d, e mgl32.Vec3) []float32 {
	for _, v := range [vertsPerQuad]mgl32.Vec3{a, b, d, a, d, e} {
		out = append(out, v.X(), v.Y(), v.Z(), c.X(), c.Y(), c.Z())
	}
	return out
}

// Terrain implements the surface renderable. Meshes are built on a worker and uploaded
// when they arrive, so the previous mesh stays on screen meanwhile.
type Terrain struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
	count  int32

	pool    *WorkerPool
	results chan MeshResult
	pending bool

	radius int
	center world.BlockPos
	built  bool
	edits  uint64
}

// NewTerrain creates a terrain renderable meshing radius columns around the camera
func NewTerrain(radius int) *Terrain {
	if radius <= 0 {
		radius = defaultRadius
	}
	return &Terrain{radius: radius, results: make(chan MeshResult, 1)}
}

// Init compiles the shader and allocates buffers
func (t *Terrain) Init() error {
	var err error
	t.shader, err = graphics.LoadShader("terrain")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &t.vao)
	gl.BindVertexArray(t.vao)
	gl.GenBuffers(1, &t.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	stride := int32(FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.BindVertexArray(0)

	t.pool = NewWorkerPool(1, 1)
	return nil
}

// Invalidate forces a rebuild on the next frame, e.g. after the world was edited.
func (t *Terrain) Invalidate() {
	t.built = false
}

// Render remeshes when the camera has moved far enough, then draws
func (t *Terrain) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.terrain")()

	select {
	case res := <-t.results:
		t.upload(res)
		t.pending = false
	default:
	}

	if edits := ctx.World.Store().Edits(); edits != t.edits {
		t.edits = edits
		t.built = false
	}

	p := ctx.Camera.Position
	cam := world.PosOf(mgl64.Vec3{float64(p.X()), 0, float64(p.Z())})
	dx, dz := cam.X-t.center.X, cam.Z-t.center.Z
	if !t.pending && (!t.built || dx*dx+dz*dz > rebuildDistance*rebuildDistance) {
		job := MeshJob{Grid: ctx.World, Center: cam, Radius: t.radius, ResultChan: t.results}
		if t.pool.SubmitJob(job) {
			t.pending = true
			t.built = true
		}
	}
	if t.count == 0 {
		return
	}

	t.shader.Use()
	t.shader.SetMatrix4("view", ctx.View)
	t.shader.SetMatrix4("proj", ctx.Proj)
	t.shader.SetVector3("skyColor", ctx.Sky.X(), ctx.Sky.Y(), ctx.Sky.Z())
	t.shader.SetFloat("fogStart", float32(t.radius)*fogStartFrac)
	t.shader.SetFloat("fogEnd", float32(t.radius))

	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, t.count)
	gl.Enable(gl.CULL_FACE)
}

func (t *Terrain) upload(res MeshResult) {
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	if len(res.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(res.Vertices)*4, gl.Ptr(res.Vertices), gl.STATIC_DRAW)
	}
	t.count = int32(len(res.Vertices) / FloatsPerVertex)
	t.center = res.Center
}

// SetViewport is a no-op; the terrain only depends on the camera.
func (t *Terrain) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (t *Terrain) Dispose() {
	if t.pool != nil {
		t.pool.Shutdown()
	}
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
	}
	if t.vbo != 0 {
		gl.DeleteBuffers(1, &t.vbo)
	}
	if t.shader != nil {
		t.shader.Delete()
	}
}
