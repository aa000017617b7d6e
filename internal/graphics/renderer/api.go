package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"windswept/internal/graphics"
	"windswept/internal/particles"
	"windswept/internal/physics"
	"windswept/internal/water"
	"windswept/internal/wind"
	"windswept/internal/world"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *graphics.Camera
	World  *world.World
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
	Sky    mgl32.Vec3

	Particles []particles.Particle
	Impacts   []water.Impact
	Edges     []water.Edge
	Wind      wind.State
	Hovered   physics.RaycastResult
	// Status is drawn by the HUD, one line each.
	Status []string
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
