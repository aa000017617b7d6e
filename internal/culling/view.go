// Package culling drops particle spawns the player cannot see.
package culling

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
	"windswept/internal/world"
)

const nearPlane = 0.05

// View is a viewer's frustum plus a distance limit.
type View struct {
	eye       mgl64.Vec3
	planes    [6]plane
	maxDistSq float64
	margin    float64
}

// NewView builds a view at eye looking along look.
func NewView(eye, look mgl64.Vec3, t config.CullingTuning) *View {
	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(look.Normalize().Dot(up)) > 0.999 {
		up = mgl64.Vec3{0, 0, 1}
	}
	proj := mgl64.Perspective(mgl64.DegToRad(t.FovDegrees), t.Aspect, nearPlane, t.MaxDistance+t.Margin)
	view := mgl64.LookAtV(eye, eye.Add(look), up)
	return &View{
		eye:       eye,
		planes:    extractFrustumPlanes(proj.Mul4(view)),
		maxDistSq: t.MaxDistance * t.MaxDistance,
		margin:    t.Margin,
	}
}

// FromEntity builds the view from an entity's eyes.
func FromEntity(e world.Entity, t config.CullingTuning) *View {
	return NewView(e.EyePosition(), e.LookVector(), t)
}

// ShouldRender reports whether pos is within range and inside the frustum
// inflated by the margin.
func (v *View) ShouldRender(pos mgl64.Vec3) bool {
	if pos.Sub(v.eye).LenSqr() > v.maxDistSq {
		return false
	}
	m := mgl64.Vec3{v.margin, v.margin, v.margin}
	return aabbIntersectsFrustumPlanes(pos.Sub(m), pos.Add(m), v.planes)
}

// Eye returns the view origin.
func (v *View) Eye() mgl64.Vec3 { return v.eye }

// Func adapts a predicate to the culler interfaces.
type Func func(pos mgl64.Vec3) bool

func (f Func) ShouldRender(pos mgl64.Vec3) bool { return f(pos) }

// None renders everything.
var None = Func(func(mgl64.Vec3) bool { return true })
