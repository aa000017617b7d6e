// Package player drives the scripted bodies of a headless session: the local player walking a
// route, wandering animals, a galloping horse and items dropped into water.
package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/world"
)

// Per-tick motion constants, in blocks and ticks.
const (
	Gravity          = 0.08
	TerminalVelocity = -3.92

	WalkSpeed        = 0.215
	SprintMultiplier = 1.3

	AirDrag   = 0.98 // vertical drag per tick
	WaterDrag = 0.8
	SwimLift  = 0.03
)

// Fall applies gravity, or water drag and lift, to the vertical velocity.
func Fall(e *world.Entity) {
	v := e.Velocity.Y()
	switch {
	case e.TouchingWater:
		v = v*WaterDrag + SwimLift
		if !e.Submerged && v > 0 {
			// float at the surface
			v = 0
		}
	case e.OnGround && v <= 0:
		v = 0
	default:
		v = (v - Gravity) * AirDrag
	}
	e.Velocity[1] = math.Max(v, TerminalVelocity)
}

// Steer points the body at target and sets its horizontal velocity to speed. It reports
// whether the body is within reach of the target, in which case it stops.
func Steer(e *world.Entity, target mgl64.Vec3, speed float64) bool {
	d := mgl64.Vec2{target.X() - e.Position.X(), target.Z() - e.Position.Z()}
	if d.Len() <= math.Max(speed, 0.3) {
		e.Velocity[0], e.Velocity[2] = 0, 0
		return true
	}
	d = d.Normalize()
	e.Velocity[0], e.Velocity[2] = d.X()*speed, d.Y()*speed
	e.Yaw = YawOf(d.X(), d.Y())
	return false
}

// YawOf returns the yaw in degrees that looks along the horizontal direction (dx, dz).
func YawOf(dx, dz float64) float64 {
	return mgl64.RadToDeg(math.Atan2(-dx, dz))
}

// Stop zeroes the horizontal velocity.
func Stop(e *world.Entity) {
	e.Velocity[0], e.Velocity[2] = 0, 0
}
