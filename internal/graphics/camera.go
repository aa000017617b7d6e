package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"windswept/internal/world"
)

const (
	DefaultFOV  = 60.0
	maxPitch    = 89.0
	sensitivity = 0.1
)

// Camera handles the view and projection matrices. Yaw and Pitch are in degrees and follow
// the entity convention: yaw 0 faces +Z, positive pitch looks down.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	firstMouse   bool
	lastX, lastY float64
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:        DefaultFOV,
		NearPlane:  0.05,
		FarPlane:   500.0,
		firstMouse: true,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. A zero height (minimized window) is ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// Front is the unit look direction.
func (c *Camera) Front() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(-math.Sin(yaw) * math.Cos(pitch)),
		float32(-math.Sin(pitch)),
		float32(math.Cos(yaw) * math.Cos(pitch)),
	}
}

// Right is the horizontal unit vector to the right of the look direction.
func (c *Camera) Right() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	return mgl32.Vec3{float32(-math.Cos(yaw)), 0, float32(-math.Sin(yaw))}
}

// HandleMouseMovement turns the camera by the cursor delta since the last call.
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}
	dx := float32(xpos-c.lastX) * sensitivity
	dy := float32(ypos-c.lastY) * sensitivity
	c.lastX, c.lastY = xpos, ypos

	c.Yaw = float32(math.Mod(float64(c.Yaw+dx), 360))
	c.Pitch = mgl32.Clamp(c.Pitch+dy, -maxPitch, maxPitch)
}

// ResetMouse makes the next cursor event a reference point instead of a turn.
func (c *Camera) ResetMouse() {
	c.firstMouse = true
}

// Move flies the camera. forward ignores pitch so looking down does not sink the camera.
func (c *Camera) Move(strafe, forward, up, distance float32) {
	f := c.Front()
	flat := mgl32.Vec3{f.X(), 0, f.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	step := flat.Mul(forward).Add(c.Right().Mul(strafe)).Add(mgl32.Vec3{0, up, 0})
	if step.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(step.Normalize().Mul(distance))
}

// Follow puts the camera at the entity's eyes, looking where it looks.
func (c *Camera) Follow(e world.Entity) {
	eye := e.EyePosition()
	c.Position = mgl32.Vec3{float32(eye.X()), float32(eye.Y()), float32(eye.Z())}
	c.Yaw = float32(e.Yaw)
	c.Pitch = float32(e.Pitch)
}
