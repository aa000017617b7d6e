package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EntityKind is the coarse class used to pick effect settings.
type EntityKind uint8

const (
	KindPlayer EntityKind = iota
	KindAnimal
	KindHorse
	KindMonster
	KindItem
	KindProjectile
	KindBoat
	KindRavager
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAnimal:
		return "animal"
	case KindHorse:
		return "horse"
	case KindMonster:
		return "monster"
	case KindItem:
		return "item"
	case KindProjectile:
		return "projectile"
	case KindBoat:
		return "boat"
	case KindRavager:
		return "ravager"
	default:
		return "entity"
	}
}

// Entity is a read-only snapshot of a moving body. Velocity is in blocks per tick.
type Entity struct {
	ID       uuid.UUID
	Kind     EntityKind
	Position mgl64.Vec3 // feet
	Velocity mgl64.Vec3
	Width    float64
	Height   float64
	Yaw      float64 // degrees, 0 faces +Z
	Pitch    float64 // degrees, positive looks down

	OnGround      bool
	Sprinting     bool
	Swimming      bool
	Spectator     bool
	TouchingWater bool
	Submerged     bool
	Alive         bool

	// Vehicle is the entity being ridden, uuid.Nil when on foot.
	Vehicle uuid.UUID
}

// NewEntity returns a live entity with a fresh id.
func NewEntity(kind EntityKind, pos mgl64.Vec3, width, height float64) *Entity {
	return &Entity{
		ID:       uuid.New(),
		Kind:     kind,
		Position: pos,
		Width:    width,
		Height:   height,
		Alive:    true,
	}
}

// EyePosition returns the eye point, at 85% of the body height.
func (e *Entity) EyePosition() mgl64.Vec3 {
	return e.Position.Add(mgl64.Vec3{0, e.Height * 0.85, 0})
}

// LookVector returns the unit view direction from yaw and pitch.
func (e *Entity) LookVector() mgl64.Vec3 {
	yaw := mgl64.DegToRad(e.Yaw)
	pitch := mgl64.DegToRad(e.Pitch)
	return mgl64.Vec3{
		-math.Sin(yaw) * math.Cos(pitch),
		-math.Sin(pitch),
		math.Cos(yaw) * math.Cos(pitch),
	}
}

// HorizontalSpeed is the XZ speed in blocks per tick.
func (e *Entity) HorizontalSpeed() float64 {
	return math.Hypot(e.Velocity.X(), e.Velocity.Z())
}

// BlockPos returns the cell containing the entity's feet.
func (e *Entity) BlockPos() BlockPos {
	return PosOf(e.Position)
}
