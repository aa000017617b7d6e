package wind

import (
	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
)

// VectorSource is the post-step hook particles consult each integration step.
// *Machine and the driver's published snapshot both satisfy it.
type VectorSource interface {
	CurrentWindVector() (direction mgl64.Vec3, strength float64)
}

// DriftProfile is how strongly one particle family follows the wind.
type DriftProfile struct {
	Base float64
	// Drag multiplies horizontal velocity when the wind is stronger than DragAbove. Zero disables it.
	Drag      float64
	DragAbove float64
}

// Profiles are the drift families affected by wind.
type Profiles struct {
	Leaves, Smoke, Cascade, Dust DriftProfile
}

// NewProfiles builds the drift families from tuning.
func NewProfiles(t config.DriftTuning) Profiles {
	return Profiles{
		Leaves:  DriftProfile{Base: t.Leaves},
		Smoke:   DriftProfile{Base: t.Smoke},
		Cascade: DriftProfile{Base: t.Cascade, Drag: t.CascadeDrag, DragAbove: t.DragStrength},
		Dust:    DriftProfile{Base: t.Dust, Drag: t.DustDrag, DragAbove: t.DragStrength},
	}
}

// Drift returns velocity nudged by the wind for one step.
func Drift(velocity mgl64.Vec3, src VectorSource, p DriftProfile) mgl64.Vec3 {
	dir, strength := src.CurrentWindVector()
	if strength == 0 {
		return velocity
	}
	v := velocity.Add(dir.Mul(strength * p.Base))
	if p.Drag > 0 && strength > p.DragAbove {
		v[0] *= p.Drag
		v[2] *= p.Drag
	}
	return v
}
