// Package wind picks the daily wind and turns it into particles and a drift vector.
package wind

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Type is the wind intensity class.
type Type uint8

const (
	None Type = iota
	Soft
	Normal
	Heavy
	Storm
)

var typeNames = [...]string{"none", "soft", "normal", "heavy", "storm"}

func (t Type) String() string {
	if int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Strength is the scalar multiplier consumers apply to the direction.
func (t Type) Strength() float64 {
	switch t {
	case Soft:
		return 0.5
	case Normal:
		return 1
	case Heavy:
		return 2
	case Storm:
		return 4
	default:
		return 0
	}
}

// ParseType accepts the lowercase type names.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == s {
			return Type(i), nil
		}
	}
	return None, fmt.Errorf("unknown wind type %q (want one of %s)", s, strings.Join(typeNames[:], ", "))
}

// DirectionCount is the number of compass directions a day can roll.
const DirectionCount = 8

// lift is the fixed upward component added before normalising a compass direction.
const lift = 0.1

// CompassDirection returns the unit direction for compass index i (0 = +X, 45° steps towards +Z).
func CompassDirection(i int) mgl64.Vec3 {
	angle := float64(i) * math.Pi / 4
	return mgl64.Vec3{math.Cos(angle), lift, math.Sin(angle)}.Normalize()
}

// State is one immutable wind reading.
// Direction is unit length, or exactly zero when Type is None.
type State struct {
	Direction     mgl64.Vec3
	Type          Type
	LastChangeDay int64
}

// Strength returns the type's scalar strength.
func (s State) Strength() float64 { return s.Type.Strength() }

// Vector is Direction scaled by Strength.
func (s State) Vector() mgl64.Vec3 { return s.Direction.Mul(s.Strength()) }

// Yaw is the heading of the horizontal direction in radians, atan2(z, x).
func (s State) Yaw() float64 { return math.Atan2(s.Direction.Z(), s.Direction.X()) }

func (s State) String() string {
	return fmt.Sprintf("%s (%.2f, %.2f, %.2f) since day %d", s.Type, s.Direction.X(), s.Direction.Y(), s.Direction.Z(), s.LastChangeDay)
}
