package crosshair

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"windswept/internal/physics"
	"windswept/internal/world"
)

type fluidMap map[world.BlockPos]world.FluidState

func (m fluidMap) FluidAt(pos world.BlockPos) world.FluidState { return m[pos] }

func TestTint(t *testing.T) {
	pool := world.BlockPos{X: 1, Y: 64, Z: 1}
	grid := fluidMap{pool: world.FluidStill}

	tests := []struct {
		name    string
		hovered physics.RaycastResult
		want    mgl32.Vec4
	}{
		{"miss", physics.RaycastResult{}, missTint},
		{"ground", physics.RaycastResult{Hit: true, HitPosition: world.BlockPos{Y: 64}}, solidTint},
		{"water", physics.RaycastResult{Hit: true, HitPosition: pool}, fluidTint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tint(grid, tt.hovered); got != tt.want {
				t.Errorf("Tint = %v, want %v", got, tt.want)
			}
		})
	}
	if got := Tint(nil, physics.RaycastResult{Hit: true}); got != solidTint {
		t.Errorf("Tint without a grid = %v", got)
	}
}

func TestSegmentsLeaveCenterOpen(t *testing.T) {
	if len(Segments) != 16 {
		t.Fatalf("%d floats, want four line segments", len(Segments))
	}
	for i := 0; i < len(Segments); i += 2 {
		x, y := Segments[i], Segments[i+1]
		if x*x+y*y < gap*gap*0.99 {
			t.Errorf("Vertex (%v, %v) inside the gap", x, y)
		}
	}
}
