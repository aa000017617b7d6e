package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/wind"
)

func TestSkyColor(t *testing.T) {
	calm := SkyColor(wind.State{}, false)
	if calm != clearSky {
		t.Errorf("Calm sky = %v", calm)
	}
	storm := SkyColor(wind.State{Direction: mgl64.Vec3{1, 0, 0}, Type: wind.Storm}, false)
	if storm.Z() >= calm.Z() {
		t.Errorf("Storm sky %v not darker than %v", storm, calm)
	}
	wet := SkyColor(wind.State{Direction: mgl64.Vec3{1, 0, 0}, Type: wind.Storm}, true)
	if wet.Z() >= storm.Z() {
		t.Errorf("Rain should darken the storm sky further")
	}
	for i := 0; i < 3; i++ {
		if wet[i] < stormSky[i]-1e-6 || wet[i] > clearSky[i]+1e-6 {
			t.Errorf("Channel %d out of range: %v", i, wet[i])
		}
	}
}

func TestStepFOV(t *testing.T) {
	tests := []struct {
		current, target float32
		dt              float64
		want            float32
	}{
		{60, 70, 0.03125, 63.125},
		{60, 70, 1, 70},
		{70, 60, 0.0625, 63.75},
		{65, 65, 0.5, 65},
	}
	for _, tt := range tests {
		if got := StepFOV(tt.current, tt.target, tt.dt); got != tt.want {
			t.Errorf("StepFOV(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.dt, got, tt.want)
		}
	}
}
