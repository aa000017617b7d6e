package ambient

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
	"windswept/internal/wind"
	"windswept/internal/world"
)

func TestWindTarget(t *testing.T) {
	e := NewEngine(newFakeSink(), config.Default().Ambient, quietLogger())
	tests := []struct {
		typ  wind.Type
		want float64
	}{
		{wind.None, 0}, {wind.Soft, 0.2}, {wind.Normal, 0.4}, {wind.Heavy, 0.8}, {wind.Storm, 0.8},
	}
	for _, tt := range tests {
		if got := e.WindTarget(tt.typ); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WindTarget(%v) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestCascadeTarget(t *testing.T) {
	e := NewEngine(newFakeSink(), config.Default().Ambient, quietLogger())
	tests := []struct {
		dist, want float64
	}{
		{0, 1.2}, {6, 0.6}, {12, 0}, {30, 0},
	}
	for _, tt := range tests {
		if got := e.CascadeTarget(tt.dist); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CascadeTarget(%v) = %v, want %v", tt.dist, got, tt.want)
		}
	}
}

func TestEngineDrivesBothChannels(t *testing.T) {
	sink := newFakeSink()
	e := NewEngine(sink, config.Default().Ambient, quietLogger())
	impact := world.BlockPos{X: 3, Y: 64, Z: 0}
	in := Inputs{
		Wind:       wind.Heavy,
		Listener:   mgl64.Vec3{0.5, 64.5, 0.5},
		Cascade:    impact,
		HasCascade: true,
	}
	for i := 0; i < 40; i++ {
		e.Update(dt, in)
	}
	if e.Wind().Sound() != SoundHeavyWind || math.Abs(e.Wind().Volume()-0.8) > 0.01 {
		t.Errorf("Wind channel at %v/%v", e.Wind().Sound(), e.Wind().Volume())
	}
	if e.Cascade().Sound() != SoundCascade || e.Cascade().Position() != impact.Center() {
		t.Errorf("Cascade channel at %v %v", e.Cascade().Sound(), e.Cascade().Position())
	}
	if math.Abs(e.Cascade().Volume()-0.9) > 0.01 {
		t.Errorf("Cascade volume %v, want about 0.9 at distance 3", e.Cascade().Volume())
	}
	if len(sink.playing) != 2 {
		t.Errorf("Expected 2 handles, got %d", len(sink.playing))
	}

	starts, stops := sink.starts, sink.stops
	in.Cascade = world.BlockPos{X: -3, Y: 64, Z: 0}
	e.Update(dt, in)
	if sink.starts != starts+1 || sink.stops != stops+1 {
		t.Errorf("Moving the waterfall should swap one handle")
	}

	in.HasCascade = false
	for i := 0; i < 40 && e.Cascade().State() != Idle; i++ {
		e.Update(dt, in)
	}
	if e.Cascade().State() != Idle {
		t.Errorf("Cascade channel should fade out and go idle")
	}
	if e.Wind().State() == Idle {
		t.Errorf("Wind channel stopped with the cascade")
	}

	e.Reset()
	if len(sink.playing) != 0 || e.Wind().State() != Idle {
		t.Errorf("Reset left %d handles", len(sink.playing))
	}
}

func TestCalmWindIsSilent(t *testing.T) {
	sink := newFakeSink()
	e := NewEngine(sink, config.Default().Ambient, quietLogger())
	for i := 0; i < 20; i++ {
		e.Update(dt, Inputs{Wind: wind.None})
	}
	if sink.starts != 0 {
		t.Errorf("Calm air started %d sounds", sink.starts)
	}
}
