package world

import (
	"math"
	"math/rand"
	"testing"
)

func TestCornerHashDeterministic(t *testing.T) {
	first := cornerHash(10, 20, 42)
	for i := 0; i < 100; i++ {
		if h := cornerHash(10, 20, 42); h != first {
			t.Fatalf("cornerHash not deterministic: %d then %d", first, h)
		}
	}
}

func TestCornerHashDifferentInputs(t *testing.T) {
	tests := []struct {
		name string
		a, b [3]int64
	}{
		{"x", [3]int64{1, 0, 42}, [3]int64{2, 0, 42}},
		{"z", [3]int64{0, 1, 42}, [3]int64{0, 2, 42}},
		{"seed", [3]int64{1, 1, 100}, [3]int64{1, 1, 200}},
		{"axis swap", [3]int64{1, 3, 42}, [3]int64{3, 1, 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := cornerHash(tt.a[0], tt.a[1], tt.a[2])
			h2 := cornerHash(tt.b[0], tt.b[1], tt.b[2])
			if h1 == h2 {
				t.Errorf("cornerHash%v == cornerHash%v = %d", tt.a, tt.b, h1)
			}
		})
	}
}

func TestValue2DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		if v := value2D(x, z, 42); v < 0 || v > 1 {
			t.Errorf("value2D(%f, %f) = %f, expected in [0,1]", x, z, v)
		}
	}
}

func TestValue2DMatchesLattice(t *testing.T) {
	// integer coordinates land exactly on corner values
	for _, p := range [][2]int64{{0, 0}, {3, -7}, {-12, 5}} {
		got := value2D(float64(p[0]), float64(p[1]), 42)
		if want := lattice(p[0], p[1], 42); got != want {
			t.Errorf("value2D%v = %f, lattice %f", p, got, want)
		}
	}
}

func TestValue2DContinuity(t *testing.T) {
	v1 := value2D(1.0, 1.0, 42)
	v2 := value2D(1.01, 1.0, 42)
	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("value2D jumped by %f over 0.01", diff)
	}
}

func TestFractalRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	f := fractal{seed: 42, octaves: 4, persistence: 0.5, lacunarity: 2}
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		if v := f.at(x, z); v < 0 || v > 1 {
			t.Errorf("fractal.at(%f, %f) = %f, expected in [0,1]", x, z, v)
		}
	}
}

func TestFractalSingleOctaveIsValueNoise(t *testing.T) {
	f := fractal{seed: 9, octaves: 1, persistence: 0.5, lacunarity: 2}
	if got, want := f.at(4.25, -1.5), value2D(4.25, -1.5, 9); got != want {
		t.Errorf("One octave gave %f, want %f", got, want)
	}
}

func TestFractalNoOctaves(t *testing.T) {
	if v := (fractal{seed: 42}).at(1.5, 2.5); v != 0 {
		t.Errorf("Zero octaves gave %f", v)
	}
}

func TestEase(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
	}
	for _, tt := range tests {
		if got := ease(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ease(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
