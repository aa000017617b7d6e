package wind

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func directionIndex(t *testing.T, dir mgl64.Vec3) int {
	t.Helper()
	if dir.Len() == 0 {
		return noneRoll
	}
	for i := 0; i < DirectionCount; i++ {
		if dir.ApproxEqualThreshold(CompassDirection(i), 1e-9) {
			return i
		}
	}
	t.Fatalf("direction %v is not a compass direction", dir)
	return -1
}

func TestAdvanceDistributionOverManyDays(t *testing.T) {
	const days = 9000
	m := NewMachine(0)
	rng := rand.New(rand.NewSource(42))

	var counts [DirectionCount + 1]int
	for day := int64(1); day <= days; day++ {
		s := m.Advance(day, false, false, DefaultWeights, rng)
		counts[directionIndex(t, s.Direction)]++
		if (s.Type == None) != (s.Direction.Len() == 0) {
			t.Fatalf("day %d: type %v with direction %v", day, s.Type, s.Direction)
		}
		if s.Type != None && math.Abs(s.Direction.Len()-1) > 1e-9 {
			t.Fatalf("day %d: direction not unit length: %v", day, s.Direction.Len())
		}
	}

	// each outcome expects 1000 with a standard deviation near 30
	for i, c := range counts {
		if c < 850 || c > 1150 {
			t.Errorf("outcome %d drawn %d times, expected about 1000", i, c)
		}
	}
}

func TestAdvanceThunderAlwaysStorm(t *testing.T) {
	m := NewMachine(0)
	rng := rand.New(rand.NewSource(3))
	for day := int64(1); day <= 500; day++ {
		s := m.Advance(day, true, true, DefaultWeights, rng)
		if s.Type != None && s.Type != Storm {
			t.Fatalf("day %d: expected Storm while thundering, got %v", day, s.Type)
		}
	}
}

func TestAdvanceRainSplit(t *testing.T) {
	m := NewMachine(0)
	rng := rand.New(rand.NewSource(9))
	counts := map[Type]int{}
	windy := 0
	for day := int64(1); day <= 20000; day++ {
		s := m.Advance(day, false, true, DefaultWeights, rng)
		if s.Type == None {
			continue
		}
		windy++
		counts[s.Type]++
	}
	heavy := float64(counts[Heavy]) / float64(windy)
	soft := float64(counts[Soft]) / float64(windy)
	normal := float64(counts[Normal]) / float64(windy)
	if math.Abs(heavy-0.6) > 0.03 || math.Abs(soft-0.2) > 0.03 || math.Abs(normal-0.2) > 0.03 {
		t.Errorf("rain split heavy=%.3f soft=%.3f normal=%.3f, want 0.6/0.2/0.2", heavy, soft, normal)
	}
	if counts[Storm] != 0 {
		t.Errorf("Storm without thunder")
	}
}

func TestAdvanceClearUsesBiomeWeights(t *testing.T) {
	m := NewMachine(0)
	rng := rand.New(rand.NewSource(11))
	caves := mustWeights(0.7, 0.3, 0)
	for day := int64(1); day <= 3000; day++ {
		if s := m.Advance(day, false, false, caves, rng); s.Type == Heavy {
			t.Fatalf("day %d: heavy rolled with zero heavy weight", day)
		}
	}
}

func TestAdvanceOncePerDay(t *testing.T) {
	m := NewMachine(4)
	rng := rand.New(rand.NewSource(1))
	before := m.State()

	if s := m.Advance(4, true, true, DefaultWeights, rng); s != before {
		t.Errorf("Advance on the same day changed state: %v -> %v", before, s)
	}
	if s := m.Advance(3, true, true, DefaultWeights, rng); s != before {
		t.Errorf("Advance on an earlier day changed state")
	}
	s := m.Advance(5, false, false, DefaultWeights, rng)
	if s.LastChangeDay != 5 {
		t.Errorf("Expected LastChangeDay 5, got %d", s.LastChangeDay)
	}
	if again := m.Advance(5, true, true, DefaultWeights, rng); again != s {
		t.Errorf("Second advance on day 5 changed state")
	}
}

func TestSetWindOverridesAndRestartsClock(t *testing.T) {
	m := NewMachine(0)
	s := m.SetWind(mgl64.Vec3{0, 0, 3}, Heavy, 12)
	if s.Type != Heavy || s.LastChangeDay != 12 {
		t.Fatalf("Unexpected state %v", s)
	}
	if !s.Direction.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Expected normalized direction, got %v", s.Direction)
	}
	dir, strength := m.CurrentWindVector()
	if strength != 2 || dir != s.Direction {
		t.Errorf("CurrentWindVector = %v, %v", dir, strength)
	}

	rng := rand.New(rand.NewSource(1))
	if got := m.Advance(12, true, true, DefaultWeights, rng); got != s {
		t.Errorf("Override was replaced on the same day")
	}

	calm := m.SetWind(mgl64.Vec3{1, 0, 0}, None, 12)
	if calm.Direction.Len() != 0 {
		t.Errorf("None must carry a zero direction, got %v", calm.Direction)
	}
	if _, strength := m.CurrentWindVector(); strength != 0 {
		t.Errorf("None must have zero strength")
	}
}

func TestReset(t *testing.T) {
	m := NewMachine(0)
	m.SetWind(mgl64.Vec3{0, 0, 1}, Storm, 3)
	m.Reset(7)
	s := m.State()
	if s.Type != Normal || s.LastChangeDay != 7 {
		t.Errorf("Reset state = %v", s)
	}
	if s.Direction.X() <= 0.99 {
		t.Errorf("Expected easterly start direction, got %v", s.Direction)
	}
}

func TestParseType(t *testing.T) {
	for _, want := range []Type{None, Soft, Normal, Heavy, Storm} {
		got, err := ParseType(" " + want.String() + " ")
		if err != nil || got != want {
			t.Errorf("ParseType(%q) = %v, %v", want.String(), got, err)
		}
	}
	if _, err := ParseType("gale"); err == nil {
		t.Errorf("Expected error for unknown type")
	}
}

func TestStrengths(t *testing.T) {
	tests := []struct {
		typ  Type
		want float64
	}{
		{None, 0}, {Soft, 0.5}, {Normal, 1}, {Heavy, 2}, {Storm, 4},
	}
	for _, tt := range tests {
		if got := tt.typ.Strength(); got != tt.want {
			t.Errorf("%v.Strength() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func BenchmarkAdvance(b *testing.B) {
	m := NewMachine(0)
	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Advance(int64(i+1), false, false, DefaultWeights, rng)
	}
}
