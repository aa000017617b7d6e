package entityfx

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/world"
)

func TestFootOffset(t *testing.T) {
	tests := []struct {
		width, want float64
	}{
		{0, 0.2}, {0.1, 0.08}, {0.6, 0.18}, {1.4, 0.42}, {3.0, 0.6},
	}
	for _, tt := range tests {
		if got := FootOffset(tt.width); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("FootOffset(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestSurfaceAt(t *testing.T) {
	w := newTestWorld(t)
	w.SetBlock(world.BlockPos{X: 1, Y: ground, Z: 0}, world.BlockTypeSand)
	w.SetBlock(world.BlockPos{X: 2, Y: ground, Z: 0}, world.BlockTypeSnow)
	w.SetBlock(world.BlockPos{X: 3, Y: ground, Z: 0}, world.BlockTypeRedSand)
	w.SetBlock(world.BlockPos{X: 4, Y: ground, Z: 0}, world.BlockTypeMud)

	tests := []struct {
		x    int
		want emission.FootprintSurface
	}{
		{0, emission.SurfacePlain},
		{1, emission.SurfaceSand},
		{2, emission.SurfaceSnow},
		{3, emission.SurfaceRedSand},
		{4, emission.SurfaceMuddy},
	}
	for _, tt := range tests {
		if got := SurfaceAt(w, world.BlockPos{X: tt.x, Y: ground + 1, Z: 0}); got != tt.want {
			t.Errorf("SurfaceAt(x=%d) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func walkPlayer(f *Footprints, w *world.World, p *world.Entity, ticks int, step float64, rec *recorder) int {
	n := 0
	for i := 0; i < ticks; i++ {
		p.Position[0] += step
		p.Velocity = mgl64.Vec3{step, 0, 0}
		n += f.Update(p.Position, []world.Entity{*p}, w, rec)
	}
	return n
}

func TestPlayerStepsAlternateFeet(t *testing.T) {
	w := newTestWorld(t)
	f := NewFootprints(config.Default().Entities)
	rec := &recorder{}

	p := entity(world.KindPlayer, mgl64.Vec3{0.5, ground + 1, 0.5})
	p.OnGround = true
	if n := walkPlayer(f, w, &p, 10, 0.25, rec); n != 3 {
		t.Fatalf("Expected 3 prints over 2.25 blocks, got %d", n)
	}

	var sides []float64
	for _, it := range rec.items {
		fp := it.effect.(emission.Footprint)
		if fp.Wet || fp.Surface != emission.SurfacePlain {
			t.Errorf("Dry grass print came out as %+v", fp)
		}
		sides = append(sides, it.pos.Z())
	}
	// yaw 0 puts the foot offset on the x axis
	if rec.items[0].pos.X() >= 0.5+4*0.25 {
		t.Errorf("First print should be the left foot, at x=%v", rec.items[0].pos.X())
	}
	if len(sides) != 3 || sides[0] != 0.5 {
		t.Errorf("Unexpected print z values %v", sides)
	}
	d0 := rec.items[0].pos.X() - (0.5 + 4*0.25)
	d1 := rec.items[1].pos.X() - (0.5 + 7*0.25)
	if math.Abs(d0+0.18) > 1e-9 || math.Abs(d1-0.18) > 1e-9 {
		t.Errorf("Feet offsets %v and %v, want -0.18 and 0.18", d0, d1)
	}
}

func TestStandingPlayerLeavesNoPrints(t *testing.T) {
	w := newTestWorld(t)
	f := NewFootprints(config.Default().Entities)
	p := entity(world.KindPlayer, mgl64.Vec3{0.5, ground + 1, 0.5})
	p.OnGround = true
	if n := walkPlayer(f, w, &p, 40, 0.05, &recorder{}); n != 0 {
		t.Errorf("Shuffling below walking speed left %d prints", n)
	}
}

func TestWetPrintsAfterWater(t *testing.T) {
	w := newTestWorld(t)
	tun := config.Default().Entities
	f := NewFootprints(tun)
	rec := &recorder{}

	p := entity(world.KindPlayer, mgl64.Vec3{0.5, ground + 1, 0.5})
	p.OnGround = true
	p.TouchingWater = true
	f.Update(p.Position, []world.Entity{p}, w, rec)
	p.TouchingWater = false
	if !f.Wet(p.ID) {
		t.Fatalf("Player should be wet after touching water")
	}

	walkPlayer(f, w, &p, 10, 0.25, rec)
	for _, it := range rec.items {
		if !it.effect.(emission.Footprint).Wet {
			t.Errorf("Print while wet was dry")
		}
	}

	walkPlayer(f, w, &p, tun.WetTicks, 0.25, &recorder{})
	if f.Wet(p.ID) {
		t.Fatalf("Player still wet after %d dry ticks", tun.WetTicks+10)
	}
	rec = &recorder{}
	walkPlayer(f, w, &p, 10, 0.25, rec)
	for _, it := range rec.items {
		if it.effect.(emission.Footprint).Wet {
			t.Errorf("Dried player left a wet print")
		}
	}
}

func TestRainMakesExposedPrintsWet(t *testing.T) {
	w := newTestWorld(t)
	w.SetWeather(true, false)
	f := NewFootprints(config.Default().Entities)
	rec := &recorder{}

	p := entity(world.KindPlayer, mgl64.Vec3{0.5, ground + 1, 0.5})
	p.OnGround = true
	walkPlayer(f, w, &p, 10, 0.25, rec)
	if len(rec.items) == 0 {
		t.Fatalf("No prints")
	}
	for _, it := range rec.items {
		if !it.effect.(emission.Footprint).Wet {
			t.Errorf("Print in the rain was dry")
		}
	}
}

func TestMobPrintsOnCooldown(t *testing.T) {
	w := newTestWorld(t)
	f := NewFootprints(config.Default().Entities)
	rec := &recorder{}

	cow := *world.NewEntity(world.KindAnimal, mgl64.Vec3{0.5, ground + 1, 0.5}, 0.9, 1.4)
	cow.OnGround = true
	n := 0
	for i := 0; i < 30; i++ {
		cow.Position[0] += 0.05
		n += f.Update(cow.Position, []world.Entity{cow}, w, rec)
	}
	if n != 5 {
		t.Errorf("Expected a print every 6 ticks (5 total), got %d", n)
	}
}

func TestLandingLeavesPrint(t *testing.T) {
	w := newTestWorld(t)
	f := NewFootprints(config.Default().Entities)
	rec := &recorder{}

	cow := *world.NewEntity(world.KindAnimal, mgl64.Vec3{0.5, ground + 2, 0.5}, 0.9, 1.4)
	f.Update(cow.Position, []world.Entity{cow}, w, rec)
	f.Update(cow.Position, []world.Entity{cow}, w, rec)

	cow.Position[1] = ground + 1
	cow.OnGround = true
	if n := f.Update(cow.Position, []world.Entity{cow}, w, rec); n != 1 {
		t.Errorf("Expected one landing print, got %d", n)
	}
}

func TestFootprintsSkip(t *testing.T) {
	w := newTestWorld(t)
	f := NewFootprints(config.Default().Entities)
	center := mgl64.Vec3{0.5, ground + 1, 0.5}

	swimmer := entity(world.KindPlayer, center)
	swimmer.Swimming = true
	ghost := entity(world.KindPlayer, center)
	ghost.Spectator = true
	item := entity(world.KindItem, center)
	far := entity(world.KindAnimal, center.Add(mgl64.Vec3{100, 0, 0}))

	f.Update(center, []world.Entity{swimmer, ghost, item, far}, w, &recorder{})
	if f.Tracked() != 0 {
		t.Errorf("Tracked %d entities that cannot leave prints", f.Tracked())
	}

	walker := entity(world.KindAnimal, center)
	f.Update(center, []world.Entity{walker}, w, &recorder{})
	if f.Tracked() != 1 {
		t.Fatalf("Walker not tracked")
	}
	f.Update(center, nil, w, &recorder{})
	if f.Tracked() != 0 || f.Wet(uuid.New()) {
		t.Errorf("Tracker outlived its entity")
	}
}

func TestDustWhileSprinting(t *testing.T) {
	w := newTestWorld(t)
	tun := config.Default().Entities
	d := NewDustClouds(tun)
	rng := rand.New(rand.NewSource(1))
	rec := &recorder{}

	p := entity(world.KindPlayer, mgl64.Vec3{0.5, ground + 1, 0.5})
	p.OnGround = true
	p.Sprinting = true
	n := 0
	for i := 0; i < 9; i++ {
		n += d.Update(p, nil, w, rng, rec)
	}
	if n != 3 || rec.count(emission.KindDustCloud) != 3 {
		t.Fatalf("Expected a cloud every 3 ticks, got %d", n)
	}
	for _, it := range rec.items {
		c := it.effect.(emission.DustCloud)
		if c.Velocity.Y() < 0.03 || c.Velocity.Y() > 0.06 {
			t.Errorf("Cloud rises at %v", c.Velocity.Y())
		}
		if math.Abs(it.pos.X()-0.5) > 0.15 || math.Abs(it.pos.Y()-(ground+1.1)) > 1e-9 {
			t.Errorf("Cloud at %v", it.pos)
		}
	}

	// airborne past the grace window
	p.OnGround = false
	n = 0
	for i := 0; i < 30; i++ {
		n += d.Update(p, nil, w, rng, rec)
	}
	if n > 4 {
		t.Errorf("Airborne sprint kept kicking dust: %d clouds", n)
	}
}

func TestDustNeedsSolidGround(t *testing.T) {
	w := newTestWorld(t)
	w.BuildPool(world.BlockPos{X: 0, Y: ground, Z: 0}, 2, 2)
	if n := EmitDust(world.BlockPos{X: 0, Y: ground + 1, Z: 0}, 2, w, rand.New(rand.NewSource(1)), &recorder{}); n != 0 {
		t.Errorf("Dust over water: %d", n)
	}
	if n := EmitDust(world.BlockPos{X: 10, Y: ground + 1, Z: 10}, 2, w, rand.New(rand.NewSource(1)), &recorder{}); n != 2 {
		t.Errorf("Dust over grass: %d, want 2", n)
	}
}

func TestDustWhileRiding(t *testing.T) {
	w := newTestWorld(t)
	tun := config.Default().Entities
	rng := rand.New(rand.NewSource(1))

	ride := func(step float64) int {
		d := NewDustClouds(tun)
		horse := *world.NewEntity(world.KindHorse, mgl64.Vec3{0.5, ground + 1, 0.5}, 1.4, 1.6)
		horse.OnGround = true
		p := entity(world.KindPlayer, horse.Position)
		p.Vehicle = horse.ID
		n := 0
		for i := 0; i < 10; i++ {
			horse.Position[0] += step
			n += d.Update(p, []world.Entity{p, horse}, w, rng, &recorder{})
		}
		return n
	}
	if n := ride(0.2); n != 6 {
		t.Errorf("Galloping horse: %d clouds, want 6", n)
	}
	if n := ride(0.05); n != 0 {
		t.Errorf("Walking horse kicked %d clouds", n)
	}
}
