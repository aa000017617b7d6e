package world_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/registry"
	"windswept/internal/world"
)

const ground = 64

func flatWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New(registry.Properties(), world.NewFlatGenerator(ground))
	if n := w.EnsureArea(world.BlockPos{}, 1); n != 9 {
		t.Fatalf("EnsureArea created %d columns, want 9", n)
	}
	return w
}

func TestEnsureAreaIsIdempotent(t *testing.T) {
	w := flatWorld(t)
	if n := w.EnsureArea(world.BlockPos{X: 3, Z: 2}, 1); n != 0 {
		t.Errorf("Second EnsureArea created %d columns", n)
	}
	// z = -2 lies in chunk row -1, so the area reaches one row further north
	if n := w.EnsureArea(world.BlockPos{X: 3, Z: -2}, 1); n != 3 {
		t.Errorf("EnsureArea one chunk row north created %d columns, want 3", n)
	}
	if n := w.EnsureArea(world.BlockPos{X: 40}, 0); n != 1 {
		t.Errorf("EnsureArea two chunks east created %d columns, want 1", n)
	}
}

func TestTopSurfaceY(t *testing.T) {
	w := flatWorld(t)
	if y := w.TopSurfaceY(0, 0); y != ground+1 {
		t.Errorf("Flat surface at %d, want %d", y, ground+1)
	}
	if y := w.TopSurfaceY(1000, 1000); y != 0 {
		t.Errorf("Unloaded column reports %d", y)
	}

	w.SetBlock(world.BlockPos{X: 2, Y: 70, Z: 2}, world.BlockTypeStone)
	if y := w.TopSurfaceY(2, 2); y != 71 {
		t.Errorf("Column with a floating block at %d, want 71", y)
	}
	w.SetBlock(world.BlockPos{X: 2, Y: 70, Z: 2}, world.BlockTypeAir)
	if y := w.TopSurfaceY(2, 2); y != ground+1 {
		t.Errorf("Cleared column at %d, want %d", y, ground+1)
	}
}

func TestCellQueries(t *testing.T) {
	w := flatWorld(t)
	surface := world.BlockPos{X: 1, Y: ground, Z: 1}

	if !w.IsSolid(surface) || w.IsAir(surface) {
		t.Errorf("Grass is not solid")
	}
	if w.FluidAt(surface) != world.FluidNone {
		t.Errorf("Grass holds fluid")
	}
	w.SetBlock(surface, world.BlockTypeWaterStill)
	if w.FluidAt(surface) != world.FluidStill || w.IsSolid(surface) {
		t.Errorf("Still water reads as %s, solid %v", w.FluidAt(surface), w.IsSolid(surface))
	}

	w.Fill(world.BlockPos{X: -1, Y: 66, Z: -1}, world.BlockPos{X: 1, Y: 67, Z: 1}, world.BlockTypeSand)
	for x := -1; x <= 1; x++ {
		for z := -1; z <= 1; z++ {
			if b := w.Block(world.BlockPos{X: x, Y: 67, Z: z}); b != world.BlockTypeSand {
				t.Fatalf("Fill missed (%d, 67, %d): %s", x, z, b)
			}
		}
	}
}

func TestIsSkyVisible(t *testing.T) {
	w := flatWorld(t)
	feet := world.BlockPos{X: 0, Y: ground + 1, Z: 0}
	if !w.IsSkyVisible(feet) {
		t.Errorf("Open ground is covered")
	}
	w.SetBlock(feet.Add(0, 4, 0), world.BlockTypeLeaves)
	if w.IsSkyVisible(feet) {
		t.Errorf("Ground under leaves sees the sky")
	}
}

func TestBiomeAt(t *testing.T) {
	w := flatWorld(t)
	surface := world.BlockPos{X: 0, Y: ground, Z: 0}
	if c := w.BiomeAt(surface); c != world.BiomeClassPlains {
		t.Errorf("Flat world biome %s", c)
	}
	if c := w.BiomeAt(world.BlockPos{Y: 40}); c != world.BiomeClassCave {
		t.Errorf("Deep cell biome %s, want cave", c)
	}

	w.SetBiome(world.BlockPos{X: 20, Z: 20}, world.BiomeClassDesert)
	if c := w.BiomeAt(world.BlockPos{X: 31, Y: 40, Z: 16}); c != world.BiomeClassDesert {
		t.Errorf("Override did not cover the chunk column: %s", c)
	}
	if c := w.BiomeAt(world.BlockPos{X: 32, Y: ground, Z: 16}); c != world.BiomeClassPlains {
		t.Errorf("Override leaked into the next chunk: %s", c)
	}
}

func TestTimeAndWeather(t *testing.T) {
	w := flatWorld(t)
	w.SetTime(2*world.TicksPerDay - 1)
	if d := w.CurrentDayIndex(); d != 1 {
		t.Errorf("Day %d, want 1", d)
	}
	w.Step()
	if d := w.CurrentDayIndex(); d != 2 {
		t.Errorf("Day after step %d, want 2", d)
	}

	w.SetWeather(false, true)
	if !w.IsRaining() || !w.IsThundering() {
		t.Errorf("Thunder without rain")
	}
	w.SetWeather(false, false)
	if w.IsRaining() {
		t.Errorf("Rain did not stop")
	}
}

func TestPlayer(t *testing.T) {
	w := flatWorld(t)
	if _, ok := w.Player(); ok {
		t.Fatalf("Fresh world has a player")
	}
	e := world.NewEntity(world.KindAnimal, mgl64.Vec3{0.5, ground + 1, 0.5}, 0.6, 1.8)
	w.SpawnPlayer(e)

	p, ok := w.Player()
	if !ok {
		t.Fatalf("Player missing after spawn")
	}
	if p.ID != e.ID || p.Kind != world.KindPlayer {
		t.Errorf("Got %s %v", p.Kind, p.ID)
	}
}

func TestStepLandsFallingEntity(t *testing.T) {
	w := flatWorld(t)
	e := world.NewEntity(world.KindItem, mgl64.Vec3{0.5, ground + 3, 0.5}, 0.25, 0.25)
	e.Velocity = mgl64.Vec3{0, -1, 0}
	w.EntityManager().Add(e)

	for i := 0; i < 3; i++ {
		w.Step()
	}
	got, ok := w.EntityManager().Get(e.ID)
	if !ok {
		t.Fatalf("Entity vanished")
	}
	if got.Position.Y() != ground+1 || got.Velocity.Y() != 0 {
		t.Errorf("Entity at y %v moving %v, want resting at %d", got.Position.Y(), got.Velocity.Y(), ground+1)
	}
	if !got.OnGround {
		t.Errorf("Landed entity is not on the ground")
	}
}

func TestStepDropsDeadEntities(t *testing.T) {
	w := flatWorld(t)
	a := world.NewEntity(world.KindAnimal, mgl64.Vec3{0.5, ground + 1, 0.5}, 0.9, 1.4)
	b := world.NewEntity(world.KindAnimal, mgl64.Vec3{2.5, ground + 1, 0.5}, 0.9, 1.4)
	w.EntityManager().Add(a)
	w.EntityManager().Add(b)

	if !w.EntityManager().Mutate(a.ID, func(e *world.Entity) { e.Alive = false }) {
		t.Fatalf("Mutate missed a live entity")
	}
	w.Step()
	if n := w.EntityManager().Len(); n != 1 {
		t.Errorf("%d entities after step, want 1", n)
	}
	if _, ok := w.EntityManager().Get(a.ID); ok {
		t.Errorf("Dead entity kept")
	}
}

func TestStepTracksWaterContact(t *testing.T) {
	w := flatWorld(t)
	w.BuildPool(world.BlockPos{X: 0, Y: ground, Z: 0}, 1, 2)
	e := world.NewEntity(world.KindAnimal, mgl64.Vec3{0.5, ground, 0.5}, 0.9, 1.4)
	w.EntityManager().Add(e)

	w.Step()
	got, _ := w.EntityManager().Get(e.ID)
	if !got.TouchingWater {
		t.Errorf("Entity in the pool is dry")
	}
	if got.Submerged {
		t.Errorf("Eyes above the pool read as submerged")
	}
}

func TestSceneBuilders(t *testing.T) {
	w := flatWorld(t)

	w.BuildPool(world.BlockPos{X: 0, Y: ground, Z: 0}, 1, 2)
	for _, c := range []struct {
		pos  world.BlockPos
		want world.BlockType
	}{
		{world.BlockPos{X: 1, Y: ground, Z: -1}, world.BlockTypeWaterStill},
		{world.BlockPos{X: 0, Y: ground - 1, Z: 0}, world.BlockTypeWaterStill},
		{world.BlockPos{X: 0, Y: ground - 2, Z: 0}, world.BlockTypeStone},
		{world.BlockPos{X: 2, Y: ground, Z: 0}, world.BlockTypeGrass},
	} {
		if got := w.Block(c.pos); got != c.want {
			t.Errorf("Pool %s: got %s, want %s", c.pos, got, c.want)
		}
	}

	top := world.BlockPos{X: 5, Y: 70, Z: 5}
	w.BuildWaterfall(top, 3)
	for i := 0; i < 3; i++ {
		p := top.Add(0, -i, 0)
		if w.FluidAt(p) != world.FluidFlowing {
			t.Errorf("Waterfall cell %s is %s", p, w.Block(p))
		}
		if w.Block(p.Add(-1, 0, 0)) != world.BlockTypeStone {
			t.Errorf("No wall behind %s", p)
		}
	}
	if w.FluidAt(top.Add(0, -3, 0)) != world.FluidNone {
		t.Errorf("Waterfall runs past its length")
	}

	lo, hi := world.BlockPos{X: 10, Y: ground, Z: 10}, world.BlockPos{X: 12, Y: ground, Z: 12}
	w.BuildLake(lo, hi, 3)
	if w.FluidAt(world.BlockPos{X: 11, Y: ground, Z: 11}) != world.FluidStill {
		t.Errorf("Lake is dry")
	}
	if w.Block(world.BlockPos{X: 11, Y: ground - 1, Z: 11}) != world.BlockTypeSand {
		t.Errorf("Lake bed is not sand")
	}
	if y := w.TopSurfaceY(13, 9); y != ground+4 {
		t.Errorf("Rim top at %d, want %d", y, ground+4)
	}
}

func TestChunkStoreBounds(t *testing.T) {
	w := flatWorld(t)
	s := w.Store()
	if n := s.Len(); n != 9 {
		t.Fatalf("%d columns loaded, want 9", n)
	}

	before := s.Edits()
	w.SetBlock(world.BlockPos{X: 0, Y: -1, Z: 0}, world.BlockTypeStone)
	w.SetBlock(world.BlockPos{X: 0, Y: world.ChunkSizeY, Z: 0}, world.BlockTypeStone)
	w.SetBlock(world.BlockPos{X: 500, Y: 70, Z: 500}, world.BlockTypeAir)
	if s.Edits() != before || s.Len() != 9 {
		t.Errorf("Out-of-range or no-op writes changed the store: %d edits, %d columns", s.Edits()-before, s.Len())
	}
	if b := w.Block(world.BlockPos{X: 0, Y: -1, Z: 0}); b != world.BlockTypeAir {
		t.Errorf("Below the world reads %s", b)
	}

	w.SetBlock(world.BlockPos{X: 500, Y: 70, Z: 500}, world.BlockTypeStone)
	if s.Len() != 10 || s.Edits() != before+1 {
		t.Errorf("Write into unloaded space: %d columns, %d edits", s.Len(), s.Edits()-before)
	}
	if y := w.TopSurfaceY(500, 500); y != 71 {
		t.Errorf("New column height %d, want 71", y)
	}
}
