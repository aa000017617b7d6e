package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
	"windswept/internal/player"
	"windswept/internal/registry"
	"windswept/internal/world"
)

// Scene names accepted by BuildScene.
const (
	ScenePlains  = "plains"
	SceneTerrain = "terrain"
)

// sceneRadius is how many chunk columns around the origin are generated up front.
const sceneRadius = 3

// Scene is a populated world plus the scripted bodies that move through it.
type Scene struct {
	World  *world.World
	Player *world.Entity
	Bodies []player.Body
	// Landmarks names the interesting spots, for logs and the debug map.
	Landmarks map[string]world.BlockPos
}

// BuildScene creates the named scene. Seed drives terrain noise and animal wandering.
func BuildScene(name string, seed int64) (*Scene, error) {
	switch name {
	case ScenePlains, "":
		return buildPlains(seed), nil
	case SceneTerrain:
		return buildTerrain(seed), nil
	}
	return nil, fmt.Errorf("unknown scene %q (want %s or %s)", name, ScenePlains, SceneTerrain)
}

// buildPlains lays out a flat meadow with a waterfall into a pool, a walled lake and patches of
// sand and snow for footprints.
func buildPlains(seed int64) *Scene {
	_, g := config.GetFlat()
	w := world.New(registry.Properties(), world.NewFlatGenerator(g))
	w.SetSeaLevel(config.GetSeaLevel())
	w.EnsureArea(world.BlockPos{}, sceneRadius)

	pool := world.BlockPos{X: 0, Y: g, Z: 0}
	w.BuildPool(pool, 3, 4)
	w.BuildWaterfall(pool.Add(0, 8, 0), 8)

	lakeLo, lakeHi := world.BlockPos{X: 12, Y: g, Z: -12}, world.BlockPos{X: 24, Y: g, Z: 0}
	w.BuildLake(lakeLo, lakeHi, 4)

	sand := world.BlockPos{X: -10, Y: g, Z: 4}
	w.Fill(sand, sand.Add(6, 0, 6), world.BlockTypeSand)
	snow := world.BlockPos{X: -10, Y: g, Z: -10}
	w.Fill(snow, snow.Add(6, 0, 6), world.BlockTypeSnow)

	s := &Scene{
		World: w,
		Landmarks: map[string]world.BlockPos{
			"pool":      pool,
			"waterfall": pool.Add(0, 8, 0),
			"lake":      lakeLo,
			"sand":      sand,
			"snow":      snow,
		},
	}

	feet := float64(g + 1)
	// sand, snow, under the falls, out of the pool and along the lake wall
	s.spawnPlayer(mgl64.Vec3{6.5, feet, 6.5}, []mgl64.Vec3{
		{-7, feet, 7},
		{-7, feet, -7},
		{0.5, feet, 0.5},
		{6.5, feet, 0.5},
		{10.5, feet, -6},
		{6.5, feet, 6.5},
	})
	s.addAnimals(mgl64.Vec3{-4, feet, 0}, 3, seed)
	s.addHorse([]mgl64.Vec3{{8, feet, 4}, {28, feet, 4}, {28, feet, -16}, {8, feet, -16}})
	s.Bodies = append(s.Bodies, player.NewDropper(mgl64.Vec3{1.5, feet + 6, 1.5}, 100, 200, 3))
	return s
}

// buildTerrain generates noise terrain with sea-level water and drops the player on the
// surface at the origin. A configured flat height replaces the noise.
func buildTerrain(seed int64) *Scene {
	var gen world.TerrainGenerator = world.NewGenerator(seed).WithSeaLevel(config.GetSeaLevel())
	if on, y := config.GetFlat(); on {
		gen = world.NewFlatGenerator(y)
	}
	w := world.New(registry.Properties(), gen)
	w.SetSeaLevel(config.GetSeaLevel())
	w.EnsureArea(world.BlockPos{}, sceneRadius)

	surface := func(x, z float64) mgl64.Vec3 {
		return mgl64.Vec3{x, float64(w.TopSurfaceY(int(x), int(z))), z}
	}
	s := &Scene{
		World:     w,
		Landmarks: map[string]world.BlockPos{"spawn": world.PosOf(surface(0.5, 0.5))},
	}
	s.spawnPlayer(surface(0.5, 0.5), []mgl64.Vec3{
		surface(20.5, 0.5),
		surface(20.5, 20.5),
		surface(0.5, 20.5),
		surface(0.5, 0.5),
	})
	s.addAnimals(surface(-6, -6), 2, seed)
	return s
}

func (s *Scene) spawnPlayer(at mgl64.Vec3, route []mgl64.Vec3) {
	p := world.NewEntity(world.KindPlayer, at, 0.6, 1.8)
	s.World.SpawnPlayer(p)
	s.Player = p
	s.Bodies = append(s.Bodies, player.NewWalker(p.ID, route, true, 20))
}

func (s *Scene) addAnimals(home mgl64.Vec3, n int, seed int64) {
	for i := 0; i < n; i++ {
		a := world.NewEntity(world.KindAnimal, home.Add(mgl64.Vec3{float64(i), 0, 0}), 0.9, 1.4)
		s.World.EntityManager().Add(a)
		s.Bodies = append(s.Bodies, player.NewWanderer(a.ID, home, 5, 0.1, 80, seed+int64(i)))
	}
}

func (s *Scene) addHorse(route []mgl64.Vec3) {
	h := world.NewEntity(world.KindHorse, route[0], 1.4, 1.6)
	s.World.EntityManager().Add(h)
	s.Bodies = append(s.Bodies, player.NewWalker(h.ID, route, true, 0))
}
