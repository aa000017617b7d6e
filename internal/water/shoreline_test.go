package water

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/world"
)

const cliff = 6

// buildTestLake carves an 11x11 lake at ground level with a rock wall on its +X edge.
func buildTestLake(t testing.TB) (*world.World, *Detector) {
	t.Helper()
	w := newTestWorld(t)
	w.BuildLake(world.BlockPos{X: 0, Y: ground, Z: 0}, world.BlockPos{X: 10, Y: ground, Z: 10}, cliff)
	return w, NewDetector(w, config.Default())
}

func TestShorelineEdgeNormals(t *testing.T) {
	_, d := buildTestLake(t)
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		pos    world.BlockPos
		normal mgl64.Vec2
		cliff  float64
	}{
		{world.BlockPos{X: 10, Y: ground, Z: 5}, mgl64.Vec2{-1, 0}, cliff},
		{world.BlockPos{X: 0, Y: ground, Z: 5}, mgl64.Vec2{1, 0}, 0},
		{world.BlockPos{X: 5, Y: ground, Z: 0}, mgl64.Vec2{0, 1}, 0},
		{world.BlockPos{X: 0, Y: ground, Z: 0}, mgl64.Vec2{1, 1}.Normalize(), 0},
	}
	for _, tt := range tests {
		e, ok := d.ShorelineEdge(tt.pos, rng)
		if !ok {
			t.Errorf("%v: expected an edge", tt.pos)
			continue
		}
		if !e.Normal.ApproxEqualThreshold(tt.normal, 1e-9) {
			t.Errorf("%v: normal %v, want %v", tt.pos, e.Normal, tt.normal)
		}
		if e.CliffHeight != tt.cliff || e.IsCliff != (tt.cliff > 0) {
			t.Errorf("%v: cliff %v/%v, want %v", tt.pos, e.IsCliff, e.CliffHeight, tt.cliff)
		}
	}
}

func TestShorelineEdgeRejects(t *testing.T) {
	w, d := buildTestLake(t)
	rng := rand.New(rand.NewSource(1))
	if _, ok := d.ShorelineEdge(world.BlockPos{X: 5, Y: ground, Z: 5}, rng); ok {
		t.Errorf("Open water accepted as an edge")
	}
	if e, ok := d.ShorelineEdge(world.BlockPos{X: 10, Y: ground, Z: 7}, rng); !ok || e.WaterNeighbours != 3 {
		t.Errorf("East shore cell: edge %v with %d water neighbours, want 3", ok, e.WaterNeighbours)
	}
	if _, ok := d.ShorelineEdge(world.BlockPos{X: -5, Y: ground, Z: 5}, rng); ok {
		t.Errorf("Grass accepted as an edge")
	}
	covered := world.BlockPos{X: 10, Y: ground, Z: 7}
	w.SetBlock(covered.Up(), world.BlockTypeWaterFlowing)
	if _, ok := d.ShorelineEdge(covered, rng); ok {
		t.Errorf("Cell under fluid accepted as an edge")
	}
}

func TestShorelineEdgeFallbackNormal(t *testing.T) {
	w := newTestWorld(t)
	// a one-wide channel: banks on both sides cancel out
	for z := 20; z <= 30; z++ {
		w.SetBlock(world.BlockPos{X: 20, Y: ground, Z: z}, world.BlockTypeWaterStill)
	}
	d := NewDetector(w, config.Default())
	e, ok := d.ShorelineEdge(world.BlockPos{X: 20, Y: ground, Z: 25}, rand.New(rand.NewSource(3)))
	if !ok {
		t.Fatalf("Expected channel cell to be an edge")
	}
	if math.Abs(e.Normal.Len()-1) > 1e-9 {
		t.Errorf("Fallback normal not unit length: %v", e.Normal)
	}
	if e.WaterNeighbours != 2 {
		t.Errorf("Expected 2 water neighbours, got %d", e.WaterNeighbours)
	}
}

func TestIsLargeBody(t *testing.T) {
	w, d := buildTestLake(t)
	if !d.IsLargeBody(world.BlockPos{X: 10, Y: ground, Z: 5}) {
		t.Errorf("Mid-shore cell should be in a large body")
	}
	if d.IsLargeBody(world.BlockPos{X: 10, Y: ground, Z: 0}) {
		t.Errorf("Corner sees only 9 water cells")
	}
	w.BuildPool(world.BlockPos{X: -20, Y: ground, Z: -20}, 1, 1)
	if d.IsLargeBody(world.BlockPos{X: -20, Y: ground, Z: -20}) {
		t.Errorf("3x3 puddle counted as a large body")
	}
}

func TestScanShoreline(t *testing.T) {
	w, d := buildTestLake(t)
	w.BuildPool(world.BlockPos{X: -20, Y: ground, Z: -20}, 1, 1)
	edges := d.ScanShoreline(world.BlockPos{X: 5, Y: ground, Z: 5}, rand.New(rand.NewSource(1)))
	if len(edges) == 0 {
		t.Fatalf("Expected shoreline edges")
	}
	cliffs := 0
	for _, e := range edges {
		p := e.Position
		if p.Y != ground || p.X < 0 || p.X > 10 || p.Z < 0 || p.Z > 10 {
			t.Errorf("Edge %v outside the lake", p)
		}
		if math.Abs(e.Normal.Len()-1) > 1e-9 {
			t.Errorf("Edge %v normal not unit: %v", p, e.Normal)
		}
		if e.IsCliff {
			cliffs++
			if p.X != 10 {
				t.Errorf("Cliff edge %v away from the wall", p)
			}
		}
	}
	if cliffs == 0 {
		t.Errorf("Expected cliff edges along the wall")
	}
}

func TestEmitWaveGroup(t *testing.T) {
	_, d := buildTestLake(t)
	rng := rand.New(rand.NewSource(7))
	e, ok := d.ShorelineEdge(world.BlockPos{X: 10, Y: ground, Z: 5}, rng)
	if !ok {
		t.Fatalf("Expected an edge")
	}

	splashes := 0
	for round := 0; round < 200; round++ {
		var rec recorder
		n := d.EmitWaveGroup(e, rng, &rec)
		if n != len(rec.items) {
			t.Fatalf("Returned %d but queued %d", n, len(rec.items))
		}
		if rec.count(emission.KindWave) != 4 || rec.count(emission.KindFoam) != 4 {
			t.Fatalf("Expected 4 waves and 4 foam, got %d/%d", rec.count(emission.KindWave), rec.count(emission.KindFoam))
		}
		groupDelay := rec.items[0].delay
		if groupDelay < 0 || groupDelay >= 20 {
			t.Errorf("Group delay %d out of range", groupDelay)
		}
		for _, it := range rec.items {
			switch v := it.effect.(type) {
			case emission.Wave:
				if it.delay != groupDelay {
					t.Errorf("Wave delay %d differs from group delay %d", it.delay, groupDelay)
				}
				if v.CliffHeight != cliff || v.Normal != e.Normal {
					t.Errorf("Unexpected wave params %+v", v)
				}
				if math.Abs(it.pos.X()-10.75) > 0.08 || math.Abs(it.pos.Z()-5.5) > 0.55 {
					t.Errorf("Wave at %v strays from the shore", it.pos)
				}
			case emission.Foam:
				if it.delay != groupDelay {
					t.Errorf("Foam delay %d differs from group delay %d", it.delay, groupDelay)
				}
			case emission.Splash:
				splashes++
				if it.delay < groupDelay || it.delay >= groupDelay+10 {
					t.Errorf("Splash delay %d outside [%d,%d)", it.delay, groupDelay, groupDelay+10)
				}
				if it.pos.Y() != ground+2 {
					t.Errorf("Splash height %v", it.pos.Y())
				}
			}
		}
		if s := rec.count(emission.KindSplash); s > 4 {
			t.Errorf("Cliff of %d allows one splash per particle, got %d", cliff, s)
		}
	}
	// 800 particles at a 20% roll
	if splashes < 100 || splashes > 220 {
		t.Errorf("Splash count %d, expected about 160", splashes)
	}
}

func TestEmitWaves(t *testing.T) {
	_, d := buildTestLake(t)
	var rec recorder
	edges, queued := d.EmitWaves(world.BlockPos{X: 5, Y: ground, Z: 5}, rand.New(rand.NewSource(2)), &rec)
	if edges == 0 || queued != len(rec.items) {
		t.Fatalf("EmitWaves = %d edges, %d queued, recorder has %d", edges, queued, len(rec.items))
	}
	if rec.count(emission.KindWave) != edges*4 {
		t.Errorf("Expected %d waves, got %d", edges*4, rec.count(emission.KindWave))
	}
}
