package debugmap

import (
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
	"windswept/internal/registry"
	"windswept/internal/water"
	"windswept/internal/world"
)

const ground = 64

func TestRender(t *testing.T) {
	w := world.New(registry.Properties(), world.NewFlatGenerator(ground))
	w.EnsureArea(world.BlockPos{}, 2)
	w.BuildLake(world.BlockPos{X: -6, Y: ground, Z: -6}, world.BlockPos{X: 0, Y: ground, Z: 0}, 3)
	w.SetBlock(world.BlockPos{X: 5, Y: ground, Z: 5}, world.BlockTypeSand)
	impact := world.BlockPos{X: -3, Y: ground, Z: -3}

	det := water.NewDetector(w, config.Default())
	edges := det.ScanShoreline(world.BlockPos{X: 0, Y: ground, Z: 0}, rand.New(rand.NewSource(1)))
	if len(edges) == 0 {
		t.Fatalf("Lake has no shoreline")
	}

	center := world.BlockPos{X: 4, Y: ground + 1, Z: 0}
	const radius, scale = 12, 3
	img := Render(w, center, radius, scale, Features{
		Impacts: []water.Impact{{Position: impact}},
		Edges:   edges,
		Wind:    mgl64.Vec3{0, 0.1, 1},
	})
	size := (2*radius + 1) * scale
	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		t.Fatalf("Image is %v, want %dx%d", b, size, size)
	}

	at := func(p world.BlockPos) (uint8, uint8, uint8) {
		c := img.RGBAAt((p.X-center.X+radius)*scale+1, (p.Z-center.Z+radius)*scale+1)
		return c.R, c.G, c.B
	}
	tests := []struct {
		name string
		pos  world.BlockPos
		want [3]uint8
	}{
		{"player", center, [3]uint8{colorPlayer.R, colorPlayer.G, colorPlayer.B}},
		{"impact", impact, [3]uint8{colorImpact.R, colorImpact.G, colorImpact.B}},
		{"edge", edges[0].Position, [3]uint8{colorShore.R, colorShore.G, colorShore.B}},
		{"wind", center.Add(0, 0, 3), [3]uint8{colorWindLine.R, colorWindLine.G, colorWindLine.B}},
		{"open water", world.BlockPos{X: -4, Y: ground, Z: -4}, [3]uint8{colorStill.R, colorStill.G, colorStill.B}},
	}
	for _, tt := range tests {
		r, g, b := at(tt.pos)
		if [3]uint8{r, g, b} != tt.want {
			t.Errorf("%s pixel = %v, want %v", tt.name, [3]uint8{r, g, b}, tt.want)
		}
	}
	if r, g, b := at(world.BlockPos{X: 5, Y: ground, Z: 5}); r <= g || b >= g {
		t.Errorf("Sand column looks like (%d, %d, %d)", r, g, b)
	}
}

func TestRenderUnloadedIsVoid(t *testing.T) {
	w := world.New(registry.Properties(), world.NewFlatGenerator(ground))
	img := Render(w, world.BlockPos{X: 1000, Y: ground, Z: 1000}, 2, 1, Features{})
	if c := img.RGBAAt(0, 0); c != colorVoid {
		t.Errorf("Unloaded column drawn as %v", c)
	}
}

func TestShade(t *testing.T) {
	if c := shade(colorGrass, 0); c != colorGrass {
		t.Errorf("shade at reference height changed the color: %v", c)
	}
	hi, lo := shade(colorGrass, 5), shade(colorGrass, -5)
	if hi.G <= colorGrass.G || lo.G >= colorGrass.G {
		t.Errorf("Expected lighter above and darker below, got %v and %v", hi, lo)
	}
	if c := shade(colorSnow, 50); c.R != 255 {
		t.Errorf("Highlights should clamp, got %v", c)
	}
}

func TestWritePNG(t *testing.T) {
	w := world.New(registry.Properties(), world.NewFlatGenerator(ground))
	w.EnsureArea(world.BlockPos{}, 1)
	img := Render(w, world.BlockPos{Y: ground + 1}, 4, 2, Features{})

	path := filepath.Join(t.TempDir(), "map.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Decoded %v, wrote %v", decoded.Bounds(), img.Bounds())
	}

	if err := WritePNG(filepath.Join(t.TempDir(), "missing", "map.png"), img); err == nil {
		t.Errorf("Expected an error for a missing directory")
	}
}
