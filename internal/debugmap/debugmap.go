// Package debugmap draws a top-down PNG of the terrain around the player with the detected
// water features marked on it.
package debugmap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"

	"windswept/internal/water"
	"windswept/internal/world"
)

// Grid is the block query the map reads. *world.World satisfies it.
type Grid interface {
	TopSurfaceY(x, z int) int
	FluidAt(pos world.BlockPos) world.FluidState
	IsSolid(pos world.BlockPos) bool
	MaterialAt(pos world.BlockPos) world.Material
}

var (
	colorVoid     = color.RGBA{0, 0, 0, 255}
	colorGrass    = color.RGBA{86, 140, 60, 255}
	colorStill    = color.RGBA{40, 80, 200, 255}
	colorFlowing  = color.RGBA{90, 150, 235, 255}
	colorSand     = color.RGBA{220, 205, 150, 255}
	colorRedSand  = color.RGBA{190, 100, 50, 255}
	colorSnow     = color.RGBA{245, 245, 250, 255}
	colorMud      = color.RGBA{90, 70, 55, 255}
	colorImpact   = color.RGBA{230, 30, 30, 255}
	colorShore    = color.RGBA{40, 230, 230, 255}
	colorPlayer   = color.RGBA{255, 220, 0, 255}
	colorWindLine = color.RGBA{255, 255, 255, 255}
)

// Features is what gets drawn over the terrain.
type Features struct {
	Impacts []water.Impact
	Edges   []water.Edge
	// Wind is the horizontal wind vector; zero draws no arrow.
	Wind mgl64.Vec3
}

// Render draws the (2*radius+1)² columns around center, one pixel per column, then scales the
// image up by scale with nearest-neighbour sampling.
func Render(g Grid, center world.BlockPos, radius, scale int, f Features) *image.RGBA {
	size := 2*radius + 1
	base := image.NewRGBA(image.Rect(0, 0, size, size))
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			x, z := center.X+dx, center.Z+dz
			base.SetRGBA(dx+radius, dz+radius, columnColor(g, x, z, center.Y))
		}
	}

	plot := func(p world.BlockPos, c color.RGBA) {
		px, pz := p.X-center.X+radius, p.Z-center.Z+radius
		if px >= 0 && pz >= 0 && px < size && pz < size {
			base.SetRGBA(px, pz, c)
		}
	}
	for _, e := range f.Edges {
		plot(e.Position, colorShore)
	}
	for _, im := range f.Impacts {
		plot(im.Position, colorImpact)
	}
	if h := (mgl64.Vec2{f.Wind.X(), f.Wind.Z()}); h.Len() > 0 {
		h = h.Normalize()
		for t := 1; t <= radius/2; t++ {
			plot(center.Add(int(h.X()*float64(t)), 0, int(h.Y()*float64(t))), colorWindLine)
		}
	}
	plot(center, colorPlayer)

	if scale <= 1 {
		return base
	}
	dst := image.NewRGBA(image.Rect(0, 0, size*scale, size*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), base, base.Bounds(), draw.Src, nil)
	return dst
}

func columnColor(g Grid, x, z, refY int) color.RGBA {
	top := world.BlockPos{X: x, Y: g.TopSurfaceY(x, z) - 1, Z: z}
	if top.Y < 0 {
		return colorVoid
	}
	var c color.RGBA
	switch g.FluidAt(top) {
	case world.FluidStill:
		return colorStill
	case world.FluidFlowing:
		return colorFlowing
	}
	switch g.MaterialAt(top) {
	case world.MaterialSand:
		c = colorSand
	case world.MaterialRedSand:
		c = colorRedSand
	case world.MaterialSnow:
		c = colorSnow
	case world.MaterialMud:
		c = colorMud
	default:
		if !g.IsSolid(top) {
			return colorVoid
		}
		c = colorGrass
	}
	return shade(c, top.Y-refY)
}

// shade lightens columns above the reference height and darkens those below.
func shade(c color.RGBA, dy int) color.RGBA {
	k := 1 + 0.04*float64(max(-10, min(10, dy)))
	ch := func(v uint8) uint8 { return uint8(max(0, min(255, float64(v)*k))) }
	return color.RGBA{ch(c.R), ch(c.G), ch(c.B), 255}
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debug map: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("debug map: encode %s: %w", path, err)
	}
	return f.Close()
}
