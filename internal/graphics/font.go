package graphics

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph   = rune(32)
	lastGlyph    = rune(126)
	atlasWidth   = 512
	glyphPadding = 1
)

// Glyph is one character's atlas cell and metrics, in pixels. Atlas coordinates have a
// top-left origin. Bearings are measured from the pen position on the baseline.
type Glyph struct {
	AtlasX, AtlasY     float32
	Width, Height      float32
	BearingX, BearingY float32
	Advance            int
}

func (g Glyph) drawable() bool { return g.Width > 0 && g.Height > 0 }

// FontAtlas is a baked printable-ASCII font. Image holds the coverage mask until Upload.
type FontAtlas struct {
	TextureID  uint32
	AtlasW     int
	AtlasH     int
	Characters map[rune]Glyph
	Image      *image.Alpha
}

// shelf packs rectangles left to right in rows of a fixed width.
type shelf struct {
	x, y, rowH int
}

func (s *shelf) place(w, h int) (int, int) {
	if s.x+w+glyphPadding > atlasWidth {
		s.x, s.y, s.rowH = 0, s.y+s.rowH+glyphPadding, 0
	}
	x, y := s.x, s.y
	s.x += w + glyphPadding
	s.rowH = max(s.rowH, h)
	return x, y
}

func (s *shelf) height() int { return s.y + s.rowH + glyphPadding }

type rasterized struct {
	r     rune
	mask  image.Image
	maskp image.Point
	rect  image.Rectangle
}

// BakeFontAtlas rasterizes the printable ASCII range of a TrueType font. It makes no GL calls.
func BakeFontAtlas(ttf []byte, fontPixels int) (*FontAtlas, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(fontPixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer face.Close()

	atlas := &FontAtlas{AtlasW: atlasWidth, Characters: make(map[rune]Glyph)}
	var pack shelf
	var pending []rasterized
	for r := firstGlyph; r <= lastGlyph; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := Glyph{
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  advance.Round(),
		}
		if mask != nil && !dr.Empty() {
			x, y := pack.place(dr.Dx(), dr.Dy())
			g.AtlasX, g.AtlasY = float32(x), float32(y)
			g.Width, g.Height = float32(dr.Dx()), float32(dr.Dy())
			pending = append(pending, rasterized{r, mask, maskp, image.Rect(x, y, x+dr.Dx(), y+dr.Dy())})
		}
		atlas.Characters[r] = g
	}

	atlas.AtlasH = 1
	for atlas.AtlasH < pack.height() {
		atlas.AtlasH <<= 1
	}
	atlas.Image = image.NewAlpha(image.Rect(0, 0, atlas.AtlasW, atlas.AtlasH))
	for _, p := range pending {
		draw.Draw(atlas.Image, p.rect, p.mask, p.maskp, draw.Src)
	}
	return atlas, nil
}

// BuildFontAtlas bakes the bundled Go Regular face and uploads it.
func BuildFontAtlas(fontPixels int) (*FontAtlas, error) {
	atlas, err := BakeFontAtlas(goregular.TTF, fontPixels)
	if err != nil {
		return nil, err
	}
	atlas.Upload()
	return atlas, nil
}

// Upload creates a single-channel texture and drops the CPU copy.
func (a *FontAtlas) Upload() {
	gl.GenTextures(1, &a.TextureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, a.TextureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(a.AtlasW), int32(a.AtlasH), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Image.Pix))
	for _, p := range [][2]uint32{
		{gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE},
		{gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE},
		{gl.TEXTURE_MIN_FILTER, gl.LINEAR},
		{gl.TEXTURE_MAG_FILTER, gl.LINEAR},
	} {
		gl.TexParameteri(gl.TEXTURE_2D, p[0], int32(p[1]))
	}
	a.Image = nil
}

// glyph returns the glyph for r. Missing runes take the space's metrics.
func (a *FontAtlas) glyph(r rune) Glyph {
	if g, ok := a.Characters[r]; ok {
		return g
	}
	return Glyph{Advance: a.Characters[' '].Advance}
}

// Measure returns the width and the tallest glyph height of text at scale, in pixels.
func (a *FontAtlas) Measure(text string, scale float32) (width, height float32) {
	for _, r := range text {
		g := a.glyph(r)
		width += float32(g.Advance) * scale
		height = max(height, g.Height*scale)
	}
	return width, height
}

// Vertices builds two triangles per visible glyph as (x, y, u, v), with the baseline at y.
func (a *FontAtlas) Vertices(text string, x, y, scale float32) []float32 {
	out := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		g := a.glyph(r)
		if g.drawable() {
			out = a.appendQuad(out, g, x, y, scale)
		}
		x += float32(g.Advance) * scale
	}
	return out
}

func (a *FontAtlas) appendQuad(out []float32, g Glyph, penX, penY, scale float32) []float32 {
	x0 := penX + g.BearingX*scale
	y0 := penY - g.BearingY*scale
	x1, y1 := x0+g.Width*scale, y0+g.Height*scale

	aw, ah := float32(a.AtlasW), float32(a.AtlasH)
	u0, v0 := g.AtlasX/aw, g.AtlasY/ah
	u1, v1 := (g.AtlasX+g.Width)/aw, (g.AtlasY+g.Height)/ah

	return append(out,
		x0, y1, u0, v1,
		x0, y0, u0, v0,
		x1, y0, u1, v0,
		x0, y1, u0, v1,
		x1, y0, u1, v0,
		x1, y1, u1, v1,
	)
}

// FontRenderer renders ASCII text strings using a prebuilt atlas
type FontRenderer struct {
	atlas      *FontAtlas
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewFontRenderer creates the renderer for a width x height pixel viewport
func NewFontRenderer(atlas *FontAtlas, width, height int) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Characters) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	shader, err := LoadShader("font")
	if err != nil {
		return nil, err
	}
	fr := &FontRenderer{atlas: atlas, shader: shader}
	fr.SetViewport(width, height)
	fr.initGL()
	return fr, nil
}

// SetViewport rebuilds the pixel projection.
func (fr *FontRenderer) SetViewport(width, height int) {
	fr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, 0, 1)
}

func (fr *FontRenderer) initGL() {
	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Render draws the given text with its baseline at (x, y) in pixels.
func (fr *FontRenderer) Render(text string, x, y, scale float32, color mgl32.Vec3) {
	fr.RenderLines([]string{text}, x, y, 0, scale, color)
}

// RenderLines draws multiple lines of text in a single pass to minimize GL state changes.
// Lines start at (x, yStart), each offset by lineStep pixels.
func (fr *FontRenderer) RenderLines(lines []string, x, yStart, lineStep, scale float32, color mgl32.Vec3) {
	var vertices []float32
	y := yStart
	for _, line := range lines {
		vertices = append(vertices, fr.atlas.Vertices(line, x, y, scale)...)
		y += lineStep
	}
	if len(vertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color.X(), color.Y(), color.Z())
	fr.shader.SetMatrix4("projection", fr.projection)
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.atlas.TextureID)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// Orphan then fill to avoid stalls on dynamic updates
	size := len(vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// Measure returns the text size in pixels at scale.
func (fr *FontRenderer) Measure(text string, scale float32) (float32, float32) {
	return fr.atlas.Measure(text, scale)
}

// Dispose releases GL resources.
func (fr *FontRenderer) Dispose() {
	gl.DeleteVertexArrays(1, &fr.vao)
	gl.DeleteBuffers(1, &fr.vbo)
	gl.DeleteTextures(1, &fr.atlas.TextureID)
	fr.shader.Delete()
}
