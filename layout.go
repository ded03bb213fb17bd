package lumen

import (
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/text/unicode/norm"
)

// maxGlyphsPerMesh keeps vertex indices within uint16.
const maxGlyphsPerMesh = math.MaxUint16 / 4

// textLine tracks the vertex span and advance width of one laid-out line.
type textLine struct {
	firstVertex int
	width       float64
}

// layoutText lays out text with font metrics and cache entries, appending
// four vertices and six indices per visible glyph to verts/inds. size is the
// em size in model units; the result has Y up with the first baseline at
// y = 0 before vertical alignment. Returns the grown slices and the bounding
// rectangle of all quads.
func layoutText(font Font, cache *GlyphCache, size float64, text string, align Alignment,
	verts []ebiten.Vertex, inds []uint16) ([]ebiten.Vertex, []uint16, Rect) {

	text = norm.NFC.String(text)
	scale := size / font.Size()
	lineAdvance := font.LineHeight() * scale

	start := len(verts)
	var lines []textLine

	for li, lineText := range strings.Split(text, "\n") {
		line := textLine{firstVertex: len(verts)}
		baseline := -float64(li) * lineAdvance
		var penX float64
		var prev rune
		hasPrev := false

		for _, r := range lineText {
			m, ok := font.Glyph(r)
			if !ok {
				hasPrev = false
				continue
			}
			if hasPrev {
				penX += font.Kerning(prev, r) * scale
			}
			e, cached := cache.Glyph(r)
			if cached && e.Size.X > 0 && e.Size.Y > 0 && (len(verts)-start)/4 < maxGlyphsPerMesh {
				x0 := penX + e.Offset.X*scale
				y0 := baseline + e.Offset.Y*scale
				x1 := x0 + e.Size.X*scale
				y1 := y0 + e.Size.Y*scale
				verts, inds = appendQuad(verts, inds, x0, y0, x1, y1, e)
			}
			penX += m.Advance * scale
			prev = r
			hasPrev = true
		}
		line.width = penX
		lines = append(lines, line)
	}

	// Horizontal alignment is per line, by advance width.
	for i, line := range lines {
		end := len(verts)
		if i+1 < len(lines) {
			end = lines[i+1].firstVertex
		}
		var dx float64
		switch align & alignHMask {
		case alignCenter:
			dx = -line.width / 2
		case alignRight:
			dx = -line.width
		}
		if dx != 0 {
			for v := line.firstVertex; v < end; v++ {
				verts[v].DstX += float32(dx)
			}
		}
	}

	bounds := computeMeshAABB(verts[start:])

	var dy float64
	switch align & alignVMask {
	case alignMiddle:
		dy = -bounds.Center().Y
	case alignTop:
		dy = -bounds.Max().Y
	}
	if dy != 0 {
		for v := start; v < len(verts); v++ {
			verts[v].DstY += float32(dy)
		}
		bounds.Y += dy
	}
	return verts, inds, bounds
}

// appendQuad adds one glyph quad. Quad corners are (x0, y0) bottom-left and
// (x1, y1) top-right; the atlas has Y down, so the top edge samples
// e.Rect.Min.Y.
func appendQuad(verts []ebiten.Vertex, inds []uint16, x0, y0, x1, y1 float64, e GlyphEntry) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(verts))
	sx0, sy0 := float32(e.Rect.Min.X), float32(e.Rect.Min.Y)
	sx1, sy1 := float32(e.Rect.Max.X), float32(e.Rect.Max.Y)
	verts = append(verts,
		ebiten.Vertex{DstX: float32(x0), DstY: float32(y0), SrcX: sx0, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: float32(x1), DstY: float32(y0), SrcX: sx1, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: float32(x0), DstY: float32(y1), SrcX: sx0, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: float32(x1), DstY: float32(y1), SrcX: sx1, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	)
	inds = append(inds, base, base+1, base+2, base+2, base+1, base+3)
	return verts, inds
}

// RenderText lays out a static text once and returns its mesh and bounding
// rectangle. The mesh samples cache; draw it with a material referencing the
// same cache.
func RenderText(font Font, cache *GlyphCache, size float64, text string, align Alignment) (*Mesh, Rect, error) {
	if font == nil || !font.IsOpened() {
		return nil, Rect{}, ErrFontNotOpened
	}
	verts, inds, bounds := layoutText(font, cache, size, text, align, nil, nil)
	return &Mesh{Vertices: verts, Indices: inds, Bounds: bounds}, bounds, nil
}

// DynamicLabel is a text mesh that is laid out again on every SetText,
// reusing its vertex and index buffers.
type DynamicLabel struct {
	font  Font
	cache *GlyphCache
	size  float64
	align Alignment

	text string
	mesh Mesh
}

// NewDynamicLabel creates an empty label.
func NewDynamicLabel(font Font, cache *GlyphCache, size float64, align Alignment) (*DynamicLabel, error) {
	if font == nil || !font.IsOpened() {
		return nil, ErrFontNotOpened
	}
	return &DynamicLabel{font: font, cache: cache, size: size, align: align}, nil
}

// Reserve preallocates buffers for the given number of glyphs.
func (l *DynamicLabel) Reserve(glyphs int) {
	if cap(l.mesh.Vertices) < glyphs*4 {
		v := make([]ebiten.Vertex, len(l.mesh.Vertices), glyphs*4)
		copy(v, l.mesh.Vertices)
		l.mesh.Vertices = v
	}
	if cap(l.mesh.Indices) < glyphs*6 {
		i := make([]uint16, len(l.mesh.Indices), glyphs*6)
		copy(i, l.mesh.Indices)
		l.mesh.Indices = i
	}
}

// Capacity returns the number of glyphs that fit without reallocation.
func (l *DynamicLabel) Capacity() int {
	return cap(l.mesh.Vertices) / 4
}

// SetText replaces the label's text and rebuilds its mesh.
func (l *DynamicLabel) SetText(text string) {
	l.text = text
	verts, inds, bounds := layoutText(l.font, l.cache, l.size, text, l.align,
		l.mesh.Vertices[:0], l.mesh.Indices[:0])
	l.mesh.Vertices = verts
	l.mesh.Indices = inds
	l.mesh.Bounds = bounds
}

// Text returns the current text.
func (l *DynamicLabel) Text() string {
	return l.text
}

// Mesh returns the label mesh. It is rebuilt in place by SetText.
func (l *DynamicLabel) Mesh() *Mesh {
	return &l.mesh
}

// Rectangle returns the bounding rectangle of the current text.
func (l *DynamicLabel) Rectangle() Rect {
	return l.mesh.Bounds
}
