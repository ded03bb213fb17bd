package lumen

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrGlyphCacheFull is returned when a glyph does not fit into the atlas.
var ErrGlyphCacheFull = errors.New("lumen: glyph cache is full")

// GlyphEntry locates one glyph in a GlyphCache.
type GlyphEntry struct {
	// Rect is the glyph's texel rectangle in the atlas, padding included.
	Rect image.Rectangle
	// Offset is the quad's bottom-left corner relative to the pen position,
	// in font pixels with Y up.
	Offset Vec2
	// Size is the quad size in font pixels. For inserted masks it equals the
	// tile size in atlas texels: masks are rasterized at oversample times the
	// font size and each atlas texel covers oversample source pixels, so one
	// texel spans one font pixel. A partly covered last texel counts whole.
	Size Vec2
}

// GlyphCache is a texture atlas of rendered glyphs plus the table mapping
// runes to atlas rectangles. The atlas stores a single intensity channel:
// coverage for plain caches, a distance field for distance-field caches.
//
// The GPU texture is created on first use of Texture and re-uploaded after
// further insertions.
type GlyphCache struct {
	atlas   *image.Gray
	entries map[rune]GlyphEntry
	packer  shelfPacker

	oversample    int // source pixels per atlas texel
	padding       int // source pixels of padding around each glyph
	distanceField bool

	texture      *ebiten.Image
	textureDirty bool
}

// NewGlyphCache creates a plain coverage cache of the given atlas size.
func NewGlyphCache(width, height int) *GlyphCache {
	return &GlyphCache{
		atlas:      image.NewGray(image.Rect(0, 0, width, height)),
		entries:    make(map[rune]GlyphEntry),
		packer:     shelfPacker{width: width, height: height},
		oversample: 1,
		padding:    1,
	}
}

// NewDistanceFieldGlyphCache creates a cache whose glyphs are rasterized
// oversample times larger than they are stored, converted to a signed
// distance field reaching radius source pixels away from the edge, and
// downsampled into a width x height atlas.
func NewDistanceFieldGlyphCache(width, height, oversample, radius int) *GlyphCache {
	c := NewGlyphCache(width, height)
	c.oversample = max(oversample, 1)
	c.padding = max(radius, 1)
	c.distanceField = true
	return c
}

// Size returns the atlas size in texels.
func (c *GlyphCache) Size() image.Point {
	return c.atlas.Bounds().Size()
}

// Oversample returns how many times larger than the font size glyphs must be
// rasterized before Insert.
func (c *GlyphCache) Oversample() int {
	return c.oversample
}

// IsDistanceField reports whether the atlas holds a distance field.
func (c *GlyphCache) IsDistanceField() bool {
	return c.distanceField
}

// GlyphCount returns the number of cached glyphs.
func (c *GlyphCache) GlyphCount() int {
	return len(c.entries)
}

// Glyph returns the entry for r.
func (c *GlyphCache) Glyph(r rune) (GlyphEntry, bool) {
	e, ok := c.entries[r]
	return e, ok
}

// Atlas returns the CPU-side atlas image. It must not be modified.
func (c *GlyphCache) Atlas() *image.Gray {
	return c.atlas
}

// Insert stores the coverage mask of r. origin is the position of the mask's
// bottom-left corner relative to the pen, in source pixels with Y up.
// Inserting a rune that is already cached is a no-op. Empty masks (spaces)
// get an empty entry so layout can still tell the glyph is known.
func (c *GlyphCache) Insert(r rune, mask *image.Alpha, origin Vec2) error {
	if _, ok := c.entries[r]; ok {
		return nil
	}
	over := float64(c.oversample)
	if mask == nil || mask.Bounds().Empty() {
		c.entries[r] = GlyphEntry{Offset: Vec2{origin.X / over, origin.Y / over}}
		return nil
	}

	var tile *image.Gray
	if c.distanceField {
		tile = distanceField(mask, c.padding, c.oversample)
	} else {
		tile = paddedCoverage(mask, c.padding)
	}

	ts := tile.Bounds().Size()
	at, ok := c.packer.pack(ts.X, ts.Y)
	if !ok {
		return fmt.Errorf("%w: no room for %q (%dx%d)", ErrGlyphCacheFull, r, ts.X, ts.Y)
	}
	rect := image.Rectangle{Min: at, Max: at.Add(ts)}
	draw.Draw(c.atlas, rect, tile, image.Point{}, draw.Src)

	pad := float64(c.padding)
	c.entries[r] = GlyphEntry{
		Rect:   rect,
		Offset: Vec2{(origin.X - pad) / over, (origin.Y - pad) / over},
		Size:   Vec2{float64(ts.X), float64(ts.Y)},
	}
	c.textureDirty = true
	return nil
}

// InsertRegion registers r for a region already present in the atlas, as
// done for prerendered bitmap fonts. offset and size are in font pixels.
func (c *GlyphCache) InsertRegion(r rune, rect image.Rectangle, offset, size Vec2) {
	c.entries[r] = GlyphEntry{Rect: rect, Offset: offset, Size: size}
}

// SetAtlas replaces the atlas contents with img, which must match the cache
// size. Used by prerendered fonts.
func (c *GlyphCache) SetAtlas(img image.Image) {
	draw.Draw(c.atlas, c.atlas.Bounds(), img, img.Bounds().Min, draw.Src)
	c.textureDirty = true
}

// Texture returns the atlas as a GPU image, uploading pending changes.
func (c *GlyphCache) Texture() *ebiten.Image {
	if c.texture == nil {
		c.texture = ebiten.NewImageFromImage(c.atlas)
		c.textureDirty = false
		return c.texture
	}
	if c.textureDirty {
		c.texture.WritePixels(grayToRGBA(c.atlas))
		c.textureDirty = false
	}
	return c.texture
}

// grayToRGBA expands an intensity image into opaque RGBA bytes.
func grayToRGBA(g *image.Gray) []byte {
	b := g.Bounds()
	out := make([]byte, 4*b.Dx()*b.Dy())
	i := 0
	for y := 0; y < b.Dy(); y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+b.Dx()]
		for _, v := range row {
			out[i] = v
			out[i+1] = v
			out[i+2] = v
			out[i+3] = 0xff
			i += 4
		}
	}
	return out
}

// paddedCoverage copies mask into a gray tile with pad empty texels around it.
func paddedCoverage(mask *image.Alpha, pad int) *image.Gray {
	mb := mask.Bounds()
	tile := image.NewGray(image.Rect(0, 0, mb.Dx()+2*pad, mb.Dy()+2*pad))
	for y := 0; y < mb.Dy(); y++ {
		for x := 0; x < mb.Dx(); x++ {
			tile.Pix[(y+pad)*tile.Stride+x+pad] = mask.AlphaAt(mb.Min.X+x, mb.Min.Y+y).A
		}
	}
	return tile
}

// shelfPacker places rectangles left to right in rows ("shelves") whose
// height is that of the tallest rectangle placed in them.
type shelfPacker struct {
	width, height int
	x, y          int
	rowHeight     int
}

const shelfSpacing = 1

func (p *shelfPacker) pack(w, h int) (image.Point, bool) {
	if w > p.width || h > p.height {
		return image.Point{}, false
	}
	if p.x+w > p.width {
		p.y += p.rowHeight + shelfSpacing
		p.x = 0
		p.rowHeight = 0
	}
	if p.y+h > p.height {
		return image.Point{}, false
	}
	at := image.Point{X: p.x, Y: p.y}
	p.x += w + shelfSpacing
	if h > p.rowHeight {
		p.rowHeight = h
	}
	return at, true
}
