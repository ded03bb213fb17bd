package lumen

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// TrueType glyph cache defaults.
const (
	defaultTrueTypeSize       = 32
	defaultTrueTypeCacheSize  = 1024
	defaultTrueTypeOversample = 4
	defaultTrueTypeRadius     = 16
)

// TrueTypeFont is the font plugin for TTF/OTF data, rasterized with
// golang.org/x/image/font/opentype. CreateGlyphCache produces a
// distance-field cache so text stays sharp when scaled up.
type TrueTypeFont struct {
	// Charset is the set of characters cached by CreateGlyphCache.
	Charset string
	// CacheSize is the width and height of the atlas built by CreateGlyphCache.
	CacheSize int
	// Oversample and Radius configure the distance-field cache built by
	// CreateGlyphCache; see NewDistanceFieldGlyphCache.
	Oversample int
	Radius     int

	font    *opentype.Font
	face    font.Face
	size    float64
	metrics font.Metrics
	buf     sfnt.Buffer
}

// NewTrueTypeFont returns an unopened font with default cache settings.
func NewTrueTypeFont() *TrueTypeFont {
	return &TrueTypeFont{
		Charset:    DefaultCharset(),
		CacheSize:  defaultTrueTypeCacheSize,
		Oversample: defaultTrueTypeOversample,
		Radius:     defaultTrueTypeRadius,
	}
}

// OpenData implements Font. The first file must hold TTF or OTF data.
func (f *TrueTypeFont) OpenData(files []FileData, size float64) error {
	f.Close()
	if len(files) == 0 {
		return fmt.Errorf("lumen: open truetype font: no data")
	}
	if size <= 0 {
		size = defaultTrueTypeSize
	}
	parsed, err := opentype.Parse(files[0].Data)
	if err != nil {
		return fmt.Errorf("lumen: parse truetype font %q: %w", files[0].Name, err)
	}
	face, err := newTrueTypeFace(parsed, size)
	if err != nil {
		return err
	}
	f.font = parsed
	f.face = face
	f.size = size
	f.metrics = face.Metrics()
	return nil
}

func newTrueTypeFace(parsed *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("lumen: create truetype face at %gpx: %w", size, err)
	}
	return face, nil
}

// IsOpened implements Font.
func (f *TrueTypeFont) IsOpened() bool {
	return f.face != nil
}

// Close implements Font.
func (f *TrueTypeFont) Close() {
	if f.face != nil {
		_ = f.face.Close()
	}
	f.font = nil
	f.face = nil
	f.size = 0
}

// Size implements Font.
func (f *TrueTypeFont) Size() float64 {
	return f.size
}

// LineHeight implements Font.
func (f *TrueTypeFont) LineHeight() float64 {
	return fixedToFloat(f.metrics.Height)
}

// Ascent implements Font.
func (f *TrueTypeFont) Ascent() float64 {
	return fixedToFloat(f.metrics.Ascent)
}

// hasGlyph reports whether the font maps r to a real glyph (not .notdef).
func (f *TrueTypeFont) hasGlyph(r rune) bool {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

// Glyph implements Font.
func (f *TrueTypeFont) Glyph(r rune) (GlyphMetrics, bool) {
	if f.face == nil || !f.hasGlyph(r) {
		return GlyphMetrics{}, false
	}
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		return GlyphMetrics{}, false
	}
	return GlyphMetrics{Advance: fixedToFloat(adv)}, true
}

// Kerning implements Font.
func (f *TrueTypeFont) Kerning(first, second rune) float64 {
	if f.face == nil {
		return 0
	}
	return fixedToFloat(f.face.Kern(first, second))
}

// FillGlyphCache implements Font. Glyphs are rasterized at the font size
// times the cache's oversampling factor. Characters missing from the font are
// skipped.
func (f *TrueTypeFont) FillGlyphCache(cache *GlyphCache, chars string) error {
	if f.face == nil {
		return ErrFontNotOpened
	}
	raster, err := newTrueTypeFace(f.font, f.size*float64(cache.Oversample()))
	if err != nil {
		return err
	}
	defer raster.Close()

	for _, r := range chars {
		if _, ok := cache.Glyph(r); ok || !f.hasGlyph(r) {
			continue
		}
		dr, mask, maskp, _, ok := raster.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		var alpha *image.Alpha
		if !dr.Empty() {
			alpha = image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
			draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)
		}
		// dr is relative to the pen with Y down; the cache wants the
		// bottom-left corner with Y up.
		origin := Vec2{X: float64(dr.Min.X), Y: float64(-dr.Max.Y)}
		if err := cache.Insert(r, alpha, origin); err != nil {
			return err
		}
	}
	return nil
}

// CreateGlyphCache implements Font.
func (f *TrueTypeFont) CreateGlyphCache() (*GlyphCache, error) {
	if f.face == nil {
		return nil, ErrFontNotOpened
	}
	cache := NewDistanceFieldGlyphCache(f.CacheSize, f.CacheSize, f.Oversample, f.Radius)
	if err := f.FillGlyphCache(cache, f.Charset); err != nil {
		return nil, err
	}
	return cache, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
