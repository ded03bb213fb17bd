package lumen

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/flopp/go-findfont"
)

// ErrFontNotOpened is returned by Font methods that need opened font data.
var ErrFontNotOpened = errors.New("lumen: font not opened")

// FileData is one named in-memory file handed to a font plugin.
type FileData struct {
	Name string
	Data []byte
}

// GlyphMetrics describes a glyph's horizontal advance in font pixels.
type GlyphMetrics struct {
	Advance float64
}

// Font is the interface implemented by font plugins. A font is opened from
// in-memory files at a size in pixels, measured, and used to fill a
// GlyphCache that text layout reads from.
type Font interface {
	// OpenData opens the font from files. size is the font size in pixels;
	// 0 selects the size stored in the font files, if any.
	OpenData(files []FileData, size float64) error
	IsOpened() bool
	Close()

	// Size returns the size the font was opened at, in pixels.
	Size() float64
	// LineHeight returns the distance between baselines, in font pixels.
	LineHeight() float64
	// Ascent returns the distance from the baseline to the top of the line.
	Ascent() float64

	Glyph(r rune) (GlyphMetrics, bool)
	Kerning(first, second rune) float64

	// FillGlyphCache renders the given characters into cache.
	FillGlyphCache(cache *GlyphCache, chars string) error
	// CreateGlyphCache creates a cache suited to the font and fills it with
	// the font's default character set.
	CreateGlyphCache() (*GlyphCache, error)
}

// DefaultCharset returns the characters cached by CreateGlyphCache for
// scalable fonts: printable ASCII, Latin-1, Latin Extended-A, Greek and
// Cyrillic.
func DefaultCharset() string {
	var b strings.Builder
	ranges := [][2]rune{
		{0x20, 0x7e},   // ASCII
		{0xa0, 0xff},   // Latin-1 Supplement
		{0x100, 0x17f}, // Latin Extended-A
		{0x384, 0x3ce}, // Greek
		{0x400, 0x45f}, // Cyrillic
	}
	for _, r := range ranges {
		for c := r[0]; c <= r[1]; c++ {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// FindSystemFont locates an installed font by file name (with or without
// extension, e.g. "DejaVuSans") and returns its contents.
func FindSystemFont(name string) (FileData, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return FileData{}, fmt.Errorf("lumen: find font %q: %w", name, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FileData{}, fmt.Errorf("lumen: read font %q: %w", path, err)
	}
	return FileData{Name: path, Data: data}, nil
}
