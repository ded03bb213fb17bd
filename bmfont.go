package lumen

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// bitmapGlyph is one "char" line of a BMFont file.
type bitmapGlyph struct {
	id       rune
	x, y     int
	width    int
	height   int
	xOffset  int
	yOffset  int
	xAdvance int
	page     int
}

const asciiGlyphCount = 128

// BitmapFont is the font plugin for prerendered BMFont atlases: a text-format
// .fnt file plus its page image. The page becomes the glyph cache as is, so
// a page holding a distance field renders like a TrueTypeFont cache.
type BitmapFont struct {
	size       float64 // "info size", the size glyphs were rendered at
	lineHeight float64
	base       float64
	scaleW     int
	scaleH     int
	pageFile   string
	page       image.Image

	asciiGlyphs [asciiGlyphCount]bitmapGlyph // fixed array for ASCII, zero-alloc lookup
	asciiSet    [asciiGlyphCount]bool        // which ASCII entries are populated
	extGlyphs   map[rune]*bitmapGlyph        // extended Unicode

	kernings map[[2]rune]int
}

// OpenData implements Font. files must contain one .fnt file and the page
// image it names (matched by base name). size is ignored: bitmap fonts have
// the size they were rendered at.
func (f *BitmapFont) OpenData(files []FileData, size float64) error {
	f.Close()
	var fnt *FileData
	for i := range files {
		if strings.EqualFold(path.Ext(files[i].Name), ".fnt") {
			fnt = &files[i]
			break
		}
	}
	if fnt == nil {
		return fmt.Errorf("lumen: open bitmap font: no .fnt file among %d files", len(files))
	}
	if err := f.parse(fnt.Data); err != nil {
		return err
	}

	var pageData []byte
	for _, file := range files {
		if path.Base(file.Name) == path.Base(f.pageFile) {
			pageData = file.Data
			break
		}
	}
	if pageData == nil {
		f.Close()
		return fmt.Errorf("lumen: open bitmap font: page image %q not provided", f.pageFile)
	}
	imp := &AnyImageImporter{}
	if err := imp.OpenData(pageData); err != nil {
		f.Close()
		return fmt.Errorf("lumen: open bitmap font page %q: %w", f.pageFile, err)
	}
	page, err := imp.Image2D(0)
	if err != nil {
		f.Close()
		return err
	}
	f.page = page
	return nil
}

// ReadBitmapFontFiles reads a BMFont text file and the page image it names,
// which is resolved relative to the .fnt file's directory. The result can be
// passed to BitmapFont.OpenData.
func ReadBitmapFontFiles(fntPath string) ([]FileData, error) {
	data, err := os.ReadFile(fntPath)
	if err != nil {
		return nil, fmt.Errorf("lumen: read bitmap font: %w", err)
	}
	var meta BitmapFont
	if err := meta.parse(data); err != nil {
		return nil, err
	}
	pagePath := filepath.Join(filepath.Dir(fntPath), filepath.FromSlash(meta.pageFile))
	page, err := os.ReadFile(pagePath)
	if err != nil {
		return nil, fmt.Errorf("lumen: read bitmap font page: %w", err)
	}
	return []FileData{
		{Name: filepath.Base(fntPath), Data: data},
		{Name: meta.pageFile, Data: page},
	}, nil
}

// parse reads BMFont text-format data.
func (f *BitmapFont) parse(fntData []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(fntData))
	var charCount int
	pages := 1

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tag, rest := splitTag(line)
		fields := parseFields(rest)

		switch tag {
		case "info":
			f.size = fieldFloat(fields, "size")
			if f.size < 0 { // negative sizes mean "match char height"
				f.size = -f.size
			}
		case "common":
			f.lineHeight = fieldFloat(fields, "lineHeight")
			f.base = fieldFloat(fields, "base")
			f.scaleW = fieldInt(fields, "scaleW")
			f.scaleH = fieldInt(fields, "scaleH")
			if v, ok := fields["pages"]; ok {
				pages, _ = strconv.Atoi(v)
			}
		case "page":
			if fieldInt(fields, "id") == 0 {
				f.pageFile = fields["file"]
			}
		case "char":
			charCount++
			g := bitmapGlyph{
				id:       rune(fieldInt(fields, "id")),
				x:        fieldInt(fields, "x"),
				y:        fieldInt(fields, "y"),
				width:    fieldInt(fields, "width"),
				height:   fieldInt(fields, "height"),
				xOffset:  fieldInt(fields, "xoffset"),
				yOffset:  fieldInt(fields, "yoffset"),
				xAdvance: fieldInt(fields, "xadvance"),
				page:     fieldInt(fields, "page"),
			}
			if g.id >= 0 && g.id < asciiGlyphCount {
				f.asciiGlyphs[g.id] = g
				f.asciiSet[g.id] = true
			} else {
				if f.extGlyphs == nil {
					f.extGlyphs = make(map[rune]*bitmapGlyph)
				}
				f.extGlyphs[g.id] = &g
			}
		case "kerning":
			if f.kernings == nil {
				f.kernings = make(map[[2]rune]int)
			}
			first := rune(fieldInt(fields, "first"))
			second := rune(fieldInt(fields, "second"))
			f.kernings[[2]rune{first, second}] = fieldInt(fields, "amount")
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("lumen: error reading .fnt data: %w", err)
	}
	if f.lineHeight == 0 {
		return fmt.Errorf("lumen: .fnt data missing common lineHeight")
	}
	if charCount == 0 {
		return fmt.Errorf("lumen: .fnt data has no char definitions")
	}
	if pages > 1 {
		return fmt.Errorf("lumen: .fnt data has %d pages, only single-page fonts are supported", pages)
	}
	if f.pageFile == "" {
		return fmt.Errorf("lumen: .fnt data missing page 0")
	}
	if f.size == 0 {
		f.size = f.lineHeight
	}
	return nil
}

// glyph returns the glyph for the given rune, or nil if not found.
func (f *BitmapFont) glyph(r rune) *bitmapGlyph {
	if r >= 0 && r < asciiGlyphCount {
		if f.asciiSet[r] {
			return &f.asciiGlyphs[r]
		}
		return nil
	}
	if g, ok := f.extGlyphs[r]; ok {
		return g
	}
	return nil
}

// IsOpened implements Font.
func (f *BitmapFont) IsOpened() bool {
	return f.page != nil
}

// Close implements Font.
func (f *BitmapFont) Close() {
	*f = BitmapFont{}
}

// Size implements Font.
func (f *BitmapFont) Size() float64 {
	return f.size
}

// LineHeight implements Font.
func (f *BitmapFont) LineHeight() float64 {
	return f.lineHeight
}

// Ascent implements Font.
func (f *BitmapFont) Ascent() float64 {
	return f.base
}

// Glyph implements Font.
func (f *BitmapFont) Glyph(r rune) (GlyphMetrics, bool) {
	g := f.glyph(r)
	if g == nil {
		return GlyphMetrics{}, false
	}
	return GlyphMetrics{Advance: float64(g.xAdvance)}, true
}

// Kerning implements Font.
func (f *BitmapFont) Kerning(first, second rune) float64 {
	if f.kernings == nil {
		return 0
	}
	return float64(f.kernings[[2]rune{first, second}])
}

// FillGlyphCache implements Font. The cache must have been created by
// CreateGlyphCache; only glyph entries are added, the atlas is the page.
func (f *BitmapFont) FillGlyphCache(cache *GlyphCache, chars string) error {
	if f.page == nil {
		return ErrFontNotOpened
	}
	for _, r := range chars {
		g := f.glyph(r)
		if g == nil {
			continue
		}
		rect := image.Rect(g.x, g.y, g.x+g.width, g.y+g.height)
		// BMFont offsets are from the top of the line with Y down.
		offset := Vec2{X: float64(g.xOffset), Y: f.base - float64(g.yOffset) - float64(g.height)}
		cache.InsertRegion(r, rect, offset, Vec2{float64(g.width), float64(g.height)})
	}
	return nil
}

// CreateGlyphCache implements Font. Every glyph in the .fnt file is cached.
func (f *BitmapFont) CreateGlyphCache() (*GlyphCache, error) {
	if f.page == nil {
		return nil, ErrFontNotOpened
	}
	b := f.page.Bounds()
	w, h := f.scaleW, f.scaleH
	if w == 0 || h == 0 {
		w, h = b.Dx(), b.Dy()
	}
	cache := NewGlyphCache(w, h)
	cache.SetAtlas(intensityImage(f.page))

	var chars strings.Builder
	for r := rune(0); r < asciiGlyphCount; r++ {
		if f.asciiSet[r] {
			chars.WriteRune(r)
		}
	}
	for r := range f.extGlyphs {
		chars.WriteRune(r)
	}
	if err := f.FillGlyphCache(cache, chars.String()); err != nil {
		return nil, err
	}
	return cache, nil
}

// intensityImage converts a font page to a single channel. Pages with any
// transparency use alpha as coverage; opaque pages (grayscale distance
// fields) use luminance.
func intensityImage(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	opaque := true
	for y := b.Min.Y; y < b.Max.Y && opaque; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				opaque = false
				break
			}
		}
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			v := a
			if opaque {
				v = (299*r + 587*g + 114*bl) / 1000
			}
			out.Pix[y*out.Stride+x] = uint8(v >> 8)
		}
	}
	return out
}

// splitTag splits a BMFont line into its tag and the rest of the line.
func splitTag(line string) (string, string) {
	idx := strings.IndexByte(line, ' ')
	if idx == -1 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// parseFields parses "key=value key=value ..." into a map. Quoted values may
// contain spaces, as in face="Arial Black".
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for {
		s = strings.TrimLeft(s, " \t")
		eq := strings.IndexByte(s, '=')
		if eq == -1 {
			return fields
		}
		key := s[:eq]
		if sp := strings.LastIndexAny(key, " \t"); sp != -1 {
			key = key[sp+1:] // skip stray words without a value
		}
		s = s[eq+1:]
		var val string
		if strings.HasPrefix(s, `"`) {
			end := strings.IndexByte(s[1:], '"')
			if end == -1 {
				val, s = s[1:], ""
			} else {
				val, s = s[1:end+1], s[end+2:]
			}
		} else if sp := strings.IndexAny(s, " \t"); sp != -1 {
			val, s = s[:sp], s[sp:]
		} else {
			val, s = s, ""
		}
		fields[key] = val
	}
}

func fieldInt(fields map[string]string, key string) int {
	v, _ := strconv.Atoi(fields[key])
	return v
}

func fieldFloat(fields map[string]string, key string) float64 {
	v, _ := strconv.ParseFloat(fields[key], 64)
	return v
}
