package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFont has a 10px em, 12px lines, 5px advances for letters and 3px for
// space. The pair "ab" kerns by -1.
type fakeFont struct {
	opened bool
}

func (f *fakeFont) OpenData([]FileData, float64) error { f.opened = true; return nil }
func (f *fakeFont) IsOpened() bool                     { return f.opened }
func (f *fakeFont) Close()                             { f.opened = false }
func (f *fakeFont) Size() float64                      { return 10 }
func (f *fakeFont) LineHeight() float64                { return 12 }
func (f *fakeFont) Ascent() float64                    { return 8 }

func (f *fakeFont) Glyph(r rune) (GlyphMetrics, bool) {
	switch r {
	case ' ':
		return GlyphMetrics{Advance: 3}, true
	case 'a', 'b', 'é':
		return GlyphMetrics{Advance: 5}, true
	}
	return GlyphMetrics{}, false
}

func (f *fakeFont) Kerning(first, second rune) float64 {
	if first == 'a' && second == 'b' {
		return -1
	}
	return 0
}

func (f *fakeFont) FillGlyphCache(cache *GlyphCache, chars string) error {
	for _, r := range chars {
		if _, ok := f.Glyph(r); !ok {
			continue
		}
		if r == ' ' {
			if err := cache.Insert(r, nil, Vec2{}); err != nil {
				return err
			}
			continue
		}
		// 4x6 glyph boxes sitting on the baseline.
		if err := cache.Insert(r, filledAlpha(4, 6), Vec2{}); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeFont) CreateGlyphCache() (*GlyphCache, error) {
	c := NewGlyphCache(64, 64)
	return c, f.FillGlyphCache(c, "ab é")
}

func newFakeText(t *testing.T) (*fakeFont, *GlyphCache) {
	t.Helper()
	f := &fakeFont{opened: true}
	c, err := f.CreateGlyphCache()
	require.NoError(t, err)
	return f, c
}

func assertRect(t *testing.T, got Rect, x, y, w, h float64) {
	t.Helper()
	assert.InDelta(t, x, got.X, 1e-6, "x")
	assert.InDelta(t, y, got.Y, 1e-6, "y")
	assert.InDelta(t, w, got.Width, 1e-6, "width")
	assert.InDelta(t, h, got.Height, 1e-6, "height")
}

func TestRenderTextLineLeft(t *testing.T) {
	f, c := newFakeText(t)
	mesh, bounds, err := RenderText(f, c, 10, "ab", AlignLineLeft)
	require.NoError(t, err)

	assert.Len(t, mesh.Vertices, 8)
	assert.Equal(t, []uint16{0, 1, 2, 2, 1, 3, 4, 5, 6, 6, 5, 7}, mesh.Indices)
	assert.Nil(t, mesh.Image)
	// 'a' spans x -1..5 (one texel of padding), 'b' starts at 5-1 = 4.
	assertRect(t, bounds, -1, -1, 10, 8)
	assert.Equal(t, bounds, mesh.Bounds)
}

func TestRenderTextQuadTexCoords(t *testing.T) {
	f, c := newFakeText(t)
	mesh, _, err := RenderText(f, c, 10, "a", AlignLineLeft)
	require.NoError(t, err)
	e, _ := c.Glyph('a')

	bl, tr := mesh.Vertices[0], mesh.Vertices[3]
	assert.Equal(t, float32(e.Rect.Min.X), bl.SrcX)
	assert.Equal(t, float32(e.Rect.Max.Y), bl.SrcY)
	assert.Equal(t, float32(e.Rect.Max.X), tr.SrcX)
	assert.Equal(t, float32(e.Rect.Min.Y), tr.SrcY)
	assert.Less(t, bl.DstY, tr.DstY)
}

func TestRenderTextScalesToSize(t *testing.T) {
	f, c := newFakeText(t)
	_, bounds, err := RenderText(f, c, 1, "ab", AlignLineLeft)
	require.NoError(t, err)
	assertRect(t, bounds, -0.1, -0.1, 1, 0.8)
}

func TestRenderTextAlignment(t *testing.T) {
	tests := []struct {
		name  string
		align Alignment
		x, y  float64
	}{
		{"line right", AlignLineRight, -10, -1},
		{"line center", AlignLineCenter, -5.5, -1},
		{"top left", AlignTopLeft, -1, -8},
		{"top right", AlignTopRight, -10, -8},
		{"middle center", AlignMiddleCenter, -5.5, -4},
		{"middle left", AlignMiddleLeft, -1, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, c := newFakeText(t)
			_, bounds, err := RenderText(f, c, 10, "ab", tt.align)
			require.NoError(t, err)
			assertRect(t, bounds, tt.x, tt.y, 10, 8)
		})
	}
}

func TestRenderTextMultiline(t *testing.T) {
	f, c := newFakeText(t)
	mesh, bounds, err := RenderText(f, c, 10, "a\na", AlignLineLeft)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 8)
	// Second baseline one line height below the first.
	assertRect(t, bounds, -1, -13, 6, 20)
}

func TestRenderTextPerLineAlignment(t *testing.T) {
	f, c := newFakeText(t)
	mesh, _, err := RenderText(f, c, 10, "a\nab", AlignLineRight)
	require.NoError(t, err)
	require.Len(t, mesh.Vertices, 12)
	// Both lines end at x = 0 in advance terms: "a" is 5 wide, "ab" 9.
	assert.InDelta(t, -6, mesh.Vertices[0].DstX, 1e-6)
	assert.InDelta(t, -10, mesh.Vertices[4].DstX, 1e-6)
}

func TestRenderTextSkipsMissingAndSpaces(t *testing.T) {
	f, c := newFakeText(t)
	mesh, bounds, err := RenderText(f, c, 10, "a zb", AlignLineLeft)
	require.NoError(t, err)
	// 'z' is unknown; the space advances without a quad.
	assert.Len(t, mesh.Vertices, 8)
	assert.InDelta(t, 5+3-1, mesh.Vertices[4].DstX, 1e-6)
	assertRect(t, bounds, -1, -1, 14, 8)
}

func TestRenderTextNormalizesNFC(t *testing.T) {
	f, c := newFakeText(t)
	// "e" followed by a combining acute accent composes to 'é'.
	mesh, _, err := RenderText(f, c, 10, "e\u0301", AlignLineLeft)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 4)
}

func TestRenderTextNeedsOpenFont(t *testing.T) {
	_, c := newFakeText(t)
	_, _, err := RenderText(&fakeFont{}, c, 10, "a", AlignLineLeft)
	assert.ErrorIs(t, err, ErrFontNotOpened)
}

func TestDynamicLabelReusesBuffers(t *testing.T) {
	f, c := newFakeText(t)
	l, err := NewDynamicLabel(f, c, 10, AlignTopRight)
	require.NoError(t, err)
	l.Reserve(40)
	assert.Equal(t, 40, l.Capacity())

	l.SetText("ab")
	require.Len(t, l.Mesh().Vertices, 8)
	first := &l.Mesh().Vertices[0]

	l.SetText("ba a")
	assert.Equal(t, "ba a", l.Text())
	require.Len(t, l.Mesh().Vertices, 12)
	assert.Same(t, first, &l.Mesh().Vertices[0])
	assert.Equal(t, 40, l.Capacity())
	assert.InDelta(t, 0, l.Rectangle().Max().Y, 1e-6)

	l.SetText("")
	assert.Empty(t, l.Mesh().Vertices)
	assert.Empty(t, l.Mesh().Indices)
}

func TestDynamicLabelNeedsOpenFont(t *testing.T) {
	_, err := NewDynamicLabel(&fakeFont{}, nil, 10, AlignTopRight)
	assert.ErrorIs(t, err, ErrFontNotOpened)
}
