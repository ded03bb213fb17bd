package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter interface{ Greet() string }

type english struct{}

func (english) Greet() string { return "hello" }

func TestPluginManagerLoadAndInstantiate(t *testing.T) {
	m := NewPluginManager[greeter]("greeter")
	m.Register("English", func() greeter { return english{} }, "en")

	assert.Equal(t, LoadStateNotFound, m.State("English"))
	_, err := m.Instantiate("English")
	assert.ErrorIs(t, err, ErrPluginNotLoaded)

	assert.Equal(t, LoadStateLoaded, m.Load("English"))
	assert.Equal(t, LoadStateLoaded, m.State("English"))
	g, err := m.Instantiate("English")
	require.NoError(t, err)
	assert.Equal(t, "hello", g.Greet())

	// Aliases share the loaded state.
	assert.Equal(t, LoadStateLoaded, m.State("en"))
}

func TestPluginManagerNotFound(t *testing.T) {
	m := NewPluginManager[greeter]("greeter")
	assert.Equal(t, LoadStateNotFound, m.Load("Klingon"))

	_, err := m.Instantiate("Klingon")
	assert.ErrorIs(t, err, ErrPluginNotFound)
	_, err = m.LoadAndInstantiate("Klingon")
	assert.ErrorIs(t, err, ErrPluginNotFound)
	assert.Contains(t, err.Error(), `greeter plugin "Klingon"`)
}

func TestPluginManagerInstancesAreIndependent(t *testing.T) {
	m := NewPluginManager[*GlyphCache]("cache")
	m.Register("Small", func() *GlyphCache { return NewGlyphCache(8, 8) })
	a, err := m.LoadAndInstantiate("Small")
	require.NoError(t, err)
	b, err := m.Instantiate("Small")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestFontManager(t *testing.T) {
	m := NewFontManager()
	assert.Equal(t, []string{"BitmapFont", "TrueTypeFont"}, m.PluginList())

	f, err := m.LoadAndInstantiate("TrueTypeFont")
	require.NoError(t, err)
	assert.IsType(t, &TrueTypeFont{}, f)
	assert.False(t, f.IsOpened())

	f, err = m.LoadAndInstantiate("OpenTypeFont")
	require.NoError(t, err)
	assert.IsType(t, &TrueTypeFont{}, f)

	f, err = m.LoadAndInstantiate("BitmapFont")
	require.NoError(t, err)
	assert.IsType(t, &BitmapFont{}, f)
}

func TestImporterManager(t *testing.T) {
	m := NewImporterManager()
	assert.Equal(t, []string{"AnyImageImporter", "BmpImporter", "PngImporter", "TgaImporter"}, m.PluginList())

	imp, err := m.LoadAndInstantiate("TGAImporter")
	require.NoError(t, err)
	assert.IsType(t, &TgaImporter{}, imp)
}

func TestLoadStateString(t *testing.T) {
	assert.Equal(t, "loaded", LoadStateLoaded.String())
	assert.Equal(t, "not found", LoadStateNotFound.String())
}
