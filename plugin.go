package lumen

import (
	"errors"
	"fmt"
	"sort"
)

// ErrPluginNotFound is returned when a plugin name is not registered.
var ErrPluginNotFound = errors.New("lumen: plugin not found")

// ErrPluginNotLoaded is returned by Instantiate before Load succeeded.
var ErrPluginNotLoaded = errors.New("lumen: plugin not loaded")

// LoadState is the result of PluginManager.Load.
type LoadState uint8

const (
	LoadStateNotFound LoadState = iota // no plugin registered under the name
	LoadStateLoaded                    // plugin is ready to instantiate
)

// String returns a readable name for logs.
func (s LoadState) String() string {
	if s == LoadStateLoaded {
		return "loaded"
	}
	return "not found"
}

type pluginEntry[T any] struct {
	name    string
	factory func() T
	loaded  bool
}

// PluginManager keeps a set of named plugin factories of one interface type.
// Plugins are linked into the binary and registered at construction; Load
// marks one usable and Instantiate creates fresh instances of it.
//
// A PluginManager is owned by the application that created it. There is no
// package-level registry.
type PluginManager[T any] struct {
	kind    string
	plugins map[string]*pluginEntry[T]
	aliases map[string]string
}

// NewPluginManager creates an empty manager. kind names the plugin interface
// in error messages ("font", "importer").
func NewPluginManager[T any](kind string) *PluginManager[T] {
	return &PluginManager[T]{
		kind:    kind,
		plugins: make(map[string]*pluginEntry[T]),
		aliases: make(map[string]string),
	}
}

// Register adds a plugin under name, optionally reachable through aliases.
// Registering an existing name replaces it.
func (m *PluginManager[T]) Register(name string, factory func() T, aliases ...string) {
	m.plugins[name] = &pluginEntry[T]{name: name, factory: factory}
	for _, a := range aliases {
		m.aliases[a] = name
	}
}

func (m *PluginManager[T]) lookup(name string) *pluginEntry[T] {
	if p, ok := m.plugins[name]; ok {
		return p
	}
	if real, ok := m.aliases[name]; ok {
		return m.plugins[real]
	}
	return nil
}

// Load makes the named plugin available for instantiation.
func (m *PluginManager[T]) Load(name string) LoadState {
	p := m.lookup(name)
	if p == nil {
		return LoadStateNotFound
	}
	p.loaded = true
	return LoadStateLoaded
}

// State returns the current state of the named plugin without loading it.
func (m *PluginManager[T]) State(name string) LoadState {
	if p := m.lookup(name); p != nil && p.loaded {
		return LoadStateLoaded
	}
	return LoadStateNotFound
}

// Instantiate returns a new instance of a loaded plugin.
func (m *PluginManager[T]) Instantiate(name string) (T, error) {
	var zero T
	p := m.lookup(name)
	if p == nil {
		return zero, fmt.Errorf("%w: %s plugin %q", ErrPluginNotFound, m.kind, name)
	}
	if !p.loaded {
		return zero, fmt.Errorf("%w: %s plugin %q", ErrPluginNotLoaded, m.kind, name)
	}
	return p.factory(), nil
}

// LoadAndInstantiate is Load followed by Instantiate.
func (m *PluginManager[T]) LoadAndInstantiate(name string) (T, error) {
	if m.Load(name) != LoadStateLoaded {
		var zero T
		return zero, fmt.Errorf("%w: %s plugin %q", ErrPluginNotFound, m.kind, name)
	}
	return m.Instantiate(name)
}

// PluginList returns the registered plugin names in sorted order.
func (m *PluginManager[T]) PluginList() []string {
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewFontManager returns a manager with the built-in font plugins:
// "TrueTypeFont" (alias "OpenTypeFont") and "BitmapFont".
func NewFontManager() *PluginManager[Font] {
	m := NewPluginManager[Font]("font")
	m.Register("TrueTypeFont", func() Font { return NewTrueTypeFont() }, "OpenTypeFont")
	m.Register("BitmapFont", func() Font { return &BitmapFont{} })
	return m
}

// NewImporterManager returns a manager with the built-in image importers:
// "PngImporter", "TgaImporter", "BmpImporter" and "AnyImageImporter".
func NewImporterManager() *PluginManager[ImageImporter] {
	m := NewPluginManager[ImageImporter]("importer")
	m.Register("PngImporter", func() ImageImporter { return &PngImporter{} })
	m.Register("TgaImporter", func() ImageImporter { return &TgaImporter{} }, "TGAImporter")
	m.Register("BmpImporter", func() ImageImporter { return &BmpImporter{} })
	m.Register("AnyImageImporter", func() ImageImporter { return &AnyImageImporter{} })
	return m
}
