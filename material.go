package lumen

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Material selects how a Surface shades a mesh. Implementations are
// *DistanceFieldVector, VertexColor and Flat.
type Material interface {
	blend() BlendMode
}

// --- Kage shader sources ---
// All shaders use //kage:unit pixels as required by Ebitengine.
// Ebitengine uses premultiplied alpha; color uniforms are premultiplied.

// distanceFieldShaderSrc shades a distance-field glyph atlas: intensity 0.5
// is the glyph edge, greater values are inside. The fill is a smoothed step
// at OutlineRange.x; when OutlineRange.x > OutlineRange.y the band between
// the two is drawn in OutlineColor.
const distanceFieldShaderSrc = `//kage:unit pixels
package main

var Color vec4
var OutlineColor vec4
var OutlineRange vec2
var Smoothness float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	intensity := imageSrc0At(src).r
	c := smoothstep(OutlineRange.x-Smoothness, OutlineRange.x+Smoothness, intensity) * Color
	if OutlineRange.x > OutlineRange.y {
		mid := (OutlineRange.x + OutlineRange.y) / 2
		halfRange := (OutlineRange.x - OutlineRange.y) / 2
		d := abs(mid - intensity)
		c += (1 - smoothstep(halfRange-Smoothness, halfRange+Smoothness, d)) * OutlineColor
	}
	return c * color.a
}
`

// --- Lazy shader compilation (no sync.Once, lumen is single-threaded) ---

var distanceFieldShader *ebiten.Shader

func ensureDistanceFieldShader() *ebiten.Shader {
	if distanceFieldShader == nil {
		s, err := ebiten.NewShader([]byte(distanceFieldShaderSrc))
		if err != nil {
			panic("lumen: failed to compile distance field shader: " + err.Error())
		}
		distanceFieldShader = s
	}
	return distanceFieldShader
}

// --- DistanceFieldVector ---

// DistanceFieldVector renders text meshes from a glyph cache with fill
// color, outline and edge smoothness computed from the distance field.
type DistanceFieldVector struct {
	Cache        *GlyphCache
	Color        Color
	OutlineColor Color
	// OutlineStart is the intensity of the fill edge; OutlineEnd the outer
	// edge of the outline. No outline is drawn unless OutlineStart > OutlineEnd.
	OutlineStart float64
	OutlineEnd   float64
	// Smoothness is the half-width of the edge transition in intensity units.
	Smoothness float64
	Blend      BlendMode

	uniforms map[string]any
	color    [4]float32 // persistent buffers to avoid per-frame slice escape
	outline  [4]float32
	rng      [2]float32
}

func (m *DistanceFieldVector) blend() BlendMode { return m.Blend }

// shaderUniforms refreshes and returns the uniform map for the Kage shader.
func (m *DistanceFieldVector) shaderUniforms() map[string]any {
	if m.uniforms == nil {
		m.uniforms = make(map[string]any, 4)
	}
	m.color = m.Color.premultiplied()
	m.outline = m.OutlineColor.premultiplied()
	m.rng = [2]float32{float32(m.OutlineStart), float32(m.OutlineEnd)}
	m.uniforms["Color"] = m.color[:]
	m.uniforms["OutlineColor"] = m.outline[:]
	m.uniforms["OutlineRange"] = m.rng[:]
	m.uniforms["Smoothness"] = float32(m.Smoothness)
	return m.uniforms
}

// --- VertexColor ---

// VertexColor draws untextured meshes with their per-vertex colors.
type VertexColor struct {
	Blend BlendMode
}

func (m VertexColor) blend() BlendMode { return m.Blend }

// --- Flat ---

// Flat draws a mesh's texture multiplied by Color.
type Flat struct {
	Color Color
	Blend BlendMode
}

func (m Flat) blend() BlendMode { return m.Blend }
