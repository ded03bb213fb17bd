package lumen

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the target a frame is rendered into. Model coordinates are
// normalized device coordinates: [-1, 1] on both axes, Y up.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)
	// Clear fills the whole surface with c.
	Clear(c Color)
	// Draw renders mesh transformed by transformationProjection.
	Draw(mesh *Mesh, transformationProjection Matrix3, mat Material)
}

// viewportMatrix maps normalized device coordinates to pixels of a w x h
// target with Y down.
func viewportMatrix(w, h int) Matrix3 {
	hw, hh := float64(w)/2, float64(h)/2
	return Matrix3{hw, 0, 0, -hh, hw, hh}
}

// ebitenSurface draws into an ebiten image. Vertices are transformed on the
// CPU into a reused scratch buffer, then submitted with DrawTriangles or,
// for distance-field text, DrawTrianglesShader.
type ebitenSurface struct {
	target  *ebiten.Image
	scratch []ebiten.Vertex
	stats   frameStats
}

func newEbitenSurface() *ebitenSurface {
	return &ebitenSurface{}
}

// begin retargets the surface for a new frame.
func (s *ebitenSurface) begin(target *ebiten.Image) {
	s.target = target
	s.stats = frameStats{start: time.Now()}
}

// end closes the frame and returns its statistics.
func (s *ebitenSurface) end() frameStats {
	s.stats.drawTime = time.Since(s.stats.start)
	return s.stats
}

func (s *ebitenSurface) Size() (int, int) {
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ebitenSurface) Clear(c Color) {
	s.target.Fill(c.toRGBA())
}

func (s *ebitenSurface) Draw(mesh *Mesh, mvp Matrix3, mat Material) {
	if mesh == nil || len(mesh.Indices) == 0 {
		return
	}
	w, h := s.Size()
	m := viewportMatrix(w, h).Mul(mvp)

	tint := ColorWhite
	if f, ok := mat.(Flat); ok {
		tint = f.Color
	}
	if cap(s.scratch) < len(mesh.Vertices) {
		s.scratch = make([]ebiten.Vertex, len(mesh.Vertices))
	}
	verts := s.scratch[:len(mesh.Vertices)]
	transformVertices(mesh.Vertices, verts, m, tint)

	switch mt := mat.(type) {
	case *DistanceFieldVector:
		var op ebiten.DrawTrianglesShaderOptions
		op.Uniforms = mt.shaderUniforms()
		op.Images[0] = mt.Cache.Texture()
		op.Blend = mt.Blend.EbitenBlend()
		s.target.DrawTrianglesShader(verts, mesh.Indices, ensureDistanceFieldShader(), &op)
	default:
		img := mesh.Image
		if img == nil {
			img = ensureWhitePixel()
		}
		var op ebiten.DrawTrianglesOptions
		op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		op.Filter = ebiten.FilterLinear
		op.Blend = mat.blend().EbitenBlend()
		s.target.DrawTriangles(verts, mesh.Indices, img, &op)
	}

	s.stats.drawCalls++
	s.stats.vertices += len(mesh.Vertices)
	s.stats.indices += len(mesh.Indices)
}
