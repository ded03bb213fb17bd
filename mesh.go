package lumen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Mesh is an indexed triangle list. Vertex DstX/DstY hold model-space
// positions (Y up); SrcX/SrcY hold texel coordinates into Image. Vertex
// colors are straight (non-premultiplied) and are multiplied by the
// material tint at draw time.
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16

	// Image is the texture sampled by the mesh. Nil means a white pixel.
	Image *ebiten.Image

	// Bounds is the model-space bounding box of Vertices.
	Bounds Rect
}

// IndexCount returns the number of indices drawn.
func (m *Mesh) IndexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices)
}

// transformVertices applies an affine transform and color tint to src vertices,
// writing the result into dst. dst must be at least len(src) in length.
//
// Color components are premultiplied here: ebiten expects premultiplied
// vertex colors.
func transformVertices(src, dst []ebiten.Vertex, m Matrix3, tint Color) {
	a, b, c, d, tx, ty := m[0], m[1], m[2], m[3], m[4], m[5]
	t := tint.premultiplied()
	ta := float32(clamp01(tint.A))

	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * s.ColorA * t[0],
			ColorG: s.ColorG * s.ColorA * t[1],
			ColorB: s.ColorB * s.ColorA * t[2],
			ColorA: s.ColorA * ta,
		}
	}
}

// computeMeshAABB scans DstX/DstY of the given vertices and returns
// the axis-aligned bounding box in model space.
func computeMeshAABB(verts []ebiten.Vertex) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	minX := float64(verts[0].DstX)
	minY := float64(verts[0].DstY)
	maxX := minX
	maxY := minY
	for i := 1; i < len(verts); i++ {
		x := float64(verts[i].DstX)
		y := float64(verts[i].DstY)
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ColoredVertex is a position plus an opaque color, the input of
// NewTriangleMesh.
type ColoredVertex struct {
	Position Vec2
	Color    Color
}

// NewTriangleMesh builds a single untextured triangle with per-vertex colors.
func NewTriangleMesh(v [3]ColoredVertex) *Mesh {
	verts := make([]ebiten.Vertex, 3)
	for i, cv := range v {
		verts[i] = ebiten.Vertex{
			DstX:   float32(cv.Position.X),
			DstY:   float32(cv.Position.Y),
			SrcX:   1.5,
			SrcY:   1.5,
			ColorR: float32(cv.Color.R),
			ColorG: float32(cv.Color.G),
			ColorB: float32(cv.Color.B),
			ColorA: float32(cv.Color.A),
		}
	}
	return &Mesh{
		Vertices: verts,
		Indices:  []uint16{0, 1, 2},
		Bounds:   computeMeshAABB(verts),
	}
}

// TexturedVertex is a position plus a texture coordinate in [0, 1] with V
// pointing up, the input of NewTexturedTriangleMesh.
type TexturedVertex struct {
	Position Vec2
	UV       Vec2
}

// NewTexturedTriangleMesh builds a single triangle sampling img.
func NewTexturedTriangleMesh(img *ebiten.Image, v [3]TexturedVertex) *Mesh {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	verts := make([]ebiten.Vertex, 3)
	for i, tv := range v {
		verts[i] = ebiten.Vertex{
			DstX:   float32(tv.Position.X),
			DstY:   float32(tv.Position.Y),
			SrcX:   float32(float64(b.Min.X) + tv.UV.X*w),
			SrcY:   float32(float64(b.Min.Y) + (1-tv.UV.Y)*h),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	return &Mesh{
		Vertices: verts,
		Indices:  []uint16{0, 1, 2},
		Image:    img,
		Bounds:   computeMeshAABB(verts),
	}
}

// --- White pixel singleton (no sync.Once, lumen is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 3x3 white image. Untextured
// meshes sample its center texel.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(3, 3)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
