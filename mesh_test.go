package lumen

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTriangleMesh(t *testing.T) {
	m := NewTriangleMesh([3]ColoredVertex{
		{Position: Vec2{X: -0.5, Y: -0.5}, Color: ColorFromHex(0xff0000)},
		{Position: Vec2{X: 0.5, Y: -0.5}, Color: ColorFromHex(0x00ff00)},
		{Position: Vec2{X: 0, Y: 0.5}, Color: ColorFromHex(0x0000ff)},
	})
	require.Len(t, m.Vertices, 3)
	assert.Equal(t, []uint16{0, 1, 2}, m.Indices)
	assert.Equal(t, 3, m.IndexCount())
	assert.Nil(t, m.Image)
	assert.Equal(t, Rect{X: -0.5, Y: -0.5, Width: 1, Height: 1}, m.Bounds)

	assert.Equal(t, float32(1), m.Vertices[0].ColorR)
	assert.Equal(t, float32(1), m.Vertices[1].ColorG)
	assert.Equal(t, float32(1), m.Vertices[2].ColorB)
	assert.Zero(t, m.Vertices[2].ColorR)
}

func TestMeshIndexCountNil(t *testing.T) {
	var m *Mesh
	assert.Zero(t, m.IndexCount())
}

func TestTransformVertices(t *testing.T) {
	src := []ebiten.Vertex{
		{DstX: 1, DstY: 0, SrcX: 3, SrcY: 4, ColorR: 1, ColorG: 0.5, ColorB: 0, ColorA: 1},
	}
	dst := make([]ebiten.Vertex, 1)
	transformVertices(src, dst, Translation(10, 20).Mul(Rotation(90)), Color{1, 1, 1, 0.5})

	assert.InDelta(t, 10, dst[0].DstX, 1e-6)
	assert.InDelta(t, 21, dst[0].DstY, 1e-6)
	assert.Equal(t, float32(3), dst[0].SrcX)
	assert.Equal(t, float32(4), dst[0].SrcY)
	// Tint alpha premultiplies the color.
	assert.InDelta(t, 0.5, dst[0].ColorR, 1e-6)
	assert.InDelta(t, 0.25, dst[0].ColorG, 1e-6)
	assert.InDelta(t, 0.5, dst[0].ColorA, 1e-6)
}

func TestViewportMatrix(t *testing.T) {
	m := viewportMatrix(800, 600)
	tests := []struct {
		x, y   float64
		px, py float64
	}{
		{-1, 1, 0, 0},
		{1, -1, 800, 600},
		{0, 0, 400, 300},
	}
	for _, tt := range tests {
		px, py := m.Apply(tt.x, tt.y)
		assert.InDelta(t, tt.px, px, 1e-9)
		assert.InDelta(t, tt.py, py, 1e-9)
	}
}

func TestComputeMeshAABBEmpty(t *testing.T) {
	assert.Equal(t, Rect{}, computeMeshAABB(nil))
}
