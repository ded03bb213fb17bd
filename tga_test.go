package lumen

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tgaHeader builds an 18-byte TGA header. 32 bpp images get 8 alpha bits.
func tgaHeader(imageType byte, w, h int, bpp byte, topDown bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	binary.LittleEndian.PutUint16(hdr[12:], uint16(w))
	binary.LittleEndian.PutUint16(hdr[14:], uint16(h))
	hdr[16] = bpp
	if bpp == 32 {
		hdr[17] = 8
	}
	if topDown {
		hdr[17] |= 0x20
	}
	return hdr
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestDecodeTGATrueColorBottomUp(t *testing.T) {
	// 2x2, BGR, bottom row first.
	data := append(tgaHeader(tgaTrueColor, 2, 2, 24, false),
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)
	img, err := decodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, nrgbaAt(img, 0, 0))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, nrgbaAt(img, 1, 0))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, nrgbaAt(img, 0, 1))
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, nrgbaAt(img, 1, 1))
}

func TestDecodeTGATopDownAlpha(t *testing.T) {
	data := append(tgaHeader(tgaTrueColor, 1, 2, 32, true),
		0, 0, 255, 128,
		255, 0, 0, 255,
	)
	img, err := decodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 0, 0, 128}, nrgbaAt(img, 0, 0))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, nrgbaAt(img, 0, 1))
}

func TestDecodeTGAGrayscale(t *testing.T) {
	data := append(tgaHeader(tgaGrayscale, 3, 1, 8, true), 0, 128, 255)
	img, err := decodeTGA(data)
	require.NoError(t, err)
	for x, want := range []uint8{0, 128, 255} {
		g := color.GrayModel.Convert(img.At(x, 0)).(color.Gray)
		assert.Equal(t, want, g.Y, "x=%d", x)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	data := append(tgaHeader(tgaRLETrueColor, 4, 1, 24, true),
		0x82, 1, 2, 3, // run of 3
		0x00, 7, 8, 9, // 1 raw pixel
	)
	img, err := decodeTGA(data)
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		assert.Equal(t, color.NRGBA{3, 2, 1, 255}, nrgbaAt(img, x, 0))
	}
	assert.Equal(t, color.NRGBA{9, 8, 7, 255}, nrgbaAt(img, 3, 0))
}

func TestDecodeTGASkipsIDField(t *testing.T) {
	hdr := tgaHeader(tgaGrayscale, 1, 1, 8, false)
	hdr[0] = 3
	data := append(hdr, 'a', 'b', 'c', 42)
	img, err := decodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(42), color.GrayModel.Convert(img.At(0, 0)).(color.Gray).Y)
}

func TestDecodeTGAErrors(t *testing.T) {
	idTruncated := tgaHeader(tgaGrayscale, 1, 1, 8, false)
	idTruncated[0] = 5

	tests := []struct {
		name        string
		data        []byte
		unsupported bool
	}{
		{"truncated header", []byte{0, 0, 2}, false},
		{"unknown type", tgaHeader(32, 1, 1, 24, false), true},
		{"empty", tgaHeader(tgaTrueColor, 0, 1, 24, false), false},
		{"id truncated", idTruncated, false},
		{"pixels truncated", append(tgaHeader(tgaTrueColor, 2, 2, 24, false), 1, 2, 3), false},
		{"rle truncated", append(tgaHeader(tgaRLETrueColor, 4, 1, 24, false), 0x80, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeTGA(tt.data)
			require.Error(t, err)
			assert.Equal(t, tt.unsupported, errors.Is(err, ErrUnsupportedTGA))
		})
	}
}

func TestCheckTGASizeRejectsOversizedHeaders(t *testing.T) {
	// Headers alone, claiming far more pixels than the data can carry, are
	// rejected before any pixel buffer is allocated.
	tests := []struct {
		name string
		data []byte
	}{
		{"uncompressed", tgaHeader(tgaTrueColor, 65535, 65535, 32, false)},
		{"uncompressed 8000", tgaHeader(tgaTrueColor, 8000, 8000, 32, false)},
		{"grayscale", append(tgaHeader(tgaGrayscale, 4000, 4000, 8, false), 1, 2, 3)},
		{"rle", append(tgaHeader(tgaRLETrueColor, 65535, 65535, 24, false), 0xff, 1, 2, 3)},
		{"rle gray", append(tgaHeader(tgaRLEGrayscale, 1000, 1000, 8, false), make([]byte, 100)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, checkTGASize(tt.data))

			_, err := decodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestCheckTGASizeAcceptsExactData(t *testing.T) {
	data := append(tgaHeader(tgaTrueColor, 2, 1, 24, false), 1, 2, 3, 4, 5, 6)
	assert.NoError(t, checkTGASize(data))

	// One full-length run packet covers 128 pixels.
	rle := append(tgaHeader(tgaRLEGrayscale, 128, 1, 8, false), 0xff, 9)
	assert.NoError(t, checkTGASize(rle))
	img, err := decodeTGA(rle)
	require.NoError(t, err)
	assert.Equal(t, uint8(9), color.GrayModel.Convert(img.At(127, 0)).(color.Gray).Y)
}
