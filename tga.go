package lumen

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/ftrvxmtrx/tga"
)

// ErrUnsupportedTGA is returned for TGA image types that cannot be read.
var ErrUnsupportedTGA = errors.New("lumen: unsupported tga")

const tgaHeaderSize = 18

// TGA image types.
const (
	tgaColorMapped    = 1
	tgaTrueColor      = 2
	tgaGrayscale      = 3
	tgaRLEColorMapped = 9
	tgaRLETrueColor   = 10
	tgaRLEGrayscale   = 11
)

// tgaMaxRun is the largest pixel count a single RLE packet expands to.
const tgaMaxRun = 128

// checkTGASize rejects headers whose dimensions the pixel data cannot hold,
// before the decoder allocates the image.
func checkTGASize(data []byte) error {
	if len(data) < tgaHeaderSize {
		return fmt.Errorf("lumen: decode tga: header truncated (%d bytes)", len(data))
	}
	idLength := int(data[0])
	imageType := data[2]
	width := int(binary.LittleEndian.Uint16(data[12:14]))
	height := int(binary.LittleEndian.Uint16(data[14:16]))
	pixelSize := (int(data[16]) + 7) / 8

	if width == 0 || height == 0 {
		return fmt.Errorf("lumen: decode tga: empty image %dx%d", width, height)
	}
	body := len(data) - tgaHeaderSize - idLength
	if body < 0 {
		return fmt.Errorf("lumen: decode tga: id field truncated")
	}

	pixels := width * height
	switch imageType {
	case tgaColorMapped, tgaTrueColor, tgaGrayscale:
		if need := pixels * pixelSize; body < need {
			return fmt.Errorf("lumen: decode tga: pixel data truncated (%d of %d bytes)", body, need)
		}
	case tgaRLEColorMapped, tgaRLETrueColor, tgaRLEGrayscale:
		if pixels > body*tgaMaxRun {
			return fmt.Errorf("lumen: decode tga: rle data too short for %dx%d", width, height)
		}
	default:
		return fmt.Errorf("%w: image type %d", ErrUnsupportedTGA, imageType)
	}
	return nil
}

// decodeTGA reads uncompressed and RLE-compressed true-color, grayscale and
// color-mapped TGA images.
func decodeTGA(data []byte) (image.Image, error) {
	if err := checkTGASize(data); err != nil {
		return nil, err
	}
	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("lumen: decode tga: %w", err)
	}
	return img, nil
}
