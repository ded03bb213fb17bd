package lumen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/bmp"
)

// ErrNoImage is returned when an importer is asked for an image it does not
// have, including any image before OpenData succeeded.
var ErrNoImage = errors.New("lumen: no image")

// ImageImporter decodes image files into 2D images.
type ImageImporter interface {
	// OpenData decodes data. Any previously opened data is released.
	OpenData(data []byte) error
	// IsOpened reports whether the last OpenData succeeded.
	IsOpened() bool
	// Image2DCount returns the number of images in the opened file.
	Image2DCount() int
	// Image2D returns the image with the given index.
	Image2D(id int) (image.Image, error)
	// Close releases the opened data.
	Close()
}

// singleImage is the shared state of importers whose files hold one image.
type singleImage struct {
	img image.Image
}

func (s *singleImage) IsOpened() bool { return s.img != nil }

func (s *singleImage) Image2DCount() int {
	if s.img == nil {
		return 0
	}
	return 1
}

func (s *singleImage) Image2D(id int) (image.Image, error) {
	if s.img == nil || id != 0 {
		return nil, fmt.Errorf("%w: index %d", ErrNoImage, id)
	}
	return s.img, nil
}

func (s *singleImage) Close() { s.img = nil }

// PngImporter decodes PNG files.
type PngImporter struct{ singleImage }

// OpenData implements ImageImporter.
func (p *PngImporter) OpenData(data []byte) error {
	p.img = nil
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("lumen: decode png: %w", err)
	}
	p.img = img
	return nil
}

// BmpImporter decodes Windows BMP files.
type BmpImporter struct{ singleImage }

// OpenData implements ImageImporter.
func (p *BmpImporter) OpenData(data []byte) error {
	p.img = nil
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("lumen: decode bmp: %w", err)
	}
	p.img = img
	return nil
}

// TgaImporter decodes Truevision TGA files.
type TgaImporter struct{ singleImage }

// OpenData implements ImageImporter.
func (p *TgaImporter) OpenData(data []byte) error {
	p.img = nil
	img, err := decodeTGA(data)
	if err != nil {
		return err
	}
	p.img = img
	return nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// AnyImageImporter picks PNG, BMP or TGA decoding from the file contents.
// TGA has no signature, so it is the fallback.
type AnyImageImporter struct {
	delegate ImageImporter
}

// OpenData implements ImageImporter.
func (p *AnyImageImporter) OpenData(data []byte) error {
	p.delegate = nil
	var imp ImageImporter
	switch {
	case bytes.HasPrefix(data, pngSignature):
		imp = &PngImporter{}
	case bytes.HasPrefix(data, []byte("BM")):
		imp = &BmpImporter{}
	default:
		imp = &TgaImporter{}
	}
	if err := imp.OpenData(data); err != nil {
		return err
	}
	p.delegate = imp
	return nil
}

// IsOpened implements ImageImporter.
func (p *AnyImageImporter) IsOpened() bool {
	return p.delegate != nil && p.delegate.IsOpened()
}

// Image2DCount implements ImageImporter.
func (p *AnyImageImporter) Image2DCount() int {
	if p.delegate == nil {
		return 0
	}
	return p.delegate.Image2DCount()
}

// Image2D implements ImageImporter.
func (p *AnyImageImporter) Image2D(id int) (image.Image, error) {
	if p.delegate == nil {
		return nil, fmt.Errorf("%w: index %d", ErrNoImage, id)
	}
	return p.delegate.Image2D(id)
}

// Close implements ImageImporter.
func (p *AnyImageImporter) Close() {
	if p.delegate != nil {
		p.delegate.Close()
		p.delegate = nil
	}
}
