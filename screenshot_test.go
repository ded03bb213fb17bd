package lumen

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"initial", "initial"},
		{"after-scroll.1", "after-scroll.1"},
		{"  spaced out  ", "spaced_out"},
		{"a/b\\c:d", "a_b_c_d"},
		{"světe", "sv_te"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		100, 50, 0, 200, // half-ish alpha
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)

	if got := img.NRGBAAt(0, 0); got.R != 127 || got.G != 63 || got.B != 0 || got.A != 200 {
		t.Errorf("pixel 0 = %v, want {127 63 0 200}", got)
	}
	if got := img.NRGBAAt(1, 0); got.R != 10 || got.G != 20 || got.B != 30 || got.A != 255 {
		t.Errorf("pixel 1 = %v, want opaque passthrough", got)
	}
	if got := img.NRGBAAt(2, 0); got.A != 0 {
		t.Errorf("pixel 2 alpha = %d, want 0", got.A)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := unpremultiply([]byte{255, 0, 0, 255, 0, 0, 255, 255}, 2, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("bounds = %v, want 2x1", b)
	}
	if r, _, _, _ := decoded.At(0, 0).RGBA(); r != 0xffff {
		t.Errorf("red = %x, want ffff", r)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "shot.png")
	if err := writePNG(path, unpremultiply(make([]byte, 4), 1, 1)); err == nil {
		t.Error("expected error for missing directory")
	}
}
