package lumen

import (
	"image"
	"math"
)

// edtInf stands in for "no feature pixel" in the squared distance transform.
const edtInf = 1e20

// distanceField converts a coverage mask into a signed distance field.
//
// The mask is padded by radius pixels on every side. The returned image has
// the padded size divided by downsample (rounded up); each texel stores
// 0.5 + d/(2*radius), clamped to [0, 1], where d is the Euclidean distance
// to the glyph edge in source pixels, positive inside the glyph. Texels on
// the edge are therefore 0.5.
func distanceField(mask *image.Alpha, radius, downsample int) *image.Gray {
	if downsample < 1 {
		downsample = 1
	}
	mb := mask.Bounds()
	w := mb.Dx() + 2*radius
	h := mb.Dy() + 2*radius

	inside := make([]float64, w*h)
	outside := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			mx, my := x-radius, y-radius
			covered := mx >= 0 && my >= 0 && mx < mb.Dx() && my < mb.Dy() &&
				mask.AlphaAt(mb.Min.X+mx, mb.Min.Y+my).A >= 0x80
			if covered {
				outside[i] = 0
				inside[i] = edtInf
			} else {
				outside[i] = edtInf
				inside[i] = 0
			}
		}
	}
	squaredDistance2D(outside, w, h)
	squaredDistance2D(inside, w, h)

	signed := make([]float64, w*h)
	r := float64(max(radius, 1))
	for i := range signed {
		// outside holds the distance to the nearest covered pixel, inside the
		// distance to the nearest uncovered one; exactly one of them is zero.
		d := math.Sqrt(inside[i]) - math.Sqrt(outside[i])
		signed[i] = clamp01(0.5 + d/(2*r))
	}

	ow := (w + downsample - 1) / downsample
	oh := (h + downsample - 1) / downsample
	out := image.NewGray(image.Rect(0, 0, ow, oh))
	for oy := 0; oy < oh; oy++ {
		for ox := 0; ox < ow; ox++ {
			var sum float64
			var n int
			for sy := oy * downsample; sy < min((oy+1)*downsample, h); sy++ {
				for sx := ox * downsample; sx < min((ox+1)*downsample, w); sx++ {
					sum += signed[sy*w+sx]
					n++
				}
			}
			out.Pix[oy*out.Stride+ox] = uint8(math.Round(sum / float64(n) * 255))
		}
	}
	return out
}

// squaredDistance2D replaces every element of grid (w*h, row-major) with
// the squared Euclidean distance to the nearest zero element, using the
// separable Felzenszwalb–Huttenlocher transform.
func squaredDistance2D(grid []float64, w, h int) {
	n := max(w, h)
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			f[y] = grid[y*w+x]
		}
		squaredDistance1D(f[:h], d[:h], v, z)
		for y := 0; y < h; y++ {
			grid[y*w+x] = d[y]
		}
	}
	for y := 0; y < h; y++ {
		row := grid[y*w : (y+1)*w]
		copy(f[:w], row)
		squaredDistance1D(f[:w], d[:w], v, z)
		copy(row, d[:w])
	}
}

// squaredDistance1D computes the lower envelope of parabolas rooted at f.
// v and z are scratch buffers of at least len(f) and len(f)+1 elements.
func squaredDistance1D(f, d []float64, v []int, z []float64) {
	n := len(f)
	if n == 0 {
		return
	}
	k := 0
	v[0] = 0
	z[0] = -edtInf
	z[1] = edtInf
	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = edtInf
	}
	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersect returns the abscissa where the parabolas rooted at q and p meet.
func intersect(f []float64, q, p int) float64 {
	fq, fp := float64(q), float64(p)
	return ((f[q] + fq*fq) - (f[p] + fp*fp)) / (2*fq - 2*fp)
}
