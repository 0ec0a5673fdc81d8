// Package palette extracts dominant brand colors from raster logo images.
//
// Images with an alpha channel are composited onto white before
// quantization so that transparent backgrounds do not skew the palette
// toward white or grey. Extraction is a pure function over the image
// bytes: the decoded pixel buffer only lives for the duration of the call.
package palette

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sort"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Sentinel errors returned by Extract.
var (
	// ErrImageDecode reports corrupt or unsupported image data.
	ErrImageDecode = errors.New("palette: cannot decode image")
	// ErrEmptyPalette reports an image with no distinct non-background
	// colors, e.g. a fully transparent or fully white logo. Callers
	// normally substitute a default palette.
	ErrEmptyPalette = errors.New("palette: no distinct colors found")
)

const (
	// maxSample caps the longer image edge during sampling. Logos are
	// flat-color artwork; 160px is plenty for a dominant-color census.
	maxSample = 160

	// quantBits per channel when bucketing pixels before median cut.
	quantBits = 5

	// Near-white luminance above which a composited pixel counts as
	// background rather than artwork.
	backgroundLum = 0.96
)

// Extract reduces imageBytes to at most maxColors dominant colors, most
// populous first. It returns ErrImageDecode for undecodable input and
// ErrEmptyPalette when the image holds nothing but background.
func Extract(imageBytes []byte, maxColors int) ([]RGB, error) {
	if maxColors < 1 {
		maxColors = 1
	}
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	counts := census(img)
	if len(counts) == 0 {
		return nil, ErrEmptyPalette
	}
	return medianCut(counts, maxColors), nil
}

// bucket is a quantized color with its pixel population.
type bucket struct {
	c RGB
	n int
}

// census samples the image, composites alpha onto white, and returns the
// population of each quantized non-background color.
func census(img image.Image) []bucket {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	step := 1
	if w > maxSample || h > maxSample {
		step = (max(w, h) + maxSample - 1) / maxSample
	}

	shift := uint(8 - quantBits)
	counts := make(map[RGB]int)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := flattenOnWhite(img.At(x, y).RGBA())
			if c.Luminance() > backgroundLum {
				continue
			}
			q := RGB{
				R: (c.R >> shift) << shift,
				G: (c.G >> shift) << shift,
				B: (c.B >> shift) << shift,
			}
			counts[q]++
		}
	}

	out := make([]bucket, 0, len(counts))
	for c, n := range counts {
		out = append(out, bucket{c, n})
	}
	// Deterministic order regardless of map iteration.
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return key(out[i].c) < key(out[j].c)
	})
	return out
}

// flattenOnWhite converts premultiplied 16-bit RGBA to an opaque 8-bit
// color composited over a white background.
func flattenOnWhite(r, g, bl, a uint32) RGB {
	if a == 0 {
		return RGB{255, 255, 255}
	}
	comp := func(c uint32) uint8 {
		// c is premultiplied; add the white contribution of the
		// uncovered fraction.
		v := c + (0xffff - a)
		if v > 0xffff {
			v = 0xffff
		}
		return uint8(v >> 8)
	}
	return RGB{comp(r), comp(g), comp(bl)}
}

// medianCut splits the color census into up to n boxes along the widest
// channel and averages each box, weighted by population.
func medianCut(buckets []bucket, n int) []RGB {
	boxes := [][]bucket{buckets}
	for len(boxes) < n {
		// Split the most populous splittable box.
		idx := -1
		best := 0
		for i, bx := range boxes {
			if len(bx) < 2 {
				continue
			}
			p := population(bx)
			if p > best {
				best, idx = p, i
			}
		}
		if idx < 0 {
			break
		}
		lo, hi := splitBox(boxes[idx])
		boxes[idx] = lo
		boxes = append(boxes, hi)
	}

	sort.Slice(boxes, func(i, j int) bool {
		pi, pj := population(boxes[i]), population(boxes[j])
		if pi != pj {
			return pi > pj
		}
		return key(average(boxes[i])) < key(average(boxes[j]))
	})

	out := make([]RGB, 0, len(boxes))
	for _, bx := range boxes {
		out = append(out, average(bx))
	}
	return out
}

// splitBox orders a box along its widest channel and cuts it at the
// population median.
func splitBox(bx []bucket) (lo, hi []bucket) {
	var minC, maxC [3]int
	for i := range minC {
		minC[i] = 256
	}
	for _, b := range bx {
		ch := [3]int{int(b.c.R), int(b.c.G), int(b.c.B)}
		for i := 0; i < 3; i++ {
			if ch[i] < minC[i] {
				minC[i] = ch[i]
			}
			if ch[i] > maxC[i] {
				maxC[i] = ch[i]
			}
		}
	}
	widest := 0
	for i := 1; i < 3; i++ {
		if maxC[i]-minC[i] > maxC[widest]-minC[widest] {
			widest = i
		}
	}

	sorted := make([]bucket, len(bx))
	copy(sorted, bx)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := channel(sorted[i].c, widest), channel(sorted[j].c, widest)
		if a != b {
			return a < b
		}
		return key(sorted[i].c) < key(sorted[j].c)
	})

	total := population(sorted)
	acc := 0
	cut := 1
	for i, b := range sorted {
		acc += b.n
		if acc*2 >= total && i+1 < len(sorted) {
			cut = i + 1
			break
		}
	}
	return sorted[:cut], sorted[cut:]
}

func average(bx []bucket) RGB {
	var r, g, b, n int
	for _, bk := range bx {
		r += int(bk.c.R) * bk.n
		g += int(bk.c.G) * bk.n
		b += int(bk.c.B) * bk.n
		n += bk.n
	}
	if n == 0 {
		return RGB{}
	}
	return RGB{uint8(r / n), uint8(g / n), uint8(b / n)}
}

func population(bx []bucket) int {
	n := 0
	for _, b := range bx {
		n += b.n
	}
	return n
}

func channel(c RGB, i int) int {
	switch i {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}

func key(c RGB) int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}
