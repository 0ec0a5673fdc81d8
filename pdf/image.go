package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
)

// imageXObject encodes img as a flate-compressed DeviceRGB image
// XObject. Any alpha is composited onto white first, matching how the
// palette extractor treats transparency.
func imageXObject(img image.Image) (*Stream, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pdf: empty image")
	}

	raw := make([]byte, 0, w*h*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			raw = append(raw, flattenChan(r, a), flattenChan(g, a), flattenChan(bl, a))
		}
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("pdf: compressing image: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("pdf: compressing image: %w", err)
	}

	dict := NewDict().
		Set("Type", Name("XObject")).
		Set("Subtype", Name("Image")).
		Set("Width", Integer(w)).
		Set("Height", Integer(h)).
		Set("ColorSpace", Name("DeviceRGB")).
		Set("BitsPerComponent", Integer(8)).
		Set("Filter", Name("FlateDecode"))
	return &Stream{Dict: dict, Data: buf.Bytes()}, nil
}

// flattenChan composites one premultiplied 16-bit channel over white and
// reduces it to 8 bits.
func flattenChan(c, a uint32) byte {
	v := c + (0xffff - a)
	if v > 0xffff {
		v = 0xffff
	}
	return byte(v >> 8)
}
