// Package stamp renders machine-readable stamps (QR or PDF417) as
// images for placement in a page header.
package stamp

import (
	"errors"
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/ruudk/golang-pdf417"
)

// Kinds accepted by Render.
const (
	KindQR     = "qr"
	KindPDF417 = "pdf417"
)

// ErrUnknownKind is returned for a stamp kind Render does not support.
var ErrUnknownKind = errors.New("stamp: unknown kind")

const (
	pdf417Columns  = 4
	pdf417Security = 2
)

// Render encodes content as a stamp of the given kind, scaled to
// px by px pixels. PDF417 output keeps the symbology's native aspect
// inside the square.
func Render(kind, content string, px int) (image.Image, error) {
	if px <= 0 {
		px = 128
	}
	switch kind {
	case KindQR:
		code, err := qr.Encode(content, qr.M, qr.Auto)
		if err != nil {
			return nil, fmt.Errorf("stamp: encoding qr: %w", err)
		}
		scaled, err := barcode.Scale(code, px, px)
		if err != nil {
			return nil, fmt.Errorf("stamp: scaling qr: %w", err)
		}
		return scaled, nil

	case KindPDF417:
		code := pdf417.Encode(content, pdf417Columns, pdf417Security)
		b := code.Bounds()
		w, h := px, px
		if b.Dx() > 0 && b.Dy() > 0 {
			h = px * b.Dy() / b.Dx()
			if h < 1 {
				h = 1
			}
		}
		scaled, err := barcode.Scale(code, w, h)
		if err != nil {
			return nil, fmt.Errorf("stamp: scaling pdf417: %w", err)
		}
		return scaled, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
