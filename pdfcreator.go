// Package pdfcreator turns a JSON form description and a brand image
// into a fillable, branded PDF.
//
// The pipeline runs in fixed stages: dominant colors are extracted from
// the brand image, a theme is derived from them, the form is laid out
// page by page, each field is mapped to an interactive widget, and the
// result is serialized as a PDF with an AcroForm field registry.
package pdfcreator

import (
	"bytes"
	"image"

	"github.com/scottcrawfordcoach/pdf-creator/formspec"
	"github.com/scottcrawfordcoach/pdf-creator/layout"
	"github.com/scottcrawfordcoach/pdf-creator/palette"
	"github.com/scottcrawfordcoach/pdf-creator/pdf"
	"github.com/scottcrawfordcoach/pdf-creator/stamp"
	"github.com/scottcrawfordcoach/pdf-creator/theme"
)

const (
	defaultPaletteSize = 6
	stampPixels        = 256
)

// Request carries the inputs for one document.
type Request struct {
	// Spec describes the form. Required.
	Spec *formspec.FormSpec

	// BrandImage seeds the color theme. When empty or undecodable the
	// default blue theme is used.
	BrandImage []byte

	// Logo is drawn in the page-1 header. Optional; often the same
	// bytes as BrandImage.
	Logo []byte

	// Suggestion pins individual theme roles to explicit colors. Each
	// suggested color is blended with its extracted counterpart.
	Suggestion theme.Suggestion
}

// Summary reports what Generate produced alongside the document bytes.
type Summary struct {
	Pages      int
	FieldPages map[string]int // field name to 1-based page number
	Warnings   []layout.Warning
	Theme      theme.Theme
}

// Generate runs the full pipeline and returns the PDF bytes. The spec
// is validated up front; a validation failure returns before any
// rendering work. Brand image problems never fail the call, they fall
// back to the default theme.
func Generate(req Request, opts ...Option) ([]byte, *Summary, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if req.Spec == nil {
		return nil, nil, ErrNoSpec
	}
	if err := req.Spec.Validate(); err != nil {
		return nil, nil, newOpError("validate", err)
	}
	if cfg.blendWeight < 0 || cfg.blendWeight > 1 || cfg.paletteSize < 1 {
		return nil, nil, ErrBadOption
	}

	th := buildTheme(req, cfg)

	engOpts := []layout.Option{}
	if cfg.watermark != "" {
		engOpts = append(engOpts, layout.WithWatermark(cfg.watermark))
	}
	if len(req.Logo) > 0 {
		logo, _, err := image.Decode(bytes.NewReader(req.Logo))
		if err != nil {
			return nil, nil, newOpError("logo", ErrBadLogo)
		}
		engOpts = append(engOpts, layout.WithLogo(logo))
	}
	if req.Spec.Stamp != nil {
		img, err := stamp.Render(string(req.Spec.Stamp.Kind), req.Spec.Stamp.Content, stampPixels)
		if err != nil {
			return nil, nil, newOpError("stamp", err)
		}
		engOpts = append(engOpts, layout.WithStamp(img))
	}

	res, err := layout.New(th, engOpts...).Layout(req.Spec)
	if err != nil {
		return nil, nil, newOpError("layout", err)
	}
	for _, w := range res.Warnings {
		cfg.logger.Printf("layout: section %d field %q: %s", w.Section+1, w.Field, w.Msg)
	}

	var wOpts []pdf.Option
	if cfg.creation != nil {
		wOpts = append(wOpts, pdf.WithCreationTime(*cfg.creation))
	}
	var buf bytes.Buffer
	if err := pdf.NewWriter(wOpts...).Write(&buf, res); err != nil {
		return nil, nil, newOpError("write", err)
	}

	sum := &Summary{
		Pages:      len(res.Pages),
		FieldPages: make(map[string]int),
		Warnings:   res.Warnings,
		Theme:      th,
	}
	for _, p := range res.Placements() {
		sum.FieldPages[p.Name] = p.Page
	}
	return buf.Bytes(), sum, nil
}

// buildTheme extracts the palette and derives the theme. Extraction
// failures are absorbed: a missing, undecodable or effectively blank
// brand image yields the default theme, still blended with any
// explicit suggestions.
func buildTheme(req Request, cfg *generateConfig) theme.Theme {
	var pal []palette.RGB
	if len(req.BrandImage) > 0 {
		var err error
		pal, err = palette.Extract(req.BrandImage, cfg.paletteSize)
		if err != nil {
			cfg.logger.Printf("palette: %v, using default theme", err)
			pal = nil
		}
	}
	return theme.Build(pal, &req.Suggestion, theme.WithBlendWeight(cfg.blendWeight))
}
