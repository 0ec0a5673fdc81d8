package layout

import (
	"image"

	"github.com/scottcrawfordcoach/pdf-creator/formspec"
	"github.com/scottcrawfordcoach/pdf-creator/palette"
)

// Rect is an axis-aligned box in page coordinates: X/Y name the
// bottom-left corner, in points, with Y growing upward.
type Rect struct {
	X, Y, W, H float64
}

// FontID selects one of the built-in base fonts.
type FontID int

const (
	FontRegular FontID = iota // Helvetica
	FontBold                  // Helvetica-Bold
	FontItalic                // Helvetica-Oblique
)

// Primitive is a static drawing instruction on a page. The writer
// serializes primitives in order, so later entries paint over earlier
// ones.
type Primitive interface {
	prim()
}

// RectPrim fills and/or strokes a rectangle.
type RectPrim struct {
	Rect
	Fill      *palette.RGB
	Stroke    *palette.RGB
	LineWidth float64
}

// LinePrim strokes a straight line.
type LinePrim struct {
	X1, Y1, X2, Y2 float64
	Color          palette.RGB
	Width          float64
}

// TextPrim places a single text run. Rotate is counter-clockwise degrees
// about the anchor point; Alpha below 1 requests transparency.
type TextPrim struct {
	X, Y   float64
	Text   string
	Font   FontID
	Size   float64
	Color  palette.RGB
	Alpha  float64 // 0 means opaque (unset)
	Rotate float64
}

// ImagePrim places a registered image, scaled into Rect.
type ImagePrim struct {
	Rect
	Key string // lookup key into Result.Images
}

func (RectPrim) prim()  {}
func (LinePrim) prim()  {}
func (TextPrim) prim()  {}
func (ImagePrim) prim() {}

// FieldPlacement is a field's resolved position, size and widget on a
// specific page. The document writer turns each placement into exactly
// one interactive control.
type FieldPlacement struct {
	Name    string
	Page    int // 1-based
	Rect    Rect
	Kind    WidgetKind
	Label   string
	Tooltip string
	Default string
	Options []string // choice: verbatim, order preserved
	Checked bool     // checkbox initial state
}

// Page holds everything drawn on one output page.
type Page struct {
	Number int // 1-based
	Prims  []Primitive
	Fields []FieldPlacement
}

// Warning records a non-fatal layout anomaly, e.g. a field taller than a
// page body that had to be clipped.
type Warning struct {
	Section int // 0-based
	Field   string
	Msg     string
}

// WidgetStyle carries the theme colors the writer needs for widget
// border and background dictionaries.
type WidgetStyle struct {
	Border   palette.RGB
	Surface  palette.RGB
	Text     palette.RGB
	Accent   palette.RGB
	FontSize float64
}

// Result is the complete computed layout, ready for serialization. The
// engine allocates it per call and hands ownership to the writer.
type Result struct {
	PageSize     formspec.PageSize
	PageW, PageH float64
	Pages        []Page
	Warnings     []Warning
	Images       map[string]image.Image
	Style        WidgetStyle

	// Document metadata for the writer's info dictionary.
	Title   string
	Company string
}

// Placements returns every field placement across all pages, in
// document order.
func (r *Result) Placements() []FieldPlacement {
	var out []FieldPlacement
	for _, p := range r.Pages {
		out = append(out, p.Fields...)
	}
	return out
}

// PageOf returns the 1-based page number a field landed on, or 0 when
// the name is unknown.
func (r *Result) PageOf(name string) int {
	for _, p := range r.Pages {
		for _, f := range p.Fields {
			if f.Name == name {
				return p.Number
			}
		}
	}
	return 0
}
