package layout

import "github.com/scottcrawfordcoach/pdf-creator/formspec"

// Cm converts centimeters, the unit of all externally specified lengths,
// to PDF points. The conversion happens once, at this package's boundary.
const Cm = 72.0 / 2.54

// Page geometry. All values in points; the page origin is bottom-left.
const (
	margin      = 1.80 * Cm // left / right / bottom margin
	headerH     = 3.20 * Cm // full header band on page 1
	contHeaderH = 1.70 * Cm // compact header on continuation pages
	footerH     = 0.90 * Cm // footer strip

	sectionBarH = 0.68 * Cm // colored section-title bar
	sectionGap  = 0.50 * Cm // space below the bar before the first field
	betweenSecs = 0.70 * Cm // space between sections

	labelH     = 0.38 * Cm // field label line
	labelGap   = 0.14 * Cm // gap between label and input box
	fieldH     = 0.70 * Cm // single-line input box
	checkboxH  = 0.44 * Cm // checkbox square
	rowGap     = 0.48 * Cm // vertical gap between field rows
	colGap     = 0.55 * Cm // gap between the two columns

	accentStripeH = 0.20 * Cm // stripe under the header band
	accentTabW    = 0.30 * Cm // tab at the left edge of a section bar

	logoMaxW  = 5.00 * Cm
	stampSize = 1.80 * Cm
)

// Default input heights, in centimeters (the unit callers use).
const (
	defaultMultilineCm = 2.2
	defaultSignatureCm = 2.0
)

// Page size presets in points.
var pageDims = map[formspec.PageSize][2]float64{
	formspec.PageA4:     {595.28, 841.89}, // 210 x 297 mm
	formspec.PageLetter: {612, 792},       // 8.5 x 11 in
}

// PageDims returns the width and height in points for a page preset.
func PageDims(size formspec.PageSize) (w, h float64) {
	d, ok := pageDims[size]
	if !ok {
		d = pageDims[formspec.PageLetter]
	}
	return d[0], d[1]
}
