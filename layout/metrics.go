package layout

// Glyph advance widths for the built-in Helvetica faces, in 1/1000 em,
// covering the printable ASCII range 0x20-0x7E. Values follow the Adobe
// core font metrics. Runes outside the range use the em-dash slot width,
// which is close enough for label placement.

var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333,
	278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278,
	584, 584, 584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, 722, 278,
	500, 667, 556, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944,
	667, 667, 611, 278, 278, 278, 469, 556, 333, 556, 556, 500, 556, 556,
	278, 556, 556, 222, 222, 500, 222, 833, 556, 556, 556, 556, 333, 500,
	278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

var helveticaBoldWidths = [95]int{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333,
	278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333,
	584, 584, 584, 611, 975, 722, 722, 722, 722, 667, 611, 778, 722, 278,
	556, 722, 611, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944,
	667, 667, 611, 333, 278, 333, 584, 556, 333, 556, 611, 556, 611, 556,
	333, 611, 611, 278, 278, 556, 278, 889, 611, 611, 611, 611, 389, 556,
	333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

// TextWidth returns the rendered width in points of s at the given font
// and size. Oblique shares the regular face metrics.
func TextWidth(s string, font FontID, size float64) float64 {
	table := &helveticaWidths
	if font == FontBold {
		table = &helveticaBoldWidths
	}
	units := 0
	for _, r := range s {
		if r >= 0x20 && r <= 0x7E {
			units += table[r-0x20]
		} else {
			units += 556
		}
	}
	return float64(units) * size / 1000
}
