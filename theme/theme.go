// Package theme derives a complete brand identity from extracted logo
// colors, optionally blended with externally suggested colors.
//
// A Theme is built once per generation run and treated as immutable: the
// layout engine and document writer only ever read from it.
package theme

import (
	"math"

	"github.com/scottcrawfordcoach/pdf-creator/palette"
)

// DefaultBlendWeight is the share given to a suggested color when it is
// blended with the corresponding extracted color. The remaining share
// keeps the extracted color's influence.
const DefaultBlendWeight = 0.65

// minSaturation is the floor below which a palette color is considered
// too washed out to serve as the brand primary.
const minSaturation = 0.12

// Theme holds every color and typography token used for rendering.
type Theme struct {
	Primary   palette.RGB // header and footer bands, key accents
	Secondary palette.RGB // section bars, highlights
	Accent    palette.RGB // stripes, tabs, focus borders

	// Derived tokens.
	TextOnPrimary palette.RGB // black or white, whichever contrasts more
	LightTint     palette.RGB // lighter shade of Primary
	DarkShade     palette.RGB // darker shade of Primary

	Background palette.RGB
	Surface    palette.RGB // form field fill
	TextDark   palette.RGB
	TextLight  palette.RGB
	Border     palette.RGB

	// Base-14 fonts; no embedding required.
	Font       string
	FontBold   string
	FontItalic string
}

// Suggestion carries externally proposed brand colors, e.g. from an
// upstream design assistant. Nil pointers mean "no suggestion".
type Suggestion struct {
	Primary   *palette.RGB
	Secondary *palette.RGB
	Accent    *palette.RGB
}

// Option configures theme derivation.
type Option func(*config)

type config struct {
	blendWeight float64
}

// WithBlendWeight overrides the suggestion blend weight (0-1). Values
// outside the range are clamped.
func WithBlendWeight(w float64) Option {
	return func(c *config) {
		if w < 0 {
			w = 0
		}
		if w > 1 {
			w = 1
		}
		c.blendWeight = w
	}
}

// Default returns the clean professional blue theme used when no usable
// logo palette is available.
func Default() Theme {
	return finish(
		palette.RGB{R: 31, G: 78, B: 151},
		palette.RGB{R: 52, G: 109, B: 189},
		palette.RGB{R: 255, G: 160, B: 0},
	)
}

// Build derives a Theme from pal, optionally blending each chosen color
// with the corresponding suggestion. It always succeeds: an empty or
// degenerate palette degrades to the default theme colors before any
// blending is applied.
func Build(pal []palette.RGB, suggested *Suggestion, opts ...Option) Theme {
	cfg := config{blendWeight: DefaultBlendWeight}
	for _, opt := range opts {
		opt(&cfg)
	}

	primary, secondary, accent := pick(pal)

	if suggested != nil {
		if suggested.Primary != nil {
			primary = Blend(primary, *suggested.Primary, cfg.blendWeight)
		}
		if suggested.Secondary != nil {
			secondary = Blend(secondary, *suggested.Secondary, cfg.blendWeight)
		}
		if suggested.Accent != nil {
			accent = Blend(accent, *suggested.Accent, cfg.blendWeight)
		}
	}

	return finish(primary, secondary, accent)
}

// pick selects primary, secondary and accent from the palette with the
// fallback chain documented on Build.
func pick(pal []palette.RGB) (primary, secondary, accent palette.RGB) {
	def := Default()

	// Drop near-white and near-black candidates; they make terrible
	// header colors.
	candidates := make([]palette.RGB, 0, len(pal))
	for _, c := range pal {
		lum := c.Luminance()
		if lum > 0.05 && lum < 0.90 {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = pal
	}
	if len(candidates) == 0 {
		return def.Primary, def.Secondary, def.Accent
	}

	// Primary: most saturated color above the washed-out floor, else the
	// most frequent (the extractor orders by population).
	primary = candidates[0]
	bestSat := -1.0
	for _, c := range candidates {
		if s := c.Saturation(); s > bestSat {
			bestSat = s
			primary = c
		}
	}
	if bestSat < minSaturation {
		primary = candidates[0]
	}
	if lum := primary.Luminance(); lum <= 0.03 || lum >= 0.95 {
		// A black or white primary breaks tint/shade ordering.
		primary = def.Primary
	}

	// Secondary: the palette color farthest from primary on the hue
	// wheel. With fewer than two distinct colors, rotate the primary.
	secondary = primary
	bestDist := -1.0
	for _, c := range candidates {
		if c == primary {
			continue
		}
		if d := palette.HueDistance(c, primary); d > bestDist {
			bestDist = d
			secondary = c
		}
	}
	if secondary == primary {
		h, s, l := primary.HSL()
		secondary = palette.FromHSL(h+40, s*0.85, l)
	}

	// Accent: farthest combined hue distance from both chosen colors,
	// else a generated complement of the primary.
	accent = primary
	bestDist = -1.0
	for _, c := range candidates {
		if c == primary || c == secondary {
			continue
		}
		d := palette.HueDistance(c, primary) + palette.HueDistance(c, secondary)
		if d > bestDist {
			bestDist = d
			accent = c
		}
	}
	if accent == primary {
		h, s, l := primary.HSL()
		accent = palette.FromHSL(h+180, math.Min(1, s+0.10), l)
	}
	return primary, secondary, accent
}

// finish derives the remaining tokens from the three core colors.
func finish(primary, secondary, accent palette.RGB) Theme {
	t := Theme{
		Primary:    primary,
		Secondary:  secondary,
		Accent:     accent,
		Background: palette.RGB{R: 255, G: 255, B: 255},
		TextDark:   palette.RGB{R: 28, G: 28, B: 30},
		TextLight:  palette.RGB{R: 255, G: 255, B: 255},
		Font:       "Helvetica",
		FontBold:   "Helvetica-Bold",
		FontItalic: "Helvetica-Oblique",
	}

	t.TextOnPrimary = contrastText(primary)
	t.LightTint = mixChannels(primary, palette.RGB{R: 255, G: 255, B: 255}, 0.25)
	t.DarkShade = mixChannels(primary, palette.RGB{}, 0.25)

	// Surface: a very light tint of the primary, falling back to
	// near-white when the tint stays too dark to sit behind text.
	t.Surface = primary.Lighten(0.44)
	if t.Surface.Luminance() < 0.88 {
		t.Surface = palette.RGB{R: 248, G: 249, B: 250}
	}

	// Border: a softened tint of the secondary.
	t.Border = secondary.Lighten(0.16)
	if t.Border.Luminance() < 0.65 {
		t.Border = palette.RGB{R: 210, G: 212, B: 216}
	}
	return t
}

// contrastText returns black or white, whichever has the higher WCAG
// contrast ratio against c.
func contrastText(c palette.RGB) palette.RGB {
	black := palette.RGB{}
	white := palette.RGB{R: 255, G: 255, B: 255}
	if palette.ContrastRatio(c, white) >= palette.ContrastRatio(c, black) {
		return white
	}
	return black
}

// SectionText returns the text color to place on the secondary section
// bar.
func (t Theme) SectionText() palette.RGB {
	return contrastText(t.Secondary)
}

// mixChannels moves c toward target by ratio per channel. Unlike an HSL
// lightness shift this is strictly monotonic in luminance, which keeps
// LightTint above and DarkShade below the primary.
func mixChannels(c, target palette.RGB, ratio float64) palette.RGB {
	mix := func(a, b uint8) uint8 {
		v := float64(a) + (float64(b)-float64(a))*ratio
		return uint8(math.Round(clamp(v, 0, 255)))
	}
	return palette.RGB{
		R: mix(c.R, target.R),
		G: mix(c.G, target.G),
		B: mix(c.B, target.B),
	}
}

// Blend mixes base and suggestion in CIE Lab with the given weight on the
// suggestion. Blending a color with itself returns the color unchanged,
// and results are always clamped into channel range.
func Blend(base, suggestion palette.RGB, weight float64) palette.RGB {
	if base == suggestion {
		return base
	}
	l1, a1, b1 := rgbToLab(base)
	l2, a2, b2 := rgbToLab(suggestion)
	w := clamp(weight, 0, 1)
	return labToRGB(
		l1+(l2-l1)*w,
		a1+(a2-a1)*w,
		b1+(b2-b1)*w,
	)
}

// rgbToLab converts to CIE Lab (D65 white point).
func rgbToLab(c palette.RGB) (l, a, b float64) {
	lin := func(v uint8) float64 {
		f := float64(v) / 255
		if f <= 0.04045 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	r, g, bl := lin(c.R), lin(c.G), lin(c.B)

	x := (0.4124564*r + 0.3575761*g + 0.1804375*bl) / 0.95047
	y := 0.2126729*r + 0.7151522*g + 0.0721750*bl
	z := (0.0193339*r + 0.1191920*g + 0.9503041*bl) / 1.08883

	f := func(t float64) float64 {
		if t > 0.008856 {
			return math.Cbrt(t)
		}
		return 7.787*t + 16.0/116
	}
	fx, fy, fz := f(x), f(y), f(z)
	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

// labToRGB converts CIE Lab (D65) back to 8-bit RGB, clamping channels.
func labToRGB(l, a, b float64) palette.RGB {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	finv := func(t float64) float64 {
		if t3 := t * t * t; t3 > 0.008856 {
			return t3
		}
		return (t - 16.0/116) / 7.787
	}
	x := finv(fx) * 0.95047
	y := finv(fy)
	z := finv(fz) * 1.08883

	r := 3.2404542*x - 1.5371385*y - 0.4985314*z
	g := -0.9692660*x + 1.8760108*y + 0.0415560*z
	bl := 0.0556434*x - 0.2040259*y + 1.0572252*z

	gamma := func(v float64) uint8 {
		if v <= 0.0031308 {
			v *= 12.92
		} else {
			v = 1.055*math.Pow(v, 1/2.4) - 0.055
		}
		return uint8(math.Round(clamp(v, 0, 1) * 255))
	}
	return palette.RGB{R: gamma(r), G: gamma(g), B: gamma(bl)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
