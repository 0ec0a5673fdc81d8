package palette

import (
	"fmt"
	"math"
)

// RGB is a color with 8-bit channels. It is the color type used across the
// whole pipeline: extracted palettes, theme tokens, and layout primitives.
type RGB struct {
	R, G, B uint8
}

// Hex returns the uppercase hex form of the color, e.g. "#1A2B3C".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex converts "#1A2B3C" (or "1A2B3C") to an RGB value.
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("palette: invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("palette: invalid hex color %q", s)
	}
	return RGB{r, g, b}, nil
}

// Luminance returns the WCAG 2.1 relative luminance, 0 for absolute black
// and 1 for absolute white.
func (c RGB) Luminance() float64 {
	lin := func(v uint8) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// IsDark reports whether the color is perceptually dark, i.e. light text
// should be placed over it.
func (c RGB) IsDark() bool {
	return c.Luminance() < 0.40
}

// ContrastRatio returns the WCAG contrast ratio between two colors,
// from 1 (identical) to 21 (black on white).
func ContrastRatio(a, b RGB) float64 {
	la, lb := a.Luminance(), b.Luminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// HSL returns hue (0-360 degrees), saturation (0-1) and lightness (0-1).
func (c RGB) HSL() (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	d := max - min
	if d == 0 {
		return 0, 0, l
	}
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, l
}

// FromHSL builds a color from hue (degrees, wraps), saturation and lightness.
func FromHSL(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	l = clamp01(l)
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}

// Saturation returns the HSL saturation of the color.
func (c RGB) Saturation() float64 {
	_, s, _ := c.HSL()
	return s
}

// Lighten increases lightness by amount (0-1) in HSL space.
func (c RGB) Lighten(amount float64) RGB {
	h, s, l := c.HSL()
	return FromHSL(h, s, math.Min(1, l+amount))
}

// Darken decreases lightness by amount (0-1) in HSL space.
func (c RGB) Darken(amount float64) RGB {
	h, s, l := c.HSL()
	return FromHSL(h, s, math.Max(0, l-amount))
}

// Saturate boosts saturation by amount (0-1) in HSL space.
func (c RGB) Saturate(amount float64) RGB {
	h, s, l := c.HSL()
	return FromHSL(h, math.Min(1, s+amount), l)
}

// HueDistance returns the circular hue distance in degrees (0-180)
// between two colors on a 0-360 wheel.
func HueDistance(a, b RGB) float64 {
	ha, _, _ := a.HSL()
	hb, _, _ := b.HSL()
	d := math.Abs(ha - hb)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
