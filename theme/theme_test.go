package theme

import (
	"testing"

	"github.com/scottcrawfordcoach/pdf-creator/palette"
)

func TestBuildPicksMostSaturatedPrimary(t *testing.T) {
	pal := []palette.RGB{
		{R: 120, G: 120, B: 125}, // washed-out grey, most frequent
		{R: 200, G: 30, B: 40},   // vivid red
		{R: 90, G: 95, B: 100},
	}
	th := Build(pal, nil)
	if th.Primary != (palette.RGB{R: 200, G: 30, B: 40}) {
		t.Errorf("Primary = %v, want the vivid red", th.Primary)
	}
}

func TestBuildFallsBackToFirstColorWhenUnsaturated(t *testing.T) {
	pal := []palette.RGB{
		{R: 118, G: 120, B: 122},
		{R: 100, G: 101, B: 103},
	}
	th := Build(pal, nil)
	if th.Primary != pal[0] {
		t.Errorf("Primary = %v, want first palette color %v", th.Primary, pal[0])
	}
}

func TestBuildEmptyPaletteUsesDefaults(t *testing.T) {
	th := Build(nil, nil)
	def := Default()
	if th.Primary != def.Primary || th.Secondary != def.Secondary || th.Accent != def.Accent {
		t.Errorf("empty palette should yield the default theme, got %+v", th)
	}
}

func TestBuildSingleColorDerivesSecondary(t *testing.T) {
	pal := []palette.RGB{{R: 200, G: 30, B: 40}}
	th := Build(pal, nil)
	if th.Secondary == th.Primary {
		t.Error("secondary should be derived, not equal to primary")
	}
	if d := palette.HueDistance(th.Primary, th.Secondary); d < 20 || d > 60 {
		t.Errorf("derived secondary hue distance = %.1f, want roughly 40", d)
	}
}

func TestTintShadeLuminanceOrdering(t *testing.T) {
	palettes := [][]palette.RGB{
		{{R: 200, G: 30, B: 40}},
		{{R: 31, G: 78, B: 151}},
		{{R: 10, G: 140, B: 90}, {R: 250, G: 210, B: 20}},
		nil,
	}
	for _, pal := range palettes {
		th := Build(pal, nil)
		pl := th.Primary.Luminance()
		if !(th.LightTint.Luminance() > pl) {
			t.Errorf("LightTint %v not lighter than primary %v", th.LightTint, th.Primary)
		}
		if !(th.DarkShade.Luminance() < pl) {
			t.Errorf("DarkShade %v not darker than primary %v", th.DarkShade, th.Primary)
		}
	}
}

func TestTextOnPrimaryContrast(t *testing.T) {
	cases := []struct {
		pal  []palette.RGB
		want palette.RGB
	}{
		{[]palette.RGB{{R: 20, G: 40, B: 90}}, palette.RGB{R: 255, G: 255, B: 255}},
		{[]palette.RGB{{R: 250, G: 220, B: 80}}, palette.RGB{}},
	}
	for _, tc := range cases {
		th := Build(tc.pal, nil)
		if th.TextOnPrimary != tc.want {
			t.Errorf("TextOnPrimary for %v = %v, want %v", tc.pal, th.TextOnPrimary, tc.want)
		}
		// The chosen color must never contrast worse than the rejected one.
		other := palette.RGB{}
		if tc.want == other {
			other = palette.RGB{R: 255, G: 255, B: 255}
		}
		if palette.ContrastRatio(th.Primary, th.TextOnPrimary) < palette.ContrastRatio(th.Primary, other) {
			t.Errorf("TextOnPrimary %v contrasts worse than %v against %v", th.TextOnPrimary, other, th.Primary)
		}
	}
}

func TestBlendIdempotent(t *testing.T) {
	colors := []palette.RGB{
		{R: 200, G: 30, B: 40},
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 31, G: 78, B: 151},
	}
	for _, c := range colors {
		if got := Blend(c, c, DefaultBlendWeight); got != c {
			t.Errorf("Blend(%v, %v) = %v, want unchanged", c, c, got)
		}
	}
}

func TestBlendStaysInRange(t *testing.T) {
	// Extreme pairs must clamp, not wrap.
	got := Blend(palette.RGB{R: 255, G: 0, B: 255}, palette.RGB{R: 0, G: 255, B: 0}, 0.65)
	_ = got // channels are uint8 by construction; blend must not panic
}

func TestBlendWeightFavorsSuggestion(t *testing.T) {
	base := palette.RGB{R: 0, G: 0, B: 0}
	sugg := palette.RGB{R: 255, G: 255, B: 255}
	mixed := Blend(base, sugg, DefaultBlendWeight)
	// 65% toward white must land clearly above mid-grey in luminance.
	if mixed.Luminance() < 0.30 {
		t.Errorf("blend %v does not favor the suggestion", mixed)
	}
	if mixed == base || mixed == sugg {
		t.Errorf("blend %v should sit strictly between the inputs", mixed)
	}
}

func TestBuildAppliesSuggestions(t *testing.T) {
	pal := []palette.RGB{{R: 200, G: 30, B: 40}, {R: 20, G: 60, B: 180}}
	sugg := palette.RGB{R: 10, G: 200, B: 90}
	plain := Build(pal, nil)
	blended := Build(pal, &Suggestion{Primary: &sugg})
	if plain.Primary == blended.Primary {
		t.Error("suggested primary had no effect on the built theme")
	}
	if plain.Secondary != blended.Secondary {
		t.Error("secondary changed although only primary was suggested")
	}
}

func TestBuildDeterministic(t *testing.T) {
	pal := []palette.RGB{{R: 200, G: 30, B: 40}, {R: 20, G: 60, B: 180}, {R: 250, G: 210, B: 20}}
	a := Build(pal, nil)
	b := Build(pal, nil)
	if a != b {
		t.Errorf("two builds over identical input differ:\n%+v\n%+v", a, b)
	}
}

func TestWithBlendWeight(t *testing.T) {
	base := []palette.RGB{{R: 0, G: 0, B: 128}}
	sugg := palette.RGB{R: 255, G: 0, B: 0}
	full := Build(base, &Suggestion{Primary: &sugg}, WithBlendWeight(1))
	none := Build(base, &Suggestion{Primary: &sugg}, WithBlendWeight(0))
	// The Lab round trip may shift a channel by a point or two.
	if !near(full.Primary, sugg, 2) {
		t.Errorf("weight 1 should adopt the suggestion, got %v", full.Primary)
	}
	if !near(none.Primary, palette.RGB{R: 0, G: 0, B: 128}, 2) {
		t.Errorf("weight 0 should keep the extracted color, got %v", none.Primary)
	}
}

func near(a, b palette.RGB, tol int) bool {
	abs := func(x int) int {
		if x < 0 {
			return -x
		}
		return x
	}
	return abs(int(a.R)-int(b.R)) <= tol &&
		abs(int(a.G)-int(b.G)) <= tol &&
		abs(int(a.B)-int(b.B)) <= tol
}
