package pdf

import (
	"fmt"

	"github.com/scottcrawfordcoach/pdf-creator/layout"
	"github.com/scottcrawfordcoach/pdf-creator/palette"
)

// Field flag bits from ISO 32000 table 228/230.
const (
	ffMultiline = 1 << 12 // text: multi-line input
	ffCombo     = 1 << 17 // choice: combo box (dropdown)
)

// widgetDict builds the annotation dictionary for one field placement.
// The widget doubles as the field entry in the AcroForm /Fields array,
// so every FormSpec field name appears exactly once in the registry.
func widgetDict(p layout.FieldPlacement, style layout.WidgetStyle) *Dict {
	d := NewDict().
		Set("Type", Name("Annot")).
		Set("Subtype", Name("Widget")).
		Set("T", String(p.Name)).
		Set("Rect", rectArray(p.Rect)).
		Set("F", Integer(4)) // print the widget
	if p.Tooltip != "" {
		d.Set("TU", String(p.Tooltip))
	}

	mk := NewDict().
		Set("BC", colorArray(style.Border)).
		Set("BG", colorArray(style.Surface))

	switch p.Kind {
	case layout.WidgetTextEntry:
		d.Set("FT", Name("Tx"))
		d.Set("DA", textDA(style))
		if p.Default != "" {
			d.Set("V", String(p.Default))
		}

	case layout.WidgetMultilineEntry, layout.WidgetSignature:
		// A signature renders as a blank multi-line box; the baseline
		// rule and hint are static decoration drawn by the layout.
		d.Set("FT", Name("Tx"))
		d.Set("Ff", Integer(ffMultiline))
		d.Set("DA", textDA(style))
		if p.Kind == layout.WidgetMultilineEntry && p.Default != "" {
			d.Set("V", String(p.Default))
		}

	case layout.WidgetCheckbox:
		d.Set("FT", Name("Btn"))
		mk.Set("CA", String("4")) // ZapfDingbats check mark
		d.Set("DA", String("/ZaDb 0 Tf 0 g"))
		if p.Checked {
			d.Set("V", Name("Yes"))
			d.Set("AS", Name("Yes"))
		} else {
			d.Set("V", Name("Off"))
			d.Set("AS", Name("Off"))
		}

	case layout.WidgetChoiceList:
		d.Set("FT", Name("Ch"))
		d.Set("Ff", Integer(ffCombo))
		opts := make(Array, len(p.Options))
		for i, o := range p.Options {
			opts[i] = String(o)
		}
		d.Set("Opt", opts)
		d.Set("DA", textDA(style))
		// No auto-selected first option: a value appears only when the
		// layout matched an explicit default against the options.
		if p.Default != "" {
			d.Set("V", String(p.Default))
		}
	}

	d.Set("MK", mk)
	return d
}

// textDA builds the default-appearance string for text-bearing widgets.
func textDA(style layout.WidgetStyle) String {
	size := style.FontSize
	if size <= 0 {
		size = 9
	}
	return String(fmt.Sprintf("/Helv %s Tf %s rg", formatReal(size), rgb(style.Text)))
}

func rectArray(r layout.Rect) Array {
	return Array{Real(r.X), Real(r.Y), Real(r.X + r.W), Real(r.Y + r.H)}
}

func colorArray(c palette.RGB) Array {
	return Array{
		Real(float64(c.R) / 255),
		Real(float64(c.G) / 255),
		Real(float64(c.B) / 255),
	}
}
