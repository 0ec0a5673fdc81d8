package layout

import (
	"fmt"
	"strings"

	"github.com/scottcrawfordcoach/pdf-creator/formspec"
)

// WidgetKind identifies the concrete control a field renders as.
type WidgetKind int

const (
	WidgetTextEntry      WidgetKind = iota // single-line text input
	WidgetMultilineEntry                   // multi-line text input
	WidgetCheckbox                         // boolean toggle
	WidgetChoiceList                       // single-selection dropdown
	WidgetSignature                        // multi-line entry styled as a signature box
)

func (k WidgetKind) String() string {
	switch k {
	case WidgetTextEntry:
		return "text"
	case WidgetMultilineEntry:
		return "multiline"
	case WidgetCheckbox:
		return "checkbox"
	case WidgetChoiceList:
		return "choice"
	case WidgetSignature:
		return "signature"
	}
	return fmt.Sprintf("WidgetKind(%d)", int(k))
}

// Widget is the resolved rendering contract for one field: its kind plus
// the kind-specific parameters the engine and writer need.
type Widget struct {
	Kind        WidgetKind
	BoxHeight   float64  // input box height in points
	Placeholder string   // date guide text, drawn greyed, not a value
	Options     []string // choice options, order preserved
	Default     string   // initial value ("" for none)
	Checked     bool     // checkbox initial state
}

// defaultDateHint is the guide text shown inside empty date fields.
const defaultDateHint = "DD / MM / YYYY"

// MapWidget maps a validated field to its widget. The mapping is total
// over the field-type set; Validate has already rejected anything else,
// so an unknown type here is a caller bug.
func MapWidget(f formspec.Field) Widget {
	switch f.Type {
	case formspec.TypeText, formspec.TypeEmail, formspec.TypePhone, formspec.TypeNumber:
		return Widget{
			Kind:      WidgetTextEntry,
			BoxHeight: fieldH,
			Default:   f.Default,
		}
	case formspec.TypeDate:
		hint := f.Placeholder
		if hint == "" {
			hint = defaultDateHint
		}
		return Widget{
			Kind:        WidgetTextEntry,
			BoxHeight:   fieldH,
			Placeholder: hint,
			Default:     f.Default,
		}
	case formspec.TypeMultiline:
		return Widget{
			Kind:      WidgetMultilineEntry,
			BoxHeight: cmHeight(f.Height, defaultMultilineCm),
			Default:   f.Default,
		}
	case formspec.TypeCheckbox:
		return Widget{
			Kind:      WidgetCheckbox,
			BoxHeight: checkboxH,
			Checked:   truthy(f.Default),
		}
	case formspec.TypeChoice:
		w := Widget{
			Kind:      WidgetChoiceList,
			BoxHeight: fieldH,
			Options:   append([]string(nil), f.Options...),
		}
		// The first option is not auto-selected; only an explicit
		// default that matches an option becomes the initial value.
		for _, opt := range f.Options {
			if opt == f.Default {
				w.Default = f.Default
				break
			}
		}
		return w
	case formspec.TypeSignature:
		return Widget{
			Kind:      WidgetSignature,
			BoxHeight: cmHeight(f.Height, defaultSignatureCm),
		}
	}
	panic(fmt.Sprintf("layout: field %q has unvalidated type %q", f.Name, f.Type))
}

// cmHeight converts a caller-supplied height in centimeters to points,
// substituting the default when unset.
func cmHeight(cm, def float64) float64 {
	if cm <= 0 {
		cm = def
	}
	return cm * Cm
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1", "checked":
		return true
	}
	return false
}
