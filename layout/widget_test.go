package layout

import (
	"testing"

	"github.com/scottcrawfordcoach/pdf-creator/formspec"
)

func TestMapWidget(t *testing.T) {
	cases := []struct {
		name  string
		field formspec.Field
		want  WidgetKind
	}{
		{"text", formspec.Field{Type: formspec.TypeText, Name: "a"}, WidgetTextEntry},
		{"email", formspec.Field{Type: formspec.TypeEmail, Name: "a"}, WidgetTextEntry},
		{"phone", formspec.Field{Type: formspec.TypePhone, Name: "a"}, WidgetTextEntry},
		{"number", formspec.Field{Type: formspec.TypeNumber, Name: "a"}, WidgetTextEntry},
		{"date", formspec.Field{Type: formspec.TypeDate, Name: "a"}, WidgetTextEntry},
		{"multiline", formspec.Field{Type: formspec.TypeMultiline, Name: "a"}, WidgetMultilineEntry},
		{"checkbox", formspec.Field{Type: formspec.TypeCheckbox, Name: "a"}, WidgetCheckbox},
		{"choice", formspec.Field{Type: formspec.TypeChoice, Name: "a", Options: []string{"x"}}, WidgetChoiceList},
		{"signature", formspec.Field{Type: formspec.TypeSignature, Name: "a"}, WidgetSignature},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapWidget(tc.field).Kind; got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestMapWidgetDateHint(t *testing.T) {
	w := MapWidget(formspec.Field{Type: formspec.TypeDate, Name: "d"})
	if w.Placeholder != "DD / MM / YYYY" {
		t.Errorf("default hint %q", w.Placeholder)
	}
	w = MapWidget(formspec.Field{Type: formspec.TypeDate, Name: "d", Placeholder: "MM-DD"})
	if w.Placeholder != "MM-DD" {
		t.Errorf("custom hint not kept: %q", w.Placeholder)
	}
}

func TestMapWidgetChoiceDefault(t *testing.T) {
	f := formspec.Field{Type: formspec.TypeChoice, Name: "c", Options: []string{"red", "blue"}}

	if w := MapWidget(f); w.Default != "" {
		t.Errorf("no default requested, got %q", w.Default)
	}

	f.Default = "blue"
	if w := MapWidget(f); w.Default != "blue" {
		t.Errorf("matching default dropped, got %q", w.Default)
	}

	f.Default = "green"
	if w := MapWidget(f); w.Default != "" {
		t.Errorf("non-option default kept: %q", w.Default)
	}
}

func TestMapWidgetCheckboxTruthy(t *testing.T) {
	for _, v := range []string{"true", "Yes", "ON", "1", "checked"} {
		w := MapWidget(formspec.Field{Type: formspec.TypeCheckbox, Name: "c", Default: v})
		if !w.Checked {
			t.Errorf("%q should check the box", v)
		}
	}
	for _, v := range []string{"", "false", "no", "maybe"} {
		w := MapWidget(formspec.Field{Type: formspec.TypeCheckbox, Name: "c", Default: v})
		if w.Checked {
			t.Errorf("%q should leave the box unchecked", v)
		}
	}
}

func TestMapWidgetHeights(t *testing.T) {
	w := MapWidget(formspec.Field{Type: formspec.TypeMultiline, Name: "m"})
	if w.BoxHeight != defaultMultilineCm*Cm {
		t.Errorf("default multiline height %.2f", w.BoxHeight)
	}
	w = MapWidget(formspec.Field{Type: formspec.TypeMultiline, Name: "m", Height: 3.5})
	if w.BoxHeight != 3.5*Cm {
		t.Errorf("explicit height %.2f, want %.2f", w.BoxHeight, 3.5*Cm)
	}
	w = MapWidget(formspec.Field{Type: formspec.TypeSignature, Name: "s"})
	if w.BoxHeight != defaultSignatureCm*Cm {
		t.Errorf("default signature height %.2f", w.BoxHeight)
	}
}

func TestMapWidgetUnknownTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unvalidated type")
		}
	}()
	MapWidget(formspec.Field{Type: "slider", Name: "x"})
}
