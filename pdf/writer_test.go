package pdf

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/scottcrawfordcoach/pdf-creator/layout"
	"github.com/scottcrawfordcoach/pdf-creator/palette"
)

func sampleResult() *layout.Result {
	blue := palette.RGB{R: 31, G: 78, B: 151}
	white := palette.RGB{R: 255, G: 255, B: 255}
	dark := palette.RGB{R: 33, G: 37, B: 41}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	page := layout.Page{
		Number: 1,
		Prims: []layout.Primitive{
			layout.RectPrim{Rect: layout.Rect{X: 0, Y: 700, W: 612, H: 92}, Fill: &blue},
			layout.TextPrim{X: 60, Y: 740, Text: "Intake Form", Font: layout.FontBold, Size: 15, Color: white},
			layout.TextPrim{X: 60, Y: 720, Text: "Please print clearly", Font: layout.FontItalic, Size: 8.5, Color: white, Alpha: 0.82},
			layout.ImagePrim{Rect: layout.Rect{X: 400, Y: 710, W: 60, H: 60}, Key: "logo"},
		},
		Fields: []layout.FieldPlacement{
			{Name: "full_name", Page: 1, Rect: layout.Rect{X: 60, Y: 600, W: 200, H: 20}, Kind: layout.WidgetTextEntry, Label: "Full Name"},
			{Name: "subscribe", Page: 1, Rect: layout.Rect{X: 60, Y: 560, W: 12, H: 12}, Kind: layout.WidgetCheckbox, Label: "Subscribe", Checked: true},
			{Name: "country", Page: 1, Rect: layout.Rect{X: 60, Y: 520, W: 200, H: 20}, Kind: layout.WidgetChoiceList, Label: "Country", Options: []string{"ES", "FR"}},
		},
	}

	return &layout.Result{
		PageSize: "letter",
		PageW:    612,
		PageH:    792,
		Pages:    []layout.Page{page},
		Images:   map[string]image.Image{"logo": img},
		Style: layout.WidgetStyle{
			Border:  blue,
			Surface: white,
			Text:    dark,
			Accent:  blue,
		},
		Title:   "Intake Form",
		Company: "Acme Clinics",
	}
}

func TestWriteStructure(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter().Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "%PDF-1.7\n") {
		t.Errorf("missing PDF header, got %q", out[:16])
	}
	if !strings.HasSuffix(out, "%%EOF\n") {
		t.Errorf("missing %%%%EOF terminator")
	}
	for _, want := range []string{
		"/AcroForm",
		"/NeedAppearances true",
		"/Type /Catalog",
		"/Type /Pages",
		"/Subtype /Widget",
		"/BaseFont /ZapfDingbats",
		"/Subtype /Image",
		"/ExtGState",
		"(Intake Form)",
		"(Acme Clinics)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
	for _, name := range []string{"full_name", "subscribe", "country"} {
		if n := strings.Count(out, "/T ("+name+")"); n != 1 {
			t.Errorf("field %q appears %d times, want 1", name, n)
		}
	}
	if strings.Contains(out, "/CreationDate") {
		t.Error("unexpected CreationDate without WithCreationTime")
	}
}

func TestWriteDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := NewWriter().Write(&a, sampleResult()); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := NewWriter().Write(&b, sampleResult()); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two writes of the same layout differ")
	}
}

func TestWriteCreationTime(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	if err := NewWriter(WithCreationTime(ts)).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "(D:20240315103000Z)") {
		t.Error("CreationDate not rendered")
	}
}

func TestWriteEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter().Write(&buf, nil); err == nil {
		t.Error("expected error for nil result")
	}
	if err := NewWriter().Write(&buf, &layout.Result{}); err == nil {
		t.Error("expected error for result without pages")
	}
}

func TestCheckboxWidget(t *testing.T) {
	res := sampleResult()
	var buf bytes.Buffer
	if err := NewWriter().Write(&buf, res); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "/V /Yes") || !strings.Contains(out, "/AS /Yes") {
		t.Error("checked checkbox should carry /V /Yes and /AS /Yes")
	}
	if !strings.Contains(out, "/Opt [(ES) (FR)]") {
		t.Error("choice widget should carry its option list")
	}
}
