package pdfcheck

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/scottcrawfordcoach/pdf-creator/layout"
	"github.com/scottcrawfordcoach/pdf-creator/palette"
	"github.com/scottcrawfordcoach/pdf-creator/pdf"
)

func generated(t *testing.T) []byte {
	t.Helper()
	blue := palette.RGB{R: 31, G: 78, B: 151}
	white := palette.RGB{R: 255, G: 255, B: 255}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	res := &layout.Result{
		PageSize: "letter",
		PageW:    612,
		PageH:    792,
		Images:   map[string]image.Image{"logo": img},
		Style:    layout.WidgetStyle{Border: blue, Surface: white, Text: blue, Accent: blue},
		Title:    "Survey",
		Company:  "Example Co",
		Pages: []layout.Page{
			{
				Number: 1,
				Prims: []layout.Primitive{
					layout.TextPrim{X: 50, Y: 700, Text: "Survey", Font: layout.FontBold, Size: 14, Color: blue},
					layout.ImagePrim{Rect: layout.Rect{X: 400, Y: 700, W: 40, H: 40}, Key: "logo"},
				},
				Fields: []layout.FieldPlacement{
					{Name: "answer", Page: 1, Rect: layout.Rect{X: 50, Y: 600, W: 180, H: 20}, Kind: layout.WidgetTextEntry},
					{Name: "rating", Page: 1, Rect: layout.Rect{X: 50, Y: 560, W: 180, H: 20}, Kind: layout.WidgetChoiceList, Options: []string{"good", "bad"}, Default: "good"},
				},
			},
			{
				Number: 2,
				Prims: []layout.Primitive{
					layout.TextPrim{X: 50, Y: 700, Text: "More", Font: layout.FontRegular, Size: 10, Color: blue},
				},
				Fields: []layout.FieldPlacement{
					{Name: "agree", Page: 2, Rect: layout.Rect{X: 50, Y: 600, W: 12, H: 12}, Kind: layout.WidgetCheckbox, Checked: true},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := pdf.NewWriter().Write(&buf, res); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return buf.Bytes()
}

func TestOpenRoundTrip(t *testing.T) {
	doc, err := Open(generated(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	n, err := doc.PageCount()
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 2 {
		t.Errorf("PageCount = %d, want 2", n)
	}

	info := doc.Info()
	if got := info.GetString("Title"); got != "Survey" {
		t.Errorf("Title = %q", got)
	}
	if got := info.GetString("Author"); got != "Example Co" {
		t.Errorf("Author = %q", got)
	}
}

func TestFields(t *testing.T) {
	doc, err := Open(generated(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	fields, err := doc.Fields()
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}

	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}

	if f := byName["answer"]; f.Type != "Tx" || f.Page != 1 {
		t.Errorf("answer: type %q page %d", f.Type, f.Page)
	}
	if f := byName["rating"]; f.Type != "Ch" || f.Value != "good" || len(f.Options) != 2 {
		t.Errorf("rating: type %q value %q options %v", f.Type, f.Value, f.Options)
	}
	if f := byName["agree"]; f.Type != "Btn" || f.Value != "Yes" || f.Page != 2 {
		t.Errorf("agree: type %q value %q page %d", f.Type, f.Value, f.Page)
	}

	r := byName["answer"].Rect
	if r[0] != 50 || r[1] != 600 || r[2] != 230 || r[3] != 620 {
		t.Errorf("answer rect %v", r)
	}
}

func TestFieldNames(t *testing.T) {
	doc, err := Open(generated(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	names, err := doc.FieldNames()
	if err != nil {
		t.Fatalf("FieldNames: %v", err)
	}
	want := []string{"agree", "answer", "rating"}
	if len(names) != len(want) {
		t.Fatalf("got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := Open([]byte("not a pdf")); !errors.Is(err, ErrNotPDF) {
		t.Errorf("got %v, want ErrNotPDF", err)
	}
	if _, err := Open([]byte("%PDF-1.7\njunk with no trailer")); !errors.Is(err, ErrNoTrailer) {
		t.Errorf("got %v, want ErrNoTrailer", err)
	}
}

func TestNoAcroForm(t *testing.T) {
	doc := &Document{
		objects: map[int]Object{
			1: Dict{"Type": Name("Catalog")},
		},
		trailer: Dict{"Root": Ref{Num: 1}},
	}
	if _, err := doc.Fields(); !errors.Is(err, ErrNoAcroForm) {
		t.Errorf("got %v, want ErrNoAcroForm", err)
	}
}

func TestParserValues(t *testing.T) {
	cases := []struct {
		in   string
		want Object
	}{
		{"true", Boolean(true)},
		{"null", Null{}},
		{"42", Integer(42)},
		{"-3.5", Real(-3.5)},
		{"/Name", Name("Name")},
		{"12 0 R", Ref{Num: 12, Gen: 0}},
		{"(hello \\(nested\\))", String("hello (nested)")},
		{"<48656C6C6F>", String("Hello")},
	}
	for _, tc := range cases {
		p := &parser{data: []byte(tc.in)}
		got, err := p.parseObject()
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		switch w := tc.want.(type) {
		case String:
			if !bytes.Equal(got.(String), w) {
				t.Errorf("%q: got %q", tc.in, got)
			}
		default:
			if got != tc.want {
				t.Errorf("%q: got %#v, want %#v", tc.in, got, tc.want)
			}
		}
	}
}

func TestParserOctalEscape(t *testing.T) {
	p := &parser{data: []byte(`(caf\351)`)}
	got, err := p.parseObject()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := got.(String)
	if len(s) != 4 || s[3] != 0xe9 {
		t.Errorf("got % x", []byte(s))
	}
}
