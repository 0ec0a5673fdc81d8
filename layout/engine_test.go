package layout

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/scottcrawfordcoach/pdf-creator/formspec"
	"github.com/scottcrawfordcoach/pdf-creator/theme"
)

func textField(name string) formspec.Field {
	return formspec.Field{Type: formspec.TypeText, Name: name, Label: name}
}

func smallSpec() *formspec.FormSpec {
	return &formspec.FormSpec{
		CompanyName: "Acme Clinics",
		Title:       "Patient Intake",
		PageSize:    formspec.PageLetter,
		Sections: []formspec.Section{
			{
				Title:   "Contact",
				Columns: 1,
				Fields: []formspec.Field{
					textField("full_name"),
					textField("email"),
					textField("phone"),
				},
			},
		},
	}
}

func TestLayoutSinglePage(t *testing.T) {
	res, err := New(theme.Default()).Layout(smallSpec())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(res.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(res.Pages))
	}
	if res.PageW != 612 || res.PageH != 792 {
		t.Errorf("letter dims %gx%g, want 612x792", res.PageW, res.PageH)
	}

	pl := res.Placements()
	if len(pl) != 3 {
		t.Fatalf("got %d placements, want 3", len(pl))
	}
	// All widgets sit below the header and above the footer, in
	// top-to-bottom document order.
	headerBottom := res.PageH - headerH
	prev := headerBottom
	for _, p := range pl {
		if p.Page != 1 {
			t.Errorf("%s on page %d, want 1", p.Name, p.Page)
		}
		top := p.Rect.Y + p.Rect.H
		if top >= prev {
			t.Errorf("%s top %.2f not below previous element %.2f", p.Name, top, prev)
		}
		if p.Rect.Y < footerH+margin {
			t.Errorf("%s intrudes into the footer area", p.Name)
		}
		prev = p.Rect.Y
	}
}

func TestLayoutPagination(t *testing.T) {
	spec := &formspec.FormSpec{
		CompanyName: "Acme",
		Title:       "Long Form",
		PageSize:    formspec.PageA4,
		Sections: []formspec.Section{
			{Title: "Everything", Columns: 1},
		},
	}
	for i := 0; i < 40; i++ {
		spec.Sections[0].Fields = append(spec.Sections[0].Fields,
			textField(fmt.Sprintf("field_%02d", i)))
	}

	res, err := New(theme.Default()).Layout(spec)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(res.Pages) < 2 {
		t.Fatalf("40 single-column fields fit on %d page(s), want spill", len(res.Pages))
	}
	if got := len(res.Placements()); got != 40 {
		t.Errorf("got %d placements, want 40", got)
	}
	// No field straddles a page: every rect stays within the body area
	// of its page.
	for _, p := range res.Placements() {
		if p.Rect.Y < footerH+margin {
			t.Errorf("%s (page %d) below the body area", p.Name, p.Page)
		}
		limit := res.PageH - headerH
		if p.Page > 1 {
			limit = res.PageH - contHeaderH
		}
		if p.Rect.Y+p.Rect.H > limit {
			t.Errorf("%s (page %d) overlaps the header", p.Name, p.Page)
		}
	}
	// Continuation pages hold more fields than page 1: the abbreviated
	// header frees up body height.
	if res.PageOf("field_00") != 1 {
		t.Errorf("first field on page %d, want 1", res.PageOf("field_00"))
	}
	if res.PageOf("field_39") != len(res.Pages) {
		t.Errorf("last field on page %d, want %d", res.PageOf("field_39"), len(res.Pages))
	}
}

func TestLayoutTwoColumnPairing(t *testing.T) {
	spec := smallSpec()
	spec.Sections[0].Columns = 2
	spec.Sections[0].Fields = []formspec.Field{
		textField("a"),
		textField("b"),
		{Type: formspec.TypeMultiline, Name: "notes", Label: "Notes", FullWidth: true},
		textField("c"),
	}

	res, err := New(theme.Default()).Layout(spec)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	pl := res.Placements()
	if len(pl) != 4 {
		t.Fatalf("got %d placements, want 4", len(pl))
	}
	byName := map[string]FieldPlacement{}
	for _, p := range pl {
		byName[p.Name] = p
	}

	a, b := byName["a"], byName["b"]
	if a.Rect.Y != b.Rect.Y {
		t.Errorf("a and b should share a row: y %.2f vs %.2f", a.Rect.Y, b.Rect.Y)
	}
	if b.Rect.X <= a.Rect.X {
		t.Error("b should occupy the right column")
	}

	notes := byName["notes"]
	usable := res.PageW - 2*margin
	if diff := notes.Rect.W - usable; diff > 0.01 || diff < -0.01 {
		t.Errorf("full-width field spans %.2f, want %.2f", notes.Rect.W, usable)
	}
	// The trailing field after a full-width break starts a new row in
	// the left column rather than vanishing.
	c := byName["c"]
	if c.Rect.X != a.Rect.X {
		t.Errorf("c should return to the left column: x %.2f vs %.2f", c.Rect.X, a.Rect.X)
	}
	if c.Rect.Y >= notes.Rect.Y {
		t.Error("c should sit below the full-width field")
	}
}

func TestLayoutOversizedFieldClipped(t *testing.T) {
	spec := smallSpec()
	spec.Sections[0].Fields = []formspec.Field{
		{Type: formspec.TypeMultiline, Name: "essay", Label: "Essay", Height: 40},
	}

	res, err := New(theme.Default()).Layout(spec)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	pl := res.Placements()
	if len(pl) != 1 {
		t.Fatalf("got %d placements, want 1 clipped placement", len(pl))
	}
	if pl[0].Rect.H >= 40*Cm {
		t.Errorf("field not clipped: height %.2f", pl[0].Rect.H)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(res.Warnings))
	}
	if res.Warnings[0].Field != "essay" {
		t.Errorf("warning names %q, want essay", res.Warnings[0].Field)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	eng := New(theme.Default())
	a, err := eng.Layout(smallSpec())
	if err != nil {
		t.Fatalf("first layout: %v", err)
	}
	b, err := eng.Layout(smallSpec())
	if err != nil {
		t.Fatalf("second layout: %v", err)
	}
	if !reflect.DeepEqual(a.Placements(), b.Placements()) {
		t.Error("placements differ between identical runs")
	}
	if !reflect.DeepEqual(a.Pages, b.Pages) {
		t.Error("page primitives differ between identical runs")
	}
}

func TestLayoutRejectsInvalidSpec(t *testing.T) {
	eng := New(theme.Default())
	if _, err := eng.Layout(nil); err == nil {
		t.Error("nil spec accepted")
	}
	bad := smallSpec()
	bad.Sections = nil
	if _, err := eng.Layout(bad); err == nil {
		t.Error("spec without sections accepted")
	}
}

func TestLayoutWatermark(t *testing.T) {
	eng := New(theme.Default(), WithWatermark("DRAFT"))
	res, err := eng.Layout(smallSpec())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	found := false
	for _, p := range res.Pages[0].Prims {
		if t, ok := p.(TextPrim); ok && t.Text == "DRAFT" && t.Rotate != 0 {
			found = true
		}
	}
	if !found {
		t.Error("no rotated watermark text on page 1")
	}
}

func TestPageOfUnknownField(t *testing.T) {
	res, err := New(theme.Default()).Layout(smallSpec())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if got := res.PageOf("nope"); got != 0 {
		t.Errorf("PageOf(unknown) = %d, want 0", got)
	}
}
