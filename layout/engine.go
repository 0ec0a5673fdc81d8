// Package layout computes the page geometry of a branded fillable form:
// header and footer bands, section bars, field rows flowed into one or
// two columns, and the exact box of every interactive widget.
//
// The engine is a pure function of (FormSpec, Theme): it allocates a
// fresh Result per call and keeps no state between calls, so one Engine
// may serve concurrent requests. A cursor tracks the top of the next
// element, measured in points from the bottom of the page, and each
// element moves it downward; a page flush closes the footer and opens a
// new page with a compact continuation header.
package layout

import (
	"fmt"
	"image"
	"math"

	"github.com/scottcrawfordcoach/pdf-creator/formspec"
	"github.com/scottcrawfordcoach/pdf-creator/palette"
	"github.com/scottcrawfordcoach/pdf-creator/theme"
)

var (
	hintGrey  = palette.RGB{R: 140, G: 140, B: 140}
	markerRed = palette.RGB{R: 217, G: 26, B: 26}
)

// Engine lays out form specs against a fixed theme. It is immutable
// after New and safe for concurrent use.
type Engine struct {
	theme     theme.Theme
	logo      image.Image
	stamp     image.Image
	watermark string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogo places the decoded logo image in the page-1 header slot.
func WithLogo(img image.Image) Option {
	return func(e *Engine) { e.logo = img }
}

// WithStamp places a rendered verification stamp at the right edge of
// the page-1 header.
func WithStamp(img image.Image) Option {
	return func(e *Engine) { e.stamp = img }
}

// WithWatermark draws text diagonally across every page, e.g. "DRAFT".
func WithWatermark(text string) Option {
	return func(e *Engine) { e.watermark = text }
}

// New returns an Engine rendering with the given theme.
func New(th theme.Theme, opts ...Option) *Engine {
	e := &Engine{theme: th}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout computes the full multi-page geometry for spec. The spec is
// validated first; no partial result is ever returned.
func (e *Engine) Layout(spec *formspec.FormSpec) (*Result, error) {
	if spec == nil {
		return nil, fmt.Errorf("layout: nil spec")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	w, h := PageDims(spec.PageSize)
	r := &run{
		e:    e,
		spec: spec,
		res: &Result{
			PageSize: spec.PageSize,
			PageW:    w,
			PageH:    h,
			Images:   make(map[string]image.Image),
			Style: WidgetStyle{
				Border:   e.theme.Border,
				Surface:  e.theme.Surface,
				Text:     e.theme.TextDark,
				Accent:   e.theme.Accent,
				FontSize: 9,
			},
			Title:   spec.Title,
			Company: spec.CompanyName,
		},
		W:       w,
		H:       h,
		usableW: w - 2*margin,
	}
	if e.logo != nil {
		r.res.Images["logo"] = e.logo
	}
	if e.stamp != nil {
		r.res.Images["stamp"] = e.stamp
	}

	r.beginPage(true)
	for si := range spec.Sections {
		r.drawSection(si, spec.Sections[si])
	}
	r.closePage()
	return r.res, nil
}

// run is the per-call layout state.
type run struct {
	e    *Engine
	spec *formspec.FormSpec
	res  *Result

	W, H, usableW float64
	y             float64 // top of the next element, from page bottom
	bodyEmpty     bool    // nothing placed in the body area yet
}

func (r *run) page() *Page {
	return &r.res.Pages[len(r.res.Pages)-1]
}

func (r *run) add(p Primitive) {
	pg := r.page()
	pg.Prims = append(pg.Prims, p)
}

func (r *run) bottomLimit() float64 {
	return footerH + margin
}

func (r *run) warn(section int, field, msg string) {
	r.res.Warnings = append(r.res.Warnings, Warning{Section: section, Field: field, Msg: msg})
}

// beginPage opens a new page and draws its header. Only page 1 gets the
// full band with logo, subtitle and stamp.
func (r *run) beginPage(first bool) {
	r.res.Pages = append(r.res.Pages, Page{Number: len(r.res.Pages) + 1})
	r.drawHeader(first)
	if r.e.watermark != "" {
		r.drawWatermark()
	}
	if first {
		r.y = r.H - headerH - margin*0.65
	} else {
		r.y = r.H - contHeaderH - margin*0.55
	}
	r.bodyEmpty = true
}

// closePage draws the footer, sealing the page.
func (r *run) closePage() {
	r.drawFooter()
}

func (r *run) newPage() {
	r.closePage()
	r.beginPage(false)
}

// ensureSpace flushes the page when fewer than needed points remain
// above the footer. A fresh body is never flushed, so a row that cannot
// fit any page stays put for the caller to clip.
func (r *run) ensureSpace(needed float64) {
	if r.bodyEmpty {
		return
	}
	if r.y-needed < r.bottomLimit() {
		r.newPage()
	}
}

func (r *run) drawHeader(first bool) {
	th := r.e.theme
	hh := headerH
	if !first {
		hh = contHeaderH
	}

	r.add(RectPrim{Rect: Rect{X: 0, Y: r.H - hh, W: r.W, H: hh}, Fill: &th.Primary})
	r.add(RectPrim{Rect: Rect{X: 0, Y: r.H - hh, W: r.W, H: accentStripeH}, Fill: &th.Accent})

	txt := th.TextOnPrimary
	if !first {
		label := r.spec.CompanyName
		if label != "" && r.spec.Title != "" {
			label += "  –  " + r.spec.Title
		} else if label == "" {
			label = r.spec.Title
		}
		if label == "" {
			label = "Document"
		}
		r.add(TextPrim{
			X: margin, Y: r.H - hh + contHeaderH*0.30,
			Text: label, Font: FontBold, Size: 10, Color: txt,
		})
		return
	}

	textX := margin
	if r.e.logo != nil {
		lw, lh := fitLogo(r.e.logo, hh-0.85*Cm, logoMaxW)
		r.add(ImagePrim{
			Rect: Rect{X: margin, Y: r.H - hh + (hh-lh)/2, W: lw, H: lh},
			Key:  "logo",
		})
		textX = margin + lw + 0.55*Cm
	}
	if r.spec.CompanyName != "" {
		r.add(TextPrim{
			X: textX, Y: r.H - hh + 1.95*Cm,
			Text: r.spec.CompanyName, Font: FontBold, Size: 15, Color: txt,
		})
	}
	if r.spec.Title != "" {
		r.add(TextPrim{
			X: textX, Y: r.H - hh + 1.15*Cm,
			Text: r.spec.Title, Font: FontRegular, Size: 11, Color: txt,
		})
	}
	if r.spec.Subtitle != "" {
		r.add(TextPrim{
			X: textX, Y: r.H - hh + 0.46*Cm,
			Text: r.spec.Subtitle, Font: FontItalic, Size: 8.5, Color: txt, Alpha: 0.82,
		})
	}
	if r.e.stamp != nil {
		r.add(ImagePrim{
			Rect: Rect{X: r.W - margin - stampSize, Y: r.H - hh + (hh-stampSize)/2, W: stampSize, H: stampSize},
			Key:  "stamp",
		})
	}
}

func (r *run) drawFooter() {
	th := r.e.theme
	r.add(RectPrim{Rect: Rect{X: 0, Y: 0, W: r.W, H: footerH}, Fill: &th.Primary})

	txt := th.TextOnPrimary
	if r.spec.FooterText != "" {
		r.add(TextPrim{
			X: margin, Y: footerH * 0.30,
			Text: r.spec.FooterText, Font: FontRegular, Size: 7.5, Color: txt,
		})
	}
	label := fmt.Sprintf("Page %d", r.page().Number)
	r.add(TextPrim{
		X: r.W - margin - TextWidth(label, FontRegular, 7.5), Y: footerH * 0.30,
		Text: label, Font: FontRegular, Size: 7.5, Color: txt,
	})
}

func (r *run) drawWatermark() {
	const size = 52.0
	tw := TextWidth(r.e.watermark, FontBold, size)
	half := tw / 2 * math.Sqrt2 / 2
	r.add(TextPrim{
		X: r.W/2 - half, Y: r.H/2 - half,
		Text: r.e.watermark, Font: FontBold, Size: size,
		Color: r.e.theme.LightTint, Alpha: 0.18, Rotate: 45,
	})
}

func (r *run) drawSection(si int, sec formspec.Section) {
	// A bar must never end a page with no fields beneath it: reserve
	// the bar, the gap, the intro if any, and one field row up front.
	minNeeded := sectionBarH + sectionGap + labelH + fieldH + rowGap
	if sec.Intro != "" {
		minNeeded += labelH + 0.38*Cm
	}
	r.ensureSpace(minNeeded)

	th := r.e.theme
	barY := r.y - sectionBarH
	r.add(RectPrim{Rect: Rect{X: margin, Y: barY, W: r.usableW, H: sectionBarH}, Fill: &th.Secondary})
	r.add(RectPrim{Rect: Rect{X: margin, Y: barY, W: accentTabW, H: sectionBarH}, Fill: &th.Accent})
	r.add(TextPrim{
		X: margin + 0.55*Cm, Y: barY + 0.17*Cm,
		Text: sec.Title, Font: FontBold, Size: 9.5, Color: th.SectionText(),
	})
	r.y = barY - sectionGap
	r.bodyEmpty = false

	if sec.Intro != "" {
		r.add(TextPrim{
			X: margin, Y: r.y - labelH,
			Text: sec.Intro, Font: FontItalic, Size: 9, Color: th.TextDark,
		})
		r.y -= labelH + 0.38*Cm
	}

	if sec.Columns == 2 {
		r.layoutTwoCol(si, sec.Fields)
	} else {
		r.layoutOneCol(si, sec.Fields)
	}
	r.y -= betweenSecs
}

func (r *run) layoutOneCol(si int, fields []formspec.Field) {
	for _, f := range fields {
		rh := rowHeight(f)
		r.ensureSpace(rh + rowGap)
		r.drawField(si, f, margin, r.usableW, r.clipFor(rh))
		r.y -= rowGap
	}
}

// layoutTwoCol pairs fields left-to-right into two columns. A full-width
// field takes its own row across both columns, and the paired flow
// resumes after it.
func (r *run) layoutTwoCol(si int, fields []formspec.Field) {
	colW := (r.usableW - colGap) / 2
	i := 0
	for i < len(fields) {
		left := fields[i]
		if left.FullWidth {
			rh := rowHeight(left)
			r.ensureSpace(rh + rowGap)
			r.drawField(si, left, margin, r.usableW, r.clipFor(rh))
			r.y -= rowGap
			i++
			continue
		}

		var right *formspec.Field
		if i+1 < len(fields) && !fields[i+1].FullWidth {
			right = &fields[i+1]
		}

		rowH := rowHeight(left)
		if right != nil {
			rowH = math.Max(rowH, rowHeight(*right))
		}
		r.ensureSpace(rowH + rowGap)
		clip := r.clipFor(rowH)

		ySave := r.y
		r.drawField(si, left, margin, colW, clip)
		yAfterLeft := r.y

		yAfterRight := ySave
		if right != nil {
			r.y = ySave
			r.drawField(si, *right, margin+colW+colGap, colW, clip)
			yAfterRight = r.y
		}

		r.y = math.Min(yAfterLeft, yAfterRight) - rowGap
		if right != nil {
			i += 2
		} else {
			i++
		}
	}
}

// clipFor returns the maximum total row height available on the current
// page when rowH cannot fit even here, or 0 when no clipping is needed.
// ensureSpace has already flushed, so hitting this limit means the row
// is taller than a full page body.
func (r *run) clipFor(rowH float64) float64 {
	avail := r.y - r.bottomLimit()
	if rowH+rowGap <= avail {
		return 0
	}
	return avail - rowGap
}

// rowHeight is the total vertical space a field's row consumes,
// including its label.
func rowHeight(f formspec.Field) float64 {
	w := MapWidget(f)
	if w.Kind == WidgetCheckbox {
		return w.BoxHeight
	}
	return labelH + labelGap + w.BoxHeight
}

// drawField renders one field's static decoration and records its
// widget placement. clip > 0 caps the total row height; the input box
// shrinks to fit and a warning is recorded.
func (r *run) drawField(si int, f formspec.Field, x, w, clip float64) {
	th := r.e.theme
	wdg := MapWidget(f)
	label := f.DisplayLabel()
	r.bodyEmpty = false

	if wdg.Kind == WidgetCheckbox {
		cy := r.y - wdg.BoxHeight
		r.place(f, FieldPlacement{
			Rect: Rect{X: x, Y: cy, W: wdg.BoxHeight, H: wdg.BoxHeight},
			Kind: wdg.Kind, Checked: wdg.Checked,
		})
		r.add(TextPrim{
			X: x + wdg.BoxHeight + 0.30*Cm, Y: cy + wdg.BoxHeight*0.18,
			Text: label, Font: FontRegular, Size: 9, Color: th.TextDark,
		})
		r.y = cy
		return
	}

	bh := wdg.BoxHeight
	if clip > 0 {
		if maxBh := clip - labelH - labelGap; bh > maxBh {
			bh = maxBh
			r.warn(si, f.Name, fmt.Sprintf("field height %.1fpt exceeds one page body, clipped to %.1fpt", wdg.BoxHeight, bh))
		}
	}

	yTop := r.y
	r.add(TextPrim{
		X: x, Y: yTop - labelH + 0.04*Cm,
		Text: label, Font: FontBold, Size: 8.5, Color: th.TextDark,
	})
	if f.Required {
		r.add(TextPrim{
			X: x + TextWidth(label, FontBold, 8.5) + 0.10*Cm, Y: yTop - labelH + 0.04*Cm,
			Text: "*", Font: FontBold, Size: 9.5, Color: markerRed,
		})
	}

	fy := yTop - labelH - labelGap - bh
	if wdg.Kind == WidgetSignature {
		r.add(RectPrim{
			Rect: Rect{X: x, Y: fy, W: w, H: bh},
			Fill: &th.Background, Stroke: &th.Accent, LineWidth: 0.75,
		})
		r.add(TextPrim{
			X: x + 0.35*Cm, Y: fy + 0.38*Cm,
			Text: "×", Font: FontBold, Size: 14, Color: th.TextDark,
		})
		r.add(LinePrim{
			X1: x + 1.10*Cm, Y1: fy + 0.68*Cm, X2: x + w - 0.50*Cm, Y2: fy + 0.68*Cm,
			Color: th.Border, Width: 0.4,
		})
		r.add(TextPrim{
			X: x + 1.20*Cm, Y: fy + 0.75*Cm,
			Text: "Sign here", Font: FontItalic, Size: 8, Color: hintGrey,
		})
	} else {
		r.add(RectPrim{
			Rect: Rect{X: x, Y: fy, W: w, H: bh},
			Fill: &th.Surface, Stroke: &th.Border, LineWidth: 0.4,
		})
	}
	if wdg.Placeholder != "" {
		r.add(TextPrim{
			X: x + 0.22*Cm, Y: fy + 0.18*Cm,
			Text: wdg.Placeholder, Font: FontItalic, Size: 7.5, Color: hintGrey,
		})
	}

	r.place(f, FieldPlacement{
		Rect: Rect{X: x, Y: fy, W: w, H: bh},
		Kind: wdg.Kind, Default: wdg.Default, Options: wdg.Options,
	})
	r.y = fy
}

// place finishes a placement with the field identity and current page.
func (r *run) place(f formspec.Field, p FieldPlacement) {
	p.Name = f.Name
	p.Label = f.DisplayLabel()
	p.Tooltip = f.Tooltip
	if p.Tooltip == "" {
		p.Tooltip = p.Label
	}
	p.Page = r.page().Number
	pg := r.page()
	pg.Fields = append(pg.Fields, p)
}

// fitLogo scales the logo into maxH x maxW preserving aspect ratio.
func fitLogo(img image.Image, maxH, maxW float64) (w, h float64) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw <= 0 || ih <= 0 {
		return maxH * 2, maxH
	}
	aspect := iw / ih
	h = math.Min(maxH, maxW/math.Max(aspect, 0.01))
	w = h * aspect
	if w > maxW {
		w = maxW
		h = w / math.Max(aspect, 0.01)
	}
	return w, h
}
