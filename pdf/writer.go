package pdf

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/scottcrawfordcoach/pdf-creator/layout"
)

const producer = "pdf-creator"

// Writer serializes layout results into PDF byte streams. The zero
// configuration is fully deterministic: identical layouts produce
// identical bytes. WithCreationTime opts into a timestamped info
// dictionary.
type Writer struct {
	creation *time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithCreationTime stamps the document info dictionary. Without it the
// output carries no timestamp and stays byte-reproducible.
func WithCreationTime(t time.Time) Option {
	return func(w *Writer) { w.creation = &t }
}

// NewWriter returns a Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write serializes res to out. It builds the whole document in memory
// and emits it in one pass, so a failed build never leaves a truncated
// document behind.
func (w *Writer) Write(out io.Writer, res *layout.Result) error {
	if res == nil || len(res.Pages) == 0 {
		return fmt.Errorf("pdf: empty layout result")
	}

	b := newBuilder()

	// Base fonts. ZapfDingbats supplies the checkbox glyph.
	helv := b.add(fontDict("Helvetica"))
	heBo := b.add(fontDict("Helvetica-Bold"))
	heOb := b.add(fontDict("Helvetica-Oblique"))
	// ZapfDingbats keeps its built-in encoding; WinAnsi would remap
	// the checkbox glyph.
	zaDb := b.add(NewDict().
		Set("Type", Name("Font")).
		Set("Subtype", Name("Type1")).
		Set("BaseFont", Name("ZapfDingbats")))

	imageNames, imageRefs, err := b.addImages(res)
	if err != nil {
		return err
	}
	alphaNames, gsRefs := b.addAlphaStates(res)

	resources := NewDict().
		Set("Font", NewDict().
			Set("F1", helv).
			Set("F2", heBo).
			Set("F3", heOb).
			Set("ZaDb", zaDb)).
		Set("ProcSet", Array{Name("PDF"), Name("Text"), Name("ImageC")})
	if len(imageRefs.keys) > 0 {
		resources.Set("XObject", imageRefs)
	}
	if len(gsRefs.keys) > 0 {
		resources.Set("ExtGState", gsRefs)
	}
	resRef := b.add(resources)

	pagesRef := b.alloc()

	var pageRefs Array
	var fieldRefs Array
	for pi := range res.Pages {
		page := &res.Pages[pi]

		content := contentStream(page.Prims, imageNames, alphaNames)
		contentRef := b.add(&Stream{Dict: NewDict(), Data: content})

		var annots Array
		for _, f := range page.Fields {
			wRef := b.add(widgetDict(f, res.Style))
			annots = append(annots, wRef)
			fieldRefs = append(fieldRefs, wRef)
		}

		pd := NewDict().
			Set("Type", Name("Page")).
			Set("Parent", pagesRef).
			Set("MediaBox", Array{Integer(0), Integer(0), Real(res.PageW), Real(res.PageH)}).
			Set("Resources", resRef).
			Set("Contents", contentRef)
		if len(annots) > 0 {
			pd.Set("Annots", annots)
		}
		pageRefs = append(pageRefs, b.add(pd))
	}

	b.set(pagesRef, NewDict().
		Set("Type", Name("Pages")).
		Set("Kids", pageRefs).
		Set("Count", Integer(len(pageRefs))))

	acro := NewDict().
		Set("Fields", fieldRefs).
		Set("DR", NewDict().Set("Font", NewDict().
			Set("Helv", helv).
			Set("HeBo", heBo).
			Set("HeOb", heOb).
			Set("ZaDb", zaDb))).
		Set("DA", String("/Helv 0 Tf 0 g")).
		Set("NeedAppearances", Boolean(true))

	catalogRef := b.add(NewDict().
		Set("Type", Name("Catalog")).
		Set("Pages", pagesRef).
		Set("AcroForm", acro))

	info := NewDict().Set("Producer", String(producer))
	if res.Title != "" {
		info.Set("Title", String(res.Title))
	}
	if res.Company != "" {
		info.Set("Author", String(res.Company))
	}
	if w.creation != nil {
		info.Set("CreationDate", String(pdfDate(*w.creation)))
	}
	infoRef := b.add(info)

	return b.emit(out, catalogRef, infoRef)
}

// builder assigns object numbers sequentially and remembers every
// object until emit writes the body, xref table and trailer.
type builder struct {
	objs []Object // objs[i] is object number i+1
}

func newBuilder() *builder {
	return &builder{}
}

func (b *builder) add(o Object) Ref {
	b.objs = append(b.objs, o)
	return Ref{Num: len(b.objs)}
}

// alloc reserves an object number for a forward reference; set fills
// it in later.
func (b *builder) alloc() Ref {
	return b.add(nil)
}

func (b *builder) set(r Ref, o Object) {
	b.objs[r.Num-1] = o
}

// addImages registers every layout image as an XObject, in sorted key
// order for deterministic numbering.
func (b *builder) addImages(res *layout.Result) (map[string]string, *Dict, error) {
	keys := make([]string, 0, len(res.Images))
	for k := range res.Images {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make(map[string]string, len(keys))
	refs := NewDict()
	for i, k := range keys {
		st, err := imageXObject(res.Images[k])
		if err != nil {
			return nil, nil, fmt.Errorf("pdf: image %q: %w", k, err)
		}
		name := fmt.Sprintf("Im%d", i+1)
		names[k] = name
		refs.Set(Name(name), b.add(st))
	}
	return names, refs, nil
}

// addAlphaStates registers one ExtGState per distinct text alpha.
func (b *builder) addAlphaStates(res *layout.Result) (map[float64]string, *Dict) {
	seen := make(map[float64]bool)
	for _, pg := range res.Pages {
		for _, p := range pg.Prims {
			if t, ok := p.(layout.TextPrim); ok && t.Alpha > 0 && t.Alpha < 1 {
				seen[t.Alpha] = true
			}
		}
	}
	alphas := make([]float64, 0, len(seen))
	for a := range seen {
		alphas = append(alphas, a)
	}
	sort.Float64s(alphas)

	names := make(map[float64]string, len(alphas))
	refs := NewDict()
	for i, a := range alphas {
		name := fmt.Sprintf("GS%d", i+1)
		names[a] = name
		refs.Set(Name(name), b.add(NewDict().
			Set("Type", Name("ExtGState")).
			Set("ca", Real(a)).
			Set("CA", Real(a))))
	}
	return names, refs
}

// emit writes the header, body, xref table and trailer.
func (b *builder) emit(out io.Writer, root, info Ref) error {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(b.objs))
	for i, o := range b.objs {
		if o == nil {
			return fmt.Errorf("pdf: object %d was reserved but never set", i+1)
		}
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		o.writeTo(&buf)
		buf.WriteString("\nendobj\n")
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(b.objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	trailer := NewDict().
		Set("Size", Integer(len(b.objs)+1)).
		Set("Root", root).
		Set("Info", info)
	buf.WriteString("trailer\n")
	trailer.writeTo(&buf)
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefPos)

	_, err := out.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("pdf: writing output: %w", err)
	}
	return nil
}

func fontDict(base string) *Dict {
	return NewDict().
		Set("Type", Name("Font")).
		Set("Subtype", Name("Type1")).
		Set("BaseFont", Name(base)).
		Set("Encoding", Name("WinAnsiEncoding"))
}

// pdfDate renders t in the D:YYYYMMDDHHmmSS format.
func pdfDate(t time.Time) string {
	return t.UTC().Format("D:20060102150405Z")
}
