// Package pdfcheck parses generated form documents back into their
// object structure so callers can verify page counts, field registries
// and metadata without a PDF viewer.
//
// It understands the subset of PDF emitted by this module: a classic
// cross-reference table, uncompressed dictionaries, and widget
// annotations doubling as AcroForm field entries.
package pdfcheck

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Sentinel errors for malformed documents.
var (
	ErrNotPDF     = errors.New("pdfcheck: missing %PDF header")
	ErrNoTrailer  = errors.New("pdfcheck: missing trailer")
	ErrBadXref    = errors.New("pdfcheck: malformed cross-reference table")
	ErrBadObject  = errors.New("pdfcheck: malformed indirect object")
	ErrNoAcroForm = errors.New("pdfcheck: document has no AcroForm")
)

// Field is one entry of the document's AcroForm field registry.
type Field struct {
	Name    string   // partial field name (/T)
	Type    string   // "Tx", "Btn" or "Ch"
	Value   string   // current value (/V), "" when unset
	Flags   int      // field flags (/Ff)
	Options []string // choice options (/Opt)
	Rect    [4]float64
	Page    int // 1-based page carrying the widget
}

// Document is a parsed PDF.
type Document struct {
	data    []byte
	objects map[int]Object
	trailer Dict
}

// Open parses data as a PDF document. The whole cross-reference table
// is read eagerly; a damaged table fails here rather than on first use.
func Open(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}
	d := &Document{data: data, objects: make(map[int]Object)}
	offsets, trailer, err := readXref(data)
	if err != nil {
		return nil, err
	}
	d.trailer = trailer
	for num, off := range offsets {
		obj, err := parseIndirect(data, num, off)
		if err != nil {
			return nil, err
		}
		d.objects[num] = obj
	}
	return d, nil
}

// resolve follows indirect references until a direct value remains.
func (d *Document) resolve(o Object) Object {
	for {
		ref, ok := o.(Ref)
		if !ok {
			return o
		}
		next, ok := d.objects[ref.Num]
		if !ok {
			return Null{}
		}
		o = next
	}
}

func (d *Document) dict(o Object) Dict {
	if dd, ok := d.resolve(o).(Dict); ok {
		return dd
	}
	return nil
}

// Catalog returns the document catalog (/Root).
func (d *Document) Catalog() (Dict, error) {
	c := d.dict(d.trailer["Root"])
	if c == nil {
		return nil, fmt.Errorf("pdfcheck: missing or invalid /Root")
	}
	return c, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() (int, error) {
	cat, err := d.Catalog()
	if err != nil {
		return 0, err
	}
	pages := d.dict(cat["Pages"])
	if pages == nil {
		return 0, fmt.Errorf("pdfcheck: missing page tree")
	}
	return pages.GetInt("Count"), nil
}

// Info returns the document information dictionary, or an empty Dict.
func (d *Document) Info() Dict {
	if info := d.dict(d.trailer["Info"]); info != nil {
		return info
	}
	return Dict{}
}

// Fields returns the AcroForm field registry in document order, with
// each field's carrying page resolved through the page tree.
func (d *Document) Fields() ([]Field, error) {
	cat, err := d.Catalog()
	if err != nil {
		return nil, err
	}
	acro := d.dict(cat["AcroForm"])
	if acro == nil {
		return nil, ErrNoAcroForm
	}
	refs, _ := d.resolve(acro["Fields"]).(Array)

	pageOf := d.widgetPages(cat)

	fields := make([]Field, 0, len(refs))
	for _, fo := range refs {
		ref, isRef := fo.(Ref)
		fd := d.dict(fo)
		if fd == nil {
			continue
		}
		f := Field{
			Name:  fd.GetString("T"),
			Type:  string(fd.GetName("FT")),
			Flags: fd.GetInt("Ff"),
		}
		switch v := d.resolve(fd["V"]).(type) {
		case String:
			f.Value = string(v)
		case Name:
			f.Value = string(v)
		}
		if opts, ok := d.resolve(fd["Opt"]).(Array); ok {
			for _, o := range opts {
				if s, ok := o.(String); ok {
					f.Options = append(f.Options, string(s))
				}
			}
		}
		if rect, ok := d.resolve(fd["Rect"]).(Array); ok && len(rect) == 4 {
			for i, rv := range rect {
				switch n := rv.(type) {
				case Integer:
					f.Rect[i] = float64(n)
				case Real:
					f.Rect[i] = float64(n)
				}
			}
		}
		if isRef {
			f.Page = pageOf[ref.Num]
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// widgetPages maps annotation object numbers to 1-based page numbers.
func (d *Document) widgetPages(cat Dict) map[int]int {
	out := make(map[int]int)
	pages := d.dict(cat["Pages"])
	if pages == nil {
		return out
	}
	kids, _ := d.resolve(pages["Kids"]).(Array)
	for i, kid := range kids {
		pd := d.dict(kid)
		if pd == nil {
			continue
		}
		annots, _ := d.resolve(pd["Annots"]).(Array)
		for _, a := range annots {
			if ref, ok := a.(Ref); ok {
				out[ref.Num] = i + 1
			}
		}
	}
	return out
}

// FieldNames returns the sorted field names of the registry.
func (d *Document) FieldNames() ([]string, error) {
	fields, err := d.Fields()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	sort.Strings(names)
	return names, nil
}

// readXref locates startxref, parses the table and the trailer.
func readXref(data []byte) (map[int]int, Dict, error) {
	tail := data
	if len(tail) > 2048 {
		tail = tail[len(tail)-2048:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return nil, nil, ErrNoTrailer
	}
	p := &parser{data: tail, pos: idx + len("startxref")}
	off, err := strconv.Atoi(p.readToken())
	if err != nil || off < 0 || off >= len(data) {
		return nil, nil, ErrBadXref
	}

	p = &parser{data: data, pos: off}
	if p.readToken() != "xref" {
		return nil, nil, ErrBadXref
	}

	offsets := make(map[int]int)
	for {
		p.skipWhitespace()
		if bytes.HasPrefix(data[p.pos:], []byte("trailer")) {
			break
		}
		start, err := strconv.Atoi(p.readToken())
		if err != nil {
			return nil, nil, ErrBadXref
		}
		count, err := strconv.Atoi(p.readToken())
		if err != nil {
			return nil, nil, ErrBadXref
		}
		for i := 0; i < count; i++ {
			entOff, err1 := strconv.Atoi(p.readToken())
			_, err2 := strconv.Atoi(p.readToken())
			kind := p.readToken()
			if err1 != nil || err2 != nil || (kind != "n" && kind != "f") {
				return nil, nil, ErrBadXref
			}
			if kind == "n" && start+i > 0 {
				offsets[start+i] = entOff
			}
		}
	}

	p.pos += len("trailer")
	tr, err := p.parseObject()
	if err != nil {
		return nil, nil, ErrNoTrailer
	}
	trailer, ok := tr.(Dict)
	if !ok {
		return nil, nil, ErrNoTrailer
	}
	return offsets, trailer, nil
}

// parseIndirect parses the object with the given number at off,
// skipping over any stream payload.
func parseIndirect(data []byte, num, off int) (Object, error) {
	if off < 0 || off >= len(data) {
		return nil, ErrBadObject
	}
	p := &parser{data: data, pos: off}
	gotNum, err := strconv.Atoi(p.readToken())
	if err != nil || gotNum != num {
		return nil, fmt.Errorf("%w: expected object %d at offset %d", ErrBadObject, num, off)
	}
	if _, err := strconv.Atoi(p.readToken()); err != nil {
		return nil, ErrBadObject
	}
	if p.readToken() != "obj" {
		return nil, ErrBadObject
	}
	obj, err := p.parseObject()
	if err != nil {
		return nil, err
	}
	// Stream payloads are opaque here; the dictionary is what matters.
	return obj, nil
}
