// Package pdf serializes a computed form layout into a complete PDF
// document: static page content, base-font resources, image XObjects,
// and the AcroForm registry of interactive field widgets.
//
// Only the writing side of the object model (ISO 32000) is implemented;
// the engine never reads existing documents.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
)

// Object is the interface satisfied by all PDF object types. The
// unexported method prevents external types from implementing it.
type Object interface {
	writeTo(*bytes.Buffer)
}

// Name represents a PDF name object (e.g. /Type, /Pages).
type Name string

func (n Name) writeTo(b *bytes.Buffer) {
	b.WriteByte('/')
	b.WriteString(string(n))
}

// Integer represents a PDF integer value.
type Integer int64

func (i Integer) writeTo(b *bytes.Buffer) {
	b.WriteString(strconv.FormatInt(int64(i), 10))
}

// Real represents a PDF real value, written with fixed precision so
// identical geometry always serializes to identical bytes.
type Real float64

func (r Real) writeTo(b *bytes.Buffer) {
	b.WriteString(formatReal(float64(r)))
}

// Boolean represents a PDF boolean value.
type Boolean bool

func (v Boolean) writeTo(b *bytes.Buffer) {
	if v {
		b.WriteString("true")
	} else {
		b.WriteString("false")
	}
}

// String represents a PDF literal string. Text is encoded to WinAnsi
// with the usual delimiter escapes on write.
type String string

func (s String) writeTo(b *bytes.Buffer) {
	b.WriteByte('(')
	b.Write(encodeText(string(s)))
	b.WriteByte(')')
}

// Ref is an indirect reference to object Num (generation 0).
type Ref struct {
	Num int
}

func (r Ref) writeTo(b *bytes.Buffer) {
	fmt.Fprintf(b, "%d 0 R", r.Num)
}

// Array represents a PDF array.
type Array []Object

func (a Array) writeTo(b *bytes.Buffer) {
	b.WriteByte('[')
	for i, o := range a {
		if i > 0 {
			b.WriteByte(' ')
		}
		o.writeTo(b)
	}
	b.WriteByte(']')
}

// Dict is a PDF dictionary that remembers insertion order, keeping the
// serialized output deterministic.
type Dict struct {
	keys []Name
	m    map[Name]Object
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{m: make(map[Name]Object)}
}

// Set stores v under k, preserving the first-insertion position.
func (d *Dict) Set(k Name, v Object) *Dict {
	if _, ok := d.m[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.m[k] = v
	return d
}

func (d *Dict) writeTo(b *bytes.Buffer) {
	b.WriteString("<<")
	for i, k := range d.keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		k.writeTo(b)
		b.WriteByte(' ')
		d.m[k].writeTo(b)
	}
	b.WriteString(">>")
}

// Stream is a PDF stream object; Length is filled in automatically.
type Stream struct {
	Dict *Dict
	Data []byte
}

func (s *Stream) writeTo(b *bytes.Buffer) {
	s.Dict.Set("Length", Integer(len(s.Data)))
	s.Dict.writeTo(b)
	b.WriteString("\nstream\n")
	b.Write(s.Data)
	b.WriteString("\nendstream")
}

// formatReal renders v with three decimals, trimming trailing zeros so
// integers stay compact. Exponent notation never appears, as the PDF
// grammar forbids it.
func formatReal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = trimZeros(s)
	if s == "-0" {
		s = "0"
	}
	return s
}

func trimZeros(s string) string {
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// encodeText converts a Go string to an escaped WinAnsi byte sequence.
// Latin-1 runes map directly; the common typographic punctuation in the
// 0x2013-0x2022 block uses its WinAnsi slot; anything else becomes '?'.
func encodeText(s string) []byte {
	var out bytes.Buffer
	for _, r := range s {
		var c byte
		switch {
		case r < 0x80:
			c = byte(r)
		case r >= 0xA0 && r <= 0xFF:
			c = byte(r)
		default:
			switch r {
			case '–':
				c = 0x96 // en dash
			case '—':
				c = 0x97 // em dash
			case '‘':
				c = 0x91
			case '’':
				c = 0x92
			case '“':
				c = 0x93
			case '”':
				c = 0x94
			case '•':
				c = 0x95 // bullet
			default:
				c = '?'
			}
		}
		switch {
		case c == '\\' || c == '(' || c == ')':
			out.WriteByte('\\')
			out.WriteByte(c)
		case c < 0x20 || c > 0x7E:
			fmt.Fprintf(&out, "\\%03o", c)
		default:
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}
