package pdfcheck

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Object is the interface satisfied by all parsed PDF value types.
// The unexported method prevents external types from implementing it.
type Object interface {
	pdfObject()
}

// Null represents the PDF null object.
type Null struct{}

// Boolean represents a PDF boolean value.
type Boolean bool

// Integer represents a PDF integer value.
type Integer int64

// Real represents a PDF real (floating-point) value.
type Real float64

// Name represents a PDF name object (e.g. /Type, /Pages).
type Name string

// String represents a PDF literal or hexadecimal string.
type String []byte

// Array represents a PDF array of objects.
type Array []Object

// Dict represents a PDF dictionary mapping names to objects.
type Dict map[Name]Object

// Ref represents an indirect object reference (e.g. "12 0 R").
type Ref struct {
	Num int
	Gen int
}

func (Null) pdfObject()    {}
func (Boolean) pdfObject() {}
func (Integer) pdfObject() {}
func (Real) pdfObject()    {}
func (Name) pdfObject()    {}
func (String) pdfObject()  {}
func (Array) pdfObject()   {}
func (Dict) pdfObject()    {}
func (Ref) pdfObject()     {}

// GetName returns the value of a name entry, or "" if absent.
func (d Dict) GetName(key Name) Name {
	if n, ok := d[key].(Name); ok {
		return n
	}
	return ""
}

// GetInt returns the value of an integer entry, or 0 if absent.
func (d Dict) GetInt(key Name) int {
	if i, ok := d[key].(Integer); ok {
		return int(i)
	}
	return 0
}

// GetString returns the value of a string entry, or "" if absent.
func (d Dict) GetString(key Name) string {
	if s, ok := d[key].(String); ok {
		return string(s)
	}
	return ""
}

// parser is a recursive descent parser for PDF syntax.
type parser struct {
	data []byte
	pos  int
}

// skipWhitespace advances past whitespace and comments.
func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		b := p.data[p.pos]
		switch b {
		case ' ', '\t', '\n', '\r', '\f', 0:
			p.pos++
		case '%':
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
		default:
			return
		}
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' ||
		b == '[' || b == ']' || b == '{' || b == '}' ||
		b == '/' || b == '%'
}

func isRegular(b byte) bool {
	return !isWhitespace(b) && !isDelimiter(b)
}

// readToken reads the next keyword or number token.
func (p *parser) readToken() string {
	p.skipWhitespace()
	start := p.pos
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

// parseObject parses the next PDF value from the current position.
func (p *parser) parseObject() (Object, error) {
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil, io.ErrUnexpectedEOF
	}

	b := p.data[p.pos]
	switch {
	case b == '<':
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
			return p.parseDict()
		}
		return p.parseHexString()
	case b == '(':
		return p.parseLiteralString()
	case b == '/':
		return p.parseName()
	case b == '[':
		return p.parseArray()
	case b == 't' || b == 'f':
		return p.parseKeyword()
	case b == 'n':
		return p.parseKeyword()
	case b >= '0' && b <= '9', b == '+', b == '-', b == '.':
		return p.parseNumberOrRef()
	default:
		return nil, fmt.Errorf("pdfcheck: unexpected character %q at offset %d", b, p.pos)
	}
}

func (p *parser) parseName() (Object, error) {
	p.pos++ // consume '/'
	start := p.pos
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		p.pos++
	}
	return Name(p.data[start:p.pos]), nil
}

func (p *parser) parseKeyword() (Object, error) {
	switch tok := p.readToken(); tok {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	case "null":
		return Null{}, nil
	default:
		return nil, fmt.Errorf("pdfcheck: unexpected keyword %q", tok)
	}
}

// parseNumberOrRef parses a number, looking ahead for the "N G R" form
// of an indirect reference.
func (p *parser) parseNumberOrRef() (Object, error) {
	first := p.readToken()

	if num, err := strconv.Atoi(first); err == nil && num >= 0 {
		save := p.pos
		second := p.readToken()
		if gen, err := strconv.Atoi(second); err == nil && gen >= 0 {
			save2 := p.pos
			if p.readToken() == "R" {
				return Ref{Num: num, Gen: gen}, nil
			}
			p.pos = save2
		}
		p.pos = save
	}

	if strings.ContainsAny(first, ".eE") {
		f, err := strconv.ParseFloat(first, 64)
		if err != nil {
			return nil, fmt.Errorf("pdfcheck: bad number %q", first)
		}
		return Real(f), nil
	}
	i, err := strconv.ParseInt(first, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("pdfcheck: bad number %q", first)
	}
	return Integer(i), nil
}

func (p *parser) parseLiteralString() (Object, error) {
	p.pos++ // consume '('
	var out []byte
	depth := 1
	for p.pos < len(p.data) {
		b := p.data[p.pos]
		p.pos++
		switch b {
		case '\\':
			if p.pos >= len(p.data) {
				return nil, io.ErrUnexpectedEOF
			}
			esc := p.data[p.pos]
			p.pos++
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '(', ')', '\\':
				out = append(out, esc)
			default:
				if esc >= '0' && esc <= '7' {
					val := int(esc - '0')
					for i := 0; i < 2 && p.pos < len(p.data); i++ {
						c := p.data[p.pos]
						if c < '0' || c > '7' {
							break
						}
						val = val*8 + int(c-'0')
						p.pos++
					}
					out = append(out, byte(val))
				} else {
					out = append(out, esc)
				}
			}
		case '(':
			depth++
			out = append(out, b)
		case ')':
			depth--
			if depth == 0 {
				return String(out), nil
			}
			out = append(out, b)
		default:
			out = append(out, b)
		}
	}
	return nil, io.ErrUnexpectedEOF
}

func (p *parser) parseHexString() (Object, error) {
	p.pos++ // consume '<'
	var out []byte
	var hi, nhex byte
	for p.pos < len(p.data) {
		b := p.data[p.pos]
		p.pos++
		if b == '>' {
			if nhex == 1 {
				out = append(out, hi<<4)
			}
			return String(out), nil
		}
		if isWhitespace(b) {
			continue
		}
		v, ok := hexVal(b)
		if !ok {
			return nil, fmt.Errorf("pdfcheck: bad hex digit %q", b)
		}
		if nhex == 0 {
			hi, nhex = v, 1
		} else {
			out = append(out, hi<<4|v)
			nhex = 0
		}
	}
	return nil, io.ErrUnexpectedEOF
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

func (p *parser) parseArray() (Object, error) {
	p.pos++ // consume '['
	var arr Array
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, io.ErrUnexpectedEOF
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *parser) parseDict() (Object, error) {
	p.pos += 2 // consume '<<'
	dict := make(Dict)
	for {
		p.skipWhitespace()
		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.pos >= len(p.data) {
			return nil, io.ErrUnexpectedEOF
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("pdfcheck: dictionary key must be a name at offset %d", p.pos)
		}
		keyObj, err := p.parseName()
		if err != nil {
			return nil, err
		}
		val, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		dict[keyObj.(Name)] = val
	}
}
