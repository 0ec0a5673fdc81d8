// Package formspec defines the abstract, validated description of a
// fillable form document: sections, columns, and typed fields. It is
// independent of any rendering concern; the layout engine consumes a
// validated FormSpec and never sees raw configuration again.
//
// The JSON schema mirrors what upstream producers (config files, brief
// interpreters) emit:
//
//	{
//	  "company_name": "Acme Ltd",
//	  "document_title": "Client Intake Form",
//	  "page_size": "a4",
//	  "sections": [{
//	    "title": "Contact Information",
//	    "columns": 2,
//	    "fields": [
//	      {"type": "text", "name": "first_name", "label": "First Name", "required": true}
//	    ]
//	  }]
//	}
package formspec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldType discriminates the closed set of supported field types.
type FieldType string

const (
	TypeText      FieldType = "text"      // short single-line entry
	TypeEmail     FieldType = "email"     // email address
	TypePhone     FieldType = "phone"     // phone number
	TypeNumber    FieldType = "number"    // numeric value
	TypeDate      FieldType = "date"      // date with a format hint
	TypeMultiline FieldType = "multiline" // multi-line free text
	TypeCheckbox  FieldType = "checkbox"  // boolean agreement
	TypeChoice    FieldType = "choice"    // single selection from options
	TypeSignature FieldType = "signature" // handwritten signature box
)

// fieldTypes is the total set; Validate rejects anything else before
// layout starts.
var fieldTypes = map[FieldType]bool{
	TypeText:      true,
	TypeEmail:     true,
	TypePhone:     true,
	TypeNumber:    true,
	TypeDate:      true,
	TypeMultiline: true,
	TypeCheckbox:  true,
	TypeChoice:    true,
	TypeSignature: true,
}

// PageSize selects one of the two supported page presets.
type PageSize string

const (
	PageA4     PageSize = "a4"     // 210 x 297 mm
	PageLetter PageSize = "letter" // 8.5 x 11 in
)

// StampKind selects the symbology of the optional verification stamp.
type StampKind string

const (
	StampQR     StampKind = "qr"
	StampPDF417 StampKind = "pdf417"
)

// FormSpec is the top-level description of one document.
type FormSpec struct {
	CompanyName string    `json:"company_name,omitempty"`
	Title       string    `json:"document_title,omitempty"`
	Subtitle    string    `json:"document_subtitle,omitempty"`
	FooterText  string    `json:"footer_text,omitempty"`
	PageSize    PageSize  `json:"page_size,omitempty"` // default: letter
	Sections    []Section `json:"sections"`
	Stamp       *Stamp    `json:"stamp,omitempty"`
}

// Section groups fields under a colored title bar.
type Section struct {
	Title   string  `json:"title"`
	Columns int     `json:"columns,omitempty"` // 1 (default) or 2
	Intro   string  `json:"intro,omitempty"`   // paragraph under the bar
	Fields  []Field `json:"fields"`
}

// Field is a single fillable input.
type Field struct {
	Type      FieldType `json:"type"`
	Name      string    `json:"name"`
	Label     string    `json:"label,omitempty"`
	Required  bool      `json:"required,omitempty"`
	Default   string    `json:"default,omitempty"`
	Tooltip   string    `json:"tooltip,omitempty"`
	FullWidth bool      `json:"full_width,omitempty"`

	// Type-specific attributes.
	Options     []string `json:"options,omitempty"`     // choice
	Height      float64  `json:"height,omitempty"`      // multiline/signature, in cm
	Placeholder string   `json:"placeholder,omitempty"` // date hint text
}

// Stamp requests a machine-readable verification stamp on page 1.
type Stamp struct {
	Kind    StampKind `json:"kind"`
	Content string    `json:"content"`
}

// Parse unmarshals and validates a JSON form specification.
func Parse(data []byte) (*FormSpec, error) {
	var spec FormSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("formspec: parsing spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// DisplayLabel returns the label to render, falling back to a prettified
// field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	words := strings.Split(f.Name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
