package formspec

import "fmt"

// ValidationError reports a malformed FormSpec. It carries enough context
// (section index, field name) for a precise user-facing message. A spec
// that fails validation never reaches the layout engine.
type ValidationError struct {
	Section int    // 0-based section index, -1 for document-level problems
	Field   string // offending field name, empty for section-level problems
	Msg     string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Section < 0:
		return fmt.Sprintf("formspec: %s", e.Msg)
	case e.Field == "":
		return fmt.Sprintf("formspec: section %d: %s", e.Section+1, e.Msg)
	default:
		return fmt.Sprintf("formspec: section %d, field %q: %s", e.Section+1, e.Field, e.Msg)
	}
}

// Validate checks every structural invariant of the spec: at least one
// section, sane column counts, known field types, document-wide unique
// field names, non-empty choice options, and positive heights.
func (s *FormSpec) Validate() error {
	if s.PageSize == "" {
		s.PageSize = PageLetter
	}
	if s.PageSize != PageA4 && s.PageSize != PageLetter {
		return &ValidationError{Section: -1, Msg: fmt.Sprintf("unsupported page size %q", s.PageSize)}
	}
	if len(s.Sections) == 0 {
		return &ValidationError{Section: -1, Msg: "at least one section is required"}
	}
	if s.Stamp != nil {
		if s.Stamp.Kind != StampQR && s.Stamp.Kind != StampPDF417 {
			return &ValidationError{Section: -1, Msg: fmt.Sprintf("unsupported stamp kind %q", s.Stamp.Kind)}
		}
		if s.Stamp.Content == "" {
			return &ValidationError{Section: -1, Msg: "stamp content must not be empty"}
		}
	}

	seen := make(map[string]bool)
	for i, sec := range s.Sections {
		if sec.Columns != 0 && sec.Columns != 1 && sec.Columns != 2 {
			return &ValidationError{Section: i, Msg: fmt.Sprintf("columns must be 1 or 2, got %d", sec.Columns)}
		}
		for _, f := range sec.Fields {
			if f.Name == "" {
				return &ValidationError{Section: i, Msg: "field without a name"}
			}
			if !fieldTypes[f.Type] {
				return &ValidationError{Section: i, Field: f.Name, Msg: fmt.Sprintf("unknown field type %q", f.Type)}
			}
			if seen[f.Name] {
				return &ValidationError{Section: i, Field: f.Name, Msg: "duplicate field name"}
			}
			seen[f.Name] = true
			if f.Type == TypeChoice && len(f.Options) == 0 {
				return &ValidationError{Section: i, Field: f.Name, Msg: "choice field needs at least one option"}
			}
			if f.Height < 0 {
				return &ValidationError{Section: i, Field: f.Name, Msg: "height must be positive"}
			}
		}
	}
	return nil
}

// FieldCount returns the number of fields across all sections.
func (s *FormSpec) FieldCount() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Fields)
	}
	return n
}
