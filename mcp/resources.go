package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/scottcrawfordcoach/pdf-creator/formspec"
	"github.com/scottcrawfordcoach/pdf-creator/layout"
	"github.com/scottcrawfordcoach/pdf-creator/theme"
)

// RegisterDefaultResources adds all built-in resources to the server.
// Resources use the formpdf:// scheme and describe the generator's
// capabilities so clients can author valid specs without trial calls.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "formpdf://field-types",
		Name:        "Supported Field Types",
		Description: "The field types a form spec may use, with the widget each maps to.",
		MIMEType:    "application/json",
		Handler:     handleFieldTypesResource,
	})

	s.AddResource(Resource{
		URI:         "formpdf://page-sizes",
		Name:        "Supported Page Sizes",
		Description: "The page size presets and their dimensions in points.",
		MIMEType:    "application/json",
		Handler:     handlePageSizesResource,
	})

	s.AddResource(Resource{
		URI:         "formpdf://default-theme",
		Name:        "Default Theme",
		Description: "The theme used when no brand image is supplied, as hex colors per role.",
		MIMEType:    "application/json",
		Handler:     handleDefaultThemeResource,
	})
}

func handleFieldTypesResource(uri string) ([]ResourceContent, error) {
	types := []formspec.FieldType{
		formspec.TypeText, formspec.TypeEmail, formspec.TypePhone,
		formspec.TypeNumber, formspec.TypeDate, formspec.TypeMultiline,
		formspec.TypeCheckbox, formspec.TypeChoice, formspec.TypeSignature,
	}
	entries := make([]map[string]string, 0, len(types))
	for _, ft := range types {
		w := layout.MapWidget(formspec.Field{Type: ft, Name: "x", Options: []string{"x"}})
		entries = append(entries, map[string]string{
			"type":   string(ft),
			"widget": w.Kind.String(),
		})
	}
	return jsonResource(uri, entries)
}

func handlePageSizesResource(uri string) ([]ResourceContent, error) {
	entries := make([]map[string]interface{}, 0, 2)
	for _, ps := range []formspec.PageSize{formspec.PageA4, formspec.PageLetter} {
		w, h := layout.PageDims(ps)
		entries = append(entries, map[string]interface{}{
			"name":   string(ps),
			"width":  w,
			"height": h,
		})
	}
	return jsonResource(uri, entries)
}

func handleDefaultThemeResource(uri string) ([]ResourceContent, error) {
	th := theme.Default()
	return jsonResource(uri, map[string]string{
		"primary":       th.Primary.Hex(),
		"secondary":     th.Secondary.Hex(),
		"accent":        th.Accent.Hex(),
		"textOnPrimary": th.TextOnPrimary.Hex(),
		"lightTint":     th.LightTint.Hex(),
		"darkShade":     th.DarkShade.Hex(),
		"background":    th.Background.Hex(),
		"surface":       th.Surface.Hex(),
		"textDark":      th.TextDark.Hex(),
		"textLight":     th.TextLight.Hex(),
		"border":        th.Border.Hex(),
	})
}

func jsonResource(uri string, v interface{}) ([]ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding resource: %w", err)
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(data),
	}}, nil
}
