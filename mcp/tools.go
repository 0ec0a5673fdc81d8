package mcp

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	pdfcreator "github.com/scottcrawfordcoach/pdf-creator"
	"github.com/scottcrawfordcoach/pdf-creator/formspec"
	"github.com/scottcrawfordcoach/pdf-creator/layout"
	"github.com/scottcrawfordcoach/pdf-creator/palette"
	"github.com/scottcrawfordcoach/pdf-creator/pdfcheck"
	"github.com/scottcrawfordcoach/pdf-creator/theme"
)

// RegisterDefaultTools adds all built-in form-PDF tools to the server.
func RegisterDefaultTools(s *Server) {
	s.AddTool(createFormPDFTool())
	s.AddTool(validateFormSpecTool())
	s.AddTool(previewLayoutTool())
	s.AddTool(extractPaletteTool())
	s.AddTool(inspectFormPDFTool())
}

func createFormPDFTool() Tool {
	return Tool{
		Name:        "create_form_pdf",
		Description: "Create a branded fillable PDF form from a JSON form spec and an optional brand image. The brand image drives the color theme; fields become interactive AcroForm widgets. Returns the PDF as base64.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"spec": map[string]interface{}{
					"type":        "object",
					"description": "Form spec with company_name, document_title, sections and fields",
				},
				"brandImage": map[string]interface{}{
					"type":        "string",
					"description": "Base64-encoded brand image (PNG/JPEG/GIF/BMP/TIFF/WebP) used to derive the theme",
				},
				"logo": map[string]interface{}{
					"type":        "string",
					"description": "Base64-encoded logo for the page-1 header. Defaults to the brand image.",
				},
				"watermark": map[string]interface{}{
					"type":        "string",
					"description": "Optional diagonal watermark text, e.g. DRAFT",
				},
				"outputPath": map[string]interface{}{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"spec"},
		},
		Handler: handleCreateFormPDF,
	}
}

func handleCreateFormPDF(args map[string]interface{}) (ToolResult, error) {
	spec, err := specArg(args)
	if err != nil {
		return ToolResult{}, err
	}

	req := pdfcreator.Request{Spec: spec}
	if req.BrandImage, err = imageArg(args, "brandImage"); err != nil {
		return ToolResult{}, err
	}
	if req.Logo, err = imageArg(args, "logo"); err != nil {
		return ToolResult{}, err
	}
	if req.Logo == nil {
		req.Logo = req.BrandImage
	}

	var opts []pdfcreator.Option
	if wm, ok := args["watermark"].(string); ok && wm != "" {
		opts = append(opts, pdfcreator.WithWatermark(wm))
	}

	out, sum, err := pdfcreator.Generate(req, opts...)
	if err != nil {
		return ToolResult{}, fmt.Errorf("generating PDF: %w", err)
	}

	summary := fmt.Sprintf("%d page(s), %d field(s), primary color %s",
		sum.Pages, len(sum.FieldPages), sum.Theme.Primary.Hex())
	for _, w := range sum.Warnings {
		summary += fmt.Sprintf("\nwarning: field %q: %s", w.Field, w.Msg)
	}

	if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return ToolResult{
			Content: []ContentBlock{{
				Type: "text",
				Text: fmt.Sprintf("PDF created: %s (%d bytes). %s", outputPath, len(out), summary),
			}},
		}, nil
	}

	encoded := base64.StdEncoding.EncodeToString(out)
	return ToolResult{
		Content: []ContentBlock{{
			Type: "text",
			Text: fmt.Sprintf("PDF created (%d bytes). %s\nBase64 data:\n%s", len(out), summary, encoded),
		}},
	}, nil
}

func validateFormSpecTool() Tool {
	return Tool{
		Name:        "validate_form_spec",
		Description: "Validate a JSON form spec without rendering. Reports the first violation, or the field count when the spec is valid.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"spec": map[string]interface{}{
					"type":        "object",
					"description": "Form spec to validate",
				},
			},
			"required": []string{"spec"},
		},
		Handler: handleValidateFormSpec,
	}
}

func handleValidateFormSpec(args map[string]interface{}) (ToolResult, error) {
	spec, err := specArg(args)
	if err != nil {
		return ToolResult{}, err
	}
	if err := spec.Validate(); err != nil {
		return ToolResult{
			Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf("Invalid: %v", err)}},
			IsError: true,
		}, nil
	}
	return ToolResult{
		Content: []ContentBlock{{
			Type: "text",
			Text: fmt.Sprintf("Valid: %d section(s), %d field(s)", len(spec.Sections), spec.FieldCount()),
		}},
	}, nil
}

func previewLayoutTool() Tool {
	return Tool{
		Name:        "preview_form_layout",
		Description: "Lay out a form spec without rendering a PDF. Returns the page count and, per field, its page number and position, plus any clipping warnings.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"spec": map[string]interface{}{
					"type":        "object",
					"description": "Form spec to lay out",
				},
			},
			"required": []string{"spec"},
		},
		Handler: handlePreviewLayout,
	}
}

func handlePreviewLayout(args map[string]interface{}) (ToolResult, error) {
	spec, err := specArg(args)
	if err != nil {
		return ToolResult{}, err
	}

	res, err := layout.New(theme.Default()).Layout(spec)
	if err != nil {
		return ToolResult{}, fmt.Errorf("laying out form: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d page(s), %s %gx%g pt\n", len(res.Pages), res.PageSize, res.PageW, res.PageH)
	for _, p := range res.Placements() {
		fmt.Fprintf(&sb, "page %d: %s (%s) at (%.1f, %.1f) %.1fx%.1f\n",
			p.Page, p.Name, p.Kind, p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&sb, "warning: section %d field %q: %s\n", w.Section+1, w.Field, w.Msg)
	}

	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: strings.TrimRight(sb.String(), "\n")}},
	}, nil
}

func extractPaletteTool() Tool {
	return Tool{
		Name:        "extract_palette",
		Description: "Extract the dominant colors from an image and show the theme they would produce (primary, secondary, accent as hex).",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"image": map[string]interface{}{
					"type":        "string",
					"description": "Base64-encoded image",
				},
				"maxColors": map[string]interface{}{
					"type":        "number",
					"description": "Maximum palette size (default 6)",
				},
			},
			"required": []string{"image"},
		},
		Handler: handleExtractPalette,
	}
}

func handleExtractPalette(args map[string]interface{}) (ToolResult, error) {
	data, err := imageArg(args, "image")
	if err != nil {
		return ToolResult{}, err
	}
	if data == nil {
		return ToolResult{}, fmt.Errorf("missing 'image' argument")
	}

	maxColors := 6
	if n, ok := args["maxColors"].(float64); ok && n >= 1 {
		maxColors = int(n)
	}

	pal, err := palette.Extract(data, maxColors)
	if err != nil {
		return ToolResult{}, fmt.Errorf("extracting palette: %w", err)
	}

	th := theme.Build(pal, nil)

	var sb strings.Builder
	sb.WriteString("Palette:")
	for _, c := range pal {
		fmt.Fprintf(&sb, " %s", c.Hex())
	}
	fmt.Fprintf(&sb, "\nTheme: primary %s, secondary %s, accent %s",
		th.Primary.Hex(), th.Secondary.Hex(), th.Accent.Hex())

	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: sb.String()}},
	}, nil
}

func inspectFormPDFTool() Tool {
	return Tool{
		Name:        "inspect_form_pdf",
		Description: "Parse a generated form PDF and report its page count, metadata and field registry.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the PDF file",
				},
			},
			"required": []string{"path"},
		},
		Handler: handleInspectFormPDF,
	}
}

func handleInspectFormPDF(args map[string]interface{}) (ToolResult, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return ToolResult{}, fmt.Errorf("missing 'path' argument")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ToolResult{}, fmt.Errorf("reading file: %w", err)
	}
	doc, err := pdfcheck.Open(data)
	if err != nil {
		return ToolResult{}, fmt.Errorf("parsing PDF: %w", err)
	}

	pages, err := doc.PageCount()
	if err != nil {
		return ToolResult{}, err
	}
	info := doc.Info()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d page(s)", pages)
	if title := info.GetString("Title"); title != "" {
		fmt.Fprintf(&sb, "\nTitle: %s", title)
	}
	if author := info.GetString("Author"); author != "" {
		fmt.Fprintf(&sb, "\nAuthor: %s", author)
	}

	fields, err := doc.Fields()
	if err != nil {
		fmt.Fprintf(&sb, "\nNo form fields (%v)", err)
	} else {
		fmt.Fprintf(&sb, "\n%d field(s):", len(fields))
		for _, f := range fields {
			fmt.Fprintf(&sb, "\n  %s (%s, page %d)", f.Name, f.Type, f.Page)
			if f.Value != "" {
				fmt.Fprintf(&sb, " = %q", f.Value)
			}
		}
	}

	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: sb.String()}},
	}, nil
}

// specArg decodes the "spec" argument. Validation is left to each
// handler so validate_form_spec can report violations as tool output.
func specArg(args map[string]interface{}) (*formspec.FormSpec, error) {
	raw, ok := args["spec"]
	if !ok {
		return nil, fmt.Errorf("missing 'spec' argument")
	}
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding spec: %w", err)
	}
	var spec formspec.FormSpec
	if err := json.Unmarshal(jsonBytes, &spec); err != nil {
		return nil, fmt.Errorf("parsing spec: %w", err)
	}
	return &spec, nil
}

// imageArg decodes an optional base64 image argument.
func imageArg(args map[string]interface{}, key string) ([]byte, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return data, nil
}
