// Command formpdf-mcp is an MCP (Model Context Protocol) server that
// exposes branded form-PDF generation to AI assistants.
//
// # Installation
//
//	go install github.com/scottcrawfordcoach/pdf-creator/cmd/formpdf-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "formpdf": {
//	      "command": "formpdf-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - create_form_pdf: Create a fillable PDF from a JSON form spec and brand image
//   - validate_form_spec: Validate a form spec without rendering
//   - preview_form_layout: Compute page and field positions without rendering
//   - extract_palette: Extract dominant colors and the resulting theme from an image
//   - inspect_form_pdf: Parse a generated PDF and report its field registry
//
// # Available Resources
//
//   - formpdf://field-types : Supported field types and their widgets
//   - formpdf://page-sizes : Page size presets in points
//   - formpdf://default-theme : The fallback theme as hex colors
package main

import (
	"fmt"
	"os"

	"github.com/scottcrawfordcoach/pdf-creator/mcp"
)

func main() {
	server := mcp.NewServer()

	mcp.RegisterDefaultTools(server)
	mcp.RegisterDefaultResources(server)

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "formpdf-mcp: %v\n", err)
		os.Exit(1)
	}
}
