// Package render provides output renderers for the clipmark pipeline.
// This file implements the Markdown renderer, which is a simple passthrough.
package render

import (
	"fmt"

	"github.com/gaurav-prasanna/clipmark/core"
)

// MarkdownRenderer writes Markdown as-is. It's the simplest renderer
// since Markdown is already the canonical pipeline format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes (passthrough).
func (r *MarkdownRenderer) Render(markdown string, meta core.Metadata) ([]byte, error) {
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ContentType returns the MIME type for Markdown output.
func (r *MarkdownRenderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// ForFormat returns the renderer for a format name: "markdown", "json",
// "html" or "pdf".
func ForFormat(format string) (core.Renderer, error) {
	switch format {
	case "", "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "html":
		return NewHTMLRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
