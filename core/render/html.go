// HTML renderer.
// Produces a standalone preview document of the converted Markdown using
// goldmark with GitHub-Flavored Markdown enabled.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/gaurav-prasanna/clipmark/core"
)

// preview is reused across calls. Raw HTML in the Markdown is not passed
// through, so a pasted <script> cannot reach the preview page.
var preview = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

var previewPage = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}</body>
</html>
`))

// HTMLRenderer renders Markdown as an HTML preview document.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render converts Markdown into a complete HTML document titled after meta.
func (r *HTMLRenderer) Render(markdown string, meta core.Metadata) ([]byte, error) {
	body, err := ToHTML(markdown)
	if err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = "clipmark"
	}

	var buf bytes.Buffer
	err = previewPage.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body)})
	if err != nil {
		return nil, fmt.Errorf("executing preview template: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

// ContentType returns the MIME type for HTML output.
func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// ToHTML converts Markdown into an HTML fragment.
func ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := preview.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
