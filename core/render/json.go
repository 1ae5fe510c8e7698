// JSON renderer.
// Builds the structured JSON output from Markdown and document metadata.
// Parses the Markdown to extract structural information (headings, links,
// autolinks, code blocks, list items) without interpreting the content.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/clipmark/core"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts Markdown and metadata into a core.DocumentJSON.
func (r *JSONRenderer) Render(markdown string, meta core.Metadata) ([]byte, error) {
	blocks := scanBlocks(markdown)

	doc := core.DocumentJSON{
		Metadata: meta,
		Content: core.DocumentContent{
			Markdown: markdown,
			Text:     plainText(blocks),
		},
		Structure: core.DocumentStructure{
			Headings:  []core.Heading{},
			Links:     []core.Link{},
			Autolinks: []string{},
		},
	}

	for _, b := range blocks {
		switch b.kind {
		case blockHeading:
			doc.Structure.Headings = append(doc.Structure.Headings, core.Heading{
				Level: b.level,
				Text:  plainInline(b.text),
			})
		case blockCode:
			doc.Structure.CodeBlocks++
			continue
		case blockListItem:
			doc.Structure.ListItems++
		}
		doc.Structure.Links = append(doc.Structure.Links, extractLinks(b.text)...)
		doc.Structure.Autolinks = append(doc.Structure.Autolinks, extractAutolinks(b.text)...)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// ContentType returns the MIME type for JSON output.
func (r *JSONRenderer) ContentType() string {
	return "application/json; charset=utf-8"
}

func extractLinks(s string) []core.Link {
	matches := inlineLink.FindAllStringSubmatch(s, -1)
	links := make([]core.Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, core.Link{
			Text:  m[1],
			Href:  m[2],
			Title: m[3],
		})
	}
	return links
}

func extractAutolinks(s string) []string {
	matches := autolink.FindAllStringSubmatch(s, -1)
	hrefs := make([]string, 0, len(matches))
	for _, m := range matches {
		hrefs = append(hrefs, m[1])
	}
	return hrefs
}

// plainText renders the blocks as unformatted text, one block per line and
// at most one blank line between paragraphs.
func plainText(blocks []block) string {
	var lines []string
	blank := false
	for _, b := range blocks {
		switch b.kind {
		case blockBlank, blockRule:
			blank = true
			continue
		case blockCode:
			if blank && len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, b.text)
			blank = true
			continue
		}
		if blank && len(lines) > 0 {
			lines = append(lines, "")
		}
		blank = b.kind == blockHeading
		lines = append(lines, plainInline(b.text))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
