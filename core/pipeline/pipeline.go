// Package pipeline runs one conversion: extract → normalize → render.
// The CLI and the HTTP service share it so both produce identical output.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/clipmark/core"
	"github.com/gaurav-prasanna/clipmark/core/extract"
	"github.com/gaurav-prasanna/clipmark/core/normalize"
	"github.com/gaurav-prasanna/clipmark/core/output"
)

// Pipeline holds the extract and normalize stages.
type Pipeline struct {
	Extractor  core.Extractor
	Normalizer core.Normalizer
	now        func() time.Time
}

// New creates a Pipeline using the pandoc-style normalizer.
func New(readerMode bool) *Pipeline {
	return &Pipeline{
		Extractor:  extract.New(readerMode),
		Normalizer: normalize.Default(),
		now:        time.Now,
	}
}

// Result is the outcome of one conversion.
type Result struct {
	Markdown string
	Data     []byte
	Meta     core.Metadata
}

// Run converts html from source (a path, URL, "stdin" or "paste") and
// renders it with r.
func (p *Pipeline) Run(source, html string, r core.Renderer) (*Result, error) {
	fragment, err := p.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	markdown, err := p.Normalizer.Normalize(fragment)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	meta := p.metadata(source, html, markdown)

	data, err := r.Render(markdown, meta)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &Result{Markdown: markdown, Data: data, Meta: meta}, nil
}

// metadata names the document after its <title>, falling back to the
// first line of the Markdown.
func (p *Pipeline) metadata(source, html, markdown string) core.Metadata {
	title := extract.Title(html)
	if title == "" {
		first, _, _ := strings.Cut(strings.TrimSpace(markdown), "\n")
		title = strings.TrimSpace(strings.Trim(first, "#=-*> \t"))
	}

	return core.Metadata{
		Source:      source,
		Title:       title,
		Filename:    output.Filename(markdown),
		ConvertedAt: p.now().UTC().Format(time.RFC3339),
	}
}
