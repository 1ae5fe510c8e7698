// Package core defines the pipeline interfaces for clipmark.
// A conversion runs extract → normalize → render; input can come from a
// file, stdin, an HTTP request body or a fetched URL.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Metadata describes where a converted document came from.
type Metadata struct {
	Source      string `json:"source"` // file path, URL, "stdin" or "paste"
	Title       string `json:"title"`
	Filename    string `json:"filename"`
	ConvertedAt string `json:"converted_at"` // RFC3339
}

// Heading is a heading found in the converted Markdown.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is a hyperlink found in the converted Markdown.
type Link struct {
	Text  string `json:"text"`
	Href  string `json:"href"`
	Title string `json:"title,omitempty"`
}

// DocumentContent holds the Markdown and its plain-text rendition.
type DocumentContent struct {
	Markdown string `json:"markdown"`
	Text     string `json:"text"`
}

// DocumentStructure summarizes the structure of the Markdown.
type DocumentStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	Autolinks  []string  `json:"autolinks"`
	CodeBlocks int       `json:"code_blocks"`
	ListItems  int       `json:"list_items"`
}

// DocumentJSON is the complete JSON output for one conversion.
type DocumentJSON struct {
	Metadata  Metadata          `json:"metadata"`
	Content   DocumentContent   `json:"content"`
	Structure DocumentStructure `json:"structure"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor reduces pasted or fetched HTML to the fragment worth converting.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts an HTML fragment into normalized Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta Metadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
	// ContentType returns the MIME type served for this renderer.
	ContentType() string
}
