// Package extract implements the Extractor interface.
// It trims pasted or fetched HTML down to the fragment worth converting:
//  1. Cutting a Windows clipboard (CF_HTML) payload down to its fragment
//  2. Removing elements that contribute no text (scripts, embeds, forms, ...)
//  3. In reader mode, dropping page chrome and keeping <main>, <article> or <body>
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CF_HTML fragment markers written by browsers and Office on Windows.
const (
	startFragment = "<!--StartFragment-->"
	endFragment   = "<!--EndFragment-->"
)

// noiseSelectors are removed from every input.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"meta", "link", "title",
	"iframe", "object", "embed",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
}

// readerSelectors are additionally removed in reader mode.
var readerSelectors = []string{
	"nav", "header", "footer", "aside",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// HTMLExtractor strips noise from HTML and returns the fragment to convert.
type HTMLExtractor struct {
	// ReaderMode treats the input as a full page and keeps only its main content.
	ReaderMode bool
}

// New creates an HTMLExtractor.
func New(readerMode bool) *HTMLExtractor {
	return &HTMLExtractor{ReaderMode: readerMode}
}

// Extract takes pasted or fetched HTML and returns a cleaned HTML fragment.
// An input without any body content yields "".
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clipboardFragment(html)))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	unwrapOfficeParagraphs(doc)

	content := doc.Find("body").First()
	if e.ReaderMode {
		for _, sel := range readerSelectors {
			doc.Find(sel).Remove()
		}
		// <main> is the most semantically correct, then <article>, then <body>.
		for _, tag := range []string{"main", "article", "body"} {
			if sel := doc.Find(tag); sel.Length() > 0 {
				content = sel.First()
				break
			}
		}
	}

	if content.Length() == 0 {
		return "", nil
	}

	result, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// clipboardFragment returns the markup between the CF_HTML fragment markers,
// or html unchanged when they are missing.
func clipboardFragment(html string) string {
	start := strings.Index(html, startFragment)
	if start == -1 {
		return html
	}
	start += len(startFragment)

	end := strings.LastIndex(html, endFragment)
	if end < start {
		return html
	}
	return html[start:end]
}

// unwrapOfficeParagraphs replaces Word's <o:p> elements with their contents.
func unwrapOfficeParagraphs(doc *goquery.Document) {
	doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "o:p"
	}).Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithSelection(s.Contents())
	})
}

// Title returns the trimmed text of the document's <title>, or "".
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
