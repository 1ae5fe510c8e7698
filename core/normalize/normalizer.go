// Package normalize implements the Normalizer interface.
// It converts pasted HTML into Pandoc-flavoured Markdown: the rule table in
// core/rules drives html-to-markdown's tree walker, and the result goes
// through the smart punctuation pass.
package normalize

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/gaurav-prasanna/clipmark/core/rules"
	"github.com/gaurav-prasanna/clipmark/core/smartpunct"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown with
// the Pandoc rule table registered in front of the commonmark rules.
// A MarkdownNormalizer is safe for concurrent use.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer for the given rule table.
func New(ruleTable rules.Table) *MarkdownNormalizer {
	conv := converter.NewConverter(
		converter.WithEscapeMode(converter.EscapeModeDisabled),
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithListEndComment(false),
				commonmark.WithLinkEmptyHrefBehavior(commonmark.LinkBehaviorSkip),
			),
			table.NewTablePlugin(),
			strikethrough.NewStrikethroughPlugin(),
			rules.NewPlugin(ruleTable),
		),
	)
	return &MarkdownNormalizer{conv: conv}
}

// Normalize converts an HTML fragment into normalized Markdown.
// The only errors come from a misconfigured converter.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return smartpunct.Normalize(markdown), nil
}

var defaultNormalizer = New(rules.Pandoc)

// Default returns the shared normalizer for the Pandoc rule table.
func Default() *MarkdownNormalizer {
	return defaultNormalizer
}

// Convert turns an HTML fragment into normalized Markdown with the Pandoc
// rule table. It never fails: input the converter rejects yields "".
func Convert(html string) string {
	markdown, err := defaultNormalizer.Normalize(html)
	if err != nil {
		return ""
	}
	return markdown
}
