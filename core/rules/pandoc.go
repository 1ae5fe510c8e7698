package rules

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/marker"
	"golang.org/x/text/unicode/norm"
)

// listIndent is the column list item continuations are indented to.
const listIndent = "    "

// codeBlockNewline is the placeholder the commonmark plugin writes for
// newlines inside fenced code. It becomes "\n" after rendering, so list items
// have to indent it like a real newline.
var codeBlockNewline = string(marker.BytesMarkerCodeBlockNewline)

// Pandoc is the rule table for Pandoc's Markdown dialect.
// http://pandoc.org/README.html#pandocs-markdown
var Pandoc = Table{
	{
		Name:   "heading1",
		Tags:   []string{"h1"},
		Render: func(content string, _ Node) string { return setextHeading(content, "=") },
	},
	{
		Name:   "heading2",
		Tags:   []string{"h2"},
		Render: func(content string, _ Node) string { return setextHeading(content, "-") },
	},
	{
		Name:   "superscript",
		Tags:   []string{"sup"},
		Render: func(content string, _ Node) string { return "^" + content + "^" },
	},
	{
		Name:   "subscript",
		Tags:   []string{"sub"},
		Render: func(content string, _ Node) string { return "~" + content + "~" },
	},
	{
		Name:   "hardbreak",
		Tags:   []string{"br"},
		Render: func(string, Node) string { return "\\\n" },
	},
	{
		Name:   "rule",
		Tags:   []string{"hr"},
		Render: func(string, Node) string { return "\n\n* * * * *\n\n" },
	},
	{
		Name:   "emphasis",
		Tags:   []string{"em", "i", "cite", "var"},
		Render: func(content string, _ Node) string { return "*" + content + "*" },
	},
	{
		Name:   "code",
		Tags:   []string{"code", "kbd", "samp", "tt"},
		Match:  func(n Node) bool { return !isCodeBlock(n) },
		Raw:    true,
		Render: func(content string, _ Node) string { return "`" + content + "`" },
	},
	{
		Name:   "link",
		Tags:   []string{"a"},
		Match:  func(n Node) bool { return n.Attr("href") != "" },
		Render: renderLink,
	},
	{
		Name:   "listitem",
		Tags:   []string{"li"},
		Render: renderListItem,
	},
}

// setextHeading frames content with blank lines and underlines it with one
// underline character per character of content.
func setextHeading(content, underline string) string {
	width := utf8.RuneCountInString(norm.NFC.String(content))
	return "\n\n" + content + "\n" + strings.Repeat(underline, width) + "\n\n"
}

// isCodeBlock reports whether n is the only child of a <pre>, which the
// walker renders as a fenced block.
func isCodeBlock(n Node) bool {
	parent, ok := n.Parent()
	return ok && parent.Tag() == "pre" && !n.HasSiblings()
}

func renderLink(content string, n Node) string {
	href := n.Attr("href")
	switch {
	case content == href:
		return "<" + href + ">"
	case href == "mailto:"+content:
		return "<" + content + ">"
	}

	var title string
	if t := n.Attr("title"); t != "" {
		title = ` "` + t + `"`
	}
	return "[" + content + "](" + href + title + ")"
}

func renderListItem(content string, n Node) string {
	content = strings.TrimSpace(content)
	content = strings.ReplaceAll(content, "\n", "\n"+listIndent)
	content = strings.ReplaceAll(content, codeBlockNewline, codeBlockNewline+listIndent)

	return listItemPrefix(n) + content
}

// listItemPrefix returns "-   " for bullet items and "N. " padded to the
// list indent for ordered items.
func listItemPrefix(n Node) string {
	parent, ok := n.Parent()
	if !ok || parent.Tag() != "ol" {
		return "-   "
	}

	prefix := strconv.Itoa(n.Index()) + ". "
	if len(prefix) < len(listIndent) {
		prefix += strings.Repeat(" ", len(listIndent)-len(prefix))
	}
	return prefix
}
