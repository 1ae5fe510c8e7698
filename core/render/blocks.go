package render

import (
	"regexp"
	"strings"
)

// blockKind classifies one line-level element of the produced Markdown.
type blockKind int

const (
	blockBlank blockKind = iota
	blockText
	blockHeading
	blockListItem
	blockCode
	blockRule
)

// block is a line-level element of Markdown. Code blocks carry every line
// between their fences in text.
type block struct {
	kind    blockKind
	level   int // heading level
	depth   int // list nesting, 0 for top level
	ordered bool
	marker  string // "•" or "N."
	text    string
}

var (
	atxHeading      = regexp.MustCompile(`^(#{1,6})[ \t]+(.*?)(?:[ \t]+#+)?[ \t]*$`)
	setextUnderline = regexp.MustCompile(`^(=+|-+)[ \t]*$`)
	bulletItem      = regexp.MustCompile(`^([ \t]*)[-*+][ \t]+(.*)$`)
	orderedItem     = regexp.MustCompile(`^([ \t]*)(\d{1,9})[.)][ \t]+(.*)$`)
	thematicBreak   = regexp.MustCompile(`^[ \t]*(?:(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	codeFence       = regexp.MustCompile("^[ \t]*(```+|~~~+)")
)

// scanBlocks splits Markdown into blocks, understanding both Setext
// headings (as produced by the pandoc rule table) and ATX headings.
func scanBlocks(md string) []block {
	lines := strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n")
	blocks := make([]block, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := codeFence.FindStringSubmatch(line); m != nil {
			fence := m[1]
			var code []string
			for i++; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), fence) {
					break
				}
				code = append(code, lines[i])
			}
			blocks = append(blocks, block{kind: blockCode, text: strings.Join(code, "\n")})
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blocks = append(blocks, block{kind: blockBlank})
			continue
		case thematicBreak.MatchString(line):
			blocks = append(blocks, block{kind: blockRule})
			continue
		}

		if m := atxHeading.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
			continue
		}

		if m := orderedItem.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, block{kind: blockListItem, depth: indentDepth(m[1]), ordered: true, marker: m[2] + ".", text: m[3]})
			continue
		}
		if m := bulletItem.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, block{kind: blockListItem, depth: indentDepth(m[1]), marker: "•", text: m[2]})
			continue
		}

		if i+1 < len(lines) && !isIndented(line) {
			if m := setextUnderline.FindStringSubmatch(lines[i+1]); m != nil {
				level := 2
				if m[1][0] == '=' {
					level = 1
				}
				blocks = append(blocks, block{kind: blockHeading, level: level, text: trimmed})
				i++
				continue
			}
		}

		if thematicDashes(trimmed) {
			blocks = append(blocks, block{kind: blockRule})
			continue
		}

		blocks = append(blocks, block{kind: blockText, depth: indentDepth(line[:len(line)-len(strings.TrimLeft(line, " \t"))]), text: trimmed})
	}
	return blocks
}

// indentDepth converts leading whitespace into a list nesting level,
// counting four columns per level.
func indentDepth(indent string) int {
	cols := 0
	for _, ch := range indent {
		if ch == '\t' {
			cols += 4
		} else {
			cols++
		}
	}
	return cols / 4
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

// thematicDashes reports whether s is a "---" style break not acting as a
// Setext underline.
func thematicDashes(s string) bool {
	s = strings.ReplaceAll(s, " ", "")
	return len(s) >= 3 && strings.Trim(s, "-") == ""
}

var (
	inlineLink   = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)(?:[ \t]+"([^"]*)")?\)`)
	autolink     = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9+.\-]{1,31}:[^<>\s]*)>`)
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	strongMarks  = regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)`)
	emphasisMark = regexp.MustCompile(`(^|[^\w*])\*([^*\s](?:[^*]*[^*\s])?)\*`)
	strikeMarks  = regexp.MustCompile(`~~(.+?)~~`)
)

// plainInline strips inline Markdown formatting, keeping the visible text.
func plainInline(s string) string {
	s = inlineLink.ReplaceAllString(s, "$1")
	s = autolink.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = strongMarks.ReplaceAllString(s, "$2")
	s = emphasisMark.ReplaceAllString(s, "$1$2")
	s = strikeMarks.ReplaceAllString(s, "$1")
	s = strings.TrimSuffix(s, "\\")
	return strings.TrimSpace(s)
}
