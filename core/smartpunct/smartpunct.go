// Package smartpunct canonicalizes typographic punctuation and whitespace in
// converted Markdown, following Pandoc's smart punctuation rules.
// http://pandoc.org/README.html#smart-punctuation
//
// The passes run in a fixed order and each one assumes the previous ones
// have already been applied.
package smartpunct

import "regexp"

// space is the whitespace class browsers use, which includes NBSP and the
// Unicode space separators that show up in pasted content.
const space = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// Pass is a single substitution.
type Pass struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// Apply runs the pass over s.
func (p Pass) Apply(s string) string {
	return p.Pattern.ReplaceAllLiteralString(s, p.Replace)
}

func pass(name, pattern, replace string) Pass {
	return Pass{Name: name, Pattern: regexp.MustCompile(pattern), Replace: replace}
}

// Passes lists the substitutions in the order they are applied.
var Passes = []Pass{
	pass("single quotes", `[\x{2018}\x{2019}\x{00b4}]`, "'"),
	pass("double quotes", `[\x{201c}\x{201d}\x{2033}]`, `"`),
	pass("hyphens", `[\x{2212}\x{2022}\x{00b7}\x{25aa}]`, "-"),
	pass("en dashes", `[\x{2013}\x{2015}]`, "--"),
	pass("em dashes", `\x{2014}`, "---"),
	pass("ellipses", `\x{2026}`, "..."),
	pass("spaces before newline", `[ ]+\n`, "\n"),
	pass("space before hard break", `[`+space+`]*\\\n`, "\\\n"),
	pass("double hard break", `[`+space+`]*\\\n[`+space+`]*\\\n`, "\n\n"),
	pass("hard break before blank line", `[`+space+`]*\\\n\n`, "\n\n"),
	pass("lone hyphen line", `\n-\n`, "\n"),
	pass("hard break after blank line", `\n\n[`+space+`]*\\\n`, "\n\n"),
	pass("blank lines", `\n\n\n*`, "\n\n"),
	pass("trailing spaces", `(?m)[ ]+$`, ""),
	pass("document edges", `^[`+space+`]+|[`+space+`\\]+$`, ""),
}

// Normalize applies every pass to s, once, in order.
func Normalize(s string) string {
	for _, p := range Passes {
		s = p.Apply(s)
	}
	return s
}
