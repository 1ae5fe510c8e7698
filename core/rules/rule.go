// Package rules holds the Pandoc-flavoured rendering rules clipmark hands
// to the html-to-markdown tree walker.
//
// A Rule receives the already-converted Markdown of a node's children and
// returns the Markdown for the node itself. Rules are evaluated in order and
// the first match wins; nodes no rule matches fall through to the walker's
// commonmark rendering.
package rules

import "slices"

// Rule maps one kind of element to Markdown.
type Rule struct {
	Name string

	// Tags restricts the rule to these tag names. Empty means any tag.
	Tags []string

	// Match is an optional extra predicate evaluated after Tags.
	Match func(n Node) bool

	// Raw rules receive the node's text as written instead of its
	// converted children, so nothing inside is escaped or formatted.
	Raw bool

	// Render builds the Markdown for the node from its children's content.
	Render func(content string, n Node) string
}

// Matches reports whether the rule applies to n.
func (r Rule) Matches(n Node) bool {
	if len(r.Tags) > 0 && !slices.Contains(r.Tags, n.Tag()) {
		return false
	}
	if r.Match != nil && !r.Match(n) {
		return false
	}
	return true
}

// Table is an ordered rule list. It is never modified after construction
// and can be shared between goroutines.
type Table []Rule

// Lookup returns the first rule matching n.
func (t Table) Lookup(n Node) (Rule, bool) {
	for _, r := range t {
		if r.Matches(n) {
			return r, true
		}
	}
	return Rule{}, false
}

// Render applies the first matching rule. ok is false when no rule matches
// and the caller should use its default rendering.
func (t Table) Render(content string, n Node) (out string, ok bool) {
	r, ok := t.Lookup(n)
	if !ok {
		return "", false
	}
	return r.Render(content, n), true
}
