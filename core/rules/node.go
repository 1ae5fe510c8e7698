package rules

import (
	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// Node is a read-only view of an element in the parsed document.
// Rules inspect it but never mutate the tree behind it.
type Node struct {
	n *html.Node
}

// NewNode wraps an *html.Node.
func NewNode(n *html.Node) Node {
	return Node{n: n}
}

// Tag returns the lower-case tag name ("#text" for text nodes).
func (n Node) Tag() string {
	if n.n == nil {
		return ""
	}
	return dom.NodeName(n.n)
}

// Attr returns the attribute value, or "" when it is absent.
func (n Node) Attr(key string) string {
	if n.n == nil {
		return ""
	}
	return dom.GetAttributeOr(n.n, key, "")
}

// Parent returns the parent node. ok is false at the root.
func (n Node) Parent() (parent Node, ok bool) {
	if n.n == nil || n.n.Parent == nil {
		return Node{}, false
	}
	return Node{n: n.n.Parent}, true
}

// HasSiblings reports whether the node has any previous or next sibling,
// text nodes included.
func (n Node) HasSiblings() bool {
	if n.n == nil {
		return false
	}
	return n.n.PrevSibling != nil || n.n.NextSibling != nil
}

// Index returns the 1-based position of the node among its parent's
// element children, or 0 when it has no parent.
func (n Node) Index() int {
	if n.n == nil || n.n.Parent == nil {
		return 0
	}
	for i, child := range dom.AllChildElements(n.n.Parent) {
		if child == n.n {
			return i + 1
		}
	}
	return 0
}
