package rules

import (
	"bytes"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Plugin registers a Table with an html-to-markdown converter. Its renderers
// run before the commonmark plugin so the table always gets the first say.
type Plugin struct {
	table Table
}

// NewPlugin creates a Plugin for the given table.
func NewPlugin(table Table) *Plugin {
	return &Plugin{table: table}
}

// Name implements converter.Plugin.
func (p *Plugin) Name() string {
	return "pandoc"
}

// Init implements converter.Plugin.
func (p *Plugin) Init(conv *converter.Converter) error {
	conv.Register.PreRenderer(keepEmptyCode, converter.PriorityEarly)
	conv.Register.TextTransformer(unescapeAngles, converter.PriorityLate)
	conv.Register.Renderer(p.renderList, converter.PriorityEarly)
	conv.Register.Renderer(p.renderEmptyStrong, converter.PriorityEarly)
	conv.Register.Renderer(p.renderRule, converter.PriorityEarly)
	return nil
}

// angleEntities undoes the base plugin's escaping of < and > in text, so
// "1 &lt; 2" reads "1 < 2" in the Markdown.
var angleEntities = strings.NewReplacer("&lt;", "<", "&gt;", ">")

func unescapeAngles(_ converter.Context, content string) string {
	return angleEntities.Replace(content)
}

// keepEmptyCode renames empty inline <code> to <kbd>. The commonmark plugin
// removes empty <code> before rendering, and the code rule treats both tags
// alike, so the empty delimiter pair survives.
func keepEmptyCode(_ converter.Context, doc *html.Node) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if n.Type == html.ElementNode && n.Data == "code" && dom.CollectText(n) == "" && !isCodeBlock(NewNode(n)) {
			n.Data = "kbd"
			n.DataAtom = atom.Kbd
		}
	}
	walk(doc)
}

// renderEmptyStrong writes the delimiter pair for bold without content,
// which the commonmark plugin would drop.
func (p *Plugin) renderEmptyStrong(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	name := dom.NodeName(n)
	if (name != "b" && name != "strong") || n.FirstChild != nil {
		return converter.RenderTryNext
	}
	w.WriteString("****")
	return converter.RenderSuccess
}

func (p *Plugin) renderRule(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if n.Type != html.ElementNode {
		return converter.RenderTryNext
	}

	node := NewNode(n)
	rule, ok := p.table.Lookup(node)
	if !ok {
		return converter.RenderTryNext
	}

	if rule.Raw {
		w.WriteString(rule.Render(dom.CollectText(n), node))
		return converter.RenderSuccess
	}

	var buf bytes.Buffer
	ctx.RenderChildNodes(ctx, &buf, n)
	w.WriteString(rule.Render(buf.String(), node))

	return converter.RenderSuccess
}

// renderList renders <ul> and <ol>. The commonmark plugin would prefix the
// items itself, so the list container has to be taken over for the list item
// rule to decide the markers.
func (p *Plugin) renderList(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	name := dom.NodeName(n)
	if name != "ul" && name != "ol" {
		return converter.RenderTryNext
	}

	var items []string
	for _, child := range dom.AllChildNodes(n) {
		var buf bytes.Buffer
		ctx.RenderNodes(ctx, &buf, child)

		item := strings.TrimSpace(buf.String())
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	body := strings.Join(items, "\n")
	if n.Parent != nil && dom.NodeName(n.Parent) == "li" {
		w.WriteString("\n" + body)
		return converter.RenderSuccess
	}

	w.WriteString("\n\n" + body + "\n\n")
	return converter.RenderSuccess
}
