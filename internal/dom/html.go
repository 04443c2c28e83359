package dom

import (
	"fmt"
	"html"
	"strings"
)

// OuterHTML returns a pseudo-HTML representation of the node, mainly used for debugging and tests.
// Attributes are sorted to get a stable output.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

// InnerHTML is similar to OuterHTML but for the children only.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for _, child := range n.children {
		child.writeHTML(&sb)
	}
	return sb.String()
}

func (n *Node) writeHTML(sb *strings.Builder) {
	switch n.Kind {
	case KindText:
		sb.WriteString(html.EscapeString(n.Text))
		return
	case KindHTML:
		sb.WriteString(n.Text)
		return
	}
	sb.WriteString("<")
	sb.WriteString(string(n.Kind))
	for _, name := range n.AttrNames() {
		fmt.Fprintf(sb, " %s=%q", name, n.attrs[name])
	}
	sb.WriteString(">")
	for _, child := range n.children {
		child.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(string(n.Kind))
	sb.WriteString(">")
}
