package host

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
	"github.com/julien-sobczak/sprout/pkg/markdown"
)

// BuildNodes converts a block into nodes. Like a real renderer,
// the conversion loses the Markdown decoration (emphasis, escapes, etc.).
func BuildNodes(block Block) []*dom.Node {
	if block.IsMath() {
		tex := strings.TrimSpace(block.Source)
		tex = strings.TrimSpace(tex[2 : len(tex)-2])
		return []*dom.Node{mathNode(tex, true)}
	}

	// A new parser is required for every document
	p := parser.NewWithExtensions(markdown.Extensions)
	document := p.Parse([]byte(block.Source))

	var nodes []*dom.Node
	for _, child := range document.GetChildren() {
		if node := convertBlock(child); node != nil {
			nodes = append(nodes, node)
		}
	}
	if len(nodes) == 0 {
		// Ex: a link reference definition
		nodes = append(nodes, dom.NewNode(dom.KindParagraph, dom.NewText(block.Source)))
	}
	return nodes
}

func convertBlock(node ast.Node) *dom.Node {
	switch n := node.(type) {
	case *ast.Heading:
		return convertInlines(dom.NewNode(dom.KindHeading), n)
	case *ast.Paragraph:
		return convertInlines(dom.NewNode(dom.KindParagraph), n)
	case *ast.BlockQuote:
		return convertChildren(dom.NewNode(dom.KindQuote), n)
	case *ast.List:
		return convertChildren(dom.NewNode(dom.KindList), n)
	case *ast.ListItem:
		return convertChildren(dom.NewNode(dom.KindListItem), n)
	case *ast.CodeBlock:
		return dom.NewNode(dom.KindCode, dom.NewText(strings.TrimSuffix(string(n.Literal), "\n")))
	case *ast.HTMLBlock:
		return dom.NewHTML(string(n.Literal))
	case *ast.HorizontalRule:
		return dom.NewNode(dom.KindRule)
	case *ast.MathBlock:
		return mathNode(strings.TrimSpace(string(n.Literal)), true)
	}
	// Unsupported blocks are displayed as text
	var sb strings.Builder
	collectText(node, &sb)
	if sb.Len() == 0 {
		return nil
	}
	return dom.NewNode(dom.KindParagraph, dom.NewText(sb.String()))
}

func convertChildren(parent *dom.Node, node ast.Node) *dom.Node {
	for _, child := range node.GetChildren() {
		if converted := convertBlock(child); converted != nil {
			parent.AppendChild(converted)
		}
	}
	return parent
}

// convertInlines appends the text of the inline nodes, keeping formulas as math nodes.
func convertInlines(parent *dom.Node, node ast.Node) *dom.Node {
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			parent.AppendChild(dom.NewText(sb.String()))
			sb.Reset()
		}
	}

	var walk func(node ast.Node)
	walk = func(node ast.Node) {
		switch n := node.(type) {
		case *ast.Math:
			flush()
			parent.AppendChild(mathNode(string(n.Literal), false))
			return
		case *ast.Softbreak, *ast.Hardbreak:
			sb.WriteString("\n")
			return
		case *ast.Text:
			sb.Write(n.Literal)
		case *ast.Code:
			sb.Write(n.Literal)
		case *ast.HTMLSpan:
			sb.Write(n.Literal)
		}
		for _, child := range node.GetChildren() {
			walk(child)
		}
	}
	for _, child := range node.GetChildren() {
		walk(child)
	}
	flush()
	return parent
}

func collectText(node ast.Node, sb *strings.Builder) {
	if leaf := node.AsLeaf(); leaf != nil {
		sb.Write(leaf.Literal)
	}
	for _, child := range node.GetChildren() {
		collectText(child, sb)
	}
}

var texReplacer = strings.NewReplacer(
	`\alpha`, "α", `\beta`, "β", `\gamma`, "γ", `\delta`, "δ", `\epsilon`, "ε",
	`\theta`, "θ", `\lambda`, "λ", `\mu`, "μ", `\pi`, "π", `\sigma`, "σ",
	`\phi`, "φ", `\omega`, "ω", `\Delta`, "Δ", `\Sigma`, "Σ", `\Omega`, "Ω",
	`\infty`, "∞", `\times`, "×", `\cdot`, "·", `\leq`, "≤", `\geq`, "≥",
	`\neq`, "≠", `\sum`, "∑", `\int`, "∫", `\sqrt`, "√", `\to`, "→",
	`\left`, "", `\right`, "",
	"{", "", "}", "", "^", "", "_", "",
)

// RenderTeX returns a plain approximation of a formula, like the visible text of a rendered equation.
func RenderTeX(tex string) string {
	return strings.TrimSpace(texReplacer.Replace(tex))
}

// mathNode creates a formula node. The TeX source is kept in an annotation.
func mathNode(tex string, display bool) *dom.Node {
	node := dom.NewNode(dom.KindMath,
		dom.NewText(RenderTeX(tex)),
		dom.NewNode(dom.KindAnnotation, dom.NewText(tex)),
	)
	if display {
		node.SetAttr(core.AttrDisplay, "block")
	}
	return node
}
