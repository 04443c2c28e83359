package host

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
	"github.com/julien-sobczak/sprout/internal/layout"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	codeStyle    = lipgloss.NewStyle().PaddingLeft(4)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 1)
)

// View prints the tree in a terminal. Adjacent cards are laid out in columns.
type View struct {
	Columns int
	Width   int
}

func NewView(columns, width int) *View {
	return &View{
		Columns: columns,
		Width:   width,
	}
}

// Render returns the visible content of the tree.
func (v *View) Render(root *dom.Node) string {
	return strings.Join(v.blocks(root), "\n\n")
}

func (v *View) blocks(node *dom.Node) []string {
	var result []string
	var run []*dom.Node
	flush := func() {
		if len(run) > 0 {
			result = append(result, v.renderRun(run))
			run = nil
		}
	}

	for _, child := range node.Children() {
		if layout.IsCard(child) {
			run = append(run, child)
			continue
		}
		if child.Hidden() {
			continue
		}
		flush()
		switch child.Kind {
		case dom.KindSection, dom.KindQuote, dom.KindList, dom.KindListItem:
			result = append(result, v.blocks(child)...)
		case dom.KindHeading:
			result = append(result, headingStyle.Render(child.TextContent()))
		case dom.KindCode:
			result = append(result, codeStyle.Render(child.TextContent()))
		case dom.KindRule:
			result = append(result, strings.Repeat("─", max(v.Width, 1)))
		default:
			if content := strings.TrimSpace(child.TextContent()); content != "" {
				result = append(result, content)
			}
		}
	}
	flush()
	return result
}

// renderRun places every card in the shortest column.
func (v *View) renderRun(run []*dom.Node) string {
	columns := max(v.Columns, 1)
	width := max(v.Width/columns-2, 10)

	boxes := make([][]string, columns)
	heights := make([]int, columns)
	for _, card := range run {
		column := 0
		for i, height := range heights {
			if height < heights[column] {
				column = i
			}
		}
		boxes[column] = append(boxes[column], v.renderCard(card, width))
		heights[column] += layout.CardHeight(card)
	}

	var rendered []string
	for _, column := range boxes {
		if len(column) > 0 {
			rendered = append(rendered, lipgloss.JoinVertical(lipgloss.Left, column...))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (v *View) renderCard(card *dom.Node, width int) string {
	var lines []string
	for _, section := range card.Children() {
		if section.Hidden() {
			continue
		}
		kind := section.GetAttr(core.AttrSection)
		if kind == "title" {
			lines = append(lines, titleStyle.Render(section.TextContent()))
			continue
		}
		label := section.GetAttr("aria-label")
		if section.GetAttr(core.AttrCollapsed) == "true" {
			lines = append(lines, labelStyle.Render("▸ "+label))
			continue
		}
		if kind != string(core.SectionQuestion) {
			lines = append(lines, labelStyle.Render("▾ "+label))
		}
		lines = append(lines, sectionText(section))
	}
	return cardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func sectionText(section *dom.Node) string {
	list := section.FindFirst(dom.IsKind(dom.KindList))
	if list == nil {
		return strings.TrimSpace(section.TextContent())
	}
	var items []string
	for _, item := range list.Children() {
		marker := "•"
		if item.HasAttr("data-sprout-correct") {
			marker = "✓"
		}
		items = append(items, marker+" "+strings.TrimSpace(item.TextContent()))
	}
	return strings.Join(items, "\n")
}
