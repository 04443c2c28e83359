package layout

import (
	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
	"github.com/julien-sobczak/sprout/pkg/text"
)

// FlowMeasurer computes positions without a real layout engine.
// Blocks are stacked vertically. Cards of the same run are distributed in
// columns, each card going to the shortest column (masonry).
// Heights are expressed in lines.
type FlowMeasurer struct {
	Columns     int
	ColumnWidth int
	Gap         int
}

func NewFlowMeasurer(columns int) *FlowMeasurer {
	return &FlowMeasurer{
		Columns:     columns,
		ColumnWidth: 40,
		Gap:         1,
	}
}

// SetColumns changes the number of columns used for the next measures.
func (m *FlowMeasurer) SetColumns(columns int) {
	m.Columns = columns
}

func (m *FlowMeasurer) Measure(scope *dom.Node) PositionMap {
	positions := make(PositionMap)
	m.layout(scope, 0, positions)
	return positions
}

// layout places the children of the node starting at y and returns the next free y.
func (m *FlowMeasurer) layout(node *dom.Node, y int, positions PositionMap) int {
	var run []*dom.Node
	flush := func() {
		if len(run) > 0 {
			y = m.layoutRun(run, y, positions)
			run = nil
		}
	}

	for _, child := range node.Children() {
		if IsCard(child) {
			run = append(run, child)
			continue
		}
		if child.Hidden() {
			continue
		}
		flush()
		switch child.Kind {
		case dom.KindSection, dom.KindQuote, dom.KindList, dom.KindListItem:
			y = m.layout(child, y, positions)
		default:
			y += blockHeight(child) + m.Gap
		}
	}
	flush()
	return y
}

func (m *FlowMeasurer) layoutRun(run []*dom.Node, y int, positions PositionMap) int {
	columns := m.Columns
	if columns < 1 {
		columns = 1
	}
	heights := make([]int, columns)
	for _, card := range run {
		column := 0
		for i, height := range heights {
			if height < heights[column] {
				column = i
			}
		}
		height := CardHeight(card)
		positions[card.GetAttr(core.AttrAnchorID)] = Rect{
			X:      column * (m.ColumnWidth + m.Gap),
			Y:      y + heights[column],
			Width:  m.ColumnWidth,
			Height: height,
		}
		heights[column] += height + m.Gap
	}
	highest := 0
	for _, height := range heights {
		highest = max(highest, height)
	}
	return y + highest
}

// CardHeight returns the number of lines of a rendered card, borders included.
// Collapsed sections only display their label.
func CardHeight(card *dom.Node) int {
	height := 2
	for _, child := range card.Children() {
		if child.Hidden() {
			continue
		}
		if child.GetAttr(core.AttrCollapsed) == "true" {
			height++
			continue
		}
		height += blockHeight(child)
	}
	return height
}

func blockHeight(node *dom.Node) int {
	return max(1, text.CountLines(node.TextContent()))
}
