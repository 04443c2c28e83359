package layout

import (
	"strconv"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
)

// IsCard returns if the node is a rendered card.
func IsCard(node *dom.Node) bool {
	return node.HasAttr(core.AttrProcessed) && node.HasAttr(core.AttrAnchorID)
}

// Runs groups the adjacent cards among the children of the parent.
// Hidden nodes (ex: suppressed duplicates) do not break a run.
func Runs(parent *dom.Node) [][]*dom.Node {
	var runs [][]*dom.Node
	var current []*dom.Node
	for _, child := range parent.Children() {
		if IsCard(child) {
			current = append(current, child)
			continue
		}
		if child.Hidden() {
			continue
		}
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}

// ApplyRuns annotates every card of the container with its run.
// It returns the number of runs.
func ApplyRuns(container *dom.Node) int {
	ClearRuns(container)
	count := 0
	for _, parent := range cardParents(container) {
		for _, run := range Runs(parent) {
			count++
			for i, card := range run {
				card.SetAttr(core.AttrRun, strconv.Itoa(count))
				card.SetAttr(core.AttrRunIndex, strconv.Itoa(i))
				card.SetAttr(core.AttrRunSize, strconv.Itoa(len(run)))
			}
		}
	}
	return count
}

// ClearRuns removes the run attributes of every card of the container.
func ClearRuns(container *dom.Node) {
	for _, node := range container.FindAll(dom.HasAttrName(core.AttrRun)) {
		node.RemoveAttr(core.AttrRun)
		node.RemoveAttr(core.AttrRunIndex)
		node.RemoveAttr(core.AttrRunSize)
	}
}

// cardParents returns the distinct parents of the cards in document order.
func cardParents(container *dom.Node) []*dom.Node {
	var parents []*dom.Node
	seen := make(map[*dom.Node]bool)
	for _, card := range container.FindAll(IsCard) {
		parent := card.Parent()
		if parent == nil || seen[parent] {
			continue
		}
		seen[parent] = true
		parents = append(parents, parent)
	}
	return parents
}
