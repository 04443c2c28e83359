package engine

import (
	"context"
	"slices"
	"strings"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
	"github.com/julien-sobczak/sprout/internal/layout"
)

// State is the progress of a region of the tree.
type State string

const (
	StateUnseen     State = "unseen"
	StateDirty      State = "dirty"
	StateProcessing State = "processing"
	StateProcessed  State = "processed"
)

// State returns the state of a container or a card.
func (e *Engine) State(node *dom.Node) State {
	if node.HasAttr(core.AttrProcessed) {
		return StateProcessed
	}
	if state, ok := node.Attr(core.AttrState); ok {
		return State(state)
	}
	return StateUnseen
}

func setState(node *dom.Node, state State) {
	node.SetAttr(core.AttrState, string(state))
}

// isContainer returns if the node groups blocks.
func isContainer(node *dom.Node) bool {
	switch node.Kind {
	case dom.KindDocument, dom.KindSection, dom.KindQuote, dom.KindList, dom.KindListItem:
		// Sections inside a rendered card are not containers
		return !node.HasAttr(core.AttrSection)
	}
	return false
}

// containerOf returns the node if it is a container, or its nearest container ancestor.
func containerOf(node *dom.Node) *dom.Node {
	container := node.Closest(isContainer)
	if container == nil {
		return node.Root()
	}
	return container
}

// insideCard returns if the node is a rendered card or belongs to one.
func insideCard(node *dom.Node) bool {
	return node.Closest(layout.IsCard) != nil
}

// looksLikeCardSource returns if the inserted node contains the source of a card not rendered yet.
func looksLikeCardSource(node *dom.Node) bool {
	if insideCard(node) {
		return false
	}
	return core.ContainsAnchor(node.TextContent())
}

// looksLikeFieldMarkup returns if the inserted node contains card syntax without an anchor.
func looksLikeFieldMarkup(node *dom.Node) bool {
	if insideCard(node) || node.Hidden() {
		return false
	}
	content := node.TextContent()
	if core.HasCloze(content) {
		return true
	}
	for _, line := range strings.Split(content, "\n") {
		if core.IsFieldStart(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

// precedingCard returns the rendered card directly before the node, ignoring hidden siblings.
func precedingCard(node *dom.Node) *dom.Node {
	for sibling := node.PrevSibling(); sibling != nil; sibling = sibling.PrevSibling() {
		if layout.IsCard(sibling) {
			return sibling
		}
		if sibling.Kind == dom.KindHeading || core.ContainsAnchor(sibling.TextContent()) {
			return nil
		}
		if !sibling.Hidden() && !looksLikeFieldMarkup(sibling) {
			return nil
		}
	}
	return nil
}

// onMutations receives the batches of the change feed.
func (e *Engine) onMutations(mutations []dom.Mutation) {
	e.mu.Lock()
	ignore := e.closed || !e.stylesEnabled
	e.mu.Unlock()
	if ignore {
		return
	}

	for _, mutation := range mutations {
		for _, added := range mutation.Added {
			if !added.Connected() {
				continue
			}
			if looksLikeCardSource(added) {
				e.enqueue(containerOf(added))
				continue
			}
			if !looksLikeFieldMarkup(added) {
				continue
			}
			// A card split by an edit: the new fields belong to the previous card
			block := added
			if block.Kind.IsLeaf() && block.Parent() != nil {
				block = block.Parent()
			}
			if card := precedingCard(block); card != nil {
				e.logger.Debugf("Card %s is stale", card.GetAttr(core.AttrAnchorID))
				card.SetAttr(core.AttrStale, "")
				e.enqueue(containerOf(card.Parent()))
			}
		}
	}
}

// enqueue marks a container as dirty and starts the debounce window if needed.
// The window is not extended by later notifications.
func (e *Engine) enqueue(container *dom.Node) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if !slices.Contains(e.dirty, container) {
		e.dirty = append(e.dirty, container)
		if !container.HasAttr(core.AttrProcessed) {
			setState(container, StateDirty)
		}
	}
	if e.timer == nil && e.started {
		e.timer = e.options.Clock.AfterFunc(e.config.Debounce, func() {
			if err := e.Flush(context.Background()); err != nil && err != ErrClosed {
				e.logger.Warnf("Unable to render cards: %v", err)
			}
		})
	}
}

// DirtyCount returns the number of containers waiting for the next flush.
func (e *Engine) DirtyCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.dirty)
}

// Flush processes the dirty containers immediately.
func (e *Engine) Flush(ctx context.Context) error {
	e.work.Lock()
	defer e.work.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	dirty := e.dirty
	e.dirty = nil
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	enabled := e.stylesEnabled
	e.stats.Flushes++
	e.mu.Unlock()

	if !enabled {
		return nil
	}

	for _, container := range dirty {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !container.Connected() {
			// Removed by the host meanwhile
			continue
		}
		setState(container, StateProcessing)
		e.animate(container, nil, func() {
			e.processContainer(ctx, container, false)
			layout.ApplyRuns(container)
		})
		setState(container, StateProcessed)
	}
	return nil
}

// animate runs the mutation and moves the sibling cards smoothly.
func (e *Engine) animate(scope *dom.Node, exclude []string, mutate func()) {
	e.mu.Lock()
	coordinator := e.coordinator
	e.mu.Unlock()
	if coordinator == nil {
		mutate()
		return
	}
	coordinator.Animate(scope, exclude, mutate)
}
