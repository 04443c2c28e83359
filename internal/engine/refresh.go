package engine

import (
	"context"
	"fmt"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
	"github.com/julien-sobczak/sprout/internal/layout"
	"github.com/julien-sobczak/sprout/internal/suppressor"
)

// Trigger forces the refresh of the whole document.
func (e *Engine) Trigger(ctx context.Context) error {
	return e.Refresh(ctx, e.doc.Root())
}

// Refresh reloads the settings, renders again the cards of the scope from their
// cached raw text, renders the new cards, and animates the cards that moved.
func (e *Engine) Refresh(ctx context.Context, scope *dom.Node) error {
	config, err := e.options.Settings()
	if err != nil {
		return fmt.Errorf("unable to load settings: %w", err)
	}

	e.work.Lock()
	defer e.work.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.applyConfig(config)
	enabled := e.stylesEnabled
	e.mu.Unlock()

	if !enabled || !scope.Connected() {
		return nil
	}

	e.logger.Debugf("Refreshing cards with preset %s", config.Presentation.Preset)
	e.animate(scope, nil, func() {
		e.processContainer(ctx, scope, true)
		layout.ApplyRuns(scope)
	})
	return nil
}

// StylesEnabled returns if cards are currently rendered.
func (e *Engine) StylesEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stylesEnabled
}

// SetStylesEnabled disables or enables the rendering.
// When disabled, the original content is restored and every marker is removed.
func (e *Engine) SetStylesEnabled(ctx context.Context, enabled bool) error {
	e.work.Lock()
	defer e.work.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.stylesEnabled == enabled {
		e.mu.Unlock()
		return nil
	}
	e.stylesEnabled = enabled
	if !enabled {
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
		e.dirty = nil
	}
	e.mu.Unlock()

	root := e.doc.Root()
	if !enabled {
		e.restore(root)
		e.logger.Debug("Card rendering disabled")
		return nil
	}

	e.logger.Debug("Card rendering enabled")
	e.processContainer(ctx, root, false)
	layout.ApplyRuns(root)
	return nil
}

// restore reverts everything the engine did on the tree.
func (e *Engine) restore(root *dom.Node) {
	for _, card := range root.FindAll(dom.HasAttrName(core.AttrProcessed)) {
		card.RestoreChildren()
		for _, name := range []string{core.AttrAnchorID, core.AttrType, core.AttrRaw, core.AttrProcessed, core.AttrState, core.AttrStale} {
			card.RemoveAttr(name)
		}
		card.RemoveClassPrefix(core.ClassPrefix)
	}
	for _, node := range root.FindAll(dom.HasAttrName(core.AttrState)) {
		node.RemoveAttr(core.AttrState)
	}
	unsplitParagraphs(root)
	suppressor.Restore(root, "")
	layout.ClearRuns(root)
}

// findCard returns the rendered card with the given anchor.
func (e *Engine) findCard(anchorID string) *dom.Node {
	return e.doc.Root().FindFirst(func(node *dom.Node) bool {
		return layout.IsCard(node) && node.GetAttr(core.AttrAnchorID) == anchorID
	})
}

// Resize applies a change modifying the size of a card and animates its siblings.
func (e *Engine) Resize(ctx context.Context, anchorID string, mutate func(card *dom.Node)) error {
	e.work.Lock()
	defer e.work.Unlock()

	if e.isClosed() {
		return ErrClosed
	}
	card := e.findCard(anchorID)
	if card == nil {
		return ErrCardNotFound
	}
	e.animate(containerOf(card.Parent()), []string{anchorID}, func() {
		mutate(card)
	})
	return nil
}

// ToggleSection collapses or expands a section of a card.
func (e *Engine) ToggleSection(ctx context.Context, anchorID string, kind core.SectionKind) error {
	return e.Resize(ctx, anchorID, func(card *dom.Node) {
		section := card.FindFirst(dom.HasAttrValue(core.AttrSection, string(kind)))
		if section == nil {
			return
		}
		collapsed := section.GetAttr(core.AttrCollapsed) == "true"
		section.SetAttr(core.AttrCollapsed, fmt.Sprintf("%t", !collapsed))
	})
}

// ResolveCard finds in the card database the card containing the node.
func (e *Engine) ResolveCard(ctx context.Context, node *dom.Node) (*core.CardLocation, error) {
	card := node.Closest(dom.HasAttrName(core.AttrAnchorID))
	if card == nil {
		return nil, ErrCardNotFound
	}
	if e.options.Resolver == nil {
		return nil, ErrNoResolver
	}
	location, err := e.options.Resolver.ResolveCard(ctx, card.GetAttr(core.AttrAnchorID))
	if err != nil {
		return nil, fmt.Errorf("unable to resolve card %s: %w", card.GetAttr(core.AttrAnchorID), err)
	}
	return location, nil
}
