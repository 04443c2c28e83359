package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
	"github.com/julien-sobczak/sprout/internal/layout"
	"github.com/julien-sobczak/sprout/internal/suppressor"
)

// isCandidate returns if the node is a paragraph containing the source of a card not rendered yet.
func isCandidate(node *dom.Node) bool {
	if node.Kind != dom.KindParagraph || node.Hidden() || insideCard(node) {
		return false
	}
	return core.ContainsAnchor(node.TextContent())
}

// candidates returns the nodes to render inside the container, in document order.
// Stale cards are included when their source must be read again.
func candidates(container *dom.Node) []*dom.Node {
	return container.FindAll(func(node *dom.Node) bool {
		if layout.IsCard(node) {
			return node.HasAttr(core.AttrStale)
		}
		return isCandidate(node)
	})
}

// processContainer renders the candidates of the container.
// Already processed cards are rendered again from their cached raw text when force is set.
func (e *Engine) processContainer(ctx context.Context, container *dom.Node, force bool) {
	for _, node := range container.FindAll(isCandidate) {
		splitParagraph(node)
	}

	source := e.newSourceCache()
	done := make(map[*dom.Node]bool)
	for _, node := range candidates(container) {
		if !node.Connected() {
			continue
		}
		raw := e.readRaw(ctx, node, source)
		e.processCard(ctx, node, raw)
		done[node] = true
	}

	if !force {
		return
	}
	for _, card := range container.FindAll(layout.IsCard) {
		raw, ok := card.Attr(core.AttrRaw)
		if !ok || done[card] {
			continue
		}
		e.processCard(ctx, card, raw)
	}
}

// splitParagraph splits a paragraph holding several cards so that every card gets its own node.
// The original children are stashed and the added paragraphs marked to be reverted by restore.
func splitParagraph(node *dom.Node) {
	lines := strings.Split(node.TextContent(), "\n")
	var chunks []string
	var current []string
	for _, line := range lines {
		if core.ContainsAnchor(line) && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	chunks = append(chunks, strings.Join(current, "\n"))

	// Prose mentioning several anchors is left untouched
	cards := 0
	for _, chunk := range chunks {
		if _, err := core.ParseCard(chunk); err == nil {
			cards++
		}
	}
	if cards < 2 {
		return
	}

	parent := node.Parent()
	node.SwapChildren(dom.NewText(chunks[0]))
	node.SetAttr(core.AttrSplit, splitOrigin)
	previous := node
	for _, chunk := range chunks[1:] {
		next := dom.NewNode(dom.KindParagraph, dom.NewText(chunk))
		next.SetAttr(core.AttrSplit, splitPart)
		parent.InsertAfter(next, previous)
		previous = next
	}
}

const (
	splitOrigin = "origin"
	splitPart   = "part"
)

// unsplitParagraphs reverts splitParagraph.
func unsplitParagraphs(root *dom.Node) {
	for _, node := range root.FindAll(dom.HasAttrName(core.AttrSplit)) {
		if node.GetAttr(core.AttrSplit) == splitPart {
			node.Remove()
			continue
		}
		node.RestoreChildren()
		node.RemoveAttr(core.AttrSplit)
	}
}

// sourceCache reads the saved source at most once per operation.
type sourceCache struct {
	loaded  bool
	content string
	ok      bool
}

func (e *Engine) newSourceCache() *sourceCache {
	return &sourceCache{}
}

func (e *Engine) readSource(ctx context.Context, cache *sourceCache) (string, bool) {
	if cache.loaded {
		return cache.content, cache.ok
	}
	cache.loaded = true
	if e.options.Source == nil || e.options.Path == "" {
		return "", false
	}
	content, err := e.options.Source.ReadSource(ctx, e.options.Path)
	if err != nil {
		e.logger.Warnf("Unable to read source %q: %v", e.options.Path, err)
		return "", false
	}
	cache.content = content
	cache.ok = true
	return content, true
}

// readRaw returns the raw text of the card. The saved source is preferred
// as the text of the tree loses formatting.
func (e *Engine) readRaw(ctx context.Context, node *dom.Node, cache *sourceCache) string {
	anchorID := node.GetAttr(core.AttrAnchorID)
	if anchorID == "" {
		anchors := core.FindAnchors(node.TextContent())
		if len(anchors) > 0 {
			anchorID = anchors[0].ID
		}
	}

	if source, ok := e.readSource(ctx, cache); ok && anchorID != "" {
		if raw, ok := core.ExtractCardFromSource(source, anchorID); ok {
			return raw
		}
	}

	if cached, ok := node.Attr(core.AttrRaw); ok {
		if !node.HasAttr(core.AttrStale) {
			return cached
		}
		// The new fields were inserted after the rendered card
		if raw, ok := core.ExtractCardFromSource(strings.Join(append([]string{cached}, nextSiblingsText(node)...), "\n"), anchorID); ok {
			return raw
		}
		return cached
	}

	treeText := treeSource(node)
	if anchorID != "" {
		if raw, ok := core.ExtractCardFromSource(treeText, anchorID); ok {
			return raw
		}
	}
	return treeText
}

// treeSource reconstructs the source of a card from the node and the siblings the host split from it.
func treeSource(node *dom.Node) string {
	parts := append([]string{suppressor.BestEffortText(node)}, nextSiblingsText(node)...)
	return strings.Join(parts, "\n\n")
}

// nextSiblingsText returns the text of the next siblings until the next heading or card.
func nextSiblingsText(node *dom.Node) []string {
	var parts []string
	for sibling := node.NextSibling(); sibling != nil; sibling = sibling.NextSibling() {
		if sibling.Kind == dom.KindHeading || layout.IsCard(sibling) {
			break
		}
		if sibling.HasAttr(core.AttrSuppressed) {
			continue
		}
		text := suppressor.BestEffortText(sibling)
		if core.ContainsAnchor(text) {
			break
		}
		parts = append(parts, text)
	}
	return parts
}

// processCard parses, renders and suppresses the duplicates of a single card.
// A failure only affects this card.
func (e *Engine) processCard(ctx context.Context, node *dom.Node, raw string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warnf("Unable to render card: %v", r)
		}
	}()

	wasProcessed := node.HasAttr(core.AttrProcessed)
	if !wasProcessed {
		setState(node, StateProcessing)
	}

	card, err := core.ParseCard(raw)
	if err != nil {
		if errors.Is(err, core.ErrNoAnchor) || errors.Is(err, core.ErrNotACard) {
			e.logger.Debugf("Ignoring block: %v", err)
		} else {
			e.logger.Warnf("Unable to parse card: %v", err)
		}
		if !wasProcessed {
			node.RemoveAttr(core.AttrState)
		}
		e.incr(func(stats *Stats) { stats.Skipped++ })
		return
	}

	e.mu.Lock()
	renderer := e.renderer
	config := e.config
	e.mu.Unlock()

	content := renderer.Render(*card)
	children := e.renderContent(ctx, content, config.Presentation)

	// The host may have removed the node while rendering
	if !node.Connected() {
		e.logger.Debugf("Card %s removed during rendering", card.AnchorID)
		return
	}

	node.SwapChildren(children...)
	node.SetAttr(core.AttrAnchorID, card.AnchorID)
	node.SetAttr(core.AttrType, string(card.Type))
	node.SetAttr(core.AttrRaw, raw)
	node.SetAttr(core.AttrProcessed, "")
	node.RemoveAttr(core.AttrStale)
	setState(node, StateProcessed)
	node.RemoveClassPrefix(core.ClassPrefix)
	node.AddClass(core.ClassCard, core.ClassPrefix+string(card.Type), core.ClassPresetPrefix+string(content.Preset))

	if parent := node.Parent(); parent != nil {
		suppressor.Restore(parent, card.AnchorID)
	}
	hidden := e.suppressor.Suppress(node, raw)

	e.incr(func(stats *Stats) {
		stats.Rendered++
		stats.Suppressed += len(hidden)
	})
	e.logger.Debugf("Rendered %s (%d duplicates hidden)", card, len(hidden))
}

// renderContent converts the content into nodes.
func (e *Engine) renderContent(ctx context.Context, content *core.Content, config core.PresentationConfig) []*dom.Node {
	var nodes []*dom.Node
	if content.ShowTitle {
		title := dom.NewNode(dom.KindSection, dom.NewText(content.Title))
		title.SetAttr(core.AttrSection, "title")
		title.SetAttr(core.AttrCollapsed, "false")
		title.SetAttr("id", content.Slug)
		nodes = append(nodes, title)
	}
	for _, section := range content.Sections {
		node := dom.NewNode(dom.KindSection)
		node.SetAttr(core.AttrSection, string(section.Kind))
		node.SetAttr(core.AttrCollapsed, fmt.Sprintf("%t", section.Collapsed))
		node.SetAttr("aria-label", section.Kind.Label())
		if section.Kind == core.SectionOptions {
			list := dom.NewNode(dom.KindList)
			for _, option := range section.Options {
				item := dom.NewNode(dom.KindListItem, e.renderMarkdown(ctx, option.Markdown, config))
				if option.Correct {
					item.SetAttr("data-sprout-correct", "")
				}
				list.AppendChild(item)
			}
			node.AppendChild(list)
		} else {
			node.AppendChild(e.renderMarkdown(ctx, section.Markdown, config))
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// renderMarkdown returns the rich rendering of the Markdown, or the raw text when the rendering fails.
func (e *Engine) renderMarkdown(ctx context.Context, md string, config core.PresentationConfig) (node *dom.Node) {
	if !config.RichContent {
		return dom.NewText(md)
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warnf("Unable to render %q: %v", md, r)
			node = dom.NewText(md)
		}
	}()
	html, err := e.options.Rich.Render(ctx, md)
	if err != nil {
		e.logger.Warnf("Unable to render %q: %v", md, err)
		return dom.NewText(md)
	}
	return dom.NewHTML(html)
}
