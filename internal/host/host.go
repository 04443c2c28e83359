package host

import (
	"context"
	"errors"
	"sync"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
)

// ErrUnknownPath is returned when reading the source of another document.
var ErrUnknownPath = errors.New("unknown document")

// Host owns the tree of a single Markdown document and re-renders it
// incrementally: unchanged blocks keep their nodes.
type Host struct {
	path      string
	doc       *dom.Document
	container *dom.Node

	mu     sync.Mutex
	source string
	blocks []*renderedBlock
}

type renderedBlock struct {
	hash  string
	nodes []*dom.Node
}

// RenderStats reports what a render changed.
type RenderStats struct {
	Reused  int
	Created int
	Removed int
}

// New creates a host for the document at the given path.
func New(path string) *Host {
	doc := dom.NewDocument()
	container := doc.Root().AppendChild(dom.NewNode(dom.KindSection))
	return &Host{
		path:      path,
		doc:       doc,
		container: container,
	}
}

func (h *Host) Path() string {
	return h.path
}

func (h *Host) Document() *dom.Document {
	return h.doc
}

// Container returns the node grouping the blocks.
func (h *Host) Container() *dom.Node {
	return h.container
}

// Source returns the last rendered source.
func (h *Host) Source() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.source
}

// ReadSource returns the saved source of the document.
func (h *Host) ReadSource(ctx context.Context, path string) (string, error) {
	if path != h.path {
		return "", ErrUnknownPath
	}
	return h.Source(), nil
}

// Render updates the tree to match the new source.
// Nodes of blocks present in the previous source are reused as is,
// including the nodes inserted after them by other components.
func (h *Host) Render(source string) RenderStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.adopt()

	available := make(map[string][]*renderedBlock)
	for _, block := range h.blocks {
		available[block.hash] = append(available[block.hash], block)
	}

	var stats RenderStats
	var blocks []*renderedBlock
	var nodes []*dom.Node
	for _, block := range SplitBlocks(source) {
		var rendered *renderedBlock
		if candidates := available[block.Hash]; len(candidates) > 0 {
			rendered = candidates[0]
			available[block.Hash] = candidates[1:]
			stats.Reused++
		} else {
			rendered = &renderedBlock{
				hash:  block.Hash,
				nodes: BuildNodes(block),
			}
			stats.Created++
		}
		blocks = append(blocks, rendered)
		nodes = append(nodes, rendered.nodes...)
	}
	for _, candidates := range available {
		stats.Removed += len(candidates)
	}

	h.source = source
	h.blocks = blocks
	h.container.ReplaceChildren(nodes...)
	core.CurrentLogger().Debugf("Rendered %s (%d reused, %d created, %d removed)", h.path, stats.Reused, stats.Created, stats.Removed)
	return stats
}

// adopt assigns the nodes inserted by other components to the block preceding them.
func (h *Host) adopt() {
	owners := make(map[*dom.Node]*renderedBlock)
	for _, block := range h.blocks {
		for _, node := range block.nodes {
			owners[node] = block
		}
	}
	nodes := make(map[*renderedBlock][]*dom.Node)
	var current *renderedBlock
	for _, child := range h.container.Children() {
		if owner, ok := owners[child]; ok {
			current = owner
		}
		if current != nil {
			nodes[current] = append(nodes[current], child)
		}
	}
	for _, block := range h.blocks {
		block.nodes = nodes[block]
	}
}
