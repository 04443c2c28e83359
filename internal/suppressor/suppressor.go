package suppressor

import (
	"strings"
	"unicode/utf8"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
	"github.com/julien-sobczak/sprout/pkg/text"
)

// Options contains the thresholds of the heuristics.
type Options struct {
	// Shorter texts are considered ambiguous (ex: "4" can be found in most cards)
	MinTextLength int
	// Shorter signatures are considered ambiguous
	MinSignatureLength int
}

func DefaultOptions() Options {
	return Options{
		MinTextLength:      4,
		MinSignatureLength: 4,
	}
}

// Suppressor hides the nodes the host created from the source of a card.
// The host splits a single block at blank lines or formulas, producing
// siblings repeating what the rendered card already displays.
type Suppressor struct {
	options Options
}

func New(options Options) *Suppressor {
	if options.MinTextLength <= 0 {
		options.MinTextLength = DefaultOptions().MinTextLength
	}
	if options.MinSignatureLength <= 0 {
		options.MinSignatureLength = DefaultOptions().MinSignatureLength
	}
	return &Suppressor{
		options: options,
	}
}

// FindRedundantSuccessors uses the default options.
func FindRedundantSuccessors(card *dom.Node, raw string) []*dom.Node {
	return New(DefaultOptions()).FindRedundantSuccessors(card, raw)
}

// source is the card raw text precomputed for every test.
type source struct {
	normalized string
	stripped   string
	signature  string
}

func newSource(raw string) source {
	raw = core.CleanInvisible(raw)
	return source{
		normalized: text.NormalizeSpace(raw),
		stripped:   core.StripMarkup(raw),
		signature:  MathSignature(raw),
	}
}

// FindRedundantSuccessors walks the next siblings of the card and returns the ones
// explained by the raw text of the card. The walk stops at the first sibling that
// doesn't belong to the card. In doubt, a sibling is kept visible.
func (s *Suppressor) FindRedundantSuccessors(card *dom.Node, raw string) []*dom.Node {
	var result []*dom.Node
	src := newSource(raw)
	anchorID := card.GetAttr(core.AttrAnchorID)

	for sibling := card.NextSibling(); sibling != nil; sibling = sibling.NextSibling() {
		if sibling.HasAttr(core.AttrProcessed) || sibling.Kind == dom.KindHeading {
			break
		}
		if suppressedBy, ok := sibling.Attr(core.AttrSuppressed); ok {
			if suppressedBy != anchorID {
				// Belongs to another card
				break
			}
			result = append(result, sibling)
			continue
		}
		if sibling.IsEmpty() {
			result = append(result, sibling)
			continue
		}
		siblingText := BestEffortText(sibling)
		if core.ContainsAnchor(siblingText) {
			// Source of another card
			break
		}
		if !s.isRedundant(sibling, siblingText, src) {
			break
		}
		result = append(result, sibling)
	}

	return result
}

// isRedundant tries the heuristics from the most to the least precise.
func (s *Suppressor) isRedundant(sibling *dom.Node, siblingText string, src source) bool {
	// Same text once whitespaces are normalized
	if normalized := text.NormalizeSpace(siblingText); s.longEnough(normalized) && strings.Contains(src.normalized, normalized) {
		return true
	}

	// Same text once the decoration is removed (emphasis, cloze, wikilinks, field syntax)
	if stripped := core.StripMarkup(siblingText); s.longEnough(stripped) && strings.Contains(src.stripped, stripped) {
		return true
	}

	// Same formula
	if containsMath(sibling, siblingText) {
		signature := MathSignature(siblingText)
		if len(signature) >= s.options.MinSignatureLength && strings.Contains(src.signature, signature) {
			return true
		}
	}

	// Leftover field markup
	if core.HasCloze(siblingText) {
		return true
	}
	for _, line := range strings.Split(siblingText, "\n") {
		if core.IsFieldStart(strings.TrimSpace(line)) {
			return true
		}
	}

	return false
}

func (s *Suppressor) longEnough(value string) bool {
	return utf8.RuneCountInString(value) >= s.options.MinTextLength
}

func containsMath(node *dom.Node, nodeText string) bool {
	return node.FindFirst(dom.IsKind(dom.KindMath)) != nil || strings.Contains(nodeText, "$") || strings.Contains(nodeText, `\`)
}

// BestEffortText returns the text of a node as close as possible to its source.
// Formulas are reconstructed from the TeX annotation kept by the host.
func BestEffortText(node *dom.Node) string {
	if node.FindFirst(dom.IsKind(dom.KindMath)) == nil {
		return node.TextContent()
	}
	var sb strings.Builder
	node.Walk(func(current *dom.Node) bool {
		switch {
		case current.Kind == dom.KindMath:
			formula := mathSource(current)
			if current.GetAttr(core.AttrDisplay) == "block" {
				sb.WriteString("$$" + formula + "$$")
			} else {
				sb.WriteString("$" + formula + "$")
			}
			return false
		case current.Kind.IsLeaf():
			sb.WriteString(current.Text)
		}
		return true
	})
	return sb.String()
}

// mathSource returns the TeX source of a formula, or its rendered text if missing.
func mathSource(math *dom.Node) string {
	annotation := math.FindFirst(dom.IsKind(dom.KindAnnotation))
	if annotation == nil {
		return math.TextContent()
	}
	var sb strings.Builder
	annotation.Walk(func(current *dom.Node) bool {
		if current.Kind.IsLeaf() {
			sb.WriteString(current.Text)
		}
		return true
	})
	return sb.String()
}

// Suppress hides the redundant successors of the card.
func (s *Suppressor) Suppress(card *dom.Node, raw string) []*dom.Node {
	var hidden []*dom.Node
	anchorID := card.GetAttr(core.AttrAnchorID)
	for _, node := range s.FindRedundantSuccessors(card, raw) {
		// The host may have removed the node meanwhile
		if !node.Connected() {
			continue
		}
		node.SetAttr(core.AttrHidden, "")
		node.SetAttr(core.AttrSuppressed, anchorID)
		hidden = append(hidden, node)
	}
	return hidden
}

// Restore displays again the nodes suppressed for the given card, or for every card when anchorID is empty.
func Restore(root *dom.Node, anchorID string) int {
	count := 0
	for _, node := range root.FindAll(dom.HasAttrName(core.AttrSuppressed)) {
		if anchorID != "" && node.GetAttr(core.AttrSuppressed) != anchorID {
			continue
		}
		node.RemoveAttr(core.AttrHidden)
		node.RemoveAttr(core.AttrSuppressed)
		count++
	}
	return count
}
