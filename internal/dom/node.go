package dom

import (
	"slices"
	"strings"
)

// Kind is the type of a node.
type Kind string

const (
	KindDocument   Kind = "document"
	KindSection    Kind = "section"
	KindParagraph  Kind = "p"
	KindHeading    Kind = "heading"
	KindMath       Kind = "math"
	KindAnnotation Kind = "annotation"
	KindCode       Kind = "code"
	KindList       Kind = "list"
	KindListItem   Kind = "listitem"
	KindQuote      Kind = "quote"
	KindText       Kind = "text"
	KindHTML       Kind = "html"
	KindRule       Kind = "rule"
)

// IsLeaf returns if nodes of this kind hold text instead of children.
func (k Kind) IsLeaf() bool {
	return k == KindText || k == KindHTML
}

// Node is an element of the tree. The tree is owned by the host.
// Other packages must re-query nodes instead of keeping references between operations.
type Node struct {
	Kind Kind
	// Content of text and html nodes
	Text string

	attrs    map[string]string
	parent   *Node
	children []*Node
	// Children replaced by SwapChildren
	stash []*Node
	// Only present on the root node
	doc *Document
}

// NewNode creates a detached node.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// NewHTML creates a detached node containing raw HTML.
func NewHTML(html string) *Node {
	return &Node{Kind: KindHTML, Text: html}
}

/* Attributes */

func (n *Node) Attr(name string) (string, bool) {
	value, ok := n.attrs[name]
	return value, ok
}

// GetAttr returns the attribute value or an empty string.
func (n *Node) GetAttr(name string) string {
	return n.attrs[name]
}

func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

func (n *Node) SetAttr(name, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return n
}

func (n *Node) RemoveAttr(name string) *Node {
	delete(n.attrs, name)
	return n
}

// AttrNames returns the attribute names in alphabetical order.
func (n *Node) AttrNames() []string {
	var names []string
	for name := range n.attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Classes returns the values present in the class attribute.
func (n *Node) Classes() []string {
	return strings.Fields(n.GetAttr("class"))
}

func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes(), class)
}

func (n *Node) AddClass(classes ...string) *Node {
	current := n.Classes()
	for _, class := range classes {
		if !slices.Contains(current, class) {
			current = append(current, class)
		}
	}
	return n.SetAttr("class", strings.Join(current, " "))
}

// RemoveClassPrefix removes every class starting with the prefix.
func (n *Node) RemoveClassPrefix(prefix string) *Node {
	var kept []string
	for _, class := range n.Classes() {
		if !strings.HasPrefix(class, prefix) {
			kept = append(kept, class)
		}
	}
	if len(kept) == 0 {
		return n.RemoveAttr("class")
	}
	return n.SetAttr("class", strings.Join(kept, " "))
}

// Hidden returns if the node is not displayed.
func (n *Node) Hidden() bool {
	return n.HasAttr("hidden")
}

/* Navigation */

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

func (n *Node) ChildCount() int {
	return len(n.children)
}

func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// Index returns the position of the node in its parent, -1 when detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

func (n *Node) NextSibling() *Node {
	i := n.Index()
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

func (n *Node) PrevSibling() *Node {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// Root returns the top-most ancestor.
func (n *Node) Root() *Node {
	current := n
	for current.parent != nil {
		current = current.parent
	}
	return current
}

// OwnerDocument returns the document when the node is connected.
func (n *Node) OwnerDocument() *Document {
	return n.Root().doc
}

// Connected returns if the node is still attached to a document.
func (n *Node) Connected() bool {
	return n.OwnerDocument() != nil
}

// Contains returns if other is the node or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for current := other; current != nil; current = current.parent {
		if current == n {
			return true
		}
	}
	return false
}

// Closest returns the node or its nearest ancestor matching the predicate.
func (n *Node) Closest(predicate func(*Node) bool) *Node {
	for current := n; current != nil; current = current.parent {
		if predicate(current) {
			return current
		}
	}
	return nil
}

// Walk visits the node and its descendants in document order.
// Descendants of a node are skipped when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range slices.Clone(n.children) {
		child.Walk(fn)
	}
}

// FindAll returns the descendants (including the node) matching the predicate.
func (n *Node) FindAll(predicate func(*Node) bool) []*Node {
	var result []*Node
	n.Walk(func(current *Node) bool {
		if predicate(current) {
			result = append(result, current)
		}
		return true
	})
	return result
}

// FindFirst returns the first descendant (including the node) matching the predicate.
func (n *Node) FindFirst(predicate func(*Node) bool) *Node {
	var result *Node
	n.Walk(func(current *Node) bool {
		if result != nil {
			return false
		}
		if predicate(current) {
			result = current
			return false
		}
		return true
	})
	return result
}

// HasAttrValue returns a predicate matching nodes with the given attribute value.
func HasAttrValue(name, value string) func(*Node) bool {
	return func(n *Node) bool {
		v, ok := n.attrs[name]
		return ok && v == value
	}
}

// HasAttrName returns a predicate matching nodes having the given attribute.
func HasAttrName(name string) func(*Node) bool {
	return func(n *Node) bool {
		return n.HasAttr(name)
	}
}

// IsKind returns a predicate matching nodes of the given kinds.
func IsKind(kinds ...Kind) func(*Node) bool {
	return func(n *Node) bool {
		return slices.Contains(kinds, n.Kind)
	}
}

/* Content */

// TextContent concatenates the text of every descendant.
// Annotations are ignored as they duplicate the visible content.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(current *Node) bool {
		if current.Kind == KindAnnotation {
			return false
		}
		if current.Kind.IsLeaf() {
			sb.WriteString(current.Text)
		}
		return true
	})
	return sb.String()
}

// IsEmpty returns if the node has no visible text.
func (n *Node) IsEmpty() bool {
	return strings.TrimSpace(n.TextContent()) == "" && n.FindFirst(IsKind(KindMath)) == nil
}

/* Mutations */

// AppendChild adds a child at the end. The child is detached from its previous parent first.
func (n *Node) AppendChild(child *Node) *Node {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts a child before the reference node (at the end when ref is nil).
func (n *Node) InsertBefore(child, ref *Node) *Node {
	if child.Contains(n) {
		panic("dom: cannot insert a node into its own descendant")
	}
	child.Remove()
	i := len(n.children)
	if ref != nil {
		if j := slices.Index(n.children, ref); j >= 0 {
			i = j
		}
	}
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
	n.record(Mutation{Target: n, Added: []*Node{child}})
	return child
}

// InsertAfter inserts a child after the reference node.
func (n *Node) InsertAfter(child, ref *Node) *Node {
	if ref == nil {
		return n.InsertBefore(child, n.FirstChild())
	}
	return n.InsertBefore(child, ref.NextSibling())
}

// RemoveChild detaches a child. Nothing happens if the node is not a child.
func (n *Node) RemoveChild(child *Node) {
	i := slices.Index(n.children, child)
	if i < 0 {
		return
	}
	n.record(Mutation{Target: n, Removed: []*Node{child}})
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
}

// Remove detaches the node from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// ReplaceChildren replaces the child list. Only the differences are recorded.
func (n *Node) ReplaceChildren(children ...*Node) {
	var removed, added []*Node
	for _, child := range n.children {
		if !slices.Contains(children, child) {
			removed = append(removed, child)
		}
	}
	for _, child := range children {
		if !slices.Contains(n.children, child) {
			added = append(added, child)
		}
	}
	if len(removed) > 0 {
		n.record(Mutation{Target: n, Removed: removed})
	}
	for _, child := range removed {
		child.parent = nil
	}
	for _, child := range children {
		if child.parent != nil && child.parent != n {
			child.Remove()
		}
		child.parent = n
	}
	n.children = slices.Clone(children)
	if len(added) > 0 {
		n.record(Mutation{Target: n, Added: added})
	}
}

// SwapChildren replaces the children and keeps the original ones so that RestoreChildren can put them back.
// The first original children are kept when swapping several times.
func (n *Node) SwapChildren(children ...*Node) {
	if n.stash == nil {
		n.stash = n.Children()
		if n.stash == nil {
			n.stash = []*Node{}
		}
	}
	n.ReplaceChildren(children...)
}

// HasStash returns if original children were swapped.
func (n *Node) HasStash() bool {
	return n.stash != nil
}

// RestoreChildren puts back the children replaced by SwapChildren.
func (n *Node) RestoreChildren() bool {
	if n.stash == nil {
		return false
	}
	stash := n.stash
	n.stash = nil
	n.ReplaceChildren(stash...)
	return true
}

func (n *Node) record(mutation Mutation) {
	if doc := n.OwnerDocument(); doc != nil {
		doc.record(mutation)
	}
}
