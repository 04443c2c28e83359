package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTree(t *testing.T) {
	doc := NewDocument()
	section := doc.Root().AppendChild(NewNode(KindSection))
	p1 := section.AppendChild(NewNode(KindParagraph, NewText("first")))
	p3 := section.AppendChild(NewNode(KindParagraph, NewText("third")))
	p2 := section.InsertBefore(NewNode(KindParagraph, NewText("second")), p3)

	assert.True(t, p1.Connected())
	assert.Equal(t, 1, p2.Index())
	assert.Equal(t, p2, p1.NextSibling())
	assert.Equal(t, p2, p3.PrevSibling())
	assert.Nil(t, p3.NextSibling())
	assert.Equal(t, "firstsecondthird", section.TextContent())
	assert.Equal(t, doc, p2.OwnerDocument())
	assert.True(t, section.Contains(p2.FirstChild()))

	p2.Remove()
	assert.False(t, p2.Connected())
	assert.Nil(t, p2.OwnerDocument())
	assert.Equal(t, -1, p2.Index())
	assert.Equal(t, "firstthird", section.TextContent())

	section.InsertAfter(p2, p1)
	assert.Equal(t, "<section><p>first</p><p>second</p><p>third</p></section>", section.OuterHTML())
}

func TestNodeAttributes(t *testing.T) {
	n := NewNode(KindParagraph)
	n.SetAttr("data-id", "1").AddClass("sprout-card", "sprout-basic").AddClass("sprout-card")

	value, ok := n.Attr("data-id")
	assert.True(t, ok)
	assert.Equal(t, "1", value)
	assert.Equal(t, []string{"class", "data-id"}, n.AttrNames())
	assert.Equal(t, []string{"sprout-card", "sprout-basic"}, n.Classes())
	assert.True(t, n.HasClass("sprout-basic"))

	n.RemoveClassPrefix("sprout-")
	assert.False(t, n.HasAttr("class"))
	n.RemoveAttr("data-id")
	assert.Empty(t, n.GetAttr("data-id"))
	assert.False(t, n.Hidden())
}

func TestNodeQueries(t *testing.T) {
	doc := NewDocument()
	section := doc.Root().AppendChild(NewNode(KindSection))
	heading := section.AppendChild(NewNode(KindHeading, NewText("Title")))
	math := section.AppendChild(NewNode(KindMath,
		NewText("x²"),
		NewNode(KindAnnotation, NewText("x^2")),
	))
	math.SetAttr("data-id", "42")

	assert.Equal(t, []*Node{heading, math}, section.FindAll(IsKind(KindHeading, KindMath)))
	assert.Equal(t, math, doc.Root().FindFirst(HasAttrValue("data-id", "42")))
	assert.Nil(t, doc.Root().FindFirst(HasAttrValue("data-id", "43")))
	assert.Equal(t, math, math.FirstChild().Closest(HasAttrName("data-id")))
	assert.Equal(t, section, math.Closest(IsKind(KindSection)))

	// Annotations are not visible
	assert.Equal(t, "x²", math.TextContent())
	assert.False(t, math.IsEmpty())
	assert.True(t, NewNode(KindParagraph, NewText("  ")).IsEmpty())
}

func TestSwapChildren(t *testing.T) {
	original := NewText("^sprout-123456 Q|?|")
	p := NewNode(KindParagraph, original)

	assert.False(t, p.HasStash())
	p.SwapChildren(NewText("rendered"))
	p.SwapChildren(NewText("rendered again"))
	assert.True(t, p.HasStash())
	assert.Equal(t, "rendered again", p.TextContent())

	require.True(t, p.RestoreChildren())
	assert.Equal(t, []*Node{original}, p.Children())
	assert.Equal(t, p, original.Parent())
	assert.False(t, p.RestoreChildren())
}

func TestInsertIntoDescendant(t *testing.T) {
	parent := NewNode(KindSection)
	child := parent.AppendChild(NewNode(KindParagraph))
	assert.Panics(t, func() {
		child.AppendChild(parent)
	})
}
