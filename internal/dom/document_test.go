package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutations(t *testing.T) {
	doc := NewDocument()
	section := doc.Root().AppendChild(NewNode(KindSection))

	var batches [][]Mutation
	unsubscribe := doc.Subscribe(func(mutations []Mutation) {
		batches = append(batches, mutations)
	})

	// No subscriber at the time of the first insertion
	assert.Equal(t, 0, doc.PendingMutations())

	p1 := section.AppendChild(NewNode(KindParagraph))
	p2 := section.AppendChild(NewNode(KindParagraph))
	// Detached trees are not observed
	NewNode(KindSection).AppendChild(NewNode(KindParagraph))
	assert.Equal(t, 2, doc.PendingMutations())

	assert.Equal(t, 2, doc.FlushMutations())
	require.Len(t, batches, 1)
	assert.Equal(t, []Mutation{
		{Target: section, Added: []*Node{p1}},
		{Target: section, Added: []*Node{p2}},
	}, batches[0])

	// Only differences are recorded
	p3 := NewNode(KindParagraph)
	section.ReplaceChildren(p1, p3)
	doc.FlushMutations()
	require.Len(t, batches, 2)
	assert.Equal(t, []Mutation{
		{Target: section, Removed: []*Node{p2}},
		{Target: section, Added: []*Node{p3}},
	}, batches[1])

	// Nothing to deliver
	assert.Equal(t, 0, doc.FlushMutations())
	assert.Len(t, batches, 2)

	unsubscribe()
	section.AppendChild(NewNode(KindParagraph))
	doc.FlushMutations()
	assert.Len(t, batches, 2)
}

func TestEvents(t *testing.T) {
	doc := NewDocument()
	section := doc.Root().AppendChild(NewNode(KindSection))

	var received []Event
	remove := doc.AddEventListener("sprout:refresh", func(event Event) {
		received = append(received, event)
	})
	assert.Equal(t, 1, doc.ListenerCount("sprout:refresh"))

	assert.True(t, Dispatch(section, "sprout:refresh"))
	assert.False(t, Dispatch(section, "other"))
	assert.False(t, Dispatch(NewNode(KindSection), "sprout:refresh"))
	assert.Equal(t, []Event{{Name: "sprout:refresh", Target: section}}, received)

	remove()
	assert.Equal(t, 0, doc.ListenerCount("sprout:refresh"))
	assert.False(t, Dispatch(section, "sprout:refresh"))
	assert.Len(t, received, 1)
}
