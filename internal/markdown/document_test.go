package markdown_test

import (
	"testing"

	"github.com/julien-sobczak/sprout/internal/markdown"
	"github.com/stretchr/testify/assert"
)

func TestIsHeading(t *testing.T) {
	ok, _, _ := markdown.IsHeading("Some text")
	assert.False(t, ok)

	ok, _, _ = markdown.IsHeading("")
	assert.False(t, ok)

	ok, _, _ = markdown.IsHeading("#hashtag")
	assert.False(t, ok)

	ok, title, level := markdown.IsHeading("# Heading 1")
	assert.True(t, ok)
	assert.Equal(t, "Heading 1", title)
	assert.Equal(t, 1, level)

	ok, title, level = markdown.IsHeading("### Heading 3")
	assert.True(t, ok)
	assert.Equal(t, "Heading 3", title)
	assert.Equal(t, 3, level)

	ok, title, level = markdown.IsHeading("###### Heading 6")
	assert.True(t, ok)
	assert.Equal(t, "Heading 6", title)
	assert.Equal(t, 6, level)

	// Sub levels are not currently supported
	ok, _, _ = markdown.IsHeading("####### Heading 7")
	assert.False(t, ok)
}

func TestExtractLines(t *testing.T) {
	doc := markdown.Document("a\nb\nc\nd")
	assert.Equal(t, markdown.Document("b\nc"), doc.ExtractLines(2, 3))
	assert.Equal(t, markdown.Document("c\nd"), doc.ExtractLines(3, -1))
	assert.Equal(t, markdown.EmptyDocument, doc.ExtractLines(4, 2))
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, markdown.Document("What is 2+2?"), markdown.Document("What is\n\n  2+2? ").NormalizeSpace())
}

func TestWikilinks(t *testing.T) {
	doc := markdown.Document("See [[go]], [[path/to/file.md|the file]] and ![[diagram.png]]")
	assert.Equal(t, []markdown.Wikilink{
		{Link: "go"},
		{Link: "path/to/file.md", Text: "the file"},
		{Link: "diagram.png"},
	}, doc.Wikilinks())
}
