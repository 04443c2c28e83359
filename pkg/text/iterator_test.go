package text_test

import (
	"testing"

	"github.com/julien-sobczak/sprout/pkg/text"
	"github.com/stretchr/testify/assert"
)

func TestLineIterator(t *testing.T) {

	t.Run("Basic", func(t *testing.T) {
		iterator := text.NewLineIteratorFromText("^sprout-123456\nQ|What?|\n\nA|This|\n")

		var lines []text.Line
		for iterator.HasNext() {
			lines = append(lines, iterator.Next())
		}
		assert.Equal(t, []text.Line{
			{Text: "^sprout-123456", Number: 1},
			{Text: "Q|What?|", Number: 2},
			{Text: "", Number: 3},
			{Text: "A|This|", Number: 4},
			{Text: "", Number: 5},
		}, lines)

		// Missing lines are considered like blank lines
		assert.Equal(t, text.MissingLine, iterator.Next())
		assert.True(t, iterator.Peek().IsBlank())
		assert.True(t, iterator.Peek().IsMissing())
	})

	t.Run("Peek", func(t *testing.T) {
		iterator := text.NewLineIteratorFromText("a\nb")
		assert.Equal(t, "a", iterator.Peek().Text)
		assert.Equal(t, "a", iterator.Peek().Text)
		assert.Equal(t, "a", iterator.Next().Text)
		assert.Equal(t, "b", iterator.Peek().Text)
	})

	t.Run("SkipBlankLines", func(t *testing.T) {
		md := "" +
			/* 1 */ "\n" +
			/* 2 */ "\n" +
			/* 3 */ "# Title\n" +
			/* 4 */ "\n" +
			/* 5 */ "Text\n"
		iterator := text.NewLineIteratorFromText(md)

		iterator.SkipBlankLines()
		assert.True(t, iterator.HasNext())
		titleLine := iterator.Next()
		assert.Equal(t, "# Title", titleLine.Text)
		assert.Equal(t, 3, titleLine.Number)

		iterator.SkipBlankLines()
		textLine := iterator.Next()
		assert.Equal(t, "Text", textLine.Text)
		assert.Equal(t, 5, textLine.Number)

		iterator.SkipBlankLines()
		assert.False(t, iterator.HasNext()) // end of doc
	})

	t.Run("Seek", func(t *testing.T) {
		iterator := text.NewLineIteratorFromText("a\nb\nc")
		iterator.Seek(3)
		assert.Equal(t, "c", iterator.Next().Text)
		iterator.Seek(0)
		assert.Equal(t, "a", iterator.Next().Text)
		iterator.Seek(10)
		assert.False(t, iterator.HasNext())
	})
}
