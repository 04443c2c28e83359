package markdown_test

import (
	"regexp"
	"testing"

	"github.com/julien-sobczak/sprout/internal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	var tests = []struct {
		name         string
		transformers []markdown.Transformer
		input        markdown.Document
		expected     markdown.Document
	}{
		{
			name:         "Emphasis",
			transformers: []markdown.Transformer{markdown.StripEmphasis()},
			input:        "The **capital** of *France*\nis ==Paris==",
			expected:     "The capital of France\nis Paris",
		},
		{
			name:         "Wikilinks",
			transformers: []markdown.Transformer{markdown.StripWikilinks()},
			input:        "See [[geography/france|France]] and [[Paris]]",
			expected:     "See France and Paris",
		},
		{
			name:         "HTML comments",
			transformers: []markdown.Transformer{markdown.StripHTMLComments()},
			input:        "A<!-- hidden\ncomment --> B",
			expected:     "A B",
		},
		{
			name:         "Math delimiters",
			transformers: []markdown.Transformer{markdown.StripMathDelimiters()},
			input:        "$$x^2$$ and $y$",
			expected:     "x^2 and y",
		},
		{
			name: "Chained",
			transformers: []markdown.Transformer{
				markdown.StripWikilinks(),
				markdown.StripEmphasis(),
				markdown.ReplaceRegexp(regexp.MustCompile(`\s+`), " "),
			},
			input:    "**[[Paris]]**\n\nis the capital",
			expected: "Paris is the capital",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := tt.input.Transform(tt.transformers...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestSquashBlankLines(t *testing.T) {
	actual := markdown.Document("A\n\n\n\nB\n").MustTransform(markdown.SquashBlankLines())
	assert.Equal(t, markdown.Document("A\n\nB\n"), actual)
}
