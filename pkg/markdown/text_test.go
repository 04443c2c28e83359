package markdown_test

import (
	"testing"

	"github.com/julien-sobczak/sprout/pkg/markdown"
	"github.com/stretchr/testify/assert"
)

func TestStripEmphasis(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		expected string
	}{
		{
			"raw text",
			"no special Markdown character",
			"no special Markdown character",
		},
		{
			"bold with asterisks",
			"I just love **bold text**.",
			"I just love bold text.",
		},
		{
			"bold with underscores",
			"I just love __bold text__.",
			"I just love bold text.",
		},
		{
			"italic with asterisks",
			"Italicized text is the *cat's meow*.",
			"Italicized text is the cat's meow.",
		},
		{
			"italic with underscores",
			"Italicized text is the _cat's meow_.",
			"Italicized text is the cat's meow.",
		},
		{
			"snake case is preserved",
			"use snake_case_names",
			"use snake_case_names",
		},
		{
			"strikethrough and highlight",
			"~~wrong~~ and ==right==",
			"wrong and right",
		},
		{
			"inline code",
			"call `go vet`",
			"call go vet",
		},
		{
			"link",
			"see [the docs](https://go.dev)",
			"see the docs",
		},
		{
			"image",
			"![Logo](./medias/go.svg)",
			"[Logo]",
		},
		{
			"html",
			"<b>bold</b>",
			"bold",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markdown.StripEmphasis(tt.input))
		})
	}
}

func TestToText(t *testing.T) {
	md := "A **gopher**.\n\n```go\nfmt.Println(\"*\")\n```"
	assert.Equal(t, "A gopher.\n\n    fmt.Println(\"*\")", markdown.ToText(md))
}
