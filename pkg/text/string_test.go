package text_test

import (
	"testing"

	"github.com/julien-sobczak/sprout/pkg/text"
	"github.com/stretchr/testify/assert"
)

func TestSquashBlankLines(t *testing.T) {
	var tests = []struct {
		name     string // name
		input    string // input
		expected string // expected result
	}{
		{
			"TwoLines",
			`
Q|What is 2+2?|


A|4|

I|Basic arithmetic|

`,
			`
Q|What is 2+2?|

A|4|

I|Basic arithmetic|

`,
		},
		{
			"NoEmptyLines",
			`
A
B
C
`,
			`
A
B
C
`,
		},
		{
			"SeveralEmptyLines",
			`
A




C
`,
			`
A

C
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := text.SquashBlankLines(tt.input)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "", text.NormalizeSpace(""))
	assert.Equal(t, "", text.NormalizeSpace(" \n\t "))
	assert.Equal(t, "What is 2+2?", text.NormalizeSpace("  What   is\n2+2?\t"))
	assert.Equal(t, "a b", text.NormalizeSpace("a b"))
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, text.CountLines(""))
	assert.Equal(t, 1, text.CountLines("a"))
	assert.Equal(t, 3, text.CountLines("a\n\nb"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, text.IsBlank(""))
	assert.True(t, text.IsBlank(" \t\n"))
	assert.False(t, text.IsBlank(" Q|"))
}
