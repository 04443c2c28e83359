package core

import (
	"fmt"
	"testing"

	"github.com/julien-sobczak/sprout/internal/testutil"
	"github.com/julien-sobczak/sprout/pkg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	var tests = []struct {
		name     string
		raw      string
		expected Card
	}{
		{
			name: "Basic",
			raw: `
^sprout-123456
Q|What is 2+2?|
A|4|`,
			expected: Card{
				AnchorID: "123456",
				Type:     CardBasic,
				Title:    "Card 123456",
				Fields: map[FieldKey][]string{
					FieldQuestion: {"What is 2+2?"},
					FieldAnswer:   {"4"},
				},
			},
		},
		{
			name: "Title and surrounding whitespaces",
			raw: `^sprout-1234567
T |  Addition  |
q  |  What is 2+2?   |
a|4|`,
			expected: Card{
				AnchorID: "1234567",
				Type:     CardBasic,
				Title:    "Addition",
				Fields: map[FieldKey][]string{
					FieldTitle:    {"Addition"},
					FieldQuestion: {"What is 2+2?"},
					FieldAnswer:   {"4"},
				},
			},
		},
		{
			name: "Multiline field with blank lines",
			raw: `^sprout-200000
Q|What is Euler's identity?
|
A|
$$
e^{i\pi} + 1 = 0
$$

The most beautiful formula.|`,
			expected: Card{
				AnchorID: "200000",
				Type:     CardBasic,
				Title:    "Card 200000",
				Fields: map[FieldKey][]string{
					FieldQuestion: {"What is Euler's identity?"},
					FieldAnswer:   {"$$\ne^{i\\pi} + 1 = 0\n$$\n\nThe most beautiful formula."},
				},
			},
		},
		{
			name: "Escaped characters",
			raw: `^sprout-300000
Q|a \| b \\ c|
A|ends with \|`,
			expected: Card{
				AnchorID: "300000",
				Type:     CardBasic,
				Title:    "Card 300000",
				Fields: map[FieldKey][]string{
					FieldQuestion: {`a | b \ c`},
					// Unterminated as the last pipe is escaped
					FieldAnswer: {`ends with |`},
				},
			},
		},
		{
			name: "Groups",
			raw: `^sprout-400000
Q|Question|
G| math, algebra |

G|geometry,, |`,
			expected: Card{
				AnchorID: "400000",
				Type:     CardBasic,
				Title:    "Card 400000",
				Fields: map[FieldKey][]string{
					FieldQuestion: {"Question"},
					FieldGroups:   {"math", "algebra", "geometry"},
				},
			},
		},
		{
			name: "Cloze takes precedence",
			raw: `^sprout-500000
Q|Ignored for the type|
CQ|Paris is the {{c1::capital}} of {{c2::}}|`,
			expected: Card{
				AnchorID: "500000",
				Type:     CardCloze,
				Title:    "Card 500000",
				Fields: map[FieldKey][]string{
					FieldQuestion: {"Ignored for the type"},
					FieldCloze:    {"Paris is the {{c1::capital}} of {{c2::}}"},
				},
			},
		},
		{
			name: "Multiple choice",
			raw: `^sprout-600000
MCQ|Which language has goroutines?|
A|Go|
O|Java|
O|Python|
X|unknown fields are ignored|`,
			expected: Card{
				AnchorID: "600000",
				Type:     CardMCQ,
				Title:    "Card 600000",
				Fields: map[FieldKey][]string{
					FieldMCQ:    {"Which language has goroutines?"},
					FieldAnswer: {"Go"},
					FieldOption: {"Java", "Python"},
				},
			},
		},
		{
			name: "Image occlusion",
			raw: `Some text before ^sprout-700000
IO|![Map](map.png)|
Q|Which country?|`,
			expected: Card{
				AnchorID: "700000",
				Type:     CardIO,
				Title:    "Card 700000",
				Fields: map[FieldKey][]string{
					FieldImageOcclusion: {"![Map](map.png)"},
					FieldQuestion:       {"Which country?"},
				},
			},
		},
		{
			name: "Invisible characters",
			raw:  "^sprout-80\u200b0000\nQ\u00ad|Hidden\ufeff?|",
			expected: Card{
				AnchorID: "800000",
				Type:     CardBasic,
				Title:    "Card 800000",
				Fields: map[FieldKey][]string{
					FieldQuestion: {"Hidden?"},
				},
			},
		},
		{
			name: "Prose ends the card",
			raw: `^sprout-900000
Q|Question|
Some prose.
A|Not part of the card|`,
			expected: Card{
				AnchorID: "900000",
				Type:     CardBasic,
				Title:    "Card 900000",
				Fields: map[FieldKey][]string{
					FieldQuestion: {"Question"},
				},
			},
		},
		{
			name: "Unterminated field",
			raw: `^sprout-910000
Q|An open
question`,
			expected: Card{
				AnchorID: "910000",
				Type:     CardBasic,
				Title:    "Card 910000",
				Fields: map[FieldKey][]string{
					FieldQuestion: {"An open\nquestion"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ParseCard(text.UnescapeTestContent(tt.raw))
			require.NoError(t, err)
			require.NotNil(t, actual)
			assert.Equal(t, tt.expected, *actual)
		})
	}
}

func TestParseCardRejected(t *testing.T) {
	var tests = []struct {
		name     string
		raw      string
		expected error
	}{
		{
			name:     "No anchor",
			raw:      "Q|What is 2+2?|\nA|4|",
			expected: ErrNoAnchor,
		},
		{
			name:     "Anchor too short",
			raw:      "^sprout-12345\nQ|What is 2+2?|",
			expected: ErrNoAnchor,
		},
		{
			name:     "Anchor too long",
			raw:      "^sprout-1234567890123\nQ|What is 2+2?|",
			expected: ErrNoAnchor,
		},
		{
			name:     "No question",
			raw:      "^sprout-123456\nT|Only a title|\nA|4|",
			expected: ErrNotACard,
		},
		{
			name:     "Empty",
			raw:      "",
			expected: ErrNoAnchor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ParseCard(tt.raw)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, actual)
		})
	}
}

func TestParseCardAnchorID(t *testing.T) {
	ids := []string{"123456", "0000001", "42424242", "999999999999"}
	for _, id := range ids {
		blocks := []string{
			fmt.Sprintf("^sprout-%s\nQ|q|", id),
			fmt.Sprintf("Intro ^sprout-%s end\nQ|q|", id),
			fmt.Sprintf("\n\n^sprout-%s\n\nMCQ|q|\nA|a|", id),
		}
		for _, block := range blocks {
			card, err := ParseCard(block)
			require.NoError(t, err)
			assert.Equal(t, id, card.AnchorID)
		}
	}
}

func TestParseCardIsDeterministic(t *testing.T) {
	raw := "^sprout-123456\nQ|What?|\nA|This.|\nG|a,b|"
	first := MustParseCard(raw)
	second := MustParseCard(raw)
	assert.True(t, first.Equal(second))
}

func TestExtractCardFromSource(t *testing.T) {
	doc := string(testutil.GoldenFile(t))

	var tests = []struct {
		anchorID string
		expected string
	}{
		{
			anchorID: "100001",
			expected: "^sprout-100001\nQ|What is 2+2?|\nA|4|",
		},
		{
			anchorID: "100002",
			expected: "^sprout-100002\nQ|What is Euler's identity?|\nA|\n$$\ne^{i\\pi} + 1 = 0\n$$\n\nThe most beautiful formula.|",
		},
		{
			// Stops at the next anchor
			anchorID: "100003",
			expected: "^sprout-100003\nQ|First card|",
		},
		{
			// Stops at the heading
			anchorID: "100004",
			expected: "^sprout-100004\nCQ|Paris is the {{c1::capital}} of {{c2::}}|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.anchorID, func(t *testing.T) {
			actual, ok := ExtractCardFromSource(doc, tt.anchorID)
			require.True(t, ok)
			assert.Equal(t, tt.expected, actual)

			// The extracted text must be parsable
			card, err := ParseCard(actual)
			require.NoError(t, err)
			assert.Equal(t, tt.anchorID, card.AnchorID)
		})
	}

	t.Run("Missing", func(t *testing.T) {
		_, ok := ExtractCardFromSource(doc, "999999")
		assert.False(t, ok)
		// Must not match a prefix
		_, ok = ExtractCardFromSource(doc, "10000")
		assert.False(t, ok)
	})

	t.Run("Heading inside an open field", func(t *testing.T) {
		src := "^sprout-123456\nQ|Which line is a heading?\n# This one\n|\n# Not in the card"
		actual, ok := ExtractCardFromSource(src, "123456")
		require.True(t, ok)
		assert.Equal(t, "^sprout-123456\nQ|Which line is a heading?\n# This one\n|", actual)
	})
}

func TestFindAnchors(t *testing.T) {
	doc := string(testutil.GoldenFileNamed(t, "TestExtractCardFromSource.md"))
	anchors := FindAnchors(doc)
	assert.Equal(t, []Anchor{
		{ID: "100001", Line: 5},
		{ID: "100002", Line: 13},
		{ID: "100003", Line: 22},
		{ID: "100004", Line: 24},
	}, anchors)
}

func TestFindAnchorsOnSameLine(t *testing.T) {
	var tests = []struct {
		name     string
		doc      string
		expected []Anchor
	}{
		{"Adjacent anchors", "^sprout-100001^sprout-100002", []Anchor{{ID: "100001", Line: 1}, {ID: "100002", Line: 1}}},
		{"Separated anchors", "^sprout-100001 and ^sprout-100002.", []Anchor{{ID: "100001", Line: 1}, {ID: "100002", Line: 1}}},
		{"Too long", "^sprout-1234567890123 ^sprout-100003", []Anchor{{ID: "100003", Line: 1}}},
		{"Too short", "^sprout-12345", nil},
		{"Followed by a letter", "^sprout-123456abc", []Anchor{{ID: "123456", Line: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindAnchors(tt.doc))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	cards := []Card{
		{
			AnchorID: "123456",
			Type:     CardBasic,
			Title:    "Card 123456",
			Fields: map[FieldKey][]string{
				FieldQuestion: {"What is 2+2?"},
				FieldAnswer:   {"4"},
			},
		},
		{
			AnchorID: "234567",
			Type:     CardBasic,
			Title:    "Escaping",
			Fields: map[FieldKey][]string{
				FieldTitle:    {"Escaping"},
				FieldQuestion: {"multi\nline | with \\ special | characters"},
				FieldAnswer:   {`ends with a backslash \`},
				FieldInfo:     {"$$\nx^2\n$$\n\nwith blank line"},
				FieldGroups:   {"math", "escaping"},
			},
		},
		{
			AnchorID: "345678",
			Type:     CardMCQ,
			Title:    "Card 345678",
			Fields: map[FieldKey][]string{
				FieldMCQ:    {"Pick one"},
				FieldAnswer: {"Right"},
				FieldOption: {"Wrong", "Also wrong|"},
			},
		},
		{
			AnchorID: "456789",
			Type:     CardCloze,
			Title:    "Card 456789",
			Fields: map[FieldKey][]string{
				FieldCloze: {"Paris is the {{c1::capital}} of {{c2::}}"},
			},
		},
	}

	for _, card := range cards {
		t.Run(card.AnchorID, func(t *testing.T) {
			actual, err := ParseCard(card.ToMarkdown())
			require.NoError(t, err)
			assert.Equal(t, card.Type, actual.Type)
			assert.Equal(t, card.Title, actual.Title)
			assert.Equal(t, card.Fields, actual.Fields)
			assert.True(t, card.Equal(*actual))
		})
	}
}

func TestUnescapeFieldValue(t *testing.T) {
	var tests = []struct {
		input      string
		expected   string
		reversible bool
	}{
		{`a \| b \\ c`, `a | b \ c`, true},
		{`\\\|`, `\|`, true},
		{`\\|`, `\|`, false},
		{`no escape`, `no escape`, true},
		{`\n stays`, `\n stays`, false},
		{`trailing \`, `trailing \`, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, unescapeFieldValue(tt.input))
			if tt.reversible {
				assert.Equal(t, tt.input, escapeFieldValue(tt.expected))
			}
		})
	}
}
