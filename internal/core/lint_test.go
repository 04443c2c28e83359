package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLint(t *testing.T) {
	doc := `# Cards

^sprout-100001
Q|Valid|
A|Valid|

^sprout-100002
T|Missing question|

^sprout-100001
Q|Duplicate|

^sprout-100003
Q|Never closed
`

	violations := Lint(doc)
	assert.Equal(t, []Violation{
		{
			Rule:     RuleUnparsableCard,
			AnchorID: "100002",
			Line:     7,
			Message:  "anchor 100002 is not followed by a question field",
		},
		{
			Rule:     RuleDuplicateAnchor,
			AnchorID: "100001",
			Line:     10,
			Message:  "anchor 100001 already used on line 3",
		},
		{
			Rule:     RuleUnterminatedField,
			AnchorID: "100003",
			Line:     14,
			Message:  "field Q is missing the closing pipe",
		},
	}, violations)
	assert.Equal(t, "10: [duplicate-anchor] anchor 100001 already used on line 3", violations[1].String())
}

func TestLintValidDocument(t *testing.T) {
	assert.Empty(t, Lint("^sprout-123456\nQ|Question|\n\nSome text without card."))
	assert.Empty(t, Lint("No card at all"))
}

func TestLintImageOcclusion(t *testing.T) {
	doc := `^sprout-100001
IO|![Heart](medias/heart.png)|

^sprout-100002
T|Heart|
IO|medias/heart.pdf|
`

	assert.Equal(t, []Violation{
		{
			Rule:     RuleInvalidImage,
			AnchorID: "100002",
			Line:     6,
			Message:  `"medias/heart.pdf" is not an image (application/pdf)`,
		},
	}, Lint(doc))
}

func TestLintAnchorInField(t *testing.T) {
	doc := `^sprout-100001
Q|What?|
A|see ^sprout-999999|

^sprout-100002
Q|Multi-line
answer ^sprout-888888|
`

	violations := Lint(doc)
	assert.Equal(t, []Violation{
		{
			Rule:     RuleAnchorInField,
			AnchorID: "999999",
			Line:     3,
			Message:  "anchor 999999 inside a field value ends the previous card",
		},
		{
			Rule:     RuleUnterminatedField,
			AnchorID: "100002",
			Line:     6,
			Message:  "field Q is missing the closing pipe",
		},
		{
			Rule:     RuleAnchorInField,
			AnchorID: "888888",
			Line:     7,
			Message:  "anchor 888888 inside a field value ends the previous card",
		},
	}, violations)

	// Such a value cannot be written back
	card := Card{
		AnchorID: "100001",
		Type:     CardBasic,
		Title:    "Card 100001",
		Fields:   map[FieldKey][]string{FieldQuestion: {"see ^sprout-999999"}},
	}
	_, err := ParseCard(card.ToMarkdown())
	assert.ErrorIs(t, err, ErrNotACard)
}
