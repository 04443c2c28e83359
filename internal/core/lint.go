package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julien-sobczak/sprout/internal/medias"
	"github.com/julien-sobczak/sprout/pkg/text"
)

const (
	RuleUnparsableCard    = "unparsable-card"
	RuleDuplicateAnchor   = "duplicate-anchor"
	RuleUnterminatedField = "unterminated-field"
	RuleInvalidImage      = "invalid-image"
	RuleAnchorInField     = "anchor-in-field"
)

// Violation is a problem found in the card syntax of a document.
type Violation struct {
	Rule     string
	AnchorID string
	Line     int // 1-based
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%d: [%s] %s", v.Line, v.Rule, v.Message)
}

// Lint checks every card present in the document.
func Lint(doc string) []Violation {
	var violations []Violation
	firstLines := make(map[string]int)
	lines := strings.Split(CleanInvisible(doc), "\n")

	for _, anchor := range FindAnchors(doc) {
		// An anchor ends the current card, even inside a field value
		if line := lines[anchor.Line-1]; IsFieldStart(line) || hasTerminator(line) {
			violations = append(violations, Violation{
				Rule:     RuleAnchorInField,
				AnchorID: anchor.ID,
				Line:     anchor.Line,
				Message:  fmt.Sprintf("anchor %s inside a field value ends the previous card", anchor.ID),
			})
			continue
		}

		if firstLine, ok := firstLines[anchor.ID]; ok {
			violations = append(violations, Violation{
				Rule:     RuleDuplicateAnchor,
				AnchorID: anchor.ID,
				Line:     anchor.Line,
				Message:  fmt.Sprintf("anchor %s already used on line %d", anchor.ID, firstLine),
			})
			continue
		}
		firstLines[anchor.ID] = anchor.Line

		iterator := text.NewLineIteratorFromText(doc)
		iterator.Seek(anchor.Line + 1)
		fields, _ := scanFields(iterator)
		for _, field := range fields {
			if !field.Terminated {
				violations = append(violations, Violation{
					Rule:     RuleUnterminatedField,
					AnchorID: anchor.ID,
					Line:     field.Line,
					Message:  fmt.Sprintf("field %s is missing the closing pipe", field.Key),
				})
			}
		}

		card, err := assembleCard(anchor.ID, fields)
		if err == nil && card.Type == CardIO {
			if path := medias.ReferencedPath(card.Value(FieldImageOcclusion)); !medias.IsImage(path) {
				violations = append(violations, Violation{
					Rule:     RuleInvalidImage,
					AnchorID: anchor.ID,
					Line:     fieldLine(fields, FieldImageOcclusion),
					Message:  fmt.Sprintf("%q is not an image (%s)", path, medias.MimeType(filepath.Ext(path))),
				})
			}
		}
		if errors.Is(err, ErrNotACard) {
			violations = append(violations, Violation{
				Rule:     RuleUnparsableCard,
				AnchorID: anchor.ID,
				Line:     anchor.Line,
				Message:  fmt.Sprintf("anchor %s is not followed by a question field", anchor.ID),
			})
		}
	}

	return violations
}

func fieldLine(fields []rawField, key FieldKey) int {
	for _, field := range fields {
		if parsed, ok := ParseFieldKey(field.Key); ok && parsed == key {
			return field.Line
		}
	}
	return 0
}
