package core

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/julien-sobczak/sprout/internal/markdown"
	"github.com/julien-sobczak/sprout/pkg/text"
)

// AnchorPrefix precedes the digits identifying a card.
const AnchorPrefix = "^sprout-"

var (
	// Golang doesn't support lookahead. See anchorIDs for longer numbers.
	regexAnchor     = regexp.MustCompile(`\^sprout-(\d{6,12})`)
	regexFieldStart = regexp.MustCompile(`^([A-Za-z]+)\s*\|\s*(.*)$`)
	regexTerminator = regexp.MustCompile(`(?:^|[^\\])\|\s*$`)
)

var (
	// ErrNoAnchor is returned when the text doesn't contain an anchor marker.
	ErrNoAnchor = errors.New("no anchor found")
	// ErrNotACard is returned when no field determines the card type.
	ErrNotACard = errors.New("not a card")
)

// Characters inserted by editors that must not influence parsing
var invisibleReplacer = strings.NewReplacer(
	"\u200b", "", // zero width space
	"\u200c", "", // zero width non-joiner
	"\u200d", "", // zero width joiner
	"\u2060", "", // word joiner
	"\ufeff", "", // byte order mark
	"\u00ad", "", // soft hyphen
)

// CleanInvisible removes invisible marker characters.
func CleanInvisible(s string) string {
	return invisibleReplacer.Replace(s)
}

// Anchor locates a card marker inside a document.
type Anchor struct {
	ID   string
	Line int // 1-based
}

// anchorIDs returns the anchor ids present in the text.
// A match followed by another digit is the prefix of a longer number and is ignored.
func anchorIDs(s string) []string {
	var ids []string
	for _, match := range regexAnchor.FindAllStringSubmatchIndex(s, -1) {
		if end := match[1]; end < len(s) && s[end] >= '0' && s[end] <= '9' {
			continue
		}
		ids = append(ids, s[match[2]:match[3]])
	}
	return ids
}

// MatchAnchor returns the first anchor id present on the line.
func MatchAnchor(line string) (string, bool) {
	ids := anchorIDs(CleanInvisible(line))
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// ContainsAnchor returns if a text contains at least one anchor.
func ContainsAnchor(s string) bool {
	return len(anchorIDs(CleanInvisible(s))) > 0
}

// FindAnchors returns every anchor present in a document in order of appearance.
func FindAnchors(doc string) []Anchor {
	var anchors []Anchor
	for i, line := range strings.Split(CleanInvisible(doc), "\n") {
		for _, id := range anchorIDs(line) {
			anchors = append(anchors, Anchor{ID: id, Line: i + 1})
		}
	}
	return anchors
}

// IsFieldStart returns if a line opens a field (ex: "Q| What is...").
func IsFieldStart(line string) bool {
	return regexFieldStart.MatchString(line)
}

// cutTerminator removes the trailing unescaped pipe closing a field.
func cutTerminator(line string) (string, bool) {
	if !regexTerminator.MatchString(line) {
		return line, false
	}
	trimmed := strings.TrimRightFunc(line, func(r rune) bool { return r == ' ' || r == '\t' || r == '\r' })
	return strings.TrimSuffix(trimmed, "|"), true
}

func hasTerminator(line string) bool {
	_, ok := cutTerminator(line)
	return ok
}

// unescapeFieldValue converts \\ to \ and \| to | in a single pass.
func unescapeFieldValue(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var sb strings.Builder
	sb.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\\' && i+1 < len(value) && (value[i+1] == '\\' || value[i+1] == '|') {
			sb.WriteByte(value[i+1])
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// rawField is a field as present in the source, before unescaping.
type rawField struct {
	Key        string
	Lines      []string
	Line       int // 1-based line of the field start
	Terminated bool
}

// scanFields consumes fields from the iterator until the end of the card.
// It returns the fields and the number of the last line belonging to the card (0 if none).
func scanFields(iterator *text.LineIterator) ([]rawField, int) {
	var fields []rawField
	var current *rawField
	lastLine := 0

	for iterator.HasNext() {
		line := iterator.Peek()

		if current != nil {
			if _, ok := MatchAnchor(line.Text); ok {
				// Next card
				break
			}
			iterator.Next()
			lastLine = line.Number
			// Blank lines inside a field are kept (ex: formula blocks)
			if content, ok := cutTerminator(line.Text); ok {
				current.Lines = append(current.Lines, content)
				current.Terminated = true
				fields = append(fields, *current)
				current = nil
			} else {
				current.Lines = append(current.Lines, line.Text)
			}
			continue
		}

		if line.IsBlank() {
			// Blank lines between fields are insignificant
			iterator.Next()
			continue
		}
		if _, ok := MatchAnchor(line.Text); ok {
			break
		}
		if ok, _, _ := markdown.IsHeading(line.Text); ok {
			break
		}
		match := regexFieldStart.FindStringSubmatch(line.Text)
		if match == nil {
			break
		}

		iterator.Next()
		lastLine = line.Number
		field := rawField{
			Key:  match[1],
			Line: line.Number,
		}
		if content, ok := cutTerminator(match[2]); ok {
			field.Lines = []string{content}
			field.Terminated = true
			fields = append(fields, field)
		} else {
			field.Lines = []string{match[2]}
			current = &field
		}
	}

	if current != nil {
		// Unterminated field at the end of the text
		fields = append(fields, *current)
	}

	return fields, lastLine
}

// ParseCard parses the raw text of a card.
// ErrNoAnchor or ErrNotACard are returned when the text is not a card.
func ParseCard(raw string) (*Card, error) {
	raw = CleanInvisible(raw)

	iterator := text.NewLineIteratorFromText(raw)
	anchorID := ""
	for iterator.HasNext() {
		if id, ok := MatchAnchor(iterator.Next().Text); ok {
			anchorID = id
			break
		}
	}
	if anchorID == "" {
		return nil, ErrNoAnchor
	}

	rawFields, _ := scanFields(iterator)
	return assembleCard(anchorID, rawFields)
}

// MustParseCard is similar to ParseCard but panics on invalid input.
func MustParseCard(raw string) Card {
	card, err := ParseCard(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid card: %v", err))
	}
	return *card
}

func assembleCard(anchorID string, rawFields []rawField) (*Card, error) {
	fields := make(map[FieldKey][]string)
	var groups []string
	for _, rawField := range rawFields {
		key, ok := ParseFieldKey(rawField.Key)
		if !ok {
			// Unknown fields are ignored
			continue
		}
		// Unescape once the field is complete, never line by line
		value := strings.TrimSpace(unescapeFieldValue(strings.Join(rawField.Lines, "\n")))
		if key == FieldGroups {
			groups = append(groups, value)
			continue
		}
		fields[key] = append(fields[key], value)
	}
	if len(groups) > 0 {
		var values []string
		for _, group := range strings.Split(strings.Join(groups, ","), ",") {
			group = strings.TrimSpace(group)
			if group != "" {
				values = append(values, group)
			}
		}
		fields[FieldGroups] = values
	}

	cardType, ok := inferCardType(fields)
	if !ok {
		return nil, ErrNotACard
	}

	title := fmt.Sprintf("Card %s", anchorID)
	if values, ok := fields[FieldTitle]; ok && strings.Join(values, " ") != "" {
		title = strings.Join(values, " ")
	}

	return &Card{
		AnchorID: anchorID,
		Type:     cardType,
		Title:    title,
		Fields:   fields,
	}, nil
}

func inferCardType(fields map[FieldKey][]string) (CardType, bool) {
	if _, ok := fields[FieldCloze]; ok {
		return CardCloze, true
	}
	if _, ok := fields[FieldMCQ]; ok {
		return CardMCQ, true
	}
	if _, ok := fields[FieldImageOcclusion]; ok {
		return CardIO, true
	}
	if _, ok := fields[FieldQuestion]; ok {
		return CardBasic, true
	}
	return "", false
}

// ExtractCardFromSource returns the raw text of the card identified by the anchor,
// reading the document source directly.
func ExtractCardFromSource(doc string, anchorID string) (string, bool) {
	iterator := text.NewLineIteratorFromText(doc)
	for iterator.HasNext() {
		line := iterator.Next()
		if !lineHasAnchor(line.Text, anchorID) {
			continue
		}
		start := line.Number
		_, last := scanFields(iterator)
		if last == 0 {
			last = start
		}
		block := markdown.Document(doc).ExtractLines(start, last)
		return block.String(), true
	}
	return "", false
}

func lineHasAnchor(line string, anchorID string) bool {
	return slices.Contains(anchorIDs(CleanInvisible(line)), anchorID)
}
