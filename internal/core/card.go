package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldKey identifies a labeled value inside a card.
type FieldKey string

const (
	FieldTitle          FieldKey = "T"
	FieldQuestion       FieldKey = "Q"
	FieldAnswer         FieldKey = "A"
	FieldInfo           FieldKey = "I"
	FieldMCQ            FieldKey = "MCQ"
	FieldCloze          FieldKey = "CQ"
	FieldOption         FieldKey = "O"
	FieldGroups         FieldKey = "G"
	FieldImageOcclusion FieldKey = "IO"
)

// FieldKeys lists the supported keys in their canonical order.
var FieldKeys = []FieldKey{
	FieldTitle,
	FieldQuestion,
	FieldMCQ,
	FieldCloze,
	FieldImageOcclusion,
	FieldAnswer,
	FieldOption,
	FieldInfo,
	FieldGroups,
}

// ParseFieldKey converts a raw key (case-insensitive) into a supported FieldKey.
func ParseFieldKey(raw string) (FieldKey, bool) {
	key := FieldKey(strings.ToUpper(raw))
	if slices.Contains(FieldKeys, key) {
		return key, true
	}
	return "", false
}

type CardType string

const (
	CardBasic CardType = "basic"
	CardCloze CardType = "cloze"
	CardMCQ   CardType = "mcq"
	CardIO    CardType = "io"
)

// Card is an immutable value object representing a single study card.
// Use accessors instead of reading Fields directly to avoid sharing slices.
type Card struct {
	// Digits following ^sprout- in the source
	AnchorID string `yaml:"anchor_id" json:"anchor_id"`
	Type     CardType `yaml:"type" json:"type"`
	Title    string   `yaml:"title" json:"title"`
	// One value per occurrence of the field (the groups field contains one value per group)
	Fields map[FieldKey][]string `yaml:"fields" json:"fields"`
}

// Has returns if the field is present.
func (c Card) Has(key FieldKey) bool {
	_, ok := c.Fields[key]
	return ok
}

// Value returns the field content, occurrences being joined with a newline.
func (c Card) Value(key FieldKey) string {
	return strings.Join(c.Fields[key], "\n")
}

// Values returns a copy of every occurrence of a field.
func (c Card) Values(key FieldKey) []string {
	return slices.Clone(c.Fields[key])
}

// Groups returns the list of groups declared by the G field.
func (c Card) Groups() []string {
	return c.Values(FieldGroups)
}

// Equal compares two cards by value.
func (c Card) Equal(other Card) bool {
	if c.AnchorID != other.AnchorID || c.Type != other.Type || c.Title != other.Title {
		return false
	}
	if len(c.Fields) != len(other.Fields) {
		return false
	}
	for key, values := range c.Fields {
		otherValues, ok := other.Fields[key]
		if !ok || !slices.Equal(values, otherValues) {
			return false
		}
	}
	return true
}

func (c Card) String() string {
	return fmt.Sprintf("%s card %q [%s]", c.Type, c.Title, c.AnchorID)
}

/* Format */

// Anchor returns the marker identifying the card in the source.
func (c Card) Anchor() string {
	return AnchorPrefix + c.AnchorID
}

// ToMarkdown serializes the card using the field grammar so that parsing the
// result returns an equal card.
// A value containing an anchor cannot be represented as the anchor ends the card
// (reported by the anchor-in-field lint rule).
func (c Card) ToMarkdown() string {
	var sb strings.Builder
	sb.WriteString(c.Anchor())
	sb.WriteString("\n")
	for _, key := range FieldKeys {
		values, ok := c.Fields[key]
		if !ok {
			continue
		}
		if key == FieldGroups {
			values = []string{strings.Join(values, ", ")}
		}
		for _, value := range values {
			sb.WriteString(string(key))
			sb.WriteString("|")
			sb.WriteString(escapeFieldValue(value))
			sb.WriteString("|\n")
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (c Card) ToYAML() string {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		// Fields only contain strings
		panic(err)
	}
	return buf.String()
}

func (c Card) ToJSON() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(data)
}

// escapeFieldValue is the inverse of unescapeFieldValue.
func escapeFieldValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `|`, `\|`)
	if strings.HasSuffix(value, `\`) {
		// A backslash before the terminator would escape it
		value += " "
	}
	return value
}
