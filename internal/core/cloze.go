package core

import (
	"regexp"
	"strconv"
	"strings"
)

// ClozeRegex matches tokens like {{c1::answer}}. The answer can be empty.
var ClozeRegex = regexp.MustCompile(`\{\{c(\d+)::(.*?)\}\}`)

const (
	// ClozeHiddenMarker replaces a non-empty answer while the question is shown.
	ClozeHiddenMarker = "[…]"
	// ClozeEmptyMarker replaces an empty answer in every mode.
	ClozeEmptyMarker = "＿＿＿"
)

type ClozeMode int

const (
	ClozeQuestion ClozeMode = iota
	ClozeAnswer
)

// ClozeBlank is a single deletion inside a cloze text.
type ClozeBlank struct {
	Number   int    // The digits following "c"
	Answer   string // Can be empty
	Position int    // 1-based order of appearance
}

func (b ClozeBlank) IsEmpty() bool {
	return strings.TrimSpace(b.Answer) == ""
}

// Display returns the Markdown replacing the token in the given mode.
func (b ClozeBlank) Display(mode ClozeMode) string {
	if b.IsEmpty() {
		return ClozeEmptyMarker
	}
	if mode == ClozeQuestion {
		return ClozeHiddenMarker
	}
	return "**" + b.Answer + "**"
}

// HasCloze returns if the text contains at least one cloze token.
func HasCloze(text string) bool {
	return ClozeRegex.MatchString(text)
}

// ParseCloze returns the blanks in order of appearance.
func ParseCloze(text string) []ClozeBlank {
	var blanks []ClozeBlank
	for i, match := range ClozeRegex.FindAllStringSubmatch(text, -1) {
		number, _ := strconv.Atoi(match[1])
		blanks = append(blanks, ClozeBlank{
			Number:   number,
			Answer:   match[2],
			Position: i + 1,
		})
	}
	return blanks
}

// RenderCloze replaces every token according to the mode.
func RenderCloze(text string, mode ClozeMode) string {
	blanks := ParseCloze(text)
	i := 0
	return ClozeRegex.ReplaceAllStringFunc(text, func(string) string {
		blank := blanks[i]
		i++
		return blank.Display(mode)
	})
}

// StripCloze keeps only the answers.
func StripCloze(text string) string {
	return ClozeRegex.ReplaceAllString(text, "$2")
}
