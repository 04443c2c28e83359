package markdown

import (
	"regexp"
)

// Regex to match wikilinks
const regexWikilinkRaw = `\[\[([^\[\]|#]*?(?:#[^\[\]|]*?)?)(?:\|([^\[\]]*?))?\]\]`

var regexWikilink = regexp.MustCompile(`!?` + regexWikilinkRaw)

// Wikilink is an internal link.
// See https://en.wikipedia.org/wiki/Help:Link
type Wikilink struct {
	Link string
	Text string
}

// Label returns the text displayed for the link.
func (w Wikilink) Label() string {
	if w.Text != "" {
		return w.Text
	}
	return w.Link
}

// Wikilinks searches for wikilinks (embedded or not) inside a Markdown document.
func (m Document) Wikilinks() []Wikilink {
	var results []Wikilink
	for _, match := range regexWikilink.FindAllStringSubmatch(string(m), -1) {
		results = append(results, Wikilink{
			Link: match[1],
			Text: match[2],
		})
	}
	return results
}

// StripWikilinks replaces wikilinks by their label.
// Ex: [[path/to/note|A note]] => A note, [[note]] => note
func StripWikilinks() Transformer {
	return func(document Document) (Document, error) {
		md := regexWikilink.ReplaceAllStringFunc(string(document), func(raw string) string {
			match := regexWikilink.FindStringSubmatch(raw)
			return Wikilink{Link: match[1], Text: match[2]}.Label()
		})
		return Document(md), nil
	}
}
