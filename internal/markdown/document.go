package markdown

import (
	"strings"

	"github.com/julien-sobczak/sprout/internal/helpers"
	"github.com/julien-sobczak/sprout/pkg/text"
)

// Document represents a Markdown document (can be a whole file, or just a snippet)
type Document string

// Null object
var EmptyDocument = Document("")

// Lines returns the lines present in the Markdown document
func (m Document) Lines() []string {
	return strings.Split(string(m), "\n")
}

func (m Document) IsBlank() bool {
	return text.IsBlank(string(m))
}

func (m Document) Hash() string {
	return helpers.Hash([]byte(m))
}

func (m Document) Iterator() *text.LineIterator {
	return text.NewLineIteratorFromText(string(m))
}

func (m Document) String() string {
	return string(m)
}

// TrimSpace removes spaces at the start and end of a markdown document.
func (m Document) TrimSpace() Document {
	return Document(strings.TrimSpace(string(m)))
}

// NormalizeSpace collapses whitespace so that documents can be compared regardless of line wrapping.
func (m Document) NormalizeSpace() Document {
	return Document(text.NormalizeSpace(string(m)))
}

// ExtractLines returns the lines between start and end (1-based, inclusive).
// A negative end means until the end of the document.
func (m Document) ExtractLines(start, end int) Document {
	lines := m.Lines()
	if start < 1 {
		start = 1
	}
	if end < 0 || end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return EmptyDocument
	}
	return Document(strings.Join(lines[start-1:end], "\n"))
}

/*
 * Helpers
 */

// IsHeading returns if a given line is a Markdown heading and its level.
func IsHeading(line string) (bool, string, int) {
	if !strings.HasPrefix(line, "#") {
		return false, "", 0
	}
	for level := 6; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if strings.HasPrefix(line, prefix) {
			return true, strings.TrimPrefix(line, prefix), level
		}
	}
	return false, "", 0
}
