package text

import (
	"strings"
)

// Line is a single line of a text with its 1-based position.
type Line struct {
	Text   string
	Number int
}

// MissingLine is returned when reading past the boundaries of a text.
// It behaves like a blank line so that callers can chain checks safely.
var MissingLine = Line{
	Text:   "",
	Number: -1,
}

func (l Line) IsBlank() bool {
	return IsBlank(l.Text)
}

func (l Line) IsMissing() bool {
	return l.Number == MissingLine.Number
}

// LineIterator implements the Iterator pattern to iterate over text lines.
type LineIterator struct {
	index int
	lines []string
}

func NewLineIteratorFromText(text string) *LineIterator {
	return &LineIterator{
		index: 0,
		lines: strings.Split(text, "\n"),
	}
}

func (l *LineIterator) HasNext() bool {
	return l.index < len(l.lines)
}

// Peek is similar to Next but does not move the iterator.
func (l *LineIterator) Peek() Line {
	if l.HasNext() {
		return Line{Text: l.lines[l.index], Number: l.index + 1}
	}
	return MissingLine
}

func (l *LineIterator) Next() Line {
	line := l.Peek()
	if !line.IsMissing() {
		l.index++
	}
	return line
}

// SkipBlankLines moves the iterator to the next non-blank line.
func (l *LineIterator) SkipBlankLines() {
	for l.HasNext() && l.Peek().IsBlank() {
		l.index++
	}
}

// Seek moves the iterator so that the next call to Next returns the given line number.
func (l *LineIterator) Seek(number int) {
	switch {
	case number < 1:
		l.index = 0
	case number > len(l.lines):
		l.index = len(l.lines)
	default:
		l.index = number - 1
	}
}
