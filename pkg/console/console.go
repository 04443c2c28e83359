package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Progress rewrites a single terminal line while a command processes many files.
type Progress struct {
	output      io.Writer
	showBar     bool
	showPercent bool
	total       int
	current     int
	lineLength  int
}

func NewProgress(total int, options ...func(*Progress)) *Progress {
	result := &Progress{
		output:     os.Stdout,
		showBar:    true,
		total:      total,
		lineLength: 80,
	}
	for _, option := range options {
		option(result)
	}
	return result
}

func ToWriter(w io.Writer) func(*Progress) {
	return func(p *Progress) {
		p.output = w
	}
}

func HideBar() func(*Progress) {
	return func(p *Progress) {
		p.showBar = false
	}
}

func ShowPercent() func(*Progress) {
	return func(p *Progress) {
		p.showPercent = true
	}
}

func LineLength(characters int) func(*Progress) {
	return func(p *Progress) {
		p.lineLength = characters
	}
}

// Step moves to the next step and prints the message.
func (p *Progress) Step(message string) {
	p.current = min(p.current+1, p.total)
	p.Log(p.current, message)
}

// Log prints the message for the given step.
func (p *Progress) Log(step int, message string) {
	percent := 100
	if p.total > 0 {
		percent = step * 100 / p.total
	}

	var sb strings.Builder
	if p.showBar {
		// Between 0 and 10 '#'
		sb.WriteString(strings.Repeat("#", percent/10))
		sb.WriteString(strings.Repeat(" ", 10-percent/10))
		sb.WriteRune(' ')
	}
	if p.showPercent {
		fmt.Fprintf(&sb, "(%3d%%) ", percent)
	} else {
		fmt.Fprintf(&sb, "(%d/%d) ", step, p.total)
	}
	sb.WriteString(message)

	fmt.Fprint(p.output, p.pad(sb.String()), "\r")
}

// Done overwrites the progress line. An empty message leaves the line blank.
func (p *Progress) Done(message string) {
	fmt.Fprint(p.output, p.pad(message))
	if message == "" {
		fmt.Fprint(p.output, "\r")
	} else {
		fmt.Fprint(p.output, "\n")
	}
}

// pad truncates or completes the line to erase the previous one.
func (p *Progress) pad(line string) string {
	if utf8.RuneCountInString(line) > p.lineLength {
		line = string([]rune(line)[:p.lineLength])
	}
	return line + strings.Repeat(" ", p.lineLength-utf8.RuneCountInString(line))
}
