package host

import (
	"strings"

	"github.com/julien-sobczak/sprout/internal/helpers"
	"github.com/julien-sobczak/sprout/pkg/text"
)

// Block is a chunk of the source delimited by blank lines.
// Fenced code and display math are never split.
type Block struct {
	Source string
	// 1-based line of the first line
	Line int
	Hash string
}

// IsMath returns if the block is a display formula.
func (b Block) IsMath() bool {
	source := strings.TrimSpace(b.Source)
	return len(source) > 4 && strings.HasPrefix(source, "$$") && strings.HasSuffix(source, "$$")
}

// SplitBlocks splits the source into blocks.
func SplitBlocks(source string) []Block {
	var blocks []Block
	var current []string
	start := 0
	fence := ""
	insideMath := false

	flush := func() {
		if len(current) == 0 {
			return
		}
		content := strings.Join(current, "\n")
		blocks = append(blocks, Block{
			Source: content,
			Line:   start,
			Hash:   helpers.HashString(content),
		})
		current = nil
	}

	for i, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)

		if fence == "" && !insideMath && text.IsBlank(line) {
			flush()
			continue
		}
		if len(current) == 0 {
			start = i + 1
		}
		current = append(current, line)

		switch {
		case fence != "":
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
		case insideMath:
			if strings.HasSuffix(trimmed, "$$") {
				insideMath = false
			}
		case strings.HasPrefix(trimmed, "```"):
			fence = "```"
		case strings.HasPrefix(trimmed, "~~~"):
			fence = "~~~"
		case strings.HasPrefix(trimmed, "$$"):
			// Single-line formulas close on the same line
			insideMath = trimmed == "$$" || !strings.HasSuffix(trimmed[2:], "$$")
		}
	}
	flush()
	return blocks
}
