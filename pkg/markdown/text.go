package markdown

import (
	"bytes"
	"regexp"
	"strings"
)

// How many spaces to indent code blocks
const indentCode = 4

var (
	reBoldAsterisks     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reBoldUnderscores   = regexp.MustCompile(`__(.*?)__`)
	reItalicAsterisks   = regexp.MustCompile(`\*(.*?)\*`)
	reItalicUnderscores = regexp.MustCompile(`(^|\W)_(.*?)_(\W|$)`)
	reStrikethrough     = regexp.MustCompile(`~~(.*?)~~`)
	reHighlight         = regexp.MustCompile(`==(.*?)==`)
	reInlineCode        = regexp.MustCompile("`([^`]*)`")
	reLink              = regexp.MustCompile(`(^|[^!])\[(.*?)\]\(.*?\)`)
	reImage             = regexp.MustCompile(`!\[(.*?)\]\(.*?\)`)
	reURL               = regexp.MustCompile(`<(https?://.*?)>`)
	reHTMLTag           = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
)

// ToText converts a Markdown snippet to plain text, suitable for terminal output.
func ToText(md string) string {
	var res bytes.Buffer

	// Block codes are kept verbatim but indented
	insideCode := false
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "```") {
			insideCode = !insideCode
			continue
		}
		if insideCode {
			res.WriteString(strings.Repeat(" ", indentCode))
			res.WriteString(line)
			res.WriteString("\n")
			continue
		}
		res.WriteString(StripEmphasis(line))
		res.WriteString("\n")
	}

	return strings.TrimSpace(res.String())
}

// StripEmphasis removes inline decoration (bold, italic, strikethrough, highlight, code, links).
func StripEmphasis(txt string) string {
	txt = reBoldAsterisks.ReplaceAllString(txt, "$1")
	txt = reBoldUnderscores.ReplaceAllString(txt, "$1")
	txt = reItalicAsterisks.ReplaceAllString(txt, "$1")
	txt = reItalicUnderscores.ReplaceAllString(txt, "$1$2$3")
	txt = reStrikethrough.ReplaceAllString(txt, "$1")
	txt = reHighlight.ReplaceAllString(txt, "$1")
	txt = reInlineCode.ReplaceAllString(txt, "$1")
	txt = reImage.ReplaceAllString(txt, "[$1]")
	txt = reLink.ReplaceAllString(txt, "$1$2")
	txt = reURL.ReplaceAllString(txt, "$1")
	txt = reHTMLTag.ReplaceAllString(txt, "")
	return txt
}
