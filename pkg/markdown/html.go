package markdown

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Extensions used to parse card fields. Tables are deliberately excluded as
// card fields are themselves pipe-delimited.
const Extensions = parser.NoIntraEmphasis |
	parser.FencedCode |
	parser.Autolink |
	parser.Strikethrough |
	parser.SpaceHeadings |
	parser.BackslashLineBreak |
	parser.MathJax

// ToHTML converts a Markdown snippet to HTML.
func ToHTML(md string) string {
	p := parser.NewWithExtensions(Extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(md), p, renderer)
	return strings.TrimSpace(string(out))
}

// SafeToHTML is similar to ToHTML but converts a panic of the underlying
// converter into an error.
func SafeToHTML(md string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unable to convert Markdown to HTML: %v", r)
		}
	}()
	return ToHTML(md), nil
}
