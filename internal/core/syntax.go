package core

import (
	"regexp"
	"strings"

	"github.com/julien-sobczak/sprout/internal/markdown"
)

var (
	regexAnchorMarker     = regexp.MustCompile(`\^sprout-\d{6,12}`)
	regexFieldStartPrefix = regexp.MustCompile(`(?m)^[A-Za-z]+[ \t]*\|[ \t]*`)
	regexFieldTerminator  = regexp.MustCompile(`(?m)(^|[^\\])\|[ \t]*$`)
)

// StripCardSyntax removes the card grammar (anchors, field keys, terminators, escapes, cloze tokens)
// to keep only the text a reader would see.
func StripCardSyntax() markdown.Transformer {
	return func(document markdown.Document) (markdown.Document, error) {
		md := CleanInvisible(string(document))
		md = regexAnchorMarker.ReplaceAllString(md, "")
		md = regexFieldStartPrefix.ReplaceAllString(md, "")
		md = regexFieldTerminator.ReplaceAllString(md, "$1")
		md = unescapeFieldValue(md)
		md = StripCloze(md)
		return markdown.Document(md), nil
	}
}

// StripMarkup removes every decoration from a card source or a rendered text.
func StripMarkup(text string) string {
	stripped := markdown.Document(text).MustTransform(
		markdown.StripHTMLComments(),
		StripCardSyntax(),
		markdown.StripWikilinks(),
		markdown.StripEmphasis(),
		markdown.StripMathDelimiters(),
	)
	return strings.TrimSpace(stripped.NormalizeSpace().String())
}
