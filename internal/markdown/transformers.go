package markdown

import (
	"regexp"
	"strings"

	"github.com/julien-sobczak/sprout/pkg/markdown"
	"github.com/julien-sobczak/sprout/pkg/text"
)

// Transformer applies changes on a Markdown document
type Transformer func(document Document) (Document, error)

// Transform applies transformers successively to create a new Markdown document
func (m Document) Transform(transformers ...Transformer) (Document, error) {
	result := m
	for _, transformer := range transformers {
		resultTransformed, err := transformer(result)
		if err != nil {
			return m, err
		}
		result = resultTransformed
	}
	return result, nil
}

// MustTransform is similar to Transform but does not expect an error
func (m Document) MustTransform(transformers ...Transformer) Document {
	result, err := m.Transform(transformers...)
	if err != nil {
		panic(err)
	}
	return result
}

/*
 * Transformers
 */

// ReplaceRegexp is a generic transformer replacing every match with the given template.
func ReplaceRegexp(re *regexp.Regexp, template string) Transformer {
	return func(document Document) (Document, error) {
		return Document(re.ReplaceAllString(string(document), template)), nil
	}
}

// StripHTMLComments transforms a Markdown document to remove HTML comments
func StripHTMLComments() Transformer {
	r := regexp.MustCompile(`(?s)<!--.+?-->`)
	return func(document Document) (Document, error) {
		md := r.ReplaceAllString(string(document), "")
		return Document(md), nil
	}
}

// SquashBlankLines removes blank lines when multiple successive blank lines are present
func SquashBlankLines() Transformer {
	return func(document Document) (Document, error) {
		return Document(text.SquashBlankLines(string(document))), nil
	}
}

// StripEmphasis removes Markdown emphasis characters (bold, italic, highlight, code, links).
func StripEmphasis() Transformer {
	return func(document Document) (Document, error) {
		lines := document.Lines()
		for i, line := range lines {
			lines[i] = markdown.StripEmphasis(line)
		}
		return Document(strings.Join(lines, "\n")), nil
	}
}

// StripMathDelimiters removes $ and $$ delimiters around formulas.
func StripMathDelimiters() Transformer {
	return func(document Document) (Document, error) {
		return Document(strings.ReplaceAll(string(document), "$", "")), nil
	}
}
