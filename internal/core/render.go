package core

import (
	"math/rand/v2"
	"strings"

	"github.com/gosimple/slug"
)

type SectionKind string

const (
	SectionQuestion SectionKind = "question"
	SectionOptions  SectionKind = "options"
	SectionAnswer   SectionKind = "answer"
	SectionInfo     SectionKind = "info"
	SectionGroups   SectionKind = "groups"
)

// Label returns the heading displayed above a section.
func (k SectionKind) Label() string {
	switch k {
	case SectionQuestion:
		return "Question"
	case SectionOptions:
		return "Options"
	case SectionAnswer:
		return "Answer"
	case SectionInfo:
		return "Information"
	case SectionGroups:
		return "Groups"
	}
	return string(k)
}

// Option is a possible answer of a multiple-choice card.
type Option struct {
	Markdown string
	Correct  bool
}

// Section is a part of a rendered card.
type Section struct {
	Kind      SectionKind
	Markdown  string
	Options   []Option     // Only for options sections
	Blanks    []ClozeBlank // Only for cloze cards
	Collapsed bool
}

// Content describes what to display for a card, independently of any output format.
type Content struct {
	AnchorID  string
	Type      CardType
	Title     string
	ShowTitle bool
	Slug      string
	Preset    Preset
	Sections  []Section
}

// Section returns the first section of the given kind.
func (c *Content) Section(kind SectionKind) (Section, bool) {
	for _, section := range c.Sections {
		if section.Kind == kind {
			return section, true
		}
	}
	return Section{}, false
}

// HasSection returns if a section of the given kind is present.
func (c *Content) HasSection(kind SectionKind) bool {
	_, ok := c.Section(kind)
	return ok
}

// ShuffleFunc reorders options in place.
type ShuffleFunc func(options []Option)

// DefaultShuffle randomizes the order using a random permutation.
func DefaultShuffle(options []Option) {
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}

// Renderer converts cards into content. It is safe to reuse between cards.
type Renderer struct {
	Config  PresentationConfig
	Shuffle ShuffleFunc
}

func NewRenderer(config PresentationConfig) *Renderer {
	return &Renderer{
		Config:  config,
		Shuffle: DefaultShuffle,
	}
}

// RenderCard renders a single card with the default shuffle.
func RenderCard(card Card, config PresentationConfig) *Content {
	return NewRenderer(config).Render(card)
}

// Render returns the content of the card.
// Every call reshuffles the options of multiple-choice cards.
func (r *Renderer) Render(card Card) *Content {
	content := &Content{
		AnchorID:  card.AnchorID,
		Type:      card.Type,
		Title:     card.Title,
		ShowTitle: r.Config.ShowTitle,
		Slug:      cardSlug(card),
		Preset:    r.Config.Preset,
	}

	switch card.Type {
	case CardBasic:
		content.add(r.question(card.Value(FieldQuestion)))
		r.addAnswer(content, card)
	case CardCloze:
		source := card.Value(FieldCloze)
		content.add(Section{
			Kind:     SectionQuestion,
			Markdown: RenderCloze(source, ClozeQuestion),
			Blanks:   ParseCloze(source),
		})
		if r.Config.ShowAnswer {
			content.add(Section{
				Kind:      SectionAnswer,
				Markdown:  RenderCloze(source, ClozeAnswer),
				Blanks:    ParseCloze(source),
				Collapsed: r.collapsed(),
			})
		}
	case CardMCQ:
		content.add(r.question(card.Value(FieldMCQ)))
		content.add(Section{
			Kind:    SectionOptions,
			Options: r.options(card),
			// Always collapsed to not give away the answer
			Collapsed: true,
		})
		r.addAnswer(content, card)
	case CardIO:
		content.add(r.question(card.Value(FieldImageOcclusion)))
		r.addAnswer(content, card)
	}

	if r.Config.ShowInfo && card.Has(FieldInfo) {
		content.add(Section{
			Kind:      SectionInfo,
			Markdown:  card.Value(FieldInfo),
			Collapsed: r.collapsed(),
		})
	}
	if r.Config.ShowGroups && len(card.Groups()) > 0 {
		content.add(Section{
			Kind:     SectionGroups,
			Markdown: strings.Join(card.Groups(), ", "),
		})
	}

	return content
}

func (c *Content) add(section Section) {
	c.Sections = append(c.Sections, section)
}

func (r *Renderer) question(markdown string) Section {
	return Section{
		Kind:     SectionQuestion,
		Markdown: markdown,
	}
}

func (r *Renderer) addAnswer(content *Content, card Card) {
	if !r.Config.ShowAnswer || !card.Has(FieldAnswer) {
		return
	}
	content.add(Section{
		Kind:      SectionAnswer,
		Markdown:  card.Value(FieldAnswer),
		Collapsed: r.collapsed(),
	})
}

func (r *Renderer) collapsed() bool {
	if r.Config.Preset.AlwaysExpanded() {
		return false
	}
	return r.Config.Collapsed
}

func (r *Renderer) options(card Card) []Option {
	var options []Option
	for _, answer := range card.Values(FieldAnswer) {
		options = append(options, Option{Markdown: answer, Correct: true})
	}
	for _, wrong := range card.Values(FieldOption) {
		options = append(options, Option{Markdown: wrong})
	}
	shuffle := r.Shuffle
	if shuffle == nil {
		shuffle = DefaultShuffle
	}
	shuffle(options)
	return options
}

// cardSlug returns a stable identifier usable in URLs and HTML ids.
func cardSlug(card Card) string {
	if !card.Has(FieldTitle) {
		return "sprout-" + card.AnchorID
	}
	return "sprout-" + card.AnchorID + "-" + slug.Make(card.Title)
}
