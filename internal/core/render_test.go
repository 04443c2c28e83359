package core

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasic(t *testing.T) {
	card := MustParseCard(`^sprout-123456
T|Addition|
Q|What is 2+2?|
A|4|
I|Basic arithmetic|
G|math, easy|`)

	content := RenderCard(card, PresetFlashcard.Defaults())
	assert.Equal(t, "123456", content.AnchorID)
	assert.Equal(t, CardBasic, content.Type)
	assert.Equal(t, "Addition", content.Title)
	assert.Equal(t, "sprout-123456-addition", content.Slug)
	assert.Equal(t, PresetFlashcard, content.Preset)
	require.Len(t, content.Sections, 4)
	assert.Equal(t, Section{Kind: SectionQuestion, Markdown: "What is 2+2?"}, content.Sections[0])
	assert.Equal(t, Section{Kind: SectionAnswer, Markdown: "4", Collapsed: true}, content.Sections[1])
	assert.Equal(t, Section{Kind: SectionInfo, Markdown: "Basic arithmetic", Collapsed: true}, content.Sections[2])
	assert.Equal(t, Section{Kind: SectionGroups, Markdown: "math, easy"}, content.Sections[3])
}

func TestRenderMissingFields(t *testing.T) {
	card := MustParseCard("^sprout-123456\nQ|Alone|")
	content := RenderCard(card, PresetGuidebook.Defaults())
	require.Len(t, content.Sections, 1)
	assert.True(t, content.HasSection(SectionQuestion))
	assert.False(t, content.HasSection(SectionAnswer))
	assert.False(t, content.HasSection(SectionInfo))
	assert.Equal(t, "sprout-123456", content.Slug)
}

func TestRenderPresets(t *testing.T) {
	card := MustParseCard("^sprout-123456\nQ|Question|\nA|Answer|\nI|Info|\nG|group|")

	var tests = []struct {
		preset    Preset
		sections  []SectionKind
		collapsed bool
	}{
		{PresetFlashcard, []SectionKind{SectionQuestion, SectionAnswer, SectionInfo, SectionGroups}, true},
		{PresetAccordion, []SectionKind{SectionQuestion, SectionAnswer, SectionInfo}, true},
		{PresetMinimal, []SectionKind{SectionQuestion, SectionAnswer}, true},
		{PresetGuidebook, []SectionKind{SectionQuestion, SectionAnswer, SectionInfo, SectionGroups}, false},
		{PresetMarkdown, []SectionKind{SectionQuestion, SectionAnswer, SectionInfo, SectionGroups}, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			content := RenderCard(card, tt.preset.Defaults())
			var kinds []SectionKind
			for _, section := range content.Sections {
				kinds = append(kinds, section.Kind)
			}
			assert.Equal(t, tt.sections, kinds)
			answer, ok := content.Section(SectionAnswer)
			require.True(t, ok)
			assert.Equal(t, tt.collapsed, answer.Collapsed)
		})
	}

	t.Run("Expanded presets ignore overrides", func(t *testing.T) {
		config := PresetMarkdown.Defaults()
		config.Collapsed = true
		content := RenderCard(card, config)
		answer, _ := content.Section(SectionAnswer)
		assert.False(t, answer.Collapsed)
	})
}

func TestRenderClozeCard(t *testing.T) {
	card := MustParseCard("^sprout-123456\nCQ|Paris is the {{c1::capital}} of {{c2::}}|")
	content := RenderCard(card, PresetFlashcard.Defaults())

	question, ok := content.Section(SectionQuestion)
	require.True(t, ok)
	assert.Equal(t, "Paris is the […] of ＿＿＿", question.Markdown)
	require.Len(t, question.Blanks, 2)

	answer, ok := content.Section(SectionAnswer)
	require.True(t, ok)
	assert.Equal(t, "Paris is the **capital** of ＿＿＿", answer.Markdown)
	assert.Equal(t, "capital", answer.Blanks[0].Answer)
	assert.Equal(t, 2, answer.Blanks[1].Position)
	assert.True(t, answer.Blanks[1].IsEmpty())
}

func TestRenderImageOcclusion(t *testing.T) {
	card := MustParseCard("^sprout-123456\nIO|![Map](map.png)|")
	content := RenderCard(card, PresetFlashcard.Defaults())
	require.Len(t, content.Sections, 1)
	assert.Equal(t, "![Map](map.png)", content.Sections[0].Markdown)
}

func TestRenderMultipleChoice(t *testing.T) {
	card := MustParseCard(`^sprout-123456
MCQ|Which language has goroutines?|
A|Go|
O|Java|
O|Python|
O|Ruby|`)

	expectedOptions := []Option{
		{Markdown: "Go", Correct: true},
		{Markdown: "Java"},
		{Markdown: "Python"},
		{Markdown: "Ruby"},
	}

	assertOptions := func(t *testing.T, content *Content) {
		options, ok := content.Section(SectionOptions)
		require.True(t, ok)
		assert.True(t, options.Collapsed)
		require.Len(t, options.Options, len(expectedOptions))
		assert.ElementsMatch(t, expectedOptions, options.Options)
		correct := 0
		for _, option := range options.Options {
			if option.Correct {
				correct++
			}
		}
		assert.Equal(t, 1, correct)
	}

	t.Run("Every permutation", func(t *testing.T) {
		for _, permutation := range permutations([]int{0, 1, 2, 3}) {
			renderer := NewRenderer(PresetGuidebook.Defaults())
			renderer.Shuffle = func(options []Option) {
				original := slices.Clone(options)
				for i, p := range permutation {
					options[i] = original[p]
				}
			}
			assertOptions(t, renderer.Render(card))
		}
	})

	t.Run("Default shuffle", func(t *testing.T) {
		renderer := NewRenderer(PresetFlashcard.Defaults())
		for i := 0; i < 50; i++ {
			assertOptions(t, renderer.Render(card))
		}
	})
}

func permutations(values []int) [][]int {
	if len(values) <= 1 {
		return [][]int{slices.Clone(values)}
	}
	var result [][]int
	for i := range values {
		rest := slices.Concat(values[:i:i], values[i+1:])
		for _, p := range permutations(rest) {
			result = append(result, append([]int{values[i]}, p...))
		}
	}
	return result
}
