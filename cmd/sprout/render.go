package main

import (
	"context"
	"fmt"
	"os"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/engine"
	"github.com/julien-sobczak/sprout/internal/host"
	"github.com/julien-sobczak/sprout/pkg/markdown"
	"github.com/spf13/cobra"
)

var presetName string
var width int

func init() {
	renderCmd.Flags().StringVarP(&presetName, "preset", "p", "", "presentation preset overriding the configuration. Allowed: flashcard, accordion, minimal, guidebook, markdown")
	renderCmd.Flags().IntVarP(&width, "width", "w", 100, "width of the output in characters")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Display a document with its cards rendered",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		output, err := renderDocument(cmd.Context(), args[0], string(content), settingsWithPreset(presetName), width)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(output)
	},
}

// textRenderer displays the Markdown of the sections as plain text in the terminal.
var textRenderer = engine.RichRendererFunc(func(ctx context.Context, md string) (string, error) {
	return markdown.ToText(md), nil
})

// settingsWithPreset loads the configuration with another preset.
// The overrides of the configuration file still apply.
func settingsWithPreset(name string) func() (core.Config, error) {
	return func() (core.Config, error) {
		settings, err := loadSettings()
		if err != nil {
			return core.Config{}, err
		}
		if name != "" {
			settings.Presentation.Preset = name
		}
		return settings.Normalize()
	}
}

// renderDocument renders the cards of the document once and returns the terminal output.
func renderDocument(ctx context.Context, path string, source string, settings func() (core.Config, error), width int) (string, error) {
	h := host.New(path)
	h.Render(source)

	e := engine.New(h.Document(), engine.Options{
		Source:   h,
		Path:     path,
		Settings: settings,
		Rich:     textRenderer,
	})
	if err := e.Start(ctx); err != nil {
		return "", err
	}
	defer e.Close()

	view := host.NewView(e.Config().Presentation.Columns, width)
	return view.Render(h.Document().Root()), nil
}
