package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/spf13/cobra"
)

var outputFormat string
var anchorFilter string

func init() {
	parseCmd.Flags().StringVarP(&outputFormat, "format", "o", "yaml", "format of output. Allowed: json, md, yaml")
	parseCmd.Flags().StringVarP(&anchorFilter, "anchor", "a", "", "only parse the card with this anchor id")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Dump the cards of a document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cards := parseCards(string(content), anchorFilter)
		if err := dumpCards(os.Stdout, cards, outputFormat); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// parseCards returns the valid cards of the document in order of appearance.
func parseCards(source string, anchorID string) []core.Card {
	var cards []core.Card
	seen := make(map[string]bool)
	for _, anchor := range core.FindAnchors(source) {
		if seen[anchor.ID] || (anchorID != "" && anchor.ID != anchorID) {
			continue
		}
		seen[anchor.ID] = true
		raw, ok := core.ExtractCardFromSource(source, anchor.ID)
		if !ok {
			continue
		}
		card, err := core.ParseCard(raw)
		if err != nil {
			core.CurrentLogger().Infof("Ignoring anchor %s on line %d: %v", anchor.ID, anchor.Line, err)
			continue
		}
		cards = append(cards, *card)
	}
	return cards
}

func dumpCards(w io.Writer, cards []core.Card, format string) error {
	var parts []string
	for _, card := range cards {
		switch format {
		case "yaml":
			parts = append(parts, card.ToYAML())
		case "json":
			parts = append(parts, card.ToJSON())
		case "md":
			parts = append(parts, card.ToMarkdown())
		default:
			return fmt.Errorf("unsupported format %q", format)
		}
	}
	separator := "\n"
	if format == "yaml" {
		separator = "---\n"
	}
	for i, part := range parts {
		if i > 0 {
			fmt.Fprint(w, separator)
		}
		fmt.Fprint(w, strings.TrimSpace(part)+"\n")
	}
	return nil
}
