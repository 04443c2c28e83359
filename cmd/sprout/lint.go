package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint <file>...",
	Short: "Lint",
	Long:  `Check the card syntax of documents.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		found := false
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			violations := core.Lint(string(content))
			if len(violations) > 0 {
				found = true
				fmt.Print(formatViolations(path, violations))
			}
		}
		if found {
			os.Exit(1)
		}
	},
}

var (
	ruleColor = color.New(color.FgRed, color.Bold)
	pathColor = color.New(color.FgCyan)
)

func formatViolations(path string, violations []core.Violation) string {
	var sb strings.Builder
	for _, violation := range violations {
		fmt.Fprintf(&sb, "%s:%d: %s %s\n",
			pathColor.Sprint(path),
			violation.Line,
			ruleColor.Sprintf("[%s]", violation.Rule),
			violation.Message)
	}
	return sb.String()
}
