package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/pkg/anchorid"
	"github.com/julien-sobczak/sprout/pkg/filesystem"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new [dir]",
	Short: "Print a new card anchor",
	Long:  `Generate an anchor not used by the documents of the directory.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		used, err := usedAnchors(dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		id, err := anchorid.NewUnused(func(id anchorid.ID) bool { return used[string(id)] }, 100)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(core.AnchorPrefix + id.String())
	},
}

// usedAnchors returns the anchor ids present in the documents of the directory.
func usedAnchors(dir string) (map[string]bool, error) {
	files, err := filesystem.ListMarkdownFiles(dir)
	if err != nil {
		return nil, err
	}
	used := make(map[string]bool)
	for _, relativePath := range files {
		content, err := os.ReadFile(filepath.Join(dir, relativePath))
		if err != nil {
			return nil, err
		}
		for _, anchor := range core.FindAnchors(string(content)) {
			used[anchor.ID] = true
		}
	}
	return used, nil
}
