package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/store"
	"github.com/julien-sobczak/sprout/pkg/console"
	"github.com/julien-sobczak/sprout/pkg/filesystem"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Index the cards of the documents",
	Long:  `Save the location of every card so that rendered cards can be edited. Paths are relative to the home directory containing the index.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		s := openStore()
		defer s.Close()

		if _, _, err := indexDirectory(cmd.Context(), s, core.HomeDir(), dir, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// indexDirectory indexes the documents present in dir.
// Paths are saved relative to home, the directory of the index.
func indexDirectory(ctx context.Context, s *store.Store, home string, dir string, out io.Writer) (int, int, error) {
	home, err := filepath.Abs(home)
	if err != nil {
		return 0, 0, err
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return 0, 0, err
	}
	files, err := filesystem.ListMarkdownFiles(dir)
	if err != nil {
		return 0, 0, err
	}

	progress := console.NewProgress(len(files), console.ToWriter(out))
	total := 0
	for _, file := range files {
		progress.Step(file)
		path := filepath.Join(dir, filepath.FromSlash(file))
		content, err := os.ReadFile(path)
		if err != nil {
			return 0, 0, err
		}
		relativePath, err := filepath.Rel(home, path)
		if err != nil {
			return 0, 0, err
		}
		count, err := s.IndexDocument(ctx, filepath.ToSlash(relativePath), string(content))
		if err != nil {
			return 0, 0, fmt.Errorf("unable to index %s: %w", relativePath, err)
		}
		total += count
	}
	progress.Done(fmt.Sprintf("%d cards indexed in %d documents", total, len(files)))
	return total, len(files), nil
}

// documentPath returns the path of an indexed document.
func documentPath(home string, location *core.CardLocation) string {
	return filepath.Join(home, filepath.FromSlash(location.RelativePath))
}
