package filesystem

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// MarkdownExtensions lists the extensions of the documents containing cards.
var MarkdownExtensions = []string{".md", ".markdown"}

// IsMarkdown returns if the file is a Markdown document.
func IsMarkdown(path string) bool {
	return slices.Contains(MarkdownExtensions, strings.ToLower(filepath.Ext(path)))
}

// ListMarkdownFiles lists the Markdown documents present in a directory recursively,
// as paths relative to the directory. Hidden directories are skipped.
func ListMarkdownFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsMarkdown(path) {
			return nil
		}
		relativePath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(relativePath))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
