package pptx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Discover lists the presentation files directly inside dir, in directory
// listing order. Subdirectories are not visited. An empty result is not an
// error.
func Discover(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir %s: %w", dir, err)
	}

	files := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return !e.IsDir() && IsPresentation(e.Name())
	})

	return lo.Map(files, func(e os.DirEntry, _ int) Document {
		return NewDocument(filepath.Join(dir, e.Name()))
	}), nil
}

// NewDocument builds a Document for a single file path
func NewDocument(path string) Document {
	name := filepath.Base(path)
	return Document{
		Path:     path,
		Name:     name,
		BaseName: strings.TrimSuffix(name, filepath.Ext(name)),
	}
}

// IsPresentation reports whether name looks like a presentation we should
// process. Hidden files and Office lock files (~$deck.pptx) are ignored.
func IsPresentation(name string) bool {
	name = filepath.Base(name)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), Extension)
}
