package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"docqa/internal/domain"
)

// supported lists the file extensions the directory loader understands.
// Anything else is skipped, not an error.
var supported = map[string]struct{}{
	".txt":      {},
	".text":     {},
	".md":       {},
	".markdown": {},
}

// DirectoryLoader reads every supported file under a directory tree and
// splits multi-page files (form-feed separated) into per-page documents.
type DirectoryLoader struct{}

func New() *DirectoryLoader { return &DirectoryLoader{} }

// LoadAll walks dir recursively and returns one Document per page of each
// supported file. Page labels are 1-based strings.
func (l *DirectoryLoader) LoadAll(dir string) ([]domain.Document, error) {
	var docs []domain.Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := supported[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, splitPages(filepath.Base(path), string(data))...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// splitPages breaks file content on form feeds into per-page documents.
// Pages that are empty after trimming are dropped.
func splitPages(fileName, content string) []domain.Document {
	pages := strings.Split(content, "\f")
	docs := make([]domain.Document, 0, len(pages))
	label := 0
	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		label++
		docs = append(docs, domain.Document{
			FileName:  fileName,
			PageLabel: strconv.Itoa(label),
			Text:      page,
		})
	}
	return docs
}
