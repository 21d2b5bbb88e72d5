package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/mallard"
)

// HelpDir reads Mallard help pages from a local help tree such as
// /usr/share/help. When the tree is readable and yields documents,
// the remote help site is never consulted.
type HelpDir struct {
	base string
}

// NewHelpDir creates a HelpDir rooted at base.
func NewHelpDir(base string) *HelpDir {
	return &HelpDir{base: base}
}

// Probe attempts to open one representative file under the tree.
func (h *HelpDir) Probe() error {
	return NewManDir(h.base).Probe()
}

// Documents parses every .page file under the given locale
// directories, in order, up to limit. Unparseable pages are skipped.
func (h *HelpDir) Documents(locales []string, limit int) []*docdex.Document {
	var docs []*docdex.Document
	for _, locale := range locales {
		dir := filepath.Join(h.base, locale)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".page") {
				return nil //nolint:nilerr // unreadable entries are skipped
			}
			if len(docs) >= limit {
				return filepath.SkipAll
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			page, err := mallard.ParsePage(data)
			if err != nil || page.Content == "" {
				return nil
			}
			title := page.Title
			if title == "" {
				title = strings.TrimSuffix(d.Name(), ".page")
			}
			rel, err := filepath.Rel(h.base, path)
			if err != nil {
				rel = path
			}
			docs = append(docs, &docdex.Document{
				ID:      uuid.New().String(),
				Content: docdex.Truncate(page.Content),
				Source:  rel,
				Title:   title,
			})
			return nil
		})
	}
	return docs
}
