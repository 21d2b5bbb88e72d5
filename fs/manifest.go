package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.SlugManifest = (*Manifest)(nil)

// Manifest persists the crawl frontier's discovered slug list as a
// newline-separated file. Its presence means the crawl has already
// run and must never repeat.
type Manifest struct {
	path string
}

// NewManifest creates a Manifest stored at path.
func NewManifest(path string) *Manifest {
	return &Manifest{path: path}
}

// Load returns the persisted slug list. ok is false when no manifest
// exists or it cannot be read.
func (m *Manifest) Load() ([]string, bool) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, false
	}
	var slugs []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			slugs = append(slugs, line)
		}
	}
	return slugs, true
}

// Save writes the full discovered slug list, creating parent
// directories as needed.
func (m *Manifest) Save(slugs []string) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(m.path, []byte(strings.Join(slugs, "\n")), 0o644)
}
