// Package fs provides filesystem-backed implementations of the
// docdex source tiers: the local manual-page tree, the local help
// tree, and the shared on-disk lookup cache.
package fs

import (
	"os"
	"path/filepath"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.DocCache = (*Cache)(nil)

// Cache is a file-per-key lookup cache. A present-but-empty file is
// a negative record (looked up, confirmed absent), distinct from an
// absent file (never looked up). Records are never rewritten once
// present, so concurrent runs from multiple processes cannot corrupt
// each other: writes are idempotent given a stable source.
type Cache struct {
	dir string
}

// NewCache creates a Cache rooted at dir. The directory is created
// lazily on first save.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".txt")
}

// Contains reports whether key has been looked up before, hit or miss.
func (c *Cache) Contains(key string) bool {
	_, err := os.Stat(c.path(key))
	return err == nil
}

// Load returns cached content for key. ok is false when no record
// exists or the record is negative.
func (c *Cache) Load(key string) (string, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// Save persists a lookup outcome. Empty content writes the negative
// record. Failures are swallowed: a cache write must never abort the
// batch operation calling it.
func (c *Cache) Save(key, content string) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(c.path(key), []byte(content), 0o644)
}
