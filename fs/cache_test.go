package fs_test

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/docdex/docdex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_key_is_in_exactly_one_state(t *testing.T) {
	t.Parallel()

	c := fs.NewCache(t.TempDir())

	// Never queried.
	assert.False(t, c.Contains("apt"))
	_, ok := c.Load("apt")
	assert.False(t, ok)

	// Positive-cached.
	c.Save("apt", "APT is the package manager.")
	assert.True(t, c.Contains("apt"))
	content, ok := c.Load("apt")
	assert.True(t, ok)
	assert.Equal(t, "APT is the package manager.", content)

	// Negative-cached: present record, no content.
	c.Save("no-such-cmd", "")
	assert.True(t, c.Contains("no-such-cmd"))
	_, ok = c.Load("no-such-cmd")
	assert.False(t, ok)
}

func TestCache_negative_write_is_idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := fs.NewCache(dir)

	c.Save("missing", "")
	c.Save("missing", "")

	data, err := os.ReadFile(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.True(t, c.Contains("missing"))
}

func TestCache_creates_directory_lazily(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "manpages")
	c := fs.NewCache(dir)

	assert.False(t, c.Contains("ls"))
	c.Save("ls", "list directory contents")

	content, ok := c.Load("ls")
	assert.True(t, ok)
	assert.Equal(t, "list directory contents", content)
}

func writeGzipped(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}
