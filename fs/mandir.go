package fs

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/roff"
)

// Compile-time interface verification.
var _ docdex.Resolver = (*ManDir)(nil)

// ManDir resolves manual pages from a local man tree such as
// /usr/share/man. In sandboxed environments directory listing may be
// permitted while file reads are blocked, so callers should Probe
// before trusting the tree; a permission error during any later read
// disables the resolver for the remainder of the run rather than
// failing once per key.
type ManDir struct {
	base     string
	disabled bool
}

// NewManDir creates a ManDir rooted at base.
func NewManDir(base string) *ManDir {
	return &ManDir{base: base}
}

// Probe attempts to open (not merely stat) one representative file
// under the tree. It returns an error when the tree is missing or
// file reads are blocked. An empty tree probes clean.
func (m *ManDir) Probe() error {
	if _, err := os.Stat(m.base); err != nil {
		return err
	}
	entries, err := os.ReadDir(m.base)
	if err != nil {
		return err
	}
	for _, sub := range entries {
		if !sub.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(m.base, sub.Name()))
		if err != nil {
			continue
		}
		for _, entry := range files {
			if !entry.Type().IsRegular() {
				continue
			}
			f, err := os.Open(filepath.Join(m.base, sub.Name(), entry.Name()))
			if err != nil {
				return err
			}
			_ = f.Close()
			return nil
		}
	}
	return nil
}

// Disabled reports whether a permission error has disabled the tree.
func (m *ManDir) Disabled() bool {
	return m.disabled
}

// Resolve reads the manual page for cmd, trying each section in the
// fixed search order and both gzipped and plain file layouts. It
// returns the first non-empty normalized result.
func (m *ManDir) Resolve(_ context.Context, cmd string) (string, bool) {
	if m.disabled {
		return "", false
	}
	for _, section := range docdex.ManSections {
		candidates := []string{
			filepath.Join(m.base, "man"+section, cmd+"."+section+".gz"),
			filepath.Join(m.base, "man"+section, cmd+"."+section),
			filepath.Join(m.base, "man"+section, cmd+".gz"),
		}
		for _, path := range candidates {
			raw, err := readMaybeGzipped(path)
			if err != nil {
				if errors.Is(err, fs.ErrPermission) {
					// Fail fast once; subsequent keys skip the tree.
					m.disabled = true
					return "", false
				}
				continue
			}
			if text := roff.ToText(raw); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

// Enumerate returns command names derived from filenames in the given
// sections, sorted within each section, up to limit. It is used to
// index locally installed pages beyond the priority list.
func (m *ManDir) Enumerate(sections []string, limit int) []string {
	var cmds []string
	for _, section := range sections {
		entries, err := os.ReadDir(filepath.Join(m.base, "man"+section))
		if err != nil {
			continue
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			if len(cmds) >= limit {
				return cmds
			}
			if cmd, ok := commandFromFilename(name, section); ok {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds
}

// commandFromFilename derives the command name from a man filename,
// e.g. "grep.1.gz" in section 1 yields "grep".
func commandFromFilename(name, section string) (string, bool) {
	for _, suffix := range []string{"." + section + ".gz", "." + section, ".gz"} {
		if strings.HasSuffix(name, suffix) {
			cmd := strings.TrimSuffix(name, suffix)
			return cmd, cmd != ""
		}
	}
	return "", false
}

// readMaybeGzipped reads a file, transparently decompressing when the
// path ends with ".gz".
func readMaybeGzipped(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		r = gz
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
