package fs

import (
	"os"
	"path/filepath"
)

// DefaultCacheDir returns the cache directory for this installation:
// $SNAP_USER_COMMON/cache inside a snap, ~/.cache/docdex otherwise.
// The directory is created if missing.
func DefaultCacheDir() string {
	var dir string
	if common := os.Getenv("SNAP_USER_COMMON"); common != "" {
		dir = filepath.Join(common, "cache")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".cache", "docdex")
	}
	_ = os.MkdirAll(dir, 0o755)
	return dir
}
