// Package osrelease reads Ubuntu release information from
// os-release(5) files. Inside a snap the host's file is read through
// the hostfs mount, so detection reflects the machine rather than the
// snap's base.
package osrelease

import (
	"bufio"
	"os"
	"strings"
)

const (
	etcPath    = "/etc/os-release"
	hostfsPath = "/var/lib/snapd/hostfs/etc/os-release"

	// DefaultCodename is used when no codename can be detected.
	DefaultCodename = "noble"

	// DefaultVersionID is used when no version can be detected. The
	// "lts" alias is always present on help.ubuntu.com.
	DefaultVersionID = "lts"
)

// Path returns the os-release path to read: the host's file when
// running inside a snap, /etc/os-release otherwise.
func Path() string {
	if os.Getenv("SNAP") != "" {
		return hostfsPath
	}
	return etcPath
}

// Codename returns the release codename (e.g. "noble"), or
// DefaultCodename if the file is missing or has no VERSION_CODENAME.
func Codename() string {
	return readField(Path(), "VERSION_CODENAME", DefaultCodename)
}

// VersionID returns VERSION_ID (e.g. "24.04"), or DefaultVersionID if
// the file is missing or has no VERSION_ID.
func VersionID() string {
	return readField(Path(), "VERSION_ID", DefaultVersionID)
}

// CodenameFrom is Codename against an explicit path.
func CodenameFrom(path string) string {
	return readField(path, "VERSION_CODENAME", DefaultCodename)
}

// VersionIDFrom is VersionID against an explicit path.
func VersionIDFrom(path string) string {
	return readField(path, "VERSION_ID", DefaultVersionID)
}

func readField(path, key, fallback string) string {
	f, err := os.Open(path)
	if err != nil {
		return fallback
	}
	defer f.Close()

	prefix := key + "="
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value := strings.Trim(strings.TrimSpace(line[len(prefix):]), `"`)
		if value == "" {
			return fallback
		}
		return value
	}
	return fallback
}
