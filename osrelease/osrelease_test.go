package osrelease_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docdex/docdex/osrelease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOSRelease(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCodenameFrom(t *testing.T) {
	t.Parallel()

	t.Run("reads quoted and unquoted values", func(t *testing.T) {
		t.Parallel()

		path := writeOSRelease(t, `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="24.04"
VERSION_CODENAME=noble
UBUNTU_CODENAME=noble
`)
		assert.Equal(t, "noble", osrelease.CodenameFrom(path))

		path = writeOSRelease(t, `VERSION_CODENAME="jammy"`)
		assert.Equal(t, "jammy", osrelease.CodenameFrom(path))
	})

	t.Run("defaults when the field is absent", func(t *testing.T) {
		t.Parallel()

		path := writeOSRelease(t, `NAME="Debian GNU/Linux"`)
		assert.Equal(t, osrelease.DefaultCodename, osrelease.CodenameFrom(path))
	})

	t.Run("defaults when the file is missing", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, osrelease.DefaultCodename,
			osrelease.CodenameFrom(filepath.Join(t.TempDir(), "absent")))
	})
}

func TestVersionIDFrom(t *testing.T) {
	t.Parallel()

	t.Run("reads the version", func(t *testing.T) {
		t.Parallel()

		path := writeOSRelease(t, `VERSION_ID="24.04"
VERSION_CODENAME=noble
`)
		assert.Equal(t, "24.04", osrelease.VersionIDFrom(path))
	})

	t.Run("defaults when absent or empty", func(t *testing.T) {
		t.Parallel()

		path := writeOSRelease(t, `VERSION_ID=""`)
		assert.Equal(t, osrelease.DefaultVersionID, osrelease.VersionIDFrom(path))

		path = writeOSRelease(t, `NAME="Ubuntu"`)
		assert.Equal(t, osrelease.DefaultVersionID, osrelease.VersionIDFrom(path))
	})
}

func TestPath(t *testing.T) {
	t.Run("uses hostfs path inside a snap", func(t *testing.T) {
		t.Setenv("SNAP", "/snap/docdex/1")
		assert.Equal(t, "/var/lib/snapd/hostfs/etc/os-release", osrelease.Path())
	})

	t.Run("uses /etc outside a snap", func(t *testing.T) {
		t.Setenv("SNAP", "")
		assert.Equal(t, "/etc/os-release", osrelease.Path())
	})
}
