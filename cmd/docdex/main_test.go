package main_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/docdex/docdex"
	main "github.com/docdex/docdex/cmd/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "docdex")
	assert.Contains(t, stdout.String(), "index")
	assert.Contains(t, stdout.String(), "search")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"frobnicate"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_SearchRequiresQuery(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"search"}, &stdout, &stderr)

	assert.Error(t, err)
}

// embedServer answers the OpenAI embeddings API with a fixed vector
// per input.
func embedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		resp := map[string]any{"object": "list", "data": []any{}}
		data := make([]any, len(req.Input))
		for i, text := range req.Input {
			data[i] = map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float32{float32(len(text)), 1, 0.5},
			}
		}
		resp["data"] = data
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// unreachableServer returns a URL nothing listens on.
func unreachableServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return srv.URL
}

func writeManPage(t *testing.T, base, cmd, text string) {
	t.Helper()
	dir := filepath.Join(base, "man1")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := fmt.Fprintf(gz, ".TH %s 1\n.SH NAME\n%s\n", cmd, text)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, cmd+".1.gz"), buf.Bytes(), 0o644))
}

func TestMain_Run_IndexThenSearch(t *testing.T) {
	t.Parallel()

	manBase := t.TempDir()
	writeManPage(t, manBase, "apt", "apt - package management tool")
	writeManPage(t, manBase, "ls", "ls - list directory contents")

	cacheDir := t.TempDir()
	embed := embedServer(t)
	remote := unreachableServer(t)

	// Known-miss records for every priority command keep the build off
	// the (rate-limited) network; apt and ls resolve from the local tree.
	manCache := filepath.Join(cacheDir, "manpages")
	require.NoError(t, os.MkdirAll(manCache, 0o755))
	for _, cmd := range docdex.PriorityCommands {
		require.NoError(t, os.WriteFile(filepath.Join(manCache, cmd+".txt"), nil, 0o644))
	}

	common := []string{
		"--cache-dir", cacheDir,
		"--embed-url", embed.URL,
		"--man-path", manBase,
		"--help-path", filepath.Join(t.TempDir(), "no-help"),
		"--man-url", remote,
		"--help-url", remote,
	}

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), append([]string{"index"}, common...), &stdout, &stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "Indexed 2 documents")

	stdout.Reset()
	stderr.Reset()
	err = m.Run(context.Background(),
		append([]string{"search", "package", "management", "-k", "1"}, common...),
		&stdout, &stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "man ")
}
