package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/roff"
)

// DefaultManpagesBaseURL is the remote manual-page archive. Pages are
// addressed as {base}/{release}/man{section}/{command}.{section}.gz.
const DefaultManpagesBaseURL = "https://manpages.ubuntu.com/manpages.gz"

// Compile-time interface verification.
var _ docdex.Resolver = (*ManpageClient)(nil)

// ManpageClient fetches manual pages from the remote archive. For
// each command it tries the detected release and then the fallback
// release across every section in the fixed search order, so rolling
// or pre-release systems still resolve against a known-good snapshot.
type ManpageClient struct {
	base     string
	releases []string
	c        *client
}

// NewManpageClient creates a ManpageClient for the given archive base
// URL and detected release codename.
func NewManpageClient(baseURL, codename string, opts ...Option) *ManpageClient {
	return &ManpageClient{
		base:     baseURL,
		releases: dedupeReleases(codename, FallbackCodename),
		c:        newClient(opts...),
	}
}

// Resolve downloads the manual page for cmd and returns it as plain
// text. ok is false when no release/section combination yields
// usable content.
func (m *ManpageClient) Resolve(ctx context.Context, cmd string) (string, bool) {
	for _, release := range m.releases {
		for _, section := range docdex.ManSections {
			url := fmt.Sprintf("%s/%s/man%s/%s.%s.gz", m.base, release, section, cmd, section)
			body, ok := m.c.get(ctx, url)
			if !ok {
				continue
			}
			raw, err := gunzip(body)
			if err != nil {
				continue
			}
			if text := roff.ToText(raw); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

func gunzip(data []byte) (string, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer gz.Close()
	raw, err := io.ReadAll(gz)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
