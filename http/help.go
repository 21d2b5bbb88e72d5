package http

import (
	"context"
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/goquery"
)

// DefaultHelpBaseURL is the remote help site. Pages are addressed as
// {base}/{release}/ubuntu-help/{slug}.html.en.
const DefaultHelpBaseURL = "https://help.ubuntu.com"

// Compile-time interface verification.
var (
	_ docdex.PageFetcher = (*HelpClient)(nil)
	_ docdex.Resolver    = (*HelpClient)(nil)
)

// HelpClient fetches desktop help pages from the remote site. Once
// FetchSeed settles on a working release, all subsequent page fetches
// use it so a crawl never mixes releases.
type HelpClient struct {
	base     string
	releases []string
	active   string
	c        *client
}

// NewHelpClient creates a HelpClient for the given site base URL and
// detected release identifier (a version id such as "24.04").
func NewHelpClient(baseURL, release string, opts ...Option) *HelpClient {
	return &HelpClient{
		base:     baseURL,
		releases: dedupeReleases(release, FallbackHelpRelease),
		c:        newClient(opts...),
	}
}

func (h *HelpClient) pageURL(release, slug string) string {
	return fmt.Sprintf("%s/%s/ubuntu-help/%s.html.en", h.base, release, slug)
}

// FetchSeed retrieves the help index page, trying the detected
// release and then the fallback. ok is false when both fail.
func (h *HelpClient) FetchSeed(ctx context.Context) (string, bool) {
	for _, release := range h.releases {
		if body, ok := h.c.get(ctx, h.pageURL(release, "index")); ok {
			h.active = release
			return string(body), true
		}
	}
	return "", false
}

// FetchPage retrieves a single help page by slug as raw HTML.
func (h *HelpClient) FetchPage(ctx context.Context, slug string) (string, bool) {
	releases := h.releases
	if h.active != "" {
		releases = []string{h.active}
	}
	for _, release := range releases {
		if body, ok := h.c.get(ctx, h.pageURL(release, slug)); ok {
			return string(body), true
		}
	}
	return "", false
}

// Resolve fetches a help page and normalizes it to plain text,
// satisfying the network tier of the slug resolver chain.
func (h *HelpClient) Resolve(ctx context.Context, slug string) (string, bool) {
	html, ok := h.FetchPage(ctx, slug)
	if !ok {
		return "", false
	}
	text := goquery.NormalizeHelpHTML(html)
	return text, text != ""
}
