package crawl

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/goquery"
)

// DefaultMaxPages bounds the number of help documents gathered in one
// crawl or replay.
const DefaultMaxPages = 200

// Crawler gathers help-page documents. The first run performs a
// breadth-first crawl of the remote site seeded from the index page
// and persists the discovered slug list; every later run replays the
// manifest with no re-discovery, hitting the network only for slugs
// the cache has never seen. Fetches are sequential, one round-trip at
// a time, which keeps frontier state trivially consistent and is
// polite to the remote server.
type Crawler struct {
	Fetcher  docdex.PageFetcher
	Cache    docdex.DocCache
	Manifest docdex.SlugManifest
	MaxPages int
	Logger   *slog.Logger
}

// Run returns help documents, crawling or replaying as appropriate.
// An unreachable site yields an empty result, never an error: help
// documents are additive and their absence must not fail the build.
func (c *Crawler) Run(ctx context.Context) []*docdex.Document {
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if slugs, ok := c.Manifest.Load(); ok {
		logger.Debug("replaying persisted crawl", "slugs", len(slugs))
		return c.replay(ctx, slugs, maxPages)
	}
	return c.crawl(ctx, maxPages, logger)
}

// replay hydrates documents for an already-discovered slug list
// through the cache-then-network resolver chain: content comes from
// the cache when possible, and never-cached slugs are resolved once
// and cached, hit or miss.
func (c *Crawler) replay(ctx context.Context, slugs []string, maxPages int) []*docdex.Document {
	resolver := &docdex.CachedResolver{Cache: c.Cache, Source: c.source()}

	var docs []*docdex.Document
	for _, slug := range slugs {
		if len(docs) >= maxPages {
			break
		}
		content, _ := resolver.Resolve(ctx, slug)
		if strings.TrimSpace(content) != "" {
			docs = append(docs, newHelpDocument(slug, content))
		}
	}
	return docs
}

// source returns the network tier of the replay chain. A fetcher
// that resolves to plain text itself (http.HelpClient) is used
// directly; any other fetcher has its pages normalized here.
func (c *Crawler) source() docdex.Resolver {
	if r, ok := c.Fetcher.(docdex.Resolver); ok {
		return r
	}
	return docdex.ResolverFunc(func(ctx context.Context, slug string) (string, bool) {
		html, ok := c.Fetcher.FetchPage(ctx, slug)
		if !ok {
			return "", false
		}
		text := goquery.NormalizeHelpHTML(html)
		return text, text != ""
	})
}

// crawl performs the one-time breadth-first discovery.
func (c *Crawler) crawl(ctx context.Context, maxPages int, logger *slog.Logger) []*docdex.Document {
	seedHTML, ok := c.Fetcher.FetchSeed(ctx)
	if !ok {
		logger.Warn("help site unreachable, skipping help documents")
		return nil
	}

	// The index page is reserved so no discovered link re-enqueues it.
	frontier := NewFrontier("index")
	for _, slug := range goquery.ExtractHelpSlugs(seedHTML) {
		frontier.Push(slug)
	}

	var docs []*docdex.Document
	for len(docs) < maxPages {
		slug, ok := frontier.Pop()
		if !ok {
			break
		}

		var content string
		if cached, ok := c.Cache.Load(slug); ok {
			// A resumed crawl may find pages hydrated by an earlier,
			// interrupted run. Links from those pages are lost, which
			// is acceptable: the cache only holds visited pages.
			content = cached
		} else if !c.Cache.Contains(slug) {
			if html, ok := c.Fetcher.FetchPage(ctx, slug); ok {
				content = goquery.NormalizeHelpHTML(html)
				for _, sub := range goquery.ExtractHelpSlugs(html) {
					frontier.Push(sub)
				}
			}
			c.Cache.Save(slug, content) // empty content = negative record
		}

		if strings.TrimSpace(content) != "" {
			docs = append(docs, newHelpDocument(slug, content))
		}
	}

	if err := c.Manifest.Save(frontier.Discovered()); err != nil {
		logger.Warn("failed to persist crawl manifest", "error", err)
	}
	logger.Debug("crawl complete", "discovered", len(frontier.Discovered()), "documents", len(docs))
	return docs
}

func newHelpDocument(slug, content string) *docdex.Document {
	return &docdex.Document{
		ID:      uuid.New().String(),
		Content: docdex.Truncate(content),
		Source:  "ubuntu-help/" + slug,
		Title:   titleFor(slug, content),
	}
}

// titleFor uses the first normalized line as the document title,
// falling back to the slug with dashes spelled out.
func titleFor(slug, content string) string {
	if line, _, _ := strings.Cut(content, "\n"); strings.TrimSpace(line) != "" {
		return strings.TrimSpace(line)
	}
	return titleCase(strings.ReplaceAll(slug, "-", " "))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
