package docdex

import "context"

// Frontier manages a crawl queue with exact deduplication.
// Unlike a probabilistic filter, the seen set must be exact: a false
// positive would permanently omit a page from the persisted slug
// manifest that replays the crawl on later runs.
type Frontier interface {
	// Push adds a slug to the frontier.
	// Returns false if the slug has already been seen.
	Push(slug string) bool

	// Pop returns the next unvisited slug in FIFO order.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of unvisited slugs in the queue.
	Len() int

	// Seen returns true if the slug has been processed or queued.
	Seen(slug string) bool

	// Discovered returns every slug ever enqueued, in discovery order.
	Discovered() []string
}

// PageFetcher retrieves raw help-page HTML from the remote site.
type PageFetcher interface {
	// FetchSeed retrieves the entry page, trying the detected release
	// and then the fallback release. ok is false when both fail.
	FetchSeed(ctx context.Context) (html string, ok bool)

	// FetchPage retrieves a single page by slug.
	FetchPage(ctx context.Context, slug string) (html string, ok bool)
}

// SlugManifest persists the discovered slug list so the crawl runs
// exactly once per installation.
type SlugManifest interface {
	// Load returns the persisted slug list. ok is false when no
	// manifest has been written yet.
	Load() (slugs []string, ok bool)

	// Save writes the full discovered slug list.
	Save(slugs []string) error
}
