// Package crawl discovers help pages by a one-time breadth-first walk
// of the remote help site and replays the persisted result on later
// runs.
package crawl

import "github.com/docdex/docdex"

// Compile-time interface verification.
var _ docdex.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO crawl frontier with an exact seen
// set. All slugs ever enqueued live in a single arena slice with an
// index-based head, which doubles as the append-only discovery log
// persisted when the crawl completes. Cycles in the link graph are
// handled by the seen set, never by recursion, so memory stays
// bounded and termination is guaranteed.
type Frontier struct {
	slugs []string
	next  int
	seen  map[string]struct{}
}

// NewFrontier creates an empty Frontier. Slugs in reserved are marked
// seen without being enqueued (e.g. the entry page itself).
func NewFrontier(reserved ...string) *Frontier {
	seen := make(map[string]struct{}, len(reserved))
	for _, slug := range reserved {
		seen[slug] = struct{}{}
	}
	return &Frontier{seen: seen}
}

// Push adds a slug to the frontier.
// Returns false if the slug has already been seen.
func (f *Frontier) Push(slug string) bool {
	if _, ok := f.seen[slug]; ok {
		return false
	}
	f.seen[slug] = struct{}{}
	f.slugs = append(f.slugs, slug)
	return true
}

// Pop returns the next unvisited slug in FIFO order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	if f.next >= len(f.slugs) {
		return "", false
	}
	slug := f.slugs[f.next]
	f.next++
	return slug, true
}

// Len returns the number of unvisited slugs in the queue.
func (f *Frontier) Len() int {
	return len(f.slugs) - f.next
}

// Seen returns true if the slug has been processed or queued.
func (f *Frontier) Seen(slug string) bool {
	_, ok := f.seen[slug]
	return ok
}

// Discovered returns every slug ever enqueued, in discovery order.
func (f *Frontier) Discovered() []string {
	out := make([]string, len(f.slugs))
	copy(out, f.slugs)
	return out
}
