package docdex

// BuildProgress reports progress during index construction.
type BuildProgress struct {
	Stage     string // e.g. "man pages", "help pages", "embedding"
	Completed int
	Total     int // 0 when unknown
}

// BuildProgressFunc is called as build stages advance. It may be nil.
type BuildProgressFunc func(BuildProgress)
