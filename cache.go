package docdex

// DocCache is a persistent resolved-or-failed lookup cache keyed by
// document key. A key is in exactly one of three states: never
// queried (Contains false), negative-cached (Contains true, Load
// false), or positive-cached (Load true).
type DocCache interface {
	// Contains reports whether the key has been looked up before,
	// regardless of outcome.
	Contains(key string) bool

	// Load returns previously cached content. ok is false when the
	// key was never cached or carries a negative record.
	Load(key string) (content string, ok bool)

	// Save persists a lookup outcome. Empty content writes a
	// negative record. Writes are idempotent and best-effort; a
	// failed write never aborts the batch operation calling it.
	Save(key, content string)
}
