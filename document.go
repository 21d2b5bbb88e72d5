package docdex

import "context"

// MaxDocChars bounds document content before embedding. The target
// embedding models have a context window of roughly 512 tokens.
const MaxDocChars = 800

// Document represents an immutable unit of indexed knowledge.
// Documents are created during index build and never mutated; the
// position of a document in the store is the row of its embedding
// vector in the index.
type Document struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source"`
	Title   string `json:"title"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Source == "" {
		return Errorf(EINVALID, "document source required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// Truncate caps s at MaxDocChars bytes.
func Truncate(s string) string {
	if len(s) > MaxDocChars {
		return s[:MaxDocChars]
	}
	return s
}

// SearchResult pairs a document with its relevance score.
// Scores are cosine similarities in [-1, 1]; higher is more relevant.
type SearchResult struct {
	Document *Document
	Score    float32
}

// DocumentService persists the ordered document store.
// Insertion order defines the index-to-document mapping used at
// search time, so implementations must preserve position.
type DocumentService interface {
	// ReplaceAll atomically replaces the stored document list.
	// Positions are assigned from slice order.
	ReplaceAll(ctx context.Context, docs []*Document) error

	// AllDocuments returns every stored document in position order.
	AllDocuments(ctx context.Context) ([]*Document, error)
}
