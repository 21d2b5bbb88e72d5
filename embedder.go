package docdex

import "context"

// Embedder converts texts into fixed-length vectors via an embedding
// backend. Implementations batch inputs and retry transient failures;
// an exhausted retry budget propagates the original error because a
// missing vector would corrupt the index's document-to-vector
// alignment.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the embedding model identifier. It participates
	// in the persisted-pair fingerprint so switching models never
	// loads an incompatible index.
	Model() string
}
