// Package openai implements docdex.Embedder against an
// OpenAI-compatible embeddings endpoint. Local servers such as
// llama.cpp or LocalAI expose the same wire API, so the backend is
// configured purely by base URL and model name.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/docdex/docdex"
	openai "github.com/sashabaranov/go-openai"
)

// Compile-time interface verification.
var _ docdex.Embedder = (*Embedder)(nil)

const (
	// DefaultBaseURL points at a local OpenAI-compatible server.
	DefaultBaseURL = "http://localhost:8000/api/v1"

	// DefaultModel is the embedding model requested by default.
	DefaultModel = "nomic-embed-text-v1-GGUF"

	// DefaultBatchSize bounds the number of texts per request.
	DefaultBatchSize = 32

	// DefaultMaxAttempts is how many times a failing batch is tried.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the pause between attempts.
	DefaultRetryDelay = 3 * time.Second
)

// Embedder wraps an OpenAI-compatible client with batching and retry
// logic.
type Embedder struct {
	client      *openai.Client
	model       string
	batchSize   int
	maxAttempts int
	retryDelay  time.Duration
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithModel sets the embedding model name.
func WithModel(model string) Option {
	return func(e *Embedder) { e.model = model }
}

// WithBatchSize sets the maximum number of texts per request.
func WithBatchSize(n int) Option {
	return func(e *Embedder) { e.batchSize = n }
}

// WithRetry sets the attempt count and the delay between attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(e *Embedder) {
		e.maxAttempts = attempts
		e.retryDelay = delay
	}
}

// NewEmbedder creates an Embedder talking to an OpenAI-compatible
// endpoint at baseURL. apiKey may be empty for local servers that do
// not authenticate.
func NewEmbedder(baseURL, apiKey string, opts ...Option) *Embedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	e := &Embedder{
		client:      openai.NewClientWithConfig(cfg),
		model:       DefaultModel,
		batchSize:   DefaultBatchSize,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the embedding model name. It identifies the
// vector-space an index was built in, so persisted indexes are keyed
// by it.
func (e *Embedder) Model() string {
	return e.model
}

// Embed returns one vector per input text, in input order. Inputs are
// sent in batches; each batch is retried before the whole call fails.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error

	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(e.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: openai.EmbeddingModel(e.model),
		})
		if err != nil {
			lastErr = err
			continue
		}

		// An empty response for a non-empty batch means the server
		// accepted the request but produced nothing usable.
		if len(resp.Data) == 0 {
			lastErr = docdex.Errorf(docdex.EINTERNAL, "embedding server returned no vectors")
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = docdex.Errorf(docdex.EINTERNAL,
				"embedding count mismatch: sent %d texts, received %d vectors", len(texts), len(resp.Data))
			continue
		}

		vectors := make([][]float32, len(resp.Data))
		for i, d := range resp.Data {
			vectors[i] = d.Embedding
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("embedding batch failed after %d attempts: %w", e.maxAttempts, lastErr)
}
