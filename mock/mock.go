// Package mock provides hand-written mock implementations of docdex
// interfaces for testing.
package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of docdex.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, key string) (string, bool)
}

func (r *Resolver) Resolve(ctx context.Context, key string) (string, bool) {
	return r.ResolveFn(ctx, key)
}

var _ docdex.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docdex.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
	ModelFn func() string
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

func (e *Embedder) Model() string {
	if e.ModelFn == nil {
		return "mock-embed"
	}
	return e.ModelFn()
}

var _ docdex.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of docdex.PageFetcher.
type PageFetcher struct {
	FetchSeedFn func(ctx context.Context) (string, bool)
	FetchPageFn func(ctx context.Context, slug string) (string, bool)
}

func (f *PageFetcher) FetchSeed(ctx context.Context) (string, bool) {
	return f.FetchSeedFn(ctx)
}

func (f *PageFetcher) FetchPage(ctx context.Context, slug string) (string, bool) {
	return f.FetchPageFn(ctx, slug)
}

var _ docdex.SlugManifest = (*SlugManifest)(nil)

// SlugManifest is a mock implementation of docdex.SlugManifest.
type SlugManifest struct {
	LoadFn func() ([]string, bool)
	SaveFn func(slugs []string) error
}

func (m *SlugManifest) Load() ([]string, bool) {
	return m.LoadFn()
}

func (m *SlugManifest) Save(slugs []string) error {
	return m.SaveFn(slugs)
}

var _ docdex.DocCache = (*DocCache)(nil)

// DocCache is an in-memory implementation of docdex.DocCache that
// records the tri-state cache semantics exactly.
type DocCache struct {
	Records map[string]string // present key = looked up; "" = negative
	Saves   []string          // keys in save order
}

// NewDocCache creates an empty DocCache.
func NewDocCache() *DocCache {
	return &DocCache{Records: make(map[string]string)}
}

func (c *DocCache) Contains(key string) bool {
	_, ok := c.Records[key]
	return ok
}

func (c *DocCache) Load(key string) (string, bool) {
	content, ok := c.Records[key]
	if !ok || content == "" {
		return "", false
	}
	return content, true
}

func (c *DocCache) Save(key, content string) {
	c.Records[key] = content
	c.Saves = append(c.Saves, key)
}

var _ docdex.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docdex.DocumentService.
type DocumentService struct {
	ReplaceAllFn   func(ctx context.Context, docs []*docdex.Document) error
	AllDocumentsFn func(ctx context.Context) ([]*docdex.Document, error)
}

func (s *DocumentService) ReplaceAll(ctx context.Context, docs []*docdex.Document) error {
	return s.ReplaceAllFn(ctx, docs)
}

func (s *DocumentService) AllDocuments(ctx context.Context) ([]*docdex.Document, error) {
	return s.AllDocumentsFn(ctx)
}
