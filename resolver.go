package docdex

import "context"

// Resolver resolves a document key (command name or help-page slug)
// to plain-text content. Resolvers never fail: transport and
// filesystem errors for a single key degrade to ok=false.
type Resolver interface {
	Resolve(ctx context.Context, key string) (content string, ok bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, key string) (string, bool)

func (f ResolverFunc) Resolve(ctx context.Context, key string) (string, bool) {
	return f(ctx, key)
}

// ResolverChain tries resolvers in order, short-circuiting on the
// first that produces non-empty content.
type ResolverChain []Resolver

func (c ResolverChain) Resolve(ctx context.Context, key string) (string, bool) {
	for _, r := range c {
		if content, ok := r.Resolve(ctx, key); ok && content != "" {
			return content, true
		}
	}
	return "", false
}

// CachedResolver wraps a source resolver with a positive/negative
// disk cache. Every source outcome (success or failure) is written
// back as a cache record, so the source is consulted at most once
// per key for the lifetime of the cache.
type CachedResolver struct {
	Cache  DocCache
	Source Resolver
}

func (r *CachedResolver) Resolve(ctx context.Context, key string) (string, bool) {
	if content, ok := r.Cache.Load(key); ok {
		return content, true
	}
	if r.Cache.Contains(key) {
		// Present-but-empty record: looked up before, confirmed absent.
		return "", false
	}
	content, ok := r.Source.Resolve(ctx, key)
	r.Cache.Save(key, content) // empty content writes the negative record
	return content, ok
}
