// Package engine orchestrates document collection, embedding, and
// index persistence. It owns the (document store, vector index) pair
// on disk and is the only package that composes the man and help
// sources into a complete build.
package engine

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/crawl"
	"github.com/docdex/docdex/fs"
	dochttp "github.com/docdex/docdex/http"
	"github.com/docdex/docdex/mallard"
	"github.com/docdex/docdex/osrelease"
	"github.com/docdex/docdex/sqlite"
	"github.com/docdex/docdex/vector"
)

const (
	// DefaultManBase is the local manual page tree.
	DefaultManBase = "/usr/share/man"

	// DefaultHelpBase is the local Mallard help tree.
	DefaultHelpBase = "/usr/share/help"

	// DefaultMaxManPages caps the number of manual page documents.
	DefaultMaxManPages = 500

	// DefaultMaxHelpPages caps the number of help page documents.
	DefaultMaxHelpPages = 200
)

// Config carries the engine's construction parameters. The zero value
// of every field except Embedder has a usable default.
type Config struct {
	// Embedder turns document text into vectors. Required.
	Embedder docdex.Embedder

	// CacheDir holds the persisted pair and the page caches.
	// Defaults to fs.DefaultCacheDir().
	CacheDir string

	// ManBase and HelpBase point at the local documentation trees.
	ManBase  string
	HelpBase string

	// ManpagesBaseURL and HelpBaseURL point at the remote archives.
	ManpagesBaseURL string
	HelpBaseURL     string

	// Codename and Release identify the OS release for remote URLs.
	// Empty values are detected from os-release.
	Codename string
	Release  string

	// MaxManPages and MaxHelpPages bound each source's contribution.
	MaxManPages  int
	MaxHelpPages int

	// Progress, when set, receives per-stage build progress.
	Progress docdex.BuildProgressFunc

	Logger *slog.Logger

	// HTTPOptions are applied to both remote clients.
	HTTPOptions []dochttp.Option
}

// Engine builds, persists, and queries the documentation index.
type Engine struct {
	embedder docdex.Embedder
	logger   *slog.Logger
	progress docdex.BuildProgressFunc

	maxMan  int
	maxHelp int

	manDir  *fs.ManDir
	manuals docdex.Resolver
	helpDir *fs.HelpDir
	crawler *crawl.Crawler

	docsPath  string
	indexPath string

	db        *sqlite.DB
	documents []*docdex.Document
	index     *vector.Index
}

// New creates an Engine from cfg. No I/O happens until LoadOrCreate
// or Create is called.
func New(cfg Config) (*Engine, error) {
	if cfg.Embedder == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "embedder is required")
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = fs.DefaultCacheDir()
	}
	manBase := cfg.ManBase
	if manBase == "" {
		manBase = DefaultManBase
	}
	helpBase := cfg.HelpBase
	if helpBase == "" {
		helpBase = DefaultHelpBase
	}
	codename := cfg.Codename
	if codename == "" {
		codename = osrelease.Codename()
	}
	release := cfg.Release
	if release == "" {
		release = osrelease.VersionID()
	}
	manpagesURL := cfg.ManpagesBaseURL
	if manpagesURL == "" {
		manpagesURL = dochttp.DefaultManpagesBaseURL
	}
	helpURL := cfg.HelpBaseURL
	if helpURL == "" {
		helpURL = dochttp.DefaultHelpBaseURL
	}
	maxMan := cfg.MaxManPages
	if maxMan <= 0 {
		maxMan = DefaultMaxManPages
	}
	maxHelp := cfg.MaxHelpPages
	if maxHelp <= 0 {
		maxHelp = DefaultMaxHelpPages
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	manCache := fs.NewCache(filepath.Join(cacheDir, "manpages"))
	helpCache := fs.NewCache(filepath.Join(cacheDir, "helppages"))
	manifest := fs.NewManifest(filepath.Join(cacheDir, "helppages", "_slugs.txt"))

	httpOpts := append([]dochttp.Option{dochttp.WithLogger(logger)}, cfg.HTTPOptions...)
	manDir := fs.NewManDir(manBase)

	fp := Fingerprint(cfg.Embedder.Model())

	return &Engine{
		embedder: cfg.Embedder,
		logger:   logger,
		progress: cfg.Progress,
		maxMan:   maxMan,
		maxHelp:  maxHelp,
		manDir:   manDir,
		manuals: docdex.ResolverChain{
			manDir,
			&docdex.CachedResolver{
				Cache:  manCache,
				Source: dochttp.NewManpageClient(manpagesURL, codename, httpOpts...),
			},
		},
		helpDir: fs.NewHelpDir(helpBase),
		crawler: &crawl.Crawler{
			Fetcher:  dochttp.NewHelpClient(helpURL, release, httpOpts...),
			Cache:    helpCache,
			Manifest: manifest,
			MaxPages: maxHelp,
			Logger:   logger,
		},
		docsPath:  filepath.Join(cacheDir, "documents_"+fp+".db"),
		indexPath: filepath.Join(cacheDir, "index_"+fp+".bin"),
	}, nil
}

// Fingerprint derives the filename-safe identifier of an embedding
// configuration. Indexes built with different models are not
// comparable, so the persisted pair is keyed by it.
func Fingerprint(model string) string {
	safe := strings.NewReplacer("/", "_", ":", "_", " ", "_").Replace(model)
	sum := xxhash.Sum64String(model)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(sum >> (56 - 8*i))
	}
	return safe + "_" + hex.EncodeToString(b)
}

// Close releases the document store connection.
func (e *Engine) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

// Len returns the number of indexed documents.
func (e *Engine) Len() int {
	return len(e.documents)
}

// LoadOrCreate loads the persisted pair when it is present and
// consistent, and falls back to a full build otherwise. It reports
// whether an index is available afterwards.
func (e *Engine) LoadOrCreate(ctx context.Context) (bool, error) {
	if err := e.load(ctx); err == nil {
		e.logger.Info("loaded documentation index", "documents", len(e.documents))
		return true, nil
	} else if !os.IsNotExist(err) {
		e.logger.Warn("failed to load documentation index, rebuilding", "error", err)
	}
	return e.Create(ctx)
}

// load restores the pair from disk. Any inconsistency between the two
// halves is an error; the caller rebuilds.
func (e *Engine) load(ctx context.Context) error {
	if _, err := os.Stat(e.docsPath); err != nil {
		return err
	}

	idx, err := vector.Load(e.indexPath)
	if err != nil {
		return err
	}

	// A reconfigured backend can produce vectors of a different
	// dimension under the same model name. Probing is best-effort: an
	// unreachable backend is not an inconsistency of the pair.
	if probe, err := e.embedder.Embed(ctx, []string{"dimension probe"}); err == nil &&
		len(probe) == 1 && len(probe[0]) != idx.Dim() {
		return docdex.Errorf(docdex.EINVALID,
			"index dimension %d does not match embedding dimension %d", idx.Dim(), len(probe[0]))
	}

	db := sqlite.NewDB(e.docsPath)
	if err := db.Open(); err != nil {
		return err
	}
	docs, err := sqlite.NewDocumentService(db).AllDocuments(ctx)
	if err != nil {
		db.Close()
		return err
	}
	if len(docs) == 0 {
		db.Close()
		return docdex.Errorf(docdex.EINVALID, "document store is empty")
	}
	if len(docs) != idx.Len() {
		db.Close()
		return docdex.Errorf(docdex.EINVALID,
			"document store has %d documents but index has %d vectors", len(docs), idx.Len())
	}

	if e.db != nil {
		e.db.Close()
	}
	e.db = db
	e.documents = docs
	e.index = idx
	return nil
}

// Create builds the index from scratch: collect documents from both
// sources, embed them, and persist the pair. It returns false without
// error when no documents could be collected, leaving any previously
// loaded index untouched.
func (e *Engine) Create(ctx context.Context) (bool, error) {
	manDocs := e.collectManPages(ctx)
	e.logger.Info("indexed manual pages", "documents", len(manDocs))

	helpDocs := e.collectHelpPages(ctx)
	e.logger.Info("indexed help pages", "documents", len(helpDocs))

	docs := append(manDocs, helpDocs...)
	if len(docs) == 0 {
		e.logger.Warn("no documents collected, documentation search disabled")
		return false, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	e.report("embedding documents", 0, len(texts))
	vectors, err := e.embedder.Embed(ctx, texts)
	if err != nil {
		return false, fmt.Errorf("embedding documents: %w", err)
	}
	e.report("embedding documents", len(texts), len(texts))

	idx := vector.New()
	if err := idx.Add(vectors...); err != nil {
		return false, err
	}

	if err := e.persist(ctx, docs, idx); err != nil {
		return false, err
	}

	e.documents = docs
	e.index = idx
	e.logger.Info("documentation index created", "documents", len(docs))
	return true, nil
}

// persist writes the pair to disk. The previous document store is
// replaced atomically within its transaction and the index file is
// renamed into place, so a failed build leaves a consistent pair.
func (e *Engine) persist(ctx context.Context, docs []*docdex.Document, idx *vector.Index) error {
	if e.db == nil {
		db := sqlite.NewDB(e.docsPath)
		if err := db.Open(); err != nil {
			return err
		}
		e.db = db
	}
	if err := sqlite.NewDocumentService(e.db).ReplaceAll(ctx, docs); err != nil {
		return err
	}
	return idx.Save(e.indexPath)
}

// Search embeds query and returns the k most similar documents.
func (e *Engine) Search(ctx context.Context, query string, k int) ([]docdex.SearchResult, error) {
	if e.index == nil {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "no documentation index loaded")
	}

	vectors, err := e.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, docdex.Errorf(docdex.EINTERNAL,
			"expected 1 query vector, received %d", len(vectors))
	}

	hits, err := e.index.Search(vectors[0], k)
	if err != nil {
		return nil, err
	}

	results := make([]docdex.SearchResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Position >= len(e.documents) {
			continue
		}
		results = append(results, docdex.SearchResult{
			Document: e.documents[hit.Position],
			Score:    hit.Score,
		})
	}
	return results, nil
}

// collectManPages gathers manual page documents: the priority
// commands through the resolver chain, then locally installed
// section 1 and 8 pages when the local tree is readable.
func (e *Engine) collectManPages(ctx context.Context) []*docdex.Document {
	localReadable := false
	if err := e.manDir.Probe(); err == nil {
		localReadable = true
		e.logger.Debug("using local manual pages")
	} else {
		e.logger.Debug("local manual pages unavailable, using cache and remote archive", "error", err)
	}

	var docs []*docdex.Document
	processed := make(map[string]struct{})

	for i, cmd := range docdex.PriorityCommands {
		if len(docs) >= e.maxMan || ctx.Err() != nil {
			break
		}
		processed[cmd] = struct{}{}

		if content, ok := e.manuals.Resolve(ctx, cmd); ok && strings.TrimSpace(content) != "" {
			docs = append(docs, manDocument(cmd, content))
		}
		e.report("manual pages", i+1, len(docdex.PriorityCommands))
	}

	if !localReadable || e.manDir.Disabled() {
		return docs
	}

	// Locally installed pages beyond the priority list.
	for _, cmd := range e.manDir.Enumerate([]string{"1", "8"}, e.maxMan) {
		if len(docs) >= e.maxMan || ctx.Err() != nil {
			break
		}
		if _, ok := processed[cmd]; ok {
			continue
		}
		processed[cmd] = struct{}{}

		if content, ok := e.manDir.Resolve(ctx, cmd); ok && strings.TrimSpace(content) != "" {
			docs = append(docs, manDocument(cmd, content))
		}
	}
	return docs
}

// collectHelpPages gathers help documents: the local Mallard tree
// when it yields anything, the remote site otherwise.
func (e *Engine) collectHelpPages(ctx context.Context) []*docdex.Document {
	if err := e.helpDir.Probe(); err == nil {
		locales := mallard.LocaleCandidates(os.Getenv("LANGUAGE"), os.Getenv("LANG"))
		if docs := e.helpDir.Documents(locales, e.maxHelp); len(docs) > 0 {
			e.logger.Debug("using local help pages", "documents", len(docs))
			return docs
		}
	}
	return e.crawler.Run(ctx)
}

func (e *Engine) report(stage string, completed, total int) {
	if e.progress != nil {
		e.progress(docdex.BuildProgress{Stage: stage, Completed: completed, Total: total})
	}
}

func manDocument(cmd, content string) *docdex.Document {
	return &docdex.Document{
		Content: docdex.Truncate(content),
		Source:  "man " + cmd,
		Title:   cmd,
	}
}
