package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/engine"
)

func newEngine(deps *Dependencies, progress docdex.BuildProgressFunc) (*engine.Engine, error) {
	return engine.New(engine.Config{
		Embedder:        deps.Embedder,
		CacheDir:        deps.CacheDir,
		ManBase:         deps.CLI.ManPath,
		HelpBase:        deps.CLI.HelpPath,
		ManpagesBaseURL: deps.CLI.ManURL,
		HelpBaseURL:     deps.CLI.HelpURL,
		Logger:          deps.Logger,
		Progress:        progress,
	})
}

func runIndex(ctx context.Context, deps *Dependencies) error {
	var bar *progressbar.ProgressBar
	var stage string

	progress := func(p docdex.BuildProgress) {
		if p.Stage != stage {
			if bar != nil {
				_ = bar.Finish()
			}
			stage = p.Stage
			bar = progressbar.NewOptions(p.Total,
				progressbar.OptionSetDescription(p.Stage),
				progressbar.OptionSetWriter(deps.Stderr),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(p.Completed)
	}

	e, err := newEngine(deps, progress)
	if err != nil {
		return err
	}
	defer e.Close()

	build := e.LoadOrCreate
	if deps.CLI.Index.Rebuild {
		build = e.Create
	}

	ok, err := build(ctx)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no documentation found: check network access or local documentation trees")
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d documents\n", e.Len())
	return nil
}

func runSearch(ctx context.Context, deps *Dependencies) error {
	e, err := newEngine(deps, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	ok, err := e.LoadOrCreate(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no documentation index available: run 'docdex index' first")
	}

	query := strings.Join(deps.CLI.Search.Query, " ")
	results, err := e.Search(ctx, query, deps.CLI.Search.TopK)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. %s (%.3f)\n", i+1, r.Document.Source, r.Score)
		if r.Document.Title != "" && r.Document.Title != r.Document.Source {
			fmt.Fprintf(deps.Stdout, "   %s\n", r.Document.Title)
		}
		fmt.Fprintf(deps.Stdout, "   %s\n", snippet(r.Document.Content, 160))
	}
	return nil
}

// snippet returns the first line of content, truncated to max runes.
func snippet(content string, max int) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if len(runes) > max {
		return string(runes[:max]) + "…"
	}
	return line
}
