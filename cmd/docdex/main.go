package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/docdex/docdex/fs"
	"github.com/docdex/docdex/openai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI describes the command line interface.
type CLI struct {
	CacheDir   string `help:"Directory for the index and page caches." env:"DOCDEX_CACHE_DIR"`
	EmbedURL   string `default:"http://localhost:8000/api/v1" help:"OpenAI-compatible embeddings endpoint." env:"DOCDEX_EMBED_URL"`
	EmbedKey   string `help:"API key for the embeddings endpoint." env:"DOCDEX_EMBED_KEY"`
	EmbedModel string `default:"nomic-embed-text-v1-GGUF" help:"Embedding model name." env:"DOCDEX_EMBED_MODEL"`
	ManPath    string `default:"/usr/share/man" help:"Local manual page tree." env:"DOCDEX_MAN_PATH"`
	HelpPath   string `default:"/usr/share/help" help:"Local Mallard help tree." env:"DOCDEX_HELP_PATH"`
	ManURL     string `help:"Remote manual page archive base URL." env:"DOCDEX_MAN_URL"`
	HelpURL    string `help:"Remote help site base URL." env:"DOCDEX_HELP_URL"`
	Verbose    bool   `short:"v" help:"Enable debug logging."`

	Index  IndexCmd  `cmd:"" help:"Build the documentation index."`
	Search SearchCmd `cmd:"" help:"Search the documentation index."`
}

// IndexCmd builds the index.
type IndexCmd struct {
	Rebuild bool `help:"Rebuild even when a persisted index exists."`
}

// SearchCmd queries the index.
type SearchCmd struct {
	TopK  int      `short:"k" default:"3" help:"Number of results."`
	Query []string `arg:"" required:"" help:"Search query."`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// A .env file is optional; missing is not an error.
	_ = godotenv.Load()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
		kong.Description("Index and search OS documentation locally"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cacheDir := cli.CacheDir
	if cacheDir == "" {
		cacheDir = fs.DefaultCacheDir()
	}

	deps := &Dependencies{
		CLI:      cli,
		CacheDir: cacheDir,
		Logger:   logger,
		Stdout:   stdout,
		Stderr:   stderr,
		Embedder: openai.NewEmbedder(cli.EmbedURL, cli.EmbedKey,
			openai.WithModel(cli.EmbedModel)),
	}

	switch kctx.Command() {
	case "index":
		return runIndex(ctx, deps)
	case "search <query>":
		return runSearch(ctx, deps)
	default:
		return fmt.Errorf("unknown command: %s", kctx.Command())
	}
}

// Dependencies holds the wired collaborators shared by the commands.
type Dependencies struct {
	CLI      *CLI
	CacheDir string
	Logger   *slog.Logger
	Stdout   io.Writer
	Stderr   io.Writer
	Embedder *openai.Embedder
}
