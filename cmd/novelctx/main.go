package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/novelctx"
	"github.com/fwojciec/novelctx/crawl"
	"github.com/fwojciec/novelctx/fs"
	"github.com/fwojciec/novelctx/gemini"
	"github.com/fwojciec/novelctx/goquery"
	novelhttp "github.com/fwojciec/novelctx/http"
	novelslog "github.com/fwojciec/novelctx/slog"
	"github.com/fwojciec/novelctx/sqlite"
	"google.golang.org/genai"
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
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// Config files read when --config is not given. Missing files are ignored.
	ConfigPaths []string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	NovelService     novelctx.NovelService
	EpisodeService   novelctx.EpisodeService
	CharacterService novelctx.CharacterService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:      defaultDBPath(),
		ConfigPaths: []string{defaultConfigPath()},
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("novelctx"),
		kong.Description("Store serialized web novels and build reading context from them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(yamlLoader, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'novelctx --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger, err := novelslog.NewLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}
	deps.Logger = logger

	// Extraction alone needs no database.
	if cmd == "extract" {
		deps.Extractor = newExtractor(cli, logger, cli.RequestDelay())
		return kongCtx.Run(deps)
	}

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NOVELCTX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.NovelService = sqlite.NewNovelService(m.DB)
	m.EpisodeService = sqlite.NewEpisodeService(m.DB)
	m.CharacterService = sqlite.NewCharacterService(m.DB)
	deps.DB = m.DB
	deps.Novels = m.NovelService
	deps.Episodes = m.EpisodeService
	deps.Characters = m.CharacterService

	if cmd == "ingest" {
		// Workers share one limiter, so the fetcher itself does not pause.
		deps.Ingester = &crawl.Ingester{
			Extractor:   newExtractor(cli, logger, 0),
			Novels:      m.NovelService,
			Episodes:    m.EpisodeService,
			RateLimiter: crawl.NewDomainLimiter(cli.RequestDelay()),
			Concurrency: cli.Ingest.Concurrency,
		}
	}

	if cmd == "export" {
		deps.Exporter = fs.NewWriter(cli.Export.Dir)
	}

	if cmd == "summarize" || (cmd == "characters" && cli.Characters.Extract) {
		generator, tokens, err := newGenerator(ctx, cli, logger, stderr)
		if err != nil {
			return err
		}

		summarizer := gemini.NewSummarizer(generator, m.EpisodeService)
		summarizer.Tokens = tokens
		deps.Summarizer = summarizer

		extractor := gemini.NewCharacterExtractor(generator, m.EpisodeService, m.CharacterService)
		extractor.Tokens = tokens
		deps.CharacterExtractor = extractor
	}

	return kongCtx.Run(deps)
}

// newExtractor builds the logged HTTP extraction stack.
func newExtractor(cli *CLI, logger *slog.Logger, delay time.Duration) novelctx.Extractor {
	fetcher := novelhttp.NewFetcher(
		novelhttp.WithDelay(delay),
		novelhttp.WithTimeout(cli.Timeout),
		novelhttp.WithHeaders(cli.Header),
	)
	extractor := goquery.NewExtractor(novelslog.NewLoggingFetcher(fetcher, logger))
	return novelslog.NewLoggingExtractor(extractor, logger)
}

// newGenerator connects to the Gemini API.
func newGenerator(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (novelctx.Generator, novelctx.TokenCounter, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	tokens, err := gemini.NewTokenCounter(tokenizerModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	generator := gemini.NewGenerator(client, gemini.WithModel(cli.Model))
	return novelslog.NewLoggingGenerator(generator, logger), tokens, nil
}

// tokenizerModel is used for token counting. The local tokenizer only knows
// a few models, so budgets are estimated with this one whatever --model is.
const tokenizerModel = gemini.DefaultModel

func defaultDBPath() string {
	if path := os.Getenv("NOVELCTX_DB"); path != "" {
		return path
	}
	dir := stateDir()
	if dir == "" {
		return "novelctx.db"
	}
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "novelctx.db")
}

func defaultConfigPath() string {
	dir := stateDir()
	if dir == "" {
		return "novelctx.yaml"
	}
	return filepath.Join(dir, "config.yaml")
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".novelctx")
}
