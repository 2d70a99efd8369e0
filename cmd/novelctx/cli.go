package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/novelctx"
	"github.com/fwojciec/novelctx/crawl"
	"github.com/fwojciec/novelctx/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB                 *sqlite.DB
	Novels             novelctx.NovelService
	Episodes           novelctx.EpisodeService
	Characters         novelctx.CharacterService
	Extractor          novelctx.Extractor
	Ingester           *crawl.Ingester
	Summarizer         novelctx.Summarizer
	CharacterExtractor novelctx.CharacterExtractor
	Exporter           novelctx.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   kong.ConfigFlag   `help:"YAML config file" placeholder:"PATH"`
	DB       string            `help:"Database path" env:"NOVELCTX_DB" placeholder:"PATH"`
	Delay    float64           `default:"1.0" help:"Seconds to wait before each request" env:"NOVELCTX_REQUEST_DELAY"`
	Timeout  time.Duration     `default:"20s" help:"Request timeout" env:"NOVELCTX_TIMEOUT"`
	Header   map[string]string `short:"H" mapsep:";" help:"Extra request header as Key=Value (repeatable)" env:"NOVELCTX_HEADERS"`
	LogLevel string            `default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)" env:"NOVELCTX_LOG_LEVEL"`
	Model    string            `default:"gemini-2.5-flash" help:"Gemini model for summaries and characters" env:"NOVELCTX_MODEL"`

	Ingest     IngestCmd     `cmd:"" help:"Store a novel and fetch its episodes"`
	Extract    ExtractCmd    `cmd:"" help:"Print metadata or episode text without storing it"`
	List       ListCmd       `cmd:"" help:"List stored novels"`
	Episodes   EpisodesCmd   `cmd:"" help:"List stored episodes of a novel"`
	Show       ShowCmd       `cmd:"" help:"Print a stored episode"`
	Summarize  SummarizeCmd  `cmd:"" help:"Summarize fetched episodes of a novel"`
	Characters CharactersCmd `cmd:"" help:"List or extract the characters of a novel"`
	Export     ExportCmd     `cmd:"" help:"Write a novel's fetched episodes as markdown files"`
}

// RequestDelay returns the --delay flag as a duration.
func (c *CLI) RequestDelay() time.Duration {
	if c.Delay <= 0 {
		return 0
	}
	return time.Duration(c.Delay * float64(time.Second))
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	URL          string `arg:"" help:"Novel landing page URL"`
	MetadataOnly bool   `short:"m" help:"Store the episode index without fetching bodies"`
	From         int    `help:"First episode number to fetch"`
	To           int    `help:"Last episode number to fetch"`
	Refetch      bool   `short:"r" help:"Fetch episodes that are already stored"`
	Concurrency  int    `short:"c" default:"2" help:"Concurrent fetch limit"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL     string `arg:"" help:"Novel landing page or episode URL"`
	Content bool   `help:"Extract episode text instead of metadata"`
	JSON    bool   `name:"json" help:"Print the result as JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// EpisodesCmd is the "episodes" subcommand.
type EpisodesCmd struct {
	URL  string `arg:"" help:"Novel landing page URL"`
	From int    `help:"First episode number"`
	To   int    `help:"Last episode number"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL     string `arg:"" help:"Episode URL"`
	Summary bool   `help:"Print the summary instead of the text"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	URL   string `arg:"" help:"Novel landing page URL"`
	From  int    `help:"First episode number"`
	To    int    `help:"Last episode number"`
	Force bool   `short:"f" help:"Summarize episodes that already have a summary"`
}

// CharactersCmd is the "characters" subcommand.
type CharactersCmd struct {
	URL     string `arg:"" help:"Novel landing page URL"`
	Extract bool   `short:"x" help:"Extract characters from fetched episodes first"`
	From    int    `help:"First episode number to extract from"`
	To      int    `help:"Last episode number to extract from"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	URL string `arg:"" help:"Novel landing page URL"`
	Dir string `short:"o" default:"." help:"Directory to write the novel directory into" type:"path"`
}
