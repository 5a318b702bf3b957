package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiextract"
	"github.com/fwojciec/wikiextract/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Pipeline *extract.Pipeline
	Journal  wikiextract.RunJournal
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL string `arg:"" optional:"" help:"Wiki page URL to extract"`

	Out        string        `short:"o" default:"data" env:"WIKIEXTRACT_OUT" help:"Output directory for <title>.json"`
	Engine     string        `enum:"rod,http" default:"rod" help:"Page engine: rod renders with Chrome, http parses the raw response"`
	Timeout    time.Duration `short:"t" default:"30s" help:"Fetch timeout"`
	Selectors  string        `short:"s" help:"YAML selector set file (default: built-in wiki selectors)"`
	BrowserBin string        `env:"WIKIEXTRACT_BROWSER_BIN" help:"Chrome/Chromium binary"`
	NoSandbox  bool          `help:"Disable the Chrome sandbox"`
	Headful    bool          `help:"Show the browser window"`

	Journal string `env:"WIKIEXTRACT_JOURNAL" help:"SQLite run journal path (empty disables)"`
	Runs    bool   `help:"List journaled runs instead of extracting"`
	Limit   int    `short:"n" default:"20" help:"Maximum runs to list"`

	Verbose   bool   `short:"v" help:"Enable debug logging"`
	LogFormat string `enum:"text,json" default:"text" help:"Log format (text, json)"`
}

// ExtractCmd extracts a single page.
type ExtractCmd struct {
	URL    string
	Engine string
}

// RunsCmd lists journaled runs.
type RunsCmd struct {
	URL   string
	Limit int
}
