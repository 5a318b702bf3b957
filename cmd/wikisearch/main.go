package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikiextract"
	"github.com/fwojciec/wikiextract/fs"
	"github.com/fwojciec/wikiextract/index"
	"github.com/fwojciec/wikiextract/snowball"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
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

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikisearch"),
		kong.Description("Search extracted wiki records by TF-IDF ranking or boolean query"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return wikiextract.Errorf(wikiextract.EINVALID, "no query provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return wikiextract.Wrap(wikiextract.EINVALID, err, "invalid arguments")
	}
	if cli.Top < 0 {
		return wikiextract.Errorf(wikiextract.EINVALID, "--top must not be negative")
	}

	analyzer := &index.Analyzer{}
	if cli.Stem != "" {
		stemmer, err := snowball.NewStemmer(cli.Stem)
		if err != nil {
			return err
		}
		analyzer.Stemmer = stemmer
	}

	logger := newLogger(stderr, cli.LogFormat, cli.Verbose)
	ix, err := loadIndex(ctx, cli.Data, cli.Concurrency, analyzer, logger)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Index:  ix,
	}

	cmd := &SearchCmd{
		Query:   cli.Query,
		Top:     cli.Top,
		Boolean: cli.Boolean,
		Field:   index.Field(cli.Field),
	}
	return cmd.Run(deps)
}

// loadIndex indexes every record in dir. Records without a title are
// skipped with a warning.
func loadIndex(ctx context.Context, dir string, concurrency int, a *index.Analyzer, logger *slog.Logger) (*index.Index, error) {
	start := time.Now()
	records, err := fs.ReadRecords(ctx, dir, concurrency)
	if err != nil {
		return nil, err
	}

	results := make([]wikiextract.Result, 0, len(records))
	for _, r := range records {
		if _, err := r.Result.Title(); err != nil {
			logger.Warn("record skipped", "path", r.Path, "err", wikiextract.ErrorMessage(err))
			continue
		}
		results = append(results, r.Result)
	}

	ix := index.New(a)
	if _, err := ix.Add(results...); err != nil {
		return nil, err
	}
	logger.Debug("index built", "dir", dir, "records", ix.Len(), "skipped", len(records)-len(results), "took", time.Since(start))
	return ix, nil
}

func newLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
