package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikiextract"
	weslog "github.com/fwojciec/wikiextract/slog"
	"github.com/fwojciec/wikiextract/whatlanggo"
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
type Main struct {
	// Detector replaces the whatlanggo detector. Set before calling Run().
	Detector wikiextract.LanguageDetector
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("langdetect"),
		kong.Description("Predict the language of text files (cs, de, en, es, fr, it, pl, pt, ru, sk)"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return wikiextract.Errorf(wikiextract.EINVALID, "one of --dir, --file or --text is required")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return wikiextract.Wrap(wikiextract.EINVALID, err, "invalid arguments")
	}

	inputs := 0
	for _, set := range []bool{cli.Dir != "", cli.File != "", cli.Text != ""} {
		if set {
			inputs++
		}
	}
	if inputs != 1 {
		return wikiextract.Errorf(wikiextract.EINVALID, "exactly one of --dir, --file or --text is required")
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	detector := m.Detector
	if detector == nil {
		detector = &whatlanggo.Detector{MinConfidence: cli.MinConfidence}
	}

	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Detector: weslog.NewLoggingLanguageDetector(detector, logger),
	}

	cmd := &DetectCmd{
		Dir:         cli.Dir,
		File:        cli.File,
		Text:        cli.Text,
		Concurrency: cli.Concurrency,
	}
	return cmd.Run(deps)
}
