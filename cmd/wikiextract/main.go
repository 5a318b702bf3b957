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
	"github.com/fwojciec/wikiextract/extract"
	"github.com/fwojciec/wikiextract/fs"
	wehttp "github.com/fwojciec/wikiextract/http"
	"github.com/fwojciec/wikiextract/rod"
	weslog "github.com/fwojciec/wikiextract/slog"
	"github.com/fwojciec/wikiextract/sqlite"
	"github.com/fwojciec/wikiextract/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps an error returned by Main.Run to a process exit code.
func ExitCode(err error) int {
	switch wikiextract.ErrorCode(err) {
	case "":
		return 0
	case wikiextract.EENGINE:
		return 2
	case wikiextract.EFETCH:
		return 3
	case wikiextract.ENOTITLE:
		return 4
	case wikiextract.EWRITE:
		return 5
	default:
		return 1
	}
}

// Main represents the program.
type Main struct {
	// Launcher replaces the engine selected by --engine. Set before
	// calling Run().
	Launcher wikiextract.Launcher

	// SQLite database backing the run journal, if one is configured.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikiextract"),
		kong.Description("Extract the content of a wiki page to <title>.json"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return wikiextract.Errorf(wikiextract.EINVALID, "no url provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		_, _ = parser.Parse([]string{"--help"})
		return wikiextract.Wrap(wikiextract.EINVALID, err, "invalid arguments")
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr, cli.LogFormat, cli.Verbose),
	}

	if cli.Journal != "" {
		m.DB = sqlite.NewDB(cli.Journal)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set WIKIEXTRACT_JOURNAL or --journal to a writable path, or leave it empty")
			return wikiextract.Wrap(wikiextract.EINVALID, err, "opening journal at %q", cli.Journal)
		}
		defer m.Close()
		deps.Journal = sqlite.NewRunJournal(m.DB)
	}

	if cli.Runs {
		if cli.Journal == "" {
			return wikiextract.Errorf(wikiextract.EINVALID, "--runs needs a journal (--journal or WIKIEXTRACT_JOURNAL)")
		}
		cmd := &RunsCmd{URL: cli.URL, Limit: cli.Limit}
		return cmd.Run(deps)
	}

	if cli.URL == "" {
		_, _ = parser.Parse([]string{"--help"})
		return wikiextract.Errorf(wikiextract.EINVALID, "no url provided")
	}

	selectors := wikiextract.WikiContent
	if cli.Selectors != "" {
		if selectors, err = yaml.LoadSelectorSet(cli.Selectors); err != nil {
			return err
		}
	}

	launcher := m.Launcher
	if launcher == nil {
		launcher = newLauncher(cli)
	}

	deps.Pipeline = &extract.Pipeline{
		Launcher:  weslog.NewLoggingLauncher(launcher, deps.Logger),
		Selectors: selectors,
		Writer:    weslog.NewLoggingRecordWriter(fs.NewRecordWriter(cli.Out), deps.Logger),
		Journal:   deps.Journal,
		Logger:    deps.Logger,
	}

	cmd := &ExtractCmd{URL: cli.URL, Engine: cli.Engine}
	return cmd.Run(deps)
}

func newLauncher(cli *CLI) wikiextract.Launcher {
	if cli.Engine == "http" {
		return wehttp.NewLauncher(wehttp.WithTimeout(cli.Timeout))
	}
	return rod.NewLauncher(
		rod.WithFetchTimeout(cli.Timeout),
		rod.WithHeadless(!cli.Headful),
		rod.WithNoSandbox(cli.NoSandbox),
		rod.WithBrowserBin(cli.BrowserBin),
	)
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
