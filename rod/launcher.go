// Package rod implements wikiextract.Launcher with a headless Chrome browser
// driven by go-rod. Pages are fully rendered, including client-side scripts,
// before they are queried.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/wikiextract"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultFetchTimeout bounds navigation plus load for a single page.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Launcher implements wikiextract.Launcher at compile time.
var _ wikiextract.Launcher = (*Launcher)(nil)

// Launcher starts browser sessions.
type Launcher struct {
	fetchTimeout time.Duration
	headless     bool
	noSandbox    bool
	bin          string
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithFetchTimeout sets the timeout for a single Fetch.
// Zero disables the timeout; the caller's context still applies.
func WithFetchTimeout(d time.Duration) Option {
	return func(l *Launcher) {
		l.fetchTimeout = d
	}
}

// WithHeadless controls whether the browser window is hidden.
// Defaults to true.
func WithHeadless(headless bool) Option {
	return func(l *Launcher) {
		l.headless = headless
	}
}

// WithNoSandbox disables Chrome's sandbox (needed in most containers).
func WithNoSandbox(noSandbox bool) Option {
	return func(l *Launcher) {
		l.noSandbox = noSandbox
	}
}

// WithBrowserBin overrides the Chrome/Chromium binary path.
func WithBrowserBin(path string) Option {
	return func(l *Launcher) {
		l.bin = path
	}
}

// NewLauncher creates a new Launcher.
func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		fetchTimeout: DefaultFetchTimeout,
		headless:     true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts a browser and connects to it.
// Returns EENGINE if Chrome/Chromium cannot be found, launched or reached.
func (l *Launcher) Launch(ctx context.Context) (wikiextract.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, wikiextract.Wrap(wikiextract.EENGINE, err, "launching browser")
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(l.headless).
		NoSandbox(l.noSandbox)
	if l.bin != "" {
		lnchr = lnchr.Bin(l.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, wikiextract.Wrap(wikiextract.EENGINE, err, "launching browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return nil, wikiextract.Wrap(wikiextract.EENGINE, err, "connecting to browser")
	}

	return &Session{
		browser:      browser,
		launcher:     lnchr,
		fetchTimeout: l.fetchTimeout,
	}, nil
}
