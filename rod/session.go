package rod

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/wikiextract"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure types implement the domain interfaces at compile time.
var (
	_ wikiextract.Session  = (*Session)(nil)
	_ wikiextract.Document = (*Document)(nil)
)

// Session owns one browser process and at most one open page.
// Fetching a new URL closes the previously fetched page.
type Session struct {
	browser      *rod.Browser
	launcher     *launcher.Launcher
	fetchTimeout time.Duration

	mu     sync.Mutex
	page   *rod.Page
	closed atomic.Bool
}

// Fetch navigates a fresh tab to url and waits for the load event.
// The returned Document stays valid until the next Fetch or Close.
func (s *Session) Fetch(ctx context.Context, url string) (wikiextract.Document, error) {
	if s.closed.Load() {
		return nil, wikiextract.Errorf(wikiextract.EINVALID, "session is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, wikiextract.Wrap(wikiextract.EFETCH, err, "fetching %s", url)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closePage()

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, wikiextract.Wrap(wikiextract.EFETCH, err, "opening tab")
	}
	s.page = page

	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	// Bind the deadline to navigation only; the stored page stays unbound
	// so queries made after Fetch returns are not canceled with it.
	nav := page.Context(ctx)
	if err := nav.Navigate(url); err != nil {
		return nil, wikiextract.Wrap(wikiextract.EFETCH, err, "navigating to %s", url)
	}
	if err := nav.WaitLoad(); err != nil {
		return nil, wikiextract.Wrap(wikiextract.EFETCH, err, "waiting for %s to load", url)
	}

	html, err := nav.HTML()
	if err != nil {
		return nil, wikiextract.Wrap(wikiextract.EFETCH, err, "reading document of %s", url)
	}
	if strings.TrimSpace(html) == "" {
		return nil, wikiextract.Errorf(wikiextract.EFETCH, "no document for %s", url)
	}

	return &Document{page: page}, nil
}

// Close closes the open page, the browser and the launcher process.
// Close is safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closePage()

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}

// closePage must be called with mu held.
func (s *Session) closePage() {
	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
}

// Document is a live rendered page. Queries run inside the browser, so text
// reflects the page as rendered (innerText), after scripts have run.
type Document struct {
	page *rod.Page
}

// Texts evaluates sel in the page and returns each match's innerText.
// Elements detached between the query and the text read are reported as
// selector errors.
func (d *Document) Texts(ctx context.Context, sel wikiextract.Selector) ([]string, error) {
	page := d.page.Context(ctx)

	var (
		els rod.Elements
		err error
	)
	switch sel.Kind {
	case wikiextract.QueryXPath:
		els, err = page.ElementsX(sel.Query)
	case wikiextract.QueryCSS:
		els, err = page.Elements(sel.Query)
	default:
		return nil, wikiextract.Errorf(wikiextract.ESELECTOR, "unsupported query kind %q", sel.Kind)
	}
	if err != nil {
		return nil, wikiextract.Wrap(wikiextract.ESELECTOR, err, "evaluating %q", sel.Query)
	}

	texts := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			return nil, wikiextract.Wrap(wikiextract.ESELECTOR, err, "reading text for %q", sel.Field)
		}
		texts = append(texts, text)
	}
	return texts, nil
}
