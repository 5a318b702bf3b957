// Package http provides a static wikiextract.Session that loads pages with
// plain HTTP requests. It does not execute JavaScript and is suitable for
// pages whose content is present in the served markup.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/wikiextract"
	"github.com/fwojciec/wikiextract/goquery"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout.
const DefaultFetchTimeout = 30 * time.Second

// Ensure types implement the domain interfaces at compile time.
var (
	_ wikiextract.Launcher = (*Launcher)(nil)
	_ wikiextract.Session  = (*Session)(nil)
)

// Option configures a Launcher.
type Option func(*Launcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(l *Launcher) {
		l.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(l *Launcher) {
		l.userAgent = ua
	}
}

// Launcher creates HTTP sessions.
type Launcher struct {
	timeout   time.Duration
	userAgent string
}

// NewLauncher creates a new HTTP Launcher.
func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch returns a new Session with its own HTTP client.
func (l *Launcher) Launch(ctx context.Context) (wikiextract.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, wikiextract.Wrap(wikiextract.EENGINE, err, "launching http session")
	}
	return &Session{
		client:    &http.Client{Timeout: l.timeout},
		userAgent: l.userAgent,
	}, nil
}

// Session fetches pages over HTTP and parses them as static HTML.
type Session struct {
	client    *http.Client
	userAgent string
}

// Fetch retrieves the page and parses it into a document.
func (s *Session) Fetch(ctx context.Context, url string) (wikiextract.Document, error) {
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, wikiextract.Wrap(wikiextract.EFETCH, err, "fetching %s", url)
	}
	if len(body) == 0 {
		return nil, wikiextract.Errorf(wikiextract.EFETCH, "empty response from %s", url)
	}

	doc, err := goquery.NewDocument(string(body))
	if err != nil {
		return nil, wikiextract.Wrap(wikiextract.EFETCH, err, "parsing %s", url)
	}
	return doc, nil
}

func (s *Session) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// Close releases idle connections.
func (s *Session) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
