package mock

import (
	"context"

	"github.com/fwojciec/wikiextract"
)

var (
	_ wikiextract.Launcher = (*Launcher)(nil)
	_ wikiextract.Session  = (*Session)(nil)
)

// Launcher is a mock implementation of wikiextract.Launcher.
type Launcher struct {
	LaunchFn func(ctx context.Context) (wikiextract.Session, error)
}

func (l *Launcher) Launch(ctx context.Context) (wikiextract.Session, error) {
	return l.LaunchFn(ctx)
}

// Session is a mock implementation of wikiextract.Session.
type Session struct {
	FetchFn func(ctx context.Context, url string) (wikiextract.Document, error)
	CloseFn func() error
}

func (s *Session) Fetch(ctx context.Context, url string) (wikiextract.Document, error) {
	return s.FetchFn(ctx, url)
}

func (s *Session) Close() error {
	return s.CloseFn()
}
