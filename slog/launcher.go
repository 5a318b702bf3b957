package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiextract"
)

// Ensure types implement their interfaces.
var (
	_ wikiextract.Launcher = (*LoggingLauncher)(nil)
	_ wikiextract.Session  = (*LoggingSession)(nil)
)

// LoggingLauncher wraps a Launcher with logging. Sessions it returns are
// wrapped with LoggingSession.
type LoggingLauncher struct {
	next   wikiextract.Launcher
	logger *slog.Logger
}

// NewLoggingLauncher creates a new LoggingLauncher.
func NewLoggingLauncher(next wikiextract.Launcher, logger *slog.Logger) *LoggingLauncher {
	return &LoggingLauncher{next: next, logger: logger}
}

// Launch delegates to the wrapped launcher and logs the operation.
func (l *LoggingLauncher) Launch(ctx context.Context) (session wikiextract.Session, err error) {
	defer func(begin time.Time) {
		l.logger.Info("engine launch",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	session, err = l.next.Launch(ctx)
	if err != nil {
		return nil, err
	}
	return NewLoggingSession(session, l.logger), nil
}

// LoggingSession wraps a Session with logging.
type LoggingSession struct {
	next   wikiextract.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next wikiextract.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Fetch delegates to the wrapped session and logs the operation.
func (s *LoggingSession) Fetch(ctx context.Context, url string) (doc wikiextract.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, url)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("engine shutdown",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Close()
}
