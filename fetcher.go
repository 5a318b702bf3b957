package wikiextract

import "context"

// Launcher starts rendering engine sessions.
type Launcher interface {
	// Launch starts a new session. Returns EENGINE if the engine cannot
	// be started (e.g. the browser binary is missing).
	Launch(ctx context.Context) (Session, error)
}

// Session is a live rendering engine: a browser process or an equivalent
// connection. A Session is exclusively owned by one pipeline run and must
// not be used from more than one goroutine.
type Session interface {
	// Fetch navigates to the URL, waits for the page to finish loading
	// (including client-side scripts where the engine runs them), and
	// returns the rendered document.
	// Returns EFETCH if no document was obtained. Fetch does not retry.
	Fetch(ctx context.Context, url string) (Document, error)

	// Close releases engine resources. Close is safe to call more than once.
	Close() error
}
