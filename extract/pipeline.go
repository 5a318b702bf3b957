package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiextract"
)

// Pipeline extracts one page per Run.
// Each Run launches its own engine session and always closes it before
// returning, whatever the outcome.
type Pipeline struct {
	Launcher  wikiextract.Launcher
	Selectors wikiextract.SelectorSet
	Writer    wikiextract.RecordWriter

	// Journal, if set, receives one entry per run after the engine stops.
	// Journal errors are logged and do not affect the outcome.
	Journal wikiextract.RunJournal

	Logger *slog.Logger
}

// Outcome reports what a run did.
type Outcome struct {
	URL     string
	States  []State
	Aborted bool

	// Result holds the extracted fields; nil if nothing was extracted.
	Result wikiextract.Result

	// FieldErrors holds selectors that failed, keyed by field name.
	FieldErrors map[string]error

	// Path is where the record was written; empty if it was not.
	Path string

	// Err is the error that aborted the run, if any.
	Err error

	StartedAt  time.Time
	FinishedAt time.Time
}

// State returns the last state the run reached.
func (o *Outcome) State() State {
	if len(o.States) == 0 {
		return StateIdle
	}
	return o.States[len(o.States)-1]
}

func (o *Outcome) enter(s State) {
	o.States = append(o.States, s)
	if s == StateAborted {
		o.Aborted = true
	}
}

// Run fetches url, extracts the selector set and writes the record.
//
// Errors returned are coded: EINVALID for a bad selector set, EENGINE when
// the engine cannot start, EFETCH when no document was obtained, ENOTITLE
// when no title was extracted and EWRITE when the record cannot be stored.
// Selector failures are not errors; they are reported in the Outcome.
// The Outcome is never nil.
func (p *Pipeline) Run(ctx context.Context, url string) (out *Outcome, err error) {
	logger := p.logger().With("url", url)
	out = &Outcome{URL: url, StartedAt: time.Now()}
	out.enter(StateIdle)

	defer func() {
		out.FinishedAt = time.Now()
		out.Err = err
		p.record(ctx, logger, out)
	}()

	selectors := p.selectors()
	if err := selectors.Validate(); err != nil {
		out.enter(StateAborted)
		return out, err
	}

	session, err := p.Launcher.Launch(ctx)
	if err != nil {
		out.enter(StateAborted)
		return out, coded(wikiextract.EENGINE, err, "starting rendering engine")
	}
	out.enter(StateEngineStarted)
	logger.Debug("engine started")

	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warn("engine shutdown failed", "err", cerr)
		}
		out.enter(StateEngineStopped)
		logger.Debug("engine stopped")
	}()

	doc, err := session.Fetch(ctx, url)
	if err != nil {
		out.enter(StateAborted)
		return out, coded(wikiextract.EFETCH, err, "fetching %s", url)
	}
	out.enter(StateFetched)

	ex := &Extractor{Logger: logger}
	out.Result, out.FieldErrors = ex.Extract(ctx, doc, selectors)
	out.enter(StateExtracted)

	path, err := p.Writer.WriteRecord(ctx, out.Result)
	if err != nil {
		out.enter(StateAborted)
		return out, coded(wikiextract.EWRITE, err, "writing record")
	}
	out.Path = path
	out.enter(StateWritten)
	logger.Info("record written", "path", path, "fields", len(out.Result), "failed", len(out.FieldErrors))

	return out, nil
}

func (p *Pipeline) selectors() wikiextract.SelectorSet {
	if p.Selectors == nil {
		return wikiextract.WikiContent
	}
	return p.Selectors
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// record stores the outcome in the journal, if one is configured.
func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, out *Outcome) {
	if p.Journal == nil {
		return
	}

	run := &wikiextract.Run{
		URL:        out.URL,
		State:      out.State().String(),
		Path:       out.Path,
		Fields:     len(out.Result),
		Values:     out.Result.Len(),
		StartedAt:  out.StartedAt,
		FinishedAt: out.FinishedAt,
	}
	if title, err := out.Result.Title(); err == nil {
		run.Title = title
	}
	if out.Aborted {
		run.State = StateAborted.String()
	}
	if out.Err != nil {
		run.ErrorCode = wikiextract.ErrorCode(out.Err)
		run.Error = out.Err.Error()
	}

	// The run context may already be canceled; the journal entry should
	// still be written.
	if err := p.Journal.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("journal write failed", "err", err)
	}
}

// coded returns err unchanged if it already carries an application error
// code, and wraps it with code otherwise.
func coded(code string, err error, format string, args ...any) error {
	if wikiextract.ErrorCode(err) != wikiextract.EINTERNAL {
		return err
	}
	return wikiextract.Wrap(code, err, format, args...)
}
