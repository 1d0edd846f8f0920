package crawler

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/domain-harvester/internal/progress"
)

// ErrFetchBudgetExhausted marks pages skipped because the run reached its
// fetch limit.
var ErrFetchBudgetExhausted = errors.New("fetch budget exhausted")

// ErrAlreadyVisited marks pages skipped because the URL was handed to the
// network earlier in the run.
var ErrAlreadyVisited = errors.New("url already visited")

// ErrUnsupportedContent is returned for bodies that cannot carry links.
var ErrUnsupportedContent = errors.New("unsupported content type")

// GateOptions tunes a FetchGate.
type GateOptions struct {
	// MaxFetches caps network calls per run; zero means unlimited.
	MaxFetches int
	// Timeout bounds a single fetch in addition to the fetcher's own limit.
	Timeout time.Duration
	// Limiter, when set, is waited on before every network call.
	Limiter Limiter
}

// FetchGate wraps a Fetcher so each URL reaches the network at most once per
// Session. Failures never escape: they come back as OutcomeFailed pages.
type FetchGate struct {
	session *Session
	fetcher Fetcher
	opts    GateOptions
	fetches atomic.Int64
	logger  *zap.Logger
}

// NewFetchGate binds fetcher to the session's visited set.
func NewFetchGate(session *Session, fetcher Fetcher, opts GateOptions, logger *zap.Logger) *FetchGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FetchGate{
		session: session,
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
	}
}

// Fetched reports how many network calls the gate has made.
func (g *FetchGate) Fetched() int {
	return int(g.fetches.Load())
}

// Visited reports whether rawURL has already been claimed in this run.
func (g *FetchGate) Visited(rawURL string) bool {
	return g.session.visited.Seen(visitKey(rawURL))
}

// Fetch returns the body of rawURL. The URL is marked visited before the
// network call, so concurrent callers for the same URL see OutcomeSkipped.
func (g *FetchGate) Fetch(ctx context.Context, rawURL string) Page {
	page := Page{URL: rawURL}
	if !g.session.visited.MarkIfNew(visitKey(rawURL)) {
		page.Outcome = OutcomeSkipped
		page.Err = ErrAlreadyVisited
		g.emit(page, 0, 0)
		return page
	}
	if n := g.fetches.Add(1); g.opts.MaxFetches > 0 && n > int64(g.opts.MaxFetches) {
		g.fetches.Add(-1)
		page.Outcome = OutcomeSkipped
		page.Err = ErrFetchBudgetExhausted
		g.emit(page, 0, 0)
		return page
	}

	if g.opts.Limiter != nil {
		if err := g.opts.Limiter.Wait(ctx, rawURL); err != nil {
			page.Outcome = OutcomeFailed
			page.Err = err
			g.emit(page, 0, 0)
			return page
		}
	}

	fetchCtx := ctx
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.fetcher.Fetch(fetchCtx, rawURL)
	elapsed := time.Since(start)
	if err == nil {
		err = checkContentType(resp.Headers.Get("Content-Type"))
	}
	if err != nil {
		g.logger.Debug("fetch failed", zap.String("url", rawURL), zap.Error(err))
		page.Outcome = OutcomeFailed
		page.Err = err
		g.emit(page, 0, elapsed)
		return page
	}

	page.Outcome = OutcomeOK
	page.Body = resp.Body
	g.emit(page, len(resp.Body), elapsed)
	return page
}

func (g *FetchGate) emit(page Page, size int, dur time.Duration) {
	evt := progress.Event{
		RunID:   progress.UUIDToBytes(g.session.runID),
		TS:      time.Now().UTC(),
		Stage:   progress.StageFetchDone,
		URL:     page.URL,
		Bytes:   int64(size),
		Outcome: progress.Outcome(page.Outcome),
		Dur:     dur,
	}
	if page.Err != nil {
		evt.Note = page.Err.Error()
	}
	g.session.emitter.Emit(evt)
}

// checkContentType accepts missing headers, text/* and the XML family used by
// feeds.
func checkContentType(header string) error {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedContent, header)
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"),
		strings.HasSuffix(mediaType, "xml"),
		strings.HasSuffix(mediaType, "+xml"),
		strings.Contains(mediaType, "rss"),
		strings.Contains(mediaType, "atom"),
		strings.Contains(mediaType, "xhtml"):
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedContent, mediaType)
}
