package crawler

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/domain-harvester/internal/progress"
)

var feedLinkPatterns = []*regexp.Regexp{
	// RSS: <link>URL</link>, optionally wrapped in CDATA.
	regexp.MustCompile(`(?i)<link>\s*(?:<!\[CDATA\[)?\s*(https?://[^<\]\s]+)`),
	// Atom: <link href="URL"/>.
	regexp.MustCompile(`(?i)<link\b[^>]*?\bhref\s*=\s*["'](https?://[^"'<>\s]+)["']`),
}

// ExtractFeedLinks returns the absolute URLs found inside link markers of an
// RSS or Atom document, in order of appearance per marker style.
func ExtractFeedLinks(body []byte) []string {
	var links []string
	for _, re := range feedLinkPatterns {
		for _, m := range re.FindAllSubmatch(body, -1) {
			links = append(links, string(m[1]))
		}
	}
	return links
}

// FeedHarvester registers the domains linked from syndication feeds. It never
// follows the links it finds.
type FeedHarvester struct {
	session *Session
	gate    *FetchGate
	logger  *zap.Logger
}

// NewFeedHarvester builds a harvester that fetches through gate.
func NewFeedHarvester(session *Session, gate *FetchGate, logger *zap.Logger) *FeedHarvester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedHarvester{session: session, gate: gate, logger: logger}
}

// Harvest fetches feedURL and offers every linked URL to the session. It
// returns the number of domains newly added to the registry.
func (h *FeedHarvester) Harvest(ctx context.Context, feedURL string) int {
	start := time.Now()
	page := h.gate.Fetch(ctx, feedURL)
	if page.Empty() {
		return 0
	}
	links := ExtractFeedLinks(page.Body)
	added := 0
	for _, link := range links {
		if _, ok := h.session.Offer(link); ok {
			added++
		}
	}
	h.logger.Debug("feed processed",
		zap.String("feed", feedURL),
		zap.Int("links", len(links)),
		zap.Int("added", added),
	)
	h.session.emitter.Emit(progress.Event{
		RunID: progress.UUIDToBytes(h.session.runID),
		TS:    time.Now().UTC(),
		Stage: progress.StageFeedDone,
		URL:   feedURL,
		Total: int64(added),
		Dur:   time.Since(start),
	})
	return added
}
