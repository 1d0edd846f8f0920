package crawler

import "context"

// Fetcher performs a single GET. Implementations must honor ctx and return an
// error for transport failures and HTTP error statuses.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (FetchResponse, error)
}

// LinkExtractor returns the href values of a document's anchors, in document
// order.
type LinkExtractor interface {
	Links(body []byte) ([]string, error)
}

// Limiter paces network calls.
type Limiter interface {
	Wait(ctx context.Context, rawURL string) error
}
