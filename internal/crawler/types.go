package crawler

import (
	"net/http"
	"time"
)

// Task is a pending crawl of URL at Depth hops from its seed.
type Task struct {
	URL   string
	Depth int
}

// FetchResponse is what a Fetcher returns for a successful request.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Outcome classifies a FetchGate result.
type Outcome string

// FetchGate outcomes.
const (
	// OutcomeOK carries a body.
	OutcomeOK Outcome = "ok"
	// OutcomeSkipped means no network call was made: the URL was already
	// visited in this run or the fetch budget is spent.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the fetch was attempted and Err holds the cause.
	OutcomeFailed Outcome = "failed"
)

// Page is the typed result of FetchGate.Fetch.
type Page struct {
	URL     string
	Outcome Outcome
	Body    []byte
	Err     error
}

// Empty reports whether the page has nothing to process.
func (p Page) Empty() bool {
	return p.Outcome != OutcomeOK || len(p.Body) == 0
}
