package crawler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/domain-harvester/internal/domain"
	"github.com/JakeFAU/domain-harvester/internal/progress"
)

var errNotFound = errors.New("status 404")

// mapFetcher serves canned bodies and counts calls per URL.
type mapFetcher struct {
	mu    sync.Mutex
	data  map[string]string
	types map[string]string
	calls map[string]int
}

func newMapFetcher(data map[string]string) *mapFetcher {
	return &mapFetcher{data: data, types: map[string]string{}, calls: map[string]int{}}
}

func (f *mapFetcher) Fetch(_ context.Context, rawURL string) (FetchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[rawURL]++
	body, ok := f.data[rawURL]
	if !ok {
		return FetchResponse{}, errNotFound
	}
	ct := f.types[rawURL]
	if ct == "" {
		ct = "text/html; charset=utf-8"
	}
	return FetchResponse{
		URL:        rawURL,
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{ct}},
		Body:       []byte(body),
	}, nil
}

func (f *mapFetcher) callsFor(rawURL string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[rawURL]
}

func (f *mapFetcher) fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for u := range f.calls {
		out = append(out, u)
	}
	return out
}

// recordingEmitter keeps every event it receives.
type recordingEmitter struct {
	mu     sync.Mutex
	events []progress.Event
}

func (r *recordingEmitter) Emit(evt progress.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordingEmitter) stage(stage progress.Stage) []progress.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []progress.Event
	for _, evt := range r.events {
		if evt.Stage == stage {
			out = append(out, evt)
		}
	}
	return out
}

func newTestSession(t *testing.T, emitter progress.Emitter, excluded ...string) *Session {
	t.Helper()
	filter, err := domain.NewFilter([]string{".com", ".org", ".co.uk"}, excluded)
	require.NoError(t, err)
	return NewSession(uuid.New(), filter, emitter, nil)
}

func registered(s *Session) []string {
	sorted := s.Registry().Sorted()
	out := make([]string, len(sorted))
	for i, d := range sorted {
		out[i] = d.String()
	}
	return out
}
