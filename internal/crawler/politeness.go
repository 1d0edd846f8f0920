package crawler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// visitTracker records which URLs a run has already handed to the network.
type visitTracker interface {
	MarkIfNew(url string) bool
	Seen(url string) bool
	Len() int
}

type concurrentVisitTracker struct {
	seen  sync.Map
	count atomic.Int64
}

func newConcurrentVisitTracker() *concurrentVisitTracker {
	return &concurrentVisitTracker{}
}

// MarkIfNew stores the URL if it has not been seen before and returns true.
func (t *concurrentVisitTracker) MarkIfNew(url string) bool {
	if url == "" {
		return false
	}
	_, loaded := t.seen.LoadOrStore(url, struct{}{})
	if !loaded {
		t.count.Add(1)
	}
	return !loaded
}

func (t *concurrentVisitTracker) Seen(url string) bool {
	_, ok := t.seen.Load(url)
	return ok
}

func (t *concurrentVisitTracker) Len() int {
	return int(t.count.Load())
}

// pauseController abstracts the politeness delay between pages.
type pauseController interface {
	Pause(ctx context.Context, delay time.Duration)
}

type timerPauseController struct{}

func (p *timerPauseController) Pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
