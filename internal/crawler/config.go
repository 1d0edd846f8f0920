package crawler

import (
	"fmt"
	"time"
)

// Config holds the knobs of the recursive crawler.
type Config struct {
	// MaxDepth bounds same-site recursion; the seed page is depth 0.
	MaxDepth int
	// Concurrency is the number of workers draining the task queue.
	Concurrency int
	// Delay is the politeness pause applied after each processed page.
	Delay time.Duration
}

// Validate checks for obviously bad values.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("crawler max depth must be >= 0")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("crawler concurrency must be > 0")
	}
	if c.Delay < 0 {
		return fmt.Errorf("crawler delay must be >= 0")
	}
	return nil
}
