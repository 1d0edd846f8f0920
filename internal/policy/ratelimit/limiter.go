// Package ratelimit throttles fetches per registrable domain with token buckets.
package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/JakeFAU/domain-harvester/internal/domain"
)

// Config holds rate limiter configuration.
type Config struct {
	// RPS is the steady request rate allowed per domain; zero or less means
	// unlimited.
	RPS   float64
	Burst int
}

// Limiter manages one token bucket per registrable domain.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// New creates a new Limiter.
func New(cfg Config) *Limiter {
	r := rate.Limit(cfg.RPS)
	if cfg.RPS <= 0 {
		r = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     r,
		burst:    burst,
	}
}

// Wait blocks until rawURL's domain has a token available or ctx ends.
// Subdomains of one site share a bucket.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	if err := l.bucket(Key(rawURL)).Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// Buckets reports how many domains have been seen.
func (l *Limiter) Buckets() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

// Key returns the bucket name for rawURL: its registrable domain, else its
// lowercased host, else "unknown".
func Key(rawURL string) string {
	if d, err := domain.Normalize(rawURL); err == nil {
		return string(d)
	}
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return strings.ToLower(u.Hostname())
	}
	return "unknown"
}
