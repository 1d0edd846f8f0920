package crawler

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JakeFAU/domain-harvester/internal/domain"
)

// Crawler walks a site breadth-first from a seed, registering the domain of
// every link it resolves and following only links that stay on the page's own
// registrable domain.
type Crawler struct {
	cfg     Config
	session *Session
	gate    *FetchGate
	links   LinkExtractor
	pauser  pauseController
	logger  *zap.Logger
}

// NewCrawler wires a Crawler. A nil LinkExtractor defaults to
// GoqueryLinkExtractor.
func NewCrawler(cfg Config, session *Session, gate *FetchGate, links LinkExtractor, logger *zap.Logger) *Crawler {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if links == nil {
		links = GoqueryLinkExtractor{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{
		cfg:     cfg,
		session: session,
		gate:    gate,
		links:   links,
		pauser:  &timerPauseController{},
		logger:  logger,
	}
}

// Crawl processes seedURL and everything reachable from it within MaxDepth
// same-domain hops. Page failures are absorbed; only context cancellation is
// returned.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) error {
	queue := newFrontier()
	stop := context.AfterFunc(ctx, queue.close)
	defer stop()

	queue.push(Task{URL: seedURL, Depth: 0})

	var g errgroup.Group
	for range c.cfg.Concurrency {
		g.Go(func() error {
			for {
				task, ok := queue.next()
				if !ok {
					return nil
				}
				c.process(ctx, task, queue)
				queue.done()
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("crawl %s: %w", seedURL, err)
	}
	return nil
}

func (c *Crawler) process(ctx context.Context, task Task, queue *frontier) {
	if task.Depth > c.cfg.MaxDepth || ctx.Err() != nil {
		return
	}

	page := c.gate.Fetch(ctx, task.URL)
	if page.Empty() {
		return
	}

	hrefs, err := c.links.Links(page.Body)
	if err != nil {
		c.logger.Debug("link extraction failed", zap.String("url", task.URL), zap.Error(err))
		return
	}

	base, err := url.Parse(task.URL)
	if err != nil {
		base = nil
	}
	pageDomain, pageErr := domain.Normalize(task.URL)
	follow := pageErr == nil && task.Depth+1 <= c.cfg.MaxDepth

	queued := 0
	for _, href := range hrefs {
		resolved, ok := ResolveHref(base, href)
		if !ok {
			continue
		}
		linkDomain, _ := c.session.Offer(resolved)
		if !follow || linkDomain == "" || linkDomain != pageDomain {
			continue
		}
		if c.gate.Visited(resolved) {
			continue
		}
		queue.push(Task{URL: resolved, Depth: task.Depth + 1})
		queued++
	}

	c.logger.Debug("page crawled",
		zap.String("url", task.URL),
		zap.Int("depth", task.Depth),
		zap.Int("links", len(hrefs)),
		zap.Int("queued", queued),
	)

	c.pauser.Pause(ctx, c.cfg.Delay)
}
