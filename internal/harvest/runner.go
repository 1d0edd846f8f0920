package harvest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeFAU/domain-harvester/internal/crawler"
	"github.com/JakeFAU/domain-harvester/internal/domain"
	"github.com/JakeFAU/domain-harvester/internal/progress"
	"github.com/JakeFAU/domain-harvester/internal/seeds"
)

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints run identifiers.
type IDGenerator interface {
	NewRunID() (uuid.UUID, error)
}

// Options configures a Runner.
type Options struct {
	Crawler crawler.Config
	Gate    crawler.GateOptions
	// FeedDelay is paused after every feed.
	FeedDelay time.Duration
	Seeds     seeds.List
}

// ErrNoSeeds is returned by NewRunner when every seed group is empty.
var ErrNoSeeds = errors.New("no seeds configured")

// Phase names used in Result.Added.
const (
	PhaseDirect         = "direct"
	PhaseFeeds          = "feeds"
	PhaseDirectories    = "directories"
	PhasePublisherFeeds = "publisher_feeds"
)

// Result summarizes a run.
type Result struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Duration  time.Duration
	// Domains is the registry content in ascending order.
	Domains []domain.Domain
	// Added counts newly registered domains per phase.
	Added map[string]int
	// Fetches is the number of network calls made.
	Fetches int
}

// Runner executes harvest runs. Each Run gets a fresh session, so a Runner
// may be reused.
type Runner struct {
	opts    Options
	filter  *domain.Filter
	fetcher crawler.Fetcher
	links   crawler.LinkExtractor
	emitter progress.Emitter
	ids     IDGenerator
	clock   Clock
	logger  *zap.Logger
}

// Option customizes optional Runner collaborators.
type Option func(*Runner)

// WithEmitter sends progress events to emitter.
func WithEmitter(emitter progress.Emitter) Option {
	return func(r *Runner) { r.emitter = emitter }
}

// WithLinkExtractor replaces the goquery link extractor.
func WithLinkExtractor(links crawler.LinkExtractor) Option {
	return func(r *Runner) { r.links = links }
}

// WithIDGenerator replaces the random run ID source.
func WithIDGenerator(ids IDGenerator) Option {
	return func(r *Runner) { r.ids = ids }
}

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(r *Runner) { r.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner validates opts and wires a Runner.
func NewRunner(opts Options, filter *domain.Filter, fetcher crawler.Fetcher, options ...Option) (*Runner, error) {
	if filter == nil {
		return nil, errors.New("domain filter is required")
	}
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if opts.Crawler.Concurrency == 0 {
		opts.Crawler.Concurrency = 1
	}
	if err := opts.Crawler.Validate(); err != nil {
		return nil, fmt.Errorf("crawler options: %w", err)
	}
	if opts.FeedDelay < 0 {
		return nil, errors.New("feed delay must be >= 0")
	}
	if opts.Seeds.Empty() {
		return nil, ErrNoSeeds
	}
	r := &Runner{
		opts:    opts,
		filter:  filter,
		fetcher: fetcher,
		links:   crawler.GoqueryLinkExtractor{},
		emitter: progress.Discard,
		ids:     randomIDs{},
		clock:   wallClock{},
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// Run performs one harvest. On cancellation the partial result is returned
// together with the context error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	runID, err := r.ids.NewRunID()
	if err != nil {
		return Result{}, fmt.Errorf("run id: %w", err)
	}
	res := Result{
		RunID:     runID,
		StartedAt: r.clock.Now(),
		Added:     make(map[string]int, 4),
	}
	logger := r.logger.With(zap.String("run_id", runID.String()))

	session := crawler.NewSession(runID, r.filter, r.emitter, logger)
	gate := crawler.NewFetchGate(session, r.fetcher, r.opts.Gate, logger)
	feeds := crawler.NewFeedHarvester(session, gate, logger)
	crawl := crawler.NewCrawler(r.opts.Crawler, session, gate, r.links, logger)

	r.emit(runID, progress.Event{Stage: progress.StageRunStart})

	runErr := r.phases(ctx, &res, session, feeds, crawl)

	res.Domains = session.Registry().Sorted()
	res.Fetches = gate.Fetched()
	res.Duration = r.clock.Now().Sub(res.StartedAt)

	if runErr != nil {
		r.emit(runID, progress.Event{
			Stage: progress.StageRunError,
			Total: int64(len(res.Domains)),
			Dur:   nonNegative(res.Duration),
			Note:  runErr.Error(),
		})
		return res, runErr
	}
	r.emit(runID, progress.Event{
		Stage: progress.StageRunDone,
		Total: int64(len(res.Domains)),
		Dur:   nonNegative(res.Duration),
	})
	logger.Info("harvest complete",
		zap.Int("domains", len(res.Domains)),
		zap.Int("fetches", res.Fetches),
		zap.Int("visited", session.VisitedCount()),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

func (r *Runner) phases(
	ctx context.Context,
	res *Result,
	session *crawler.Session,
	feeds *crawler.FeedHarvester,
	crawl *crawler.Crawler,
) error {
	for _, seed := range r.opts.Seeds.Direct() {
		if _, added := session.Offer(seed); added {
			res.Added[PhaseDirect]++
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("harvest canceled: %w", err)
	}

	if err := r.harvestFeeds(ctx, feeds, r.opts.Seeds.Feeds, PhaseFeeds, res); err != nil {
		return err
	}

	for _, dir := range r.opts.Seeds.Directories {
		before := session.Registry().Len()
		r.logger.Info("crawling directory", zap.String("url", dir))
		err := crawl.Crawl(ctx, dir)
		res.Added[PhaseDirectories] += session.Registry().Len() - before
		if err != nil {
			return fmt.Errorf("harvest canceled: %w", err)
		}
	}

	return r.harvestFeeds(ctx, feeds, r.opts.Seeds.PublisherFeeds, PhasePublisherFeeds, res)
}

func (r *Runner) harvestFeeds(ctx context.Context, feeds *crawler.FeedHarvester, urls []string, phase string, res *Result) error {
	for _, feedURL := range urls {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("harvest canceled: %w", err)
		}
		r.logger.Info("harvesting feed", zap.String("url", feedURL), zap.String("phase", phase))
		res.Added[phase] += feeds.Harvest(ctx, feedURL)
		if err := sleep(ctx, r.opts.FeedDelay); err != nil {
			return fmt.Errorf("harvest canceled: %w", err)
		}
	}
	return nil
}

func (r *Runner) emit(runID uuid.UUID, evt progress.Event) {
	evt.RunID = progress.UUIDToBytes(runID)
	evt.TS = r.clock.Now().UTC()
	r.emitter.Emit(evt)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

type randomIDs struct{}

func (randomIDs) NewRunID() (uuid.UUID, error) {
	return uuid.NewV7()
}

type wallClock struct{}

func (wallClock) Now() time.Time {
	return time.Now().UTC()
}
