// Package app initializes and holds the long-lived services of a harvest,
// acting as a dependency injection container for the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/JakeFAU/domain-harvester/internal/clock/system"
	"github.com/JakeFAU/domain-harvester/internal/config"
	"github.com/JakeFAU/domain-harvester/internal/crawler"
	"github.com/JakeFAU/domain-harvester/internal/domain"
	collyfetcher "github.com/JakeFAU/domain-harvester/internal/fetcher/colly"
	"github.com/JakeFAU/domain-harvester/internal/harvest"
	"github.com/JakeFAU/domain-harvester/internal/id/uuid"
	"github.com/JakeFAU/domain-harvester/internal/metrics"
	"github.com/JakeFAU/domain-harvester/internal/output"
	"github.com/JakeFAU/domain-harvester/internal/policy/ratelimit"
	"github.com/JakeFAU/domain-harvester/internal/progress"
	"github.com/JakeFAU/domain-harvester/internal/progress/sinks"
	"github.com/JakeFAU/domain-harvester/internal/storage"
	"github.com/JakeFAU/domain-harvester/internal/storage/gcs"
	"github.com/JakeFAU/domain-harvester/internal/storage/local"
)

// App holds the services shared by a harvest run.
type App struct {
	Logger    *zap.Logger
	Filter    *domain.Filter
	Hub       *progress.Hub
	Runner    *harvest.Runner
	Publisher *output.Publisher
	Metrics   *metrics.Server

	closers []func(context.Context) error
}

// Option overrides a collaborator, mainly for tests.
type Option func(*options)

type options struct {
	fetcher  crawler.Fetcher
	store    storage.BlobStore
	registry *prometheus.Registry
}

// WithFetcher replaces the colly fetcher.
func WithFetcher(f crawler.Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithBlobStore replaces the configured output store.
func WithBlobStore(s storage.BlobStore) Option {
	return func(o *options) { o.store = s }
}

// WithRegistry collects metrics into reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// New wires every service from cfg. It fails fast on configuration that
// cannot work, such as an empty suffix whitelist or an unreachable bucket.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	filter, err := domain.NewFilter(cfg.Filter.AllowedSuffixes, cfg.Filter.Excluded)
	if err != nil {
		return nil, fmt.Errorf("domain filter: %w", err)
	}

	a := &App{Logger: logger, Filter: filter}

	promSink, err := sinks.NewPrometheusSink(o.registry)
	if err != nil {
		return nil, err
	}
	a.Hub = progress.NewHub(progress.Config{
		BufferSize:   cfg.Progress.BufferSize,
		MaxBatchWait: cfg.Progress.MaxBatchWait,
		Logger:       logger,
	}, sinks.NewLogSink(logger), promSink)
	a.closers = append(a.closers, a.Hub.Close)

	if cfg.Metrics.Addr != "" {
		srv, err := metrics.NewServer(cfg.Metrics.Addr, o.registry, o.registry, logger)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		if _, err := srv.Start(); err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.Metrics = srv
		a.closers = append(a.closers, srv.Shutdown)
	}

	store := o.store
	if store == nil {
		store, err = a.openStore(ctx, cfg.Output)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}
	a.Publisher, err = output.NewPublisher(store, cfg.Output.File, cfg.Output.Header, logger)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	fetcher := o.fetcher
	if fetcher == nil {
		fetcher = collyfetcher.New(collyfetcher.Config{
			UserAgent:    cfg.HTTP.UserAgent,
			Timeout:      cfg.HTTP.Timeout,
			MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
			Headers:      http.Header{"Accept-Language": {"en"}},
		})
	}

	gateOpts := crawler.GateOptions{
		MaxFetches: cfg.Crawler.MaxFetches,
		Timeout:    cfg.HTTP.Timeout,
	}
	if cfg.Crawler.HostRPS > 0 {
		gateOpts.Limiter = ratelimit.New(ratelimit.Config{
			RPS:   cfg.Crawler.HostRPS,
			Burst: cfg.Crawler.HostBurst,
		})
	}

	a.Runner, err = harvest.NewRunner(harvest.Options{
		Crawler: crawler.Config{
			MaxDepth:    cfg.Crawler.MaxDepth,
			Concurrency: cfg.Crawler.Concurrency,
			Delay:       cfg.Crawler.Delay,
		},
		Gate:      gateOpts,
		FeedDelay: cfg.Crawler.FeedDelay,
		Seeds:     cfg.Seeds,
	}, filter, fetcher,
		harvest.WithEmitter(a.Hub),
		harvest.WithIDGenerator(uuid.New()),
		harvest.WithClock(system.New()),
		harvest.WithLogger(logger),
	)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	logger.Info("application services initialized",
		zap.Strings("allowed_suffixes", filter.Suffixes()),
		zap.Int("max_depth", cfg.Crawler.MaxDepth),
		zap.Int("concurrency", cfg.Crawler.Concurrency),
	)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg config.OutputConfig) (storage.BlobStore, error) {
	if cfg.GCSBucket != "" {
		store, closeFn, err := gcs.NewFromEnv(ctx, gcs.Config{Bucket: cfg.GCSBucket, Prefix: cfg.Dir})
		if err != nil {
			return nil, fmt.Errorf("open gcs output: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return closeFn() })
		a.Logger.Info("writing block list to gcs", zap.String("bucket", cfg.GCSBucket))
		return store, nil
	}
	store, err := local.New(local.Config{BaseDir: cfg.Dir})
	if err != nil {
		return nil, fmt.Errorf("open local output: %w", err)
	}
	a.Logger.Info("writing block list to disk", zap.String("path", filepath.Join(cfg.Dir, cfg.File)))
	return store, nil
}

// Close shuts services down in reverse start order. The progress hub is
// drained before it closes so the final events reach the sinks.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.Logger.Warn("error closing service", zap.Error(err))
			errs = append(errs, err)
		}
	}
	a.closers = nil
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}
