package sinks

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JakeFAU/domain-harvester/internal/progress"
)

// PrometheusSink exports harvest progress as Prometheus metrics.
type PrometheusSink struct {
	runsCompleted *prometheus.CounterVec
	runDuration   prometheus.Histogram
	domainsTotal  prometheus.Counter
	registrySize  prometheus.Gauge
	feedsTotal    prometheus.Counter
	feedDomains   prometheus.Counter

	fetches       *prometheus.CounterVec
	fetchBytes    prometheus.Counter
	fetchDuration *prometheus.HistogramVec
}

// NewPrometheusSink registers the collectors against reg, or the default
// registerer when reg is nil.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvester_runs_total",
			Help: "Harvest runs finished, partitioned by result.",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "harvester_run_duration_seconds",
			Help:    "Wall time per harvest run.",
			Buckets: []float64{10, 60, 300, 900, 1800, 3600, 7200},
		}),
		domainsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvester_domains_registered_total",
			Help: "Domains newly added to the registry.",
		}),
		registrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "harvester_registry_size",
			Help: "Current number of domains in the registry.",
		}),
		feedsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvester_feeds_total",
			Help: "Feeds harvested.",
		}),
		feedDomains: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvester_feed_domains_total",
			Help: "Domains first discovered through feeds.",
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvester_fetches_total",
			Help: "Fetch gate results partitioned by outcome.",
		}, []string{"outcome"}),
		fetchBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvester_fetch_bytes_total",
			Help: "Body bytes downloaded.",
		}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "harvester_fetch_duration_seconds",
			Help:    "Fetch latency partitioned by outcome.",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 25},
		}, []string{"outcome"}),
	}
	for _, collector := range []prometheus.Collector{
		s.runsCompleted,
		s.runDuration,
		s.domainsTotal,
		s.registrySize,
		s.feedsTotal,
		s.feedDomains,
		s.fetches,
		s.fetchBytes,
		s.fetchDuration,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the collectors from batch.
func (s *PrometheusSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		switch evt.Stage {
		case progress.StageDomainAdded:
			s.domainsTotal.Inc()
			s.registrySize.Set(float64(evt.Total))
		case progress.StageFeedDone:
			s.feedsTotal.Inc()
			s.feedDomains.Add(float64(evt.Total))
		case progress.StageFetchDone:
			s.observeFetch(evt)
		case progress.StageRunDone:
			s.runsCompleted.WithLabelValues("success").Inc()
			s.runDuration.Observe(evt.Dur.Seconds())
		case progress.StageRunError:
			s.runsCompleted.WithLabelValues("error").Inc()
			s.runDuration.Observe(evt.Dur.Seconds())
		}
	}
	return nil
}

func (s *PrometheusSink) observeFetch(evt progress.Event) {
	outcome := string(evt.Outcome)
	s.fetches.WithLabelValues(outcome).Inc()
	if evt.Outcome == progress.OutcomeSkipped {
		return
	}
	if evt.Bytes > 0 {
		s.fetchBytes.Add(float64(evt.Bytes))
	}
	s.fetchDuration.WithLabelValues(outcome).Observe(evt.Dur.Seconds())
}

// Close implements progress.Sink; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}
