package crawler

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeFAU/domain-harvester/internal/domain"
	"github.com/JakeFAU/domain-harvester/internal/progress"
)

// Session is the state of one harvest run: the visited URL set, the domain
// registry and the filter deciding what the registry accepts. A Session is
// safe for concurrent use and must not be shared between runs.
type Session struct {
	runID    uuid.UUID
	filter   *domain.Filter
	registry *domain.Registry
	visited  visitTracker
	emitter  progress.Emitter
	logger   *zap.Logger
}

// NewSession prepares an empty run. Every domain newly added to the registry is
// reported to emitter as a DOMAIN_ADDED event.
func NewSession(runID uuid.UUID, filter *domain.Filter, emitter progress.Emitter, logger *zap.Logger) *Session {
	if emitter == nil {
		emitter = progress.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		runID:   runID,
		filter:  filter,
		visited: newConcurrentVisitTracker(),
		emitter: emitter,
		logger:  logger,
	}
	s.registry = domain.NewRegistry(s.domainAdded)
	return s
}

// RunID identifies the run.
func (s *Session) RunID() uuid.UUID {
	return s.runID
}

// Registry exposes the domains collected so far.
func (s *Session) Registry() *domain.Registry {
	return s.registry
}

// VisitedCount reports how many distinct URLs have been handed to the network.
func (s *Session) VisitedCount() int {
	return s.visited.Len()
}

// Offer normalizes rawURL and registers its domain when the filter accepts it.
// The normalized domain is returned whenever rawURL has one, regardless of the
// filter; added reports whether the registry grew.
func (s *Session) Offer(rawURL string) (d domain.Domain, added bool) {
	d, err := domain.Normalize(rawURL)
	if err != nil {
		return "", false
	}
	if s.filter == nil || !s.filter.Accept(d) {
		return d, false
	}
	return d, s.registry.Register(d)
}

func (s *Session) domainAdded(d domain.Domain, total int) {
	s.logger.Debug("domain registered", zap.String("domain", d.String()), zap.Int("total", total))
	s.emitter.Emit(progress.Event{
		RunID:  progress.UUIDToBytes(s.runID),
		TS:     time.Now().UTC(),
		Stage:  progress.StageDomainAdded,
		Domain: d.String(),
		Total:  int64(total),
	})
}
