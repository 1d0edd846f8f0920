package domain

import (
	"slices"
	"sync"
)

// InsertObserver is notified after a domain is newly registered, with the
// registry size including that domain.
type InsertObserver func(d Domain, total int)

// Registry is the deduplicated set of accepted domains for one run. It is safe
// for concurrent use.
type Registry struct {
	mu        sync.Mutex
	domains   map[Domain]struct{}
	observers []InsertObserver
}

// NewRegistry returns an empty Registry notifying the given observers.
func NewRegistry(observers ...InsertObserver) *Registry {
	return &Registry{
		domains:   make(map[Domain]struct{}),
		observers: observers,
	}
}

// Register inserts d and reports whether this call added it. Registering the
// same domain again is a no-op.
func (r *Registry) Register(d Domain) bool {
	if d == "" {
		return false
	}
	r.mu.Lock()
	if _, ok := r.domains[d]; ok {
		r.mu.Unlock()
		return false
	}
	r.domains[d] = struct{}{}
	total := len(r.domains)
	r.mu.Unlock()

	for _, observe := range r.observers {
		if observe != nil {
			observe(d, total)
		}
	}
	return true
}

// Contains reports whether d has been registered.
func (r *Registry) Contains(d Domain) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.domains[d]
	return ok
}

// Len returns the number of registered domains.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.domains)
}

// Sorted returns a lexicographically ordered copy of the registered domains.
func (r *Registry) Sorted() []Domain {
	r.mu.Lock()
	out := make([]Domain, 0, len(r.domains))
	for d := range r.domains {
		out = append(out, d)
	}
	r.mu.Unlock()
	slices.Sort(out)
	return out
}
