package review

import "sync"

// StoreFactory builds the card store for one learner.
type StoreFactory func(learnerID string) (Store, error)

// Registry hands out one Scheduler per learner, creating it on first use.
// Card updates for a learner serialize on that learner's scheduler; the
// registry itself only guards the map.
type Registry struct {
	factory StoreFactory
	opts    []SchedulerOption

	mu         sync.Mutex
	schedulers map[string]*Scheduler
}

// NewRegistry creates a registry. A nil factory gives every learner an
// independent in-memory store.
func NewRegistry(factory StoreFactory, opts ...SchedulerOption) *Registry {
	if factory == nil {
		factory = func(string) (Store, error) { return NewMemoryStore(), nil }
	}
	return &Registry{
		factory:    factory,
		opts:       opts,
		schedulers: make(map[string]*Scheduler),
	}
}

// For returns the scheduler for learnerID, creating it if needed.
func (r *Registry) For(learnerID string) (*Scheduler, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.schedulers[learnerID]; ok {
		return s, nil
	}
	store, err := r.factory(learnerID)
	if err != nil {
		return nil, err
	}
	s := NewScheduler(store, r.opts...)
	r.schedulers[learnerID] = s
	return s, nil
}

// StoreFor returns the underlying store for learnerID, for callers that
// read attempt history directly.
func (r *Registry) StoreFor(learnerID string) (Store, error) {
	s, err := r.For(learnerID)
	if err != nil {
		return nil, err
	}
	return s.store, nil
}
