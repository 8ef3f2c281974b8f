package search

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry owns one Controller per searcher (a browser session) and closes
// the ones that have not been used for longer than the idle timeout.
type Registry struct {
	factory     func() *Controller
	idleTimeout time.Duration
	now         func() time.Time

	mu        sync.Mutex
	searchers map[string]*searcher
}

type searcher struct {
	ctrl     *Controller
	lastSeen time.Time
}

// NewRegistry creates an empty registry. A non-positive idleTimeout disables
// eviction.
func NewRegistry(factory func() *Controller, idleTimeout time.Duration) *Registry {
	return &Registry{
		factory:     factory,
		idleTimeout: idleTimeout,
		now:         time.Now,
		searchers:   make(map[string]*searcher),
	}
}

// Get returns the controller for id and marks it as used. A controller that
// was closed behind the registry's back is dropped and reported as missing.
//
// Touching happens under the same lock EvictIdle sweeps with, so a searcher
// handed out here is never older than the idle cutoff at the next sweep.
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.searchers[id]
	if !ok {
		return nil, false
	}
	if s.ctrl.Closed() {
		delete(r.searchers, id)
		return nil, false
	}
	s.lastSeen = r.now()
	return s.ctrl, true
}

// Acquire returns the controller for id, creating a new searcher with a
// fresh id when id is empty or unknown (for example after eviction).
func (r *Registry) Acquire(id string) (string, *Controller) {
	if id != "" {
		if ctrl, ok := r.Get(id); ok {
			return id, ctrl
		}
	}

	id = uuid.NewString()
	ctrl := r.factory()

	r.mu.Lock()
	r.searchers[id] = &searcher{ctrl: ctrl, lastSeen: r.now()}
	r.mu.Unlock()
	return id, ctrl
}

// Remove closes and forgets the searcher with the given id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.searchers[id]
	delete(r.searchers, id)
	r.mu.Unlock()

	if ok {
		s.ctrl.Close()
	}
}

// EvictIdle closes every searcher unused for longer than the idle timeout
// and returns how many were evicted.
func (r *Registry) EvictIdle() int {
	if r.idleTimeout <= 0 {
		return 0
	}

	cutoff := r.now().Add(-r.idleTimeout)
	var stale []*Controller

	r.mu.Lock()
	for id, s := range r.searchers {
		if s.lastSeen.Before(cutoff) {
			stale = append(stale, s.ctrl)
			delete(r.searchers, id)
		}
	}
	r.mu.Unlock()

	for _, ctrl := range stale {
		ctrl.Close()
	}
	if len(stale) > 0 {
		log.Printf("search: evicted %d idle searchers", len(stale))
	}
	return len(stale)
}

// Len returns the number of live searchers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.searchers)
}

// Close closes every searcher.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.searchers
	r.searchers = make(map[string]*searcher)
	r.mu.Unlock()

	for _, s := range all {
		s.ctrl.Close()
	}
}
