package events

import (
	"sync"
	"time"
)

// Registry tracks which view paths are stale. Renderers check Stale before
// serving a cached view and call Refresh after recomputing it.
type Registry struct {
	mu    sync.RWMutex
	stale map[string]time.Time
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{stale: map[string]time.Time{}}
}

// Invalidate marks every given path stale.
func (r *Registry) Invalidate(paths ...string) {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, path := range paths {
		r.stale[path] = now
	}
}

// Stale reports whether the path has a pending invalidation.
func (r *Registry) Stale(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.stale[path]
	return ok
}

// Refresh clears the staleness mark for a recomputed path.
func (r *Registry) Refresh(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stale, path)
}
