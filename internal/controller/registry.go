package controller

import (
	"sync"
	"time"
)

// Registry keeps one controller per visitor session
type Registry struct {
	mu          sync.Mutex
	controllers map[string]*Controller
	factory     func() *Controller
}

// NewRegistry creates a registry that builds controllers on first access
func NewRegistry(factory func() *Controller) *Registry {
	return &Registry{
		controllers: make(map[string]*Controller),
		factory:     factory,
	}
}

// Get returns the controller of sessionID, creating it if needed.
// The controller is marked active before the registry lock is released,
// so a concurrent Sweep cannot evict it between Get and its first use.
func (r *Registry) Get(sessionID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[sessionID]; ok {
		c.touch()
		return c
	}
	c := r.factory()
	r.controllers[sessionID] = c
	return c
}

// Delete drops the controller of sessionID
func (r *Registry) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.controllers, sessionID)
}

// Len returns the number of live controllers
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Sweep evicts controllers untouched for longer than maxIdle. Loading controllers are kept.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, c := range r.controllers {
		if lastActive, idle := c.IdleSince(); idle && lastActive.Before(cutoff) {
			delete(r.controllers, id)
			evicted++
		}
	}
	return evicted
}
