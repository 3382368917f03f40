package http

import "sync"

// inflight tracks profiles with a submission still waiting on generation.
type inflight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{active: make(map[string]struct{})}
}

func (g *inflight) acquire(profileID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[profileID]; busy {
		return false
	}
	g.active[profileID] = struct{}{}
	return true
}

func (g *inflight) release(profileID string) {
	g.mu.Lock()
	delete(g.active, profileID)
	g.mu.Unlock()
}
