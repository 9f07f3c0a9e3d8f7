// Package cache provides the in-process debounce set used by the view
// tracking gate. It is deliberately NOT authoritative: entries live only in
// this process and expire after a short TTL. The durable database check in
// the tracking service is the actual correctness backstop.
package cache

import (
	"sync"
	"time"
)

// ViewCache is a mutex-guarded set with per-entry expiry. It is created at
// service startup, injected where needed and closed at shutdown, so multiple
// service instances or test runs never share hidden state.
type ViewCache struct {
	mu     sync.Mutex
	ttl    time.Duration
	timers map[string]*time.Timer
	closed bool
}

// NewViewCache creates a ViewCache whose entries expire after ttl.
func NewViewCache(ttl time.Duration) *ViewCache {
	return &ViewCache{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// Add records the key and schedules its eviction after the TTL.
// It returns false if the key was already present (and leaves the existing
// eviction timer untouched). The check and the insert happen under one lock,
// so two near-simultaneous callers cannot both get true for the same key.
func (c *ViewCache) Add(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		// A closed cache suppresses nothing; the durable check still applies.
		return true
	}
	if _, exists := c.timers[key]; exists {
		return false
	}

	c.timers[key] = time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		delete(c.timers, key)
		c.mu.Unlock()
	})
	return true
}

// Len returns the number of live entries. Used by tests and diagnostics.
func (c *ViewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Close stops all pending eviction timers and empties the set.
// After Close the cache never suppresses anything.
func (c *ViewCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, t := range c.timers {
		t.Stop()
		delete(c.timers, key)
	}
	c.closed = true
}
