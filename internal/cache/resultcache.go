// Package cache keeps recent classification results in memory so the REST
// controller can serve them without a round trip to a persistent sink.
package cache

import (
	"sync"

	"github.com/tsandell/dislotrace/internal/types"
)

const defaultMaxEntries = 1024

// ResultCache is a bounded cache of per-frame results, keyed by frame index.
// Re-evaluating a frame replaces its cached result.
type ResultCache struct {
	mu      sync.RWMutex
	byFrame map[int]types.FrameResult
	order   []int
	max     int
	latest  types.FrameResult
	hasAny  bool
}

// New creates a ResultCache holding at most maxEntries results. A
// non-positive maxEntries selects the default bound.
func New(maxEntries int) *ResultCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &ResultCache{
		byFrame: make(map[int]types.FrameResult),
		max:     maxEntries,
	}
}

// Put records a frame's result, evicting the oldest distinct frame when the
// bound is exceeded.
func (c *ResultCache) Put(r types.FrameResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byFrame[r.FrameIndex]; !exists {
		c.order = append(c.order, r.FrameIndex)
		if len(c.order) > c.max {
			evicted := c.order[0]
			c.order = c.order[1:]
			delete(c.byFrame, evicted)
		}
	}
	c.byFrame[r.FrameIndex] = r
	c.latest = r
	c.hasAny = true
}

// Latest returns the most recently recorded result.
func (c *ResultCache) Latest() (types.FrameResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest, c.hasAny
}

// ByFrame returns the cached result for a frame index.
func (c *ResultCache) ByFrame(index int) (types.FrameResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.byFrame[index]
	return r, ok
}

// Len returns the number of cached frames.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byFrame)
}
