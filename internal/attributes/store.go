// Package attributes implements the per-frame named scalar attribute store
// that classification results are written into. The host owns the store's
// lifetime; the pipeline only writes derived scalars to it.
package attributes

import (
	"sort"
	"sync"
)

// Canonical attribute names written for every successfully classified frame.
const (
	AttrScrew = "Screw"
	AttrEdge  = "Edge"
	AttrMixed = "Mixed"
	AttrTotal = "Total"
)

// Store is the write surface the classification pipeline sees. Setting an
// existing name overwrites its prior value.
type Store interface {
	Set(name string, value float64)
	Get(name string) (float64, bool)
	Names() []string
}

// FrameAttributes is an in-memory Store. One is created fresh per frame;
// nothing persists across frames.
type FrameAttributes struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewFrameAttributes creates an empty attribute store for one frame.
func NewFrameAttributes() *FrameAttributes {
	return &FrameAttributes{values: make(map[string]float64)}
}

// Set writes a named scalar, replacing any prior value for that name.
func (f *FrameAttributes) Set(name string, value float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
}

// Get returns the named scalar and whether it has been set.
func (f *FrameAttributes) Get(name string) (float64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[name]
	return v, ok
}

// Names returns all attribute names currently set, sorted.
func (f *FrameAttributes) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.values))
	for name := range f.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
