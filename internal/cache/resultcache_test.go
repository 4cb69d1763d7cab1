package cache

import (
	"testing"

	"github.com/tsandell/dislotrace/internal/types"
)

func TestResultCache(t *testing.T) {
	c := New(0)

	if _, ok := c.Latest(); ok {
		t.Error("Latest on empty cache reported a result")
	}

	c.Put(types.FrameResult{FrameIndex: 1, Total: 10})
	c.Put(types.FrameResult{FrameIndex: 2, Total: 20})

	latest, ok := c.Latest()
	if !ok || latest.FrameIndex != 2 {
		t.Errorf("Latest = frame %d, want 2", latest.FrameIndex)
	}

	r, ok := c.ByFrame(1)
	if !ok || r.Total != 10 {
		t.Errorf("ByFrame(1) = %v, %v; want total 10", r.Total, ok)
	}

	// Re-evaluating a frame replaces its cached result
	c.Put(types.FrameResult{FrameIndex: 1, Total: 11})
	r, _ = c.ByFrame(1)
	if r.Total != 11 {
		t.Errorf("ByFrame(1) after replacement = %v, want 11", r.Total)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestResultCacheEviction(t *testing.T) {
	c := New(3)

	for i := 0; i < 5; i++ {
		c.Put(types.FrameResult{FrameIndex: i})
	}

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if _, ok := c.ByFrame(0); ok {
		t.Error("frame 0 should have been evicted")
	}
	if _, ok := c.ByFrame(1); ok {
		t.Error("frame 1 should have been evicted")
	}
	for i := 2; i < 5; i++ {
		if _, ok := c.ByFrame(i); !ok {
			t.Errorf("frame %d missing from cache", i)
		}
	}
}
