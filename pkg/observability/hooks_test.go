package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseComplete(ctx, "16.5", "11.5", time.Millisecond, nil)
	p.OnLayoutComplete(ctx, 9, 6, time.Millisecond)
	p.OnRenderComplete(ctx, "svg", 1024, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "svg")
	c.OnCacheMiss(ctx, "png")
	c.OnCacheSet(ctx, "pdf", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/baseplate.{format}")
	h.OnResponse(ctx, "GET", "/baseplate.{format}", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	counters := NewCounters()
	RegisterAll(counters)
	if Pipeline() != PipelineHooks(counters) || Cache() != CacheHooks(counters) || HTTP() != HTTPHooks(counters) {
		t.Error("RegisterAll should install the counters for every hook kind")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	counters := NewCounters()
	SetPipelineHooks(counters)
	SetPipelineHooks(nil)

	if Pipeline() != PipelineHooks(counters) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnParseComplete(ctx, "abc", "1", 0, errors.New("bad"))
	c.OnParseComplete(ctx, "1", "1", 0, nil)
	c.OnLayoutComplete(ctx, 9, 6, 0)
	c.OnLayoutComplete(ctx, 1, 1, 0)
	c.OnRenderComplete(ctx, "svg", 100, 2*time.Millisecond, nil)
	c.OnRenderComplete(ctx, "svg", 50, time.Millisecond, nil)
	c.OnRenderComplete(ctx, "pdf", 0, 0, errors.New("no rsvg"))
	c.OnCacheMiss(ctx, "svg")
	c.OnCacheSet(ctx, "svg", 100)
	c.OnCacheHit(ctx, "svg")
	c.OnRequest(ctx, "GET", "/healthz")
	c.OnResponse(ctx, "GET", "/healthz", 200, 0)
	c.OnResponse(ctx, "GET", "/baseplate.{format}", 400, 0)

	s := c.Snapshot()
	checks := []struct {
		name      string
		got, want int64
	}{
		{"parse errors", s.ParseErrors, 1},
		{"layouts", s.Layouts, 2},
		{"cells", s.Cells, 55},
		{"svg renders", s.Renders["svg"], 2},
		{"render errors", s.RenderErrors, 1},
		{"render bytes", s.RenderBytes, 150},
		{"cache hits", s.CacheHits, 1},
		{"cache misses", s.CacheMisses, 1},
		{"cache bytes", s.CacheBytes, 100},
		{"requests", s.Requests, 1},
		{"200s", s.Responses[200], 1},
		{"400s", s.Responses[400], 1},
	}
	for _, tt := range checks {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if s.RenderTimeMS != 3 {
		t.Errorf("render time = %vms, want 3", s.RenderTimeMS)
	}

	// The snapshot is a copy.
	s.Renders["svg"] = 99
	if c.Snapshot().Renders["svg"] != 2 {
		t.Error("mutating a snapshot should not affect the counters")
	}
}

func TestCountersConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnLayoutComplete(ctx, 2, 3, 0)
			c.OnCacheHit(ctx, "svg")
			_ = c.Snapshot()
		}()
	}
	wg.Wait()
	if s := c.Snapshot(); s.Layouts != 50 || s.Cells != 300 || s.CacheHits != 50 {
		t.Errorf("snapshot = %+v", s)
	}
}
