package observability

import (
	"context"
	"sync"
	"time"
)

// Counters is an in-memory implementation of every hook interface. The
// server exposes its snapshot at /stats.
type Counters struct {
	mu      sync.Mutex
	started time.Time

	parseErrors  int64
	layouts      int64
	cells        int64
	renders      map[string]int64
	renderErrors int64
	renderBytes  int64
	renderTime   time.Duration

	cacheHits   int64
	cacheMisses int64
	cacheBytes  int64

	requests  int64
	responses map[int]int64
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{
		started:   time.Now(),
		renders:   make(map[string]int64),
		responses: make(map[int]int64),
	}
}

// Snapshot is a point-in-time copy of Counters, shaped for JSON.
type Snapshot struct {
	Uptime       string           `json:"uptime"`
	ParseErrors  int64            `json:"parse_errors"`
	Layouts      int64            `json:"layouts"`
	Cells        int64            `json:"cells"`
	Renders      map[string]int64 `json:"renders"`
	RenderErrors int64            `json:"render_errors"`
	RenderBytes  int64            `json:"render_bytes"`
	RenderTimeMS float64          `json:"render_time_ms"`
	CacheHits    int64            `json:"cache_hits"`
	CacheMisses  int64            `json:"cache_misses"`
	CacheBytes   int64            `json:"cache_bytes"`
	Requests     int64            `json:"requests"`
	Responses    map[int]int64    `json:"responses"`
}

// Snapshot copies the current values.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Uptime:       time.Since(c.started).Round(time.Second).String(),
		ParseErrors:  c.parseErrors,
		Layouts:      c.layouts,
		Cells:        c.cells,
		Renders:      make(map[string]int64, len(c.renders)),
		RenderErrors: c.renderErrors,
		RenderBytes:  c.renderBytes,
		RenderTimeMS: float64(c.renderTime) / float64(time.Millisecond),
		CacheHits:    c.cacheHits,
		CacheMisses:  c.cacheMisses,
		CacheBytes:   c.cacheBytes,
		Requests:     c.requests,
		Responses:    make(map[int]int64, len(c.responses)),
	}
	for k, v := range c.renders {
		s.Renders[k] = v
	}
	for k, v := range c.responses {
		s.Responses[k] = v
	}
	return s
}

func (c *Counters) OnParseComplete(_ context.Context, _, _ string, _ time.Duration, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.parseErrors++
	c.mu.Unlock()
}

func (c *Counters) OnLayoutComplete(_ context.Context, columns, rows int, _ time.Duration) {
	c.mu.Lock()
	c.layouts++
	c.cells += int64(columns * rows)
	c.mu.Unlock()
}

func (c *Counters) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.renderErrors++
		return
	}
	c.renders[format]++
	c.renderBytes += int64(size)
	c.renderTime += d
}

func (c *Counters) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.cacheHits++
	c.mu.Unlock()
}

func (c *Counters) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	c.cacheMisses++
	c.mu.Unlock()
}

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.mu.Lock()
	c.cacheBytes += int64(size)
	c.mu.Unlock()
}

func (c *Counters) OnRequest(context.Context, string, string) {
	c.mu.Lock()
	c.requests++
	c.mu.Unlock()
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.mu.Lock()
	c.responses[status]++
	c.mu.Unlock()
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
