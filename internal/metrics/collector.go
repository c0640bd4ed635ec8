package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/onnwee/quickcache/internal/cache"
	"github.com/onnwee/quickcache/internal/logger"
)

// Collector periodically mirrors a Store's in-process metrics snapshot into
// the package's Prometheus vars. The snapshot itself is cumulative since the
// Store was created, so the collector tracks the last-seen values and only
// adds the delta on each tick.
type Collector struct {
	store    *cache.Store
	interval time.Duration
	stop     chan struct{}

	mu   sync.Mutex
	last cache.MetricsSnapshot
}

// NewCollector creates a collector for store, sampling every interval.
func NewCollector(store *cache.Store, interval time.Duration) *Collector {
	return &Collector{
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the collection loop. It blocks until ctx is cancelled or
// Stop is called.
func (c *Collector) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.collect()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops the metrics collector.
func (c *Collector) Stop() {
	close(c.stop)
}

func (c *Collector) collect() {
	if c.store == nil {
		MetricsCollectionErrors.WithLabelValues("cache").Inc()
		return
	}

	name := c.store.Name()
	policy := c.store.PolicyName()
	snap := c.store.GetMetricsSnapshot()

	c.mu.Lock()
	prev := c.last
	c.last = snap
	c.mu.Unlock()

	CacheHitsTotal.WithLabelValues(name).Add(delta(snap.Hits, prev.Hits))
	CacheMissesTotal.WithLabelValues(name).Add(delta(snap.Misses, prev.Misses))
	CacheExpiredHitsTotal.WithLabelValues(name).Add(delta(snap.ExpiredHits, prev.ExpiredHits))
	CacheCleanupRunsTotal.WithLabelValues(name).Add(delta(snap.CleanupRuns, prev.CleanupRuns))
	CacheCleanupRemovedTotal.WithLabelValues(name).Add(delta(snap.CleanupRemoved, prev.CleanupRemoved))
	CacheEvictionsTotal.WithLabelValues(name, policy).Add(delta(snap.Evictions, prev.Evictions))
	CacheItems.WithLabelValues(name).Set(float64(c.store.Size()))
	CacheHitRate.WithLabelValues(name).Set(snap.HitRate)

	logger.WithComponent("metrics").Debug("collected cache metrics", "cache", name, "items", c.store.Size())
}

// delta returns the non-negative increase from prev to cur. A reset (e.g.
// ResetMetrics was called between ticks) would make cur < prev; in that case
// treat the whole current value as new growth rather than going negative.
func delta(cur, prev int64) float64 {
	if cur < prev {
		return float64(cur)
	}
	return float64(cur - prev)
}
