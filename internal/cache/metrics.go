package cache

import "time"

// Metrics accumulates counters describing a Store's lifetime activity.
// Every field is mutated only while the owning Store holds its lock, so
// Metrics itself needs no synchronization of its own.
type Metrics struct {
	hits           int64
	misses         int64
	expiredHits    int64
	sets           int64
	adds           int64
	updates        int64
	deletes        int64
	evictions      int64
	cleanupRuns    int64
	cleanupRemoved int64
	createdAt      time.Time
}

// newMetrics returns a freshly reset Metrics with createdAt set to now.
func newMetrics(now time.Time) *Metrics {
	return &Metrics{createdAt: now}
}

// reset zeroes every counter and stamps a new creation time.
func (m *Metrics) reset(now time.Time) {
	*m = Metrics{createdAt: now}
}

// MetricsSnapshot is an immutable point-in-time view of a Store's counters
// plus derived ratios, safe to hand to callers or serialize.
type MetricsSnapshot struct {
	Hits           int64     `json:"hits"`
	Misses         int64     `json:"misses"`
	ExpiredHits    int64     `json:"expired_hits"`
	Sets           int64     `json:"sets"`
	Adds           int64     `json:"adds"`
	Updates        int64     `json:"updates"`
	Deletes        int64     `json:"deletes"`
	Evictions      int64     `json:"evictions"`
	CleanupRuns    int64     `json:"cleanup_runs"`
	CleanupRemoved int64     `json:"cleanup_removed"`
	CreatedAt      time.Time `json:"created_at"`
	HitRate        float64   `json:"hit_rate"`
	MissRate       float64   `json:"miss_rate"`
	TotalOps       int64     `json:"total_operations"`
}

// snapshot captures the current counters and computes derived ratios. Must
// be called while the owning Store holds its lock.
func (m *Metrics) snapshot(now time.Time) MetricsSnapshot {
	denom := m.hits + m.misses + m.expiredHits
	s := MetricsSnapshot{
		Hits:           m.hits,
		Misses:         m.misses,
		ExpiredHits:    m.expiredHits,
		Sets:           m.sets,
		Adds:           m.adds,
		Updates:        m.updates,
		Deletes:        m.deletes,
		Evictions:      m.evictions,
		CleanupRuns:    m.cleanupRuns,
		CleanupRemoved: m.cleanupRemoved,
		CreatedAt:      m.createdAt,
		TotalOps:       m.sets + m.adds + m.updates + m.deletes + m.hits + m.misses + m.expiredHits,
	}
	if denom > 0 {
		s.HitRate = float64(m.hits) / float64(denom)
		s.MissRate = float64(m.misses+m.expiredHits) / float64(denom)
	}
	_ = now
	return s
}
