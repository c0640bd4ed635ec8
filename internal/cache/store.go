package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/onnwee/quickcache/internal/cacheerr"
	"github.com/onnwee/quickcache/internal/circuitbreaker"
)

// Store is the insertion-ordered, capacity-bounded, TTL-aware key-value
// cache engine. One mutex guards entries, the active eviction policy's
// bookkeeping, and the metrics counters; every public method acquires it.
// Go's sync.Mutex is not reentrant, so public entry points take the lock
// once and call the unexported *Locked helpers, which assume it is already
// held — the same effect the source's reentrant lock achieves.
type Store struct {
	mu sync.Mutex

	name       string
	capacity   int
	defaultTTL time.Duration

	entries map[string]*entry
	order   *list.List               // insertion order, for FIFO tie-breaking and deterministic snapshots
	elems   map[string]*list.Element // key -> node in order

	registry   *Registry
	policy     EvictionPolicy
	policyName string

	serializer     Serializer
	serializerName string

	metrics *Metrics

	fileManager        SnapshotBackend
	metricsFileManager SnapshotBackend
	metricsSerializer  Serializer
	breaker            *circuitbreaker.CircuitBreaker

	stop    chan struct{}
	done    chan struct{}
	stopped bool
}

// storeView adapts Store to the View interface policies see.
type storeView struct{ s *Store }

func (v storeView) Len() int { return len(v.s.entries) }

// NewStore constructs a Store from cfg, applying opts over it, and starts
// its background cleanup worker. Callers must call Stop when done with it.
func NewStore(cfg Config, opts ...Option) (*Store, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxSize <= 0 {
		return nil, cacheerr.Configuration("max_size must be positive")
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 10 * time.Second
	}
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}

	policy, err := cfg.Registry.NewEvictionPolicy(cfg.EvictionPolicy)
	if err != nil {
		return nil, err
	}
	serializer, err := cfg.Registry.NewSerializer(cfg.Serializer)
	if err != nil {
		return nil, err
	}

	fileManager := cfg.SnapshotBackend
	if fileManager == nil {
		fileManager = NewFileManager(cfg.StorageDir, cfg.Filename, serializer.Extension(), cfg.UseTimestamp, "")
	}

	var metricsSerializer Serializer
	var metricsFileManager SnapshotBackend
	if cfg.EnableMetrics {
		metricsSerializer, err = cfg.Registry.NewSerializer(cfg.MetricsSerializer)
		if err != nil {
			return nil, err
		}
		metricsFileManager = cfg.MetricsSnapshotBackend
		if metricsFileManager == nil {
			metricsFileManager = NewFileManager(cfg.MetricsStorageDir, cfg.MetricsFilename, metricsSerializer.Extension(), cfg.MetricsUseTimestamp, "")
		}
	}

	s := &Store{
		name:               cfg.Name,
		capacity:           cfg.MaxSize,
		defaultTTL:         cfg.DefaultTTL,
		entries:            make(map[string]*entry),
		order:              list.New(),
		elems:              make(map[string]*list.Element),
		registry:           cfg.Registry,
		policy:             policy,
		policyName:         cfg.EvictionPolicy,
		serializer:         serializer,
		serializerName:     cfg.Serializer,
		metrics:            newMetrics(time.Now()),
		fileManager:        fileManager,
		metricsFileManager: metricsFileManager,
		metricsSerializer:  metricsSerializer,
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Name: cfg.Name + "-persistence",
		}),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go s.cleanupWorker(cfg.CleanupInterval)

	return s, nil
}

func (s *Store) view() View { return storeView{s} }

// insertLocked adds a brand-new resident key. If the store is full, the
// victim is chosen from the keys present before the insert, so the new key
// is never its own eviction candidate. Must be called while the lock is held
// and key is known absent.
func (s *Store) insertLocked(key string, value any, expiresAt time.Time, now time.Time) {
	s.evictIfNeededLocked()
	e := &entry{value: value, createdAt: now, expiresAt: expiresAt, accessCount: 1, lastAccess: now}
	s.entries[key] = e
	s.elems[key] = s.order.PushBack(key)
	s.policy.OnAdd(s.view(), key)
}

// evictIfNeededLocked removes entries via the policy until there is room for
// one more entry within capacity.
func (s *Store) evictIfNeededLocked() {
	for len(s.entries) >= s.capacity && len(s.entries) > 0 {
		victim := s.policy.SelectEvictionKey(s.view())
		s.removeLocked(victim)
		s.metrics.evictions++
	}
}

// removeLocked deletes key from entries/order and notifies the policy. It
// does not touch metrics; callers account for the reason (delete, evict,
// expiry, clear) themselves.
func (s *Store) removeLocked(key string) {
	s.policy.OnDelete(s.view(), key)
	delete(s.entries, key)
	if el, ok := s.elems[key]; ok {
		s.order.Remove(el)
		delete(s.elems, key)
	}
}

// Size returns the number of resident entries, including expired-but-unswept ones.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// ValidSize runs Cleanup and returns the number of entries remaining.
func (s *Store) ValidSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
	return len(s.entries)
}

// Clear empties the store and resets the eviction policy. Metrics are
// preserved.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.entries = make(map[string]*entry)
	s.order = list.New()
	s.elems = make(map[string]*list.Element)
	policy, err := s.registry.NewEvictionPolicy(s.policyName)
	if err == nil {
		s.policy = policy
	}
}

// Cleanup scans all entries, removes expired ones, and returns the count
// removed.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupLocked()
}

func (s *Store) cleanupLocked() int {
	now := time.Now()
	removed := 0
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		key := el.Value.(string)
		if e, ok := s.entries[key]; ok && e.expired(now) {
			s.removeLocked(key)
			removed++
		}
		el = next
	}
	s.metrics.cleanupRuns++
	s.metrics.cleanupRemoved += int64(removed)
	return removed
}

// Stop signals the cleanup worker to terminate and waits, without a timeout,
// for it to exit. The worker never blocks on the store lock (it uses
// TryLock), so it returns once any tick in progress finishes. Idempotent.
func (s *Store) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stop)
	s.mu.Unlock()

	<-s.done
}

// GetMetricsSnapshot returns the current counters plus derived ratios.
func (s *Store) GetMetricsSnapshot() MetricsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics.snapshot(time.Now())
}

// ResetMetrics zeroes all counters and resets the creation timestamp.
func (s *Store) ResetMetrics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.reset(time.Now())
}

// Name returns the cache's configured name, used for logging and metric labels.
func (s *Store) Name() string { return s.name }

// PolicyName returns the configured eviction policy name.
func (s *Store) PolicyName() string { return s.policyName }

// SerializerName returns the configured serializer name.
func (s *Store) SerializerName() string { return s.serializerName }
