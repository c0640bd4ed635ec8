package cache

import (
	"time"

	"github.com/onnwee/quickcache/internal/cacheerr"
	"github.com/onnwee/quickcache/internal/circuitbreaker"
)

// SaveToDisk runs Cleanup, materializes the current entries into a
// Document, and writes it through the configured serializer and
// SnapshotBackend behind the persistence circuit breaker. An open breaker
// or a write failure returns PersistenceError without disturbing the
// in-memory cache; a partial write can never replace a good snapshot
// because the backend itself writes atomically.
func (s *Store) SaveToDisk() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupLocked()

	doc := Document{
		Version:    documentVersion,
		SavedAt:    time.Now(),
		DefaultTTL: s.defaultTTL,
		Entries:    make([]DocumentEntry, 0, len(s.entries)),
	}
	for el := s.order.Front(); el != nil; el = el.Next() {
		key := el.Value.(string)
		e := s.entries[key]
		doc.Entries = append(doc.Entries, DocumentEntry{
			Key:         key,
			Value:       e.value,
			CreatedAt:   e.createdAt,
			ExpiresAt:   e.expiresAt,
			AccessCount: e.accessCount,
			LastAccess:  e.lastAccess,
		})
	}

	payload, err := s.serializer.Serialize(doc)
	if err != nil {
		return cacheerr.Serialization(err)
	}

	if err := s.breaker.Call(func() error {
		return s.fileManager.Write(payload)
	}); err != nil {
		if err == circuitbreaker.ErrCircuitOpen {
			return cacheerr.Persistence("save", err)
		}
		return err
	}
	return nil
}

// LoadFromDisk reads the document written by SaveToDisk, drops entries
// already expired, and reinserts the rest preserving their original
// metadata and insertion order. The eviction policy is reset and notified
// OnAdd per entry in file order, same as fresh inserts. If the document
// describes more live entries than the store's capacity, the load fails
// with PersistenceError and the current in-memory state is left untouched.
func (s *Store) LoadFromDisk() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.breaker.Call(func() error {
		var readErr error
		payload, readErr = s.fileManager.Read()
		return readErr
	})
	if err != nil {
		if err == circuitbreaker.ErrCircuitOpen {
			return cacheerr.Persistence("load", err)
		}
		return err
	}

	decoded, err := s.serializer.Deserialize(payload)
	if err != nil {
		return cacheerr.Serialization(err)
	}
	var doc Document
	if err := decodeInto(decoded, &doc); err != nil {
		return cacheerr.Serialization(err)
	}

	now := time.Now()
	live := make([]DocumentEntry, 0, len(doc.Entries))
	for _, de := range doc.Entries {
		if !de.ExpiresAt.IsZero() && !now.Before(de.ExpiresAt) {
			continue
		}
		live = append(live, de)
	}
	if len(live) > s.capacity {
		return cacheerr.Newf(cacheerr.CodePersistence, "snapshot has %d live entries, exceeds capacity %d", len(live), s.capacity)
	}

	s.clearLocked()
	for _, de := range live {
		e := &entry{
			value:       de.Value,
			createdAt:   de.CreatedAt,
			expiresAt:   de.ExpiresAt,
			accessCount: de.AccessCount,
			lastAccess:  de.LastAccess,
		}
		s.entries[de.Key] = e
		s.elems[de.Key] = s.order.PushBack(de.Key)
		s.policy.OnAdd(s.view(), de.Key)
	}
	return nil
}

// SaveMetricsToDisk writes the current metrics snapshot through the
// configured metrics serializer and SnapshotBackend, behind the same
// persistence circuit breaker used by SaveToDisk. No-op error if metrics
// are disabled.
func (s *Store) SaveMetricsToDisk() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.metricsFileManager == nil {
		return cacheerr.Configuration("metrics are disabled for this store")
	}

	doc := MetricsDocument{
		Version:  documentVersion,
		SavedAt:  time.Now(),
		Snapshot: s.metrics.snapshot(time.Now()),
	}
	payload, err := s.metricsSerializer.Serialize(doc)
	if err != nil {
		return cacheerr.Serialization(err)
	}
	if err := s.breaker.Call(func() error {
		return s.metricsFileManager.Write(payload)
	}); err != nil {
		if err == circuitbreaker.ErrCircuitOpen {
			return cacheerr.Persistence("save_metrics", err)
		}
		return err
	}
	return nil
}
