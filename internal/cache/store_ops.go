package cache

import (
	"time"

	"github.com/onnwee/quickcache/internal/cacheerr"
)

// NoExpiry, passed as ttl to Set/Add/Update, marks an entry as never expiring.
const NoExpiry time.Duration = -1

func validateKey(key string) error {
	if key == "" {
		return cacheerr.InvalidKey(key)
	}
	return nil
}

// resolveTTL applies the Store's default TTL and validates an explicit one.
// ttl == 0 means "use default"; NoExpiry means "never expires"; anything
// else must be positive.
func (s *Store) resolveTTL(ttl time.Duration) (time.Duration, error) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	if ttl == NoExpiry || ttl == 0 {
		return NoExpiry, nil
	}
	if ttl < 0 {
		return 0, cacheerr.InvalidTTL(int64(ttl / time.Second))
	}
	return ttl, nil
}

func expiresAtFor(ttl time.Duration, now time.Time) time.Time {
	if ttl == NoExpiry {
		return time.Time{}
	}
	return now.Add(ttl)
}

// Get returns the value stored under key. It fails with KeyNotFound if the
// key is absent, or KeyExpired if it was present but has lapsed — in which
// case the stale entry is dropped as a side effect.
func (s *Store) Get(key string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(key)
}

// getLocked is Get's body, assuming the caller already holds s.mu. It exists
// so bulk operations (store_bulk.go) can take the lock once for a whole
// batch instead of once per key.
func (s *Store) getLocked(key string) (any, error) {
	e, ok := s.entries[key]
	if !ok {
		s.metrics.misses++
		return nil, cacheerr.KeyNotFound(key)
	}

	now := time.Now()
	if e.expired(now) {
		s.removeLocked(key)
		s.metrics.expiredHits++
		return nil, cacheerr.KeyExpired(key)
	}

	e.touch(now)
	s.policy.OnAccess(s.view(), key)
	s.metrics.hits++
	return e.value, nil
}

// Set upserts key. If it is absent (or present but expired), a new entry is
// inserted, evicting a victim first if capacity would be exceeded. If it is
// present and live, the value is replaced and timestamps refreshed.
func (s *Store) Set(key string, value any, ttl time.Duration) error {
	if err := validateKey(key); err != nil {
		return err
	}
	resolved, err := s.resolveTTL(ttl)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(key, value, resolved)
}

// setLocked is Set's body, assuming the caller already holds s.mu and has
// already validated key and resolved ttl.
func (s *Store) setLocked(key string, value any, resolved time.Duration) error {
	now := time.Now()
	if e, ok := s.entries[key]; ok && !e.expired(now) {
		e.value = value
		e.createdAt = now
		e.expiresAt = expiresAtFor(resolved, now)
		e.touch(now)
		s.policy.OnUpdate(s.view(), key)
		s.metrics.updates++
		return nil
	}
	if e, ok := s.entries[key]; ok && e.expired(now) {
		s.removeLocked(key)
	}

	s.insertLocked(key, value, expiresAtFor(resolved, now), now)
	s.metrics.sets++
	return nil
}

// Add inserts key only if it is absent or stale-expired. It fails with
// KeyAlreadyExists if a live entry is already present.
func (s *Store) Add(key string, value any, ttl time.Duration) error {
	if err := validateKey(key); err != nil {
		return err
	}
	resolved, err := s.resolveTTL(ttl)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if e, ok := s.entries[key]; ok {
		if !e.expired(now) {
			return cacheerr.KeyAlreadyExists(key)
		}
		s.removeLocked(key)
	}

	s.insertLocked(key, value, expiresAtFor(resolved, now), now)
	s.metrics.adds++
	return nil
}

// Update replaces the value of a live key. It fails with KeyNotFound if the
// key is absent or has expired; an expired key is dropped as a side effect.
func (s *Store) Update(key string, value any, ttl time.Duration) error {
	if err := validateKey(key); err != nil {
		return err
	}
	resolved, err := s.resolveTTL(ttl)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.entries[key]
	if !ok {
		return cacheerr.KeyNotFound(key)
	}
	if e.expired(now) {
		s.removeLocked(key)
		return cacheerr.KeyNotFound(key)
	}

	e.value = value
	e.createdAt = now
	e.expiresAt = expiresAtFor(resolved, now)
	e.touch(now)
	s.policy.OnUpdate(s.view(), key)
	s.metrics.updates++
	return nil
}

// Delete removes key. It fails with KeyNotFound if key is absent (expired
// keys are treated as absent and also fail with KeyNotFound, after being
// swept).
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(key)
}

// deleteLocked is Delete's body, assuming the caller already holds s.mu.
func (s *Store) deleteLocked(key string) error {
	e, ok := s.entries[key]
	if !ok {
		return cacheerr.KeyNotFound(key)
	}
	now := time.Now()
	if e.expired(now) {
		s.removeLocked(key)
		return cacheerr.KeyNotFound(key)
	}

	s.removeLocked(key)
	s.metrics.deletes++
	return nil
}
