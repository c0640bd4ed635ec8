package cache

import "time"

// SetMany upserts every key in mapping with the same ttl, taking the lock
// once for the whole batch. If a per-key validation error occurs (e.g. an
// empty key), the batch stops there — entries already written in this call
// are kept, not rolled back.
func (s *Store) SetMany(mapping map[string]any, ttl time.Duration) error {
	resolved, err := s.resolveTTL(ttl)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range mapping {
		if err := validateKey(key); err != nil {
			return err
		}
		if err := s.setLocked(key, value, resolved); err != nil {
			return err
		}
	}
	return nil
}

// GetMany returns a mapping of the keys found live among keys, taking the
// lock once for the whole batch. Missing or expired keys are silently
// omitted; callers compare the result's size against len(keys) to detect
// gaps.
func (s *Store) GetMany(keys []string) map[string]any {
	out := make(map[string]any, len(keys))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if v, err := s.getLocked(key); err == nil {
			out[key] = v
		}
	}
	return out
}

// DeleteMany removes every key present among keys, taking the lock once for
// the whole batch and silently skipping any key already absent.
func (s *Store) DeleteMany(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		_ = s.deleteLocked(key)
	}
}
