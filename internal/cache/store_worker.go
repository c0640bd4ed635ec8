package cache

import (
	"fmt"
	"time"

	"github.com/onnwee/quickcache/internal/errorreporting"
	"github.com/onnwee/quickcache/internal/logger"
)

// cleanupWorker wakes every interval and attempts a non-blocking cleanup
// pass, skipping the tick on lock contention rather than waiting. It exits
// once Stop closes s.stop. A panic inside a tick is recovered, logged, and
// reported — it must never crash the host process, no matter how badly a
// custom policy or serializer misbehaves.
func (s *Store) cleanupWorker(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.runCleanupTickSafely()
		}
	}
}

func (s *Store) runCleanupTickSafely() {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("cache cleanup worker panic: %v", r)
			logger.WithComponent("cache").Error("cleanup worker recovered from panic",
				"cache", s.name, "policy", s.policyName, "serializer", s.serializerName, "panic", r)
			errorreporting.CaptureErrorWithContext(err, map[string]string{
				"cache":      s.name,
				"policy":     s.policyName,
				"serializer": s.serializerName,
			}, nil)
		}
	}()

	// Non-blocking: a long-running SaveToDisk/LoadFromDisk holds s.mu for the
	// whole I/O, and a stuck tick must not pile up behind it. Skip and retry
	// next interval instead of waiting.
	if !s.mu.TryLock() {
		logger.WithComponent("cache").Warn("cleanup worker skipped tick, lock contended", "cache", s.name)
		return
	}
	defer s.mu.Unlock()
	s.cleanupLocked()
}
