package scheduler

import (
	"context"
	"time"

	"github.com/onnwee/quickcache/internal/cache"
	"github.com/onnwee/quickcache/internal/logger"
)

// Service periodically snapshots a Store to disk on a fixed interval.
// A zero interval disables the scheduler; callers check that before
// starting it.
type Service struct {
	store    *cache.Store
	interval time.Duration
	stop     chan struct{}
}

// NewService creates a scheduler that saves store to disk every interval.
func NewService(store *cache.Store, interval time.Duration) *Service {
	return &Service{
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the scheduler loop. It blocks until ctx is cancelled or Stop
// is called.
func (s *Service) Start(ctx context.Context) {
	if s.interval <= 0 {
		logger.Info("scheduled snapshotting disabled")
		return
	}

	logger.Info("starting scheduled snapshot service", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped by context")
			return
		case <-s.stop:
			logger.Info("scheduler stopped by signal")
			return
		case <-ticker.C:
			s.runSnapshot(ctx)
		}
	}
}

// Stop gracefully stops the scheduler.
func (s *Service) Stop() {
	close(s.stop)
}

func (s *Service) runSnapshot(ctx context.Context) {
	if err := s.store.SaveToDisk(); err != nil {
		logger.ErrorContext(ctx, "scheduled snapshot failed", "error", err)
		return
	}
	// SaveMetricsToDisk is a no-op error when metrics are disabled for this
	// store; only warn since that's an expected configuration, not a fault.
	if err := s.store.SaveMetricsToDisk(); err != nil {
		logger.WarnContext(ctx, "scheduled metrics snapshot skipped", "error", err)
	}
	logger.InfoContext(ctx, "scheduled snapshot saved", "size", s.store.Size())
}
