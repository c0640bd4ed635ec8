package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/onnwee/quickcache/internal/cache"
)

func newTestStore(t *testing.T, dir string) *cache.Store {
	t.Helper()
	cfg := cache.NewConfig(10)
	cfg.StorageDir = dir
	cfg.MetricsStorageDir = dir
	store, err := cache.NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(store.Stop)
	return store
}

func TestService_DisabledIntervalReturnsImmediately(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	svc := NewService(store, 0)

	done := make(chan struct{})
	go func() {
		svc.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return for a disabled interval")
	}
}

func TestService_RunSnapshotWritesFile(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	if err := store.Set("k", "v", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	svc := NewService(store, time.Hour)
	svc.runSnapshot(context.Background())

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected runSnapshot to write at least one file")
	}
}

func TestService_StopStopsLoop(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	svc := NewService(store, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		svc.Start(context.Background())
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	svc.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not stop the scheduler loop in time")
	}
}

func TestService_ContextCancelStopsLoop(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	svc := NewService(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("context cancellation did not stop the scheduler loop in time")
	}
}

func TestService_SnapshotFilePathIsWithinStorageDir(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	svc := NewService(store, time.Hour)
	svc.runSnapshot(context.Background())

	matches, err := filepath.Glob(filepath.Join(dir, "cache*"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected a cache snapshot file in storage dir")
	}
}
