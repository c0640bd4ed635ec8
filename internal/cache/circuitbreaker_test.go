package cache

import (
	"errors"
	"testing"
)

type flakyBackend struct {
	failuresLeft int
	writes       int
}

func (f *flakyBackend) Write(payload []byte) error {
	f.writes++
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return errors.New("disk full")
	}
	return nil
}

func (f *flakyBackend) Read() ([]byte, error) { return nil, errors.New("not implemented") }

func TestStore_CircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	backend := &flakyBackend{failuresLeft: 100}
	store := newTestStore(t, 10, WithSnapshotBackend(backend))
	must(t, store.Set("a", 1, 0))

	// Default failure threshold is 5; the breaker opens on the 5th
	// consecutive failing save, so the 6th fails fast without calling the
	// backend again.
	var lastErr error
	for i := 0; i < 5; i++ {
		lastErr = store.SaveToDisk()
		if lastErr == nil {
			t.Fatalf("expected save #%d to fail", i+1)
		}
	}

	writesBeforeOpen := backend.writes
	if err := store.SaveToDisk(); err == nil {
		t.Fatalf("expected save to fail once breaker is open")
	}
	if backend.writes != writesBeforeOpen {
		t.Fatalf("breaker should fail fast without calling the backend once open")
	}
}
