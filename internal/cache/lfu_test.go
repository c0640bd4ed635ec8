package cache

import (
	"testing"
	"time"
)

func TestLFUPolicy_TieBreaksToLeastRecentlyTouched(t *testing.T) {
	store, err := NewStore(NewConfig(3), WithEvictionPolicy("lfu"), WithCleanupInterval(time.Hour))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Stop()

	must(t, store.Set("a", 1, 0))
	must(t, store.Set("b", 2, 0))
	must(t, store.Set("c", 3, 0))
	if _, err := store.Get("a"); err != nil {
		t.Fatalf("Get(a): %v", err)
	}
	if _, err := store.Get("b"); err != nil {
		t.Fatalf("Get(b): %v", err)
	}
	must(t, store.Set("d", 4, 0))

	assertAbsent(t, store, "c")
	assertPresent(t, store, "a")
	assertPresent(t, store, "b")
	assertPresent(t, store, "d")
}
