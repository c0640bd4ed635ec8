package cache

import "testing"

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertPresent(t *testing.T, s *Store, key string) {
	t.Helper()
	if _, err := s.Get(key); err != nil {
		t.Errorf("expected %q present, got error: %v", key, err)
	}
}

func assertAbsent(t *testing.T, s *Store, key string) {
	t.Helper()
	if _, err := s.Get(key); err == nil {
		t.Errorf("expected %q absent, but Get succeeded", key)
	}
}
