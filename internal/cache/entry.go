package cache

import "time"

// entry is the internal record stored per key. The zero value for
// expiresAt (the zero time.Time) means "never expires".
type entry struct {
	value       any
	createdAt   time.Time
	expiresAt   time.Time
	accessCount int64
	lastAccess  time.Time
}

func (e *entry) hasExpiry() bool { return !e.expiresAt.IsZero() }

func (e *entry) expired(now time.Time) bool {
	return e.hasExpiry() && !now.Before(e.expiresAt)
}

// touch records a successful access or overwrite at now.
func (e *entry) touch(now time.Time) {
	e.accessCount++
	e.lastAccess = now
}
