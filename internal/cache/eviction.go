package cache

// View is the narrow, read-only window a policy gets into the store while
// deciding what to evict. Policies keep their own bookkeeping; the view only
// lets them check the store isn't empty before selecting a victim.
type View interface {
	// Len returns the number of entries currently resident in the store.
	Len() int
}

// EvictionPolicy observes every mutation and access to a store's keys and
// chooses a victim when the store must shrink to stay within capacity.
// All methods are called while the store already holds its lock; a policy
// must not call back into the store.
type EvictionPolicy interface {
	// OnAdd is called exactly once when key begins a new residency (first
	// insertion, or reinsertion after a prior delete/expiry/eviction).
	OnAdd(view View, key string)

	// OnUpdate is called when an existing, live key's value is replaced.
	OnUpdate(view View, key string)

	// OnAccess is called after a successful read of key.
	OnAccess(view View, key string)

	// OnDelete is called just before key is removed from the store, for any
	// reason: eviction, expiry, explicit delete, or Clear.
	OnDelete(view View, key string)

	// SelectEvictionKey returns the key the store should remove to satisfy
	// its capacity bound. The view is guaranteed non-empty. The returned key
	// must currently be resident.
	SelectEvictionKey(view View) string
}

// PolicyConstructor builds a fresh, zero-state EvictionPolicy instance. Each
// Store owns exactly one policy instance, created when the store starts.
type PolicyConstructor func() EvictionPolicy
