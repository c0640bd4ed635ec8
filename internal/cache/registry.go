package cache

import (
	"strings"
	"sync"

	"github.com/onnwee/quickcache/internal/cacheerr"
)

// Registry is a process-wide, name-keyed table of eviction policy and
// serializer constructors. It decouples the Store from concrete
// implementations: a Store is configured with names, not types, and callers
// may register their own extensions before constructing one. Lookups are
// case-insensitive.
type Registry struct {
	mu         sync.RWMutex
	policies   map[string]PolicyConstructor
	serializer map[string]SerializerConstructor
}

// defaultRegistry is the process-wide registry used when callers don't
// supply their own. It is pre-populated with the built-in policies and
// serializers in init().
var defaultRegistry = NewRegistry()

// NewRegistry constructs an empty registry. Most callers should use the
// package-level RegisterEvictionPolicy/RegisterSerializer/DefaultRegistry
// functions against defaultRegistry instead of managing their own.
func NewRegistry() *Registry {
	return &Registry{
		policies:   make(map[string]PolicyConstructor),
		serializer: make(map[string]SerializerConstructor),
	}
}

func normalize(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// RegisterEvictionPolicy installs constructor under name. Re-registering an
// existing name fails with a cacheerr.CodeRegistry error.
func (r *Registry) RegisterEvictionPolicy(name string, constructor PolicyConstructor) error {
	key := normalize(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.policies[key]; exists {
		return cacheerr.Registry("eviction policy already registered", name)
	}
	r.policies[key] = constructor
	return nil
}

// RegisterSerializer installs constructor under name. Re-registering an
// existing name fails with a cacheerr.CodeRegistry error.
func (r *Registry) RegisterSerializer(name string, constructor SerializerConstructor) error {
	key := normalize(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.serializer[key]; exists {
		return cacheerr.Registry("serializer already registered", name)
	}
	r.serializer[key] = constructor
	return nil
}

// NewEvictionPolicy instantiates the policy registered under name.
func (r *Registry) NewEvictionPolicy(name string) (EvictionPolicy, error) {
	key := normalize(name)
	r.mu.RLock()
	constructor, ok := r.policies[key]
	r.mu.RUnlock()
	if !ok {
		return nil, cacheerr.Registry("unknown eviction policy", name)
	}
	return constructor(), nil
}

// NewSerializer instantiates the serializer registered under name.
func (r *Registry) NewSerializer(name string) (Serializer, error) {
	key := normalize(name)
	r.mu.RLock()
	constructor, ok := r.serializer[key]
	r.mu.RUnlock()
	if !ok {
		return nil, cacheerr.Registry("unknown serializer", name)
	}
	return constructor(), nil
}

func init() {
	_ = defaultRegistry.RegisterEvictionPolicy("lru", NewLRUPolicy)
	_ = defaultRegistry.RegisterEvictionPolicy("lfu", NewLFUPolicy)
	_ = defaultRegistry.RegisterEvictionPolicy("fifo", NewFIFOPolicy)
	_ = defaultRegistry.RegisterSerializer("json", NewJSONSerializer)
	_ = defaultRegistry.RegisterSerializer("gob", NewGobSerializer)
}

// RegisterEvictionPolicy installs constructor under name in the default,
// process-wide registry.
func RegisterEvictionPolicy(name string, constructor PolicyConstructor) error {
	return defaultRegistry.RegisterEvictionPolicy(name, constructor)
}

// RegisterSerializer installs constructor under name in the default,
// process-wide registry.
func RegisterSerializer(name string, constructor SerializerConstructor) error {
	return defaultRegistry.RegisterSerializer(name, constructor)
}

// DefaultRegistry returns the process-wide registry pre-populated with the
// built-in policies (lru, lfu, fifo) and serializers (json, gob).
func DefaultRegistry() *Registry { return defaultRegistry }
