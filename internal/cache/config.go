package cache

import "time"

// Config configures a Store. NewStore fills in only a zero CleanupInterval
// and a nil Registry; every other field is used as given, so callers normally
// start from NewConfig's defaults (optionally adjusted by Option values)
// rather than constructing one by hand.
type Config struct {
	Name            string
	MaxSize         int
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
	EvictionPolicy  string
	Serializer      string

	StorageDir   string
	Filename     string
	UseTimestamp bool

	EnableMetrics           bool
	MetricsSerializer       string
	MetricsStorageDir       string
	MetricsFilename         string
	MetricsUseTimestamp     bool

	Registry *Registry

	// SnapshotBackend overrides the loose-file FileManager used for
	// SaveToDisk/LoadFromDisk, e.g. to plug in a BoltBackend instead.
	SnapshotBackend SnapshotBackend
	// MetricsSnapshotBackend overrides the loose-file FileManager used for
	// SaveMetricsToDisk.
	MetricsSnapshotBackend SnapshotBackend
}

// NewConfig returns a Config populated with documented defaults. maxSize
// must be positive; it is the one option without a default, matching the
// source specification's "required" field.
func NewConfig(maxSize int) Config {
	return Config{
		Name:                "default",
		MaxSize:             maxSize,
		DefaultTTL:          0,
		CleanupInterval:     10 * time.Second,
		EvictionPolicy:      "lru",
		Serializer:          "json",
		StorageDir:          ".",
		Filename:            "cache",
		UseTimestamp:        false,
		EnableMetrics:       true,
		MetricsSerializer:   "json",
		MetricsStorageDir:   ".",
		MetricsFilename:     "cache_metrics",
		MetricsUseTimestamp: false,
		Registry:            DefaultRegistry(),
	}
}

// Option mutates a Config in place. Options are applied in order over the
// result of NewConfig, so later options win.
type Option func(*Config)

func WithName(name string) Option { return func(c *Config) { c.Name = name } }

func WithDefaultTTL(ttl time.Duration) Option { return func(c *Config) { c.DefaultTTL = ttl } }

func WithCleanupInterval(d time.Duration) Option {
	return func(c *Config) { c.CleanupInterval = d }
}

func WithEvictionPolicy(name string) Option { return func(c *Config) { c.EvictionPolicy = name } }

func WithSerializer(name string) Option { return func(c *Config) { c.Serializer = name } }

func WithStorageDir(dir string) Option { return func(c *Config) { c.StorageDir = dir } }

func WithFilename(name string) Option { return func(c *Config) { c.Filename = name } }

func WithCacheTimestamps(enabled bool) Option {
	return func(c *Config) { c.UseTimestamp = enabled }
}

func WithMetricsEnabled(enabled bool) Option {
	return func(c *Config) { c.EnableMetrics = enabled }
}

func WithMetricsSerializer(name string) Option {
	return func(c *Config) { c.MetricsSerializer = name }
}

func WithMetricsStorageDir(dir string) Option {
	return func(c *Config) { c.MetricsStorageDir = dir }
}

func WithMetricsFilename(name string) Option {
	return func(c *Config) { c.MetricsFilename = name }
}

func WithCacheMetricsTimestamps(enabled bool) Option {
	return func(c *Config) { c.MetricsUseTimestamp = enabled }
}

func WithRegistry(r *Registry) Option { return func(c *Config) { c.Registry = r } }

func WithSnapshotBackend(b SnapshotBackend) Option {
	return func(c *Config) { c.SnapshotBackend = b }
}

func WithMetricsSnapshotBackend(b SnapshotBackend) Option {
	return func(c *Config) { c.MetricsSnapshotBackend = b }
}
