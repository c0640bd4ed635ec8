package config

import (
	"os"
	"strings"
	"time"

	"github.com/onnwee/quickcache/internal/cache"
	"github.com/onnwee/quickcache/internal/utils"
)

// Config holds application configuration derived from environment variables.
// It layers ambient service concerns (logging, tracing, error reporting,
// rate limiting, CORS) over the cache engine's own Config, which CacheConfig
// builds from the cache fields below.
type Config struct {
	// Cache engine (see cache.Config for the authoritative field docs)
	CacheName           string
	MaxSize             int
	DefaultTTL          time.Duration
	CleanupInterval     time.Duration
	EvictionPolicy      string
	Serializer          string
	StorageDir          string
	Filename            string
	CacheTimestamps     bool
	EnableMetrics       bool
	MetricsSerializer   string
	MetricsStorageDir   string
	MetricsFilename     string
	MetricsTimestamps   bool
	BoltPath            string // if set, persistence uses a bbolt-backed SnapshotBackend instead of loose files

	// Scheduled snapshotting
	ScheduledSaveInterval time.Duration // 0 disables periodic SaveToDisk

	// Circuit breaker guarding persistence calls
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration

	// HTTP server
	ListenAddr string

	// Admin API token for gating mutating endpoints (sent in the X-Admin-Token header)
	AdminAPIToken string

	// Security settings
	RateLimitGlobal      float64
	RateLimitGlobalBurst int
	RateLimitPerIP       float64
	RateLimitPerIPBurst  int
	CORSAllowedOrigins   []string
	EnableRateLimit      bool

	// Observability settings
	LogLevel          string
	OTELEnabled       bool
	OTELEndpoint      string
	OTELSampleRate    float64
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64

	// Metrics collection cadence for the Prometheus mirror
	MetricsCollectInterval time.Duration
}

var cached *Config

// Load reads env vars once and caches them.
func Load() *Config {
	if cached != nil {
		return cached
	}
	cached = &Config{
		CacheName:         strings.TrimSpace(firstNonEmpty(os.Getenv("CACHE_NAME"), "default")),
		MaxSize:           utils.GetEnvAsInt("CACHE_MAX_SIZE", 10000),
		DefaultTTL:        utils.GetEnvAsDuration("CACHE_DEFAULT_TTL", 0),
		CleanupInterval:   utils.GetEnvAsDuration("CACHE_CLEANUP_INTERVAL", 10*time.Second),
		EvictionPolicy:    strings.ToLower(strings.TrimSpace(firstNonEmpty(os.Getenv("CACHE_EVICTION_POLICY"), "lru"))),
		Serializer:        strings.ToLower(strings.TrimSpace(firstNonEmpty(os.Getenv("CACHE_SERIALIZER"), "json"))),
		StorageDir:        strings.TrimSpace(firstNonEmpty(os.Getenv("CACHE_STORAGE_DIR"), ".")),
		Filename:          strings.TrimSpace(firstNonEmpty(os.Getenv("CACHE_FILENAME"), "cache")),
		CacheTimestamps:   utils.GetEnvAsBool("CACHE_TIMESTAMPS", false),
		EnableMetrics:     utils.GetEnvAsBool("CACHE_ENABLE_METRICS", true),
		MetricsSerializer: strings.ToLower(strings.TrimSpace(firstNonEmpty(os.Getenv("CACHE_METRICS_SERIALIZER"), "json"))),
		MetricsStorageDir: strings.TrimSpace(firstNonEmpty(os.Getenv("CACHE_METRICS_STORAGE_DIR"), ".")),
		MetricsFilename:   strings.TrimSpace(firstNonEmpty(os.Getenv("CACHE_METRICS_FILENAME"), "cache_metrics")),
		MetricsTimestamps: utils.GetEnvAsBool("CACHE_METRICS_TIMESTAMPS", false),
		BoltPath:          strings.TrimSpace(os.Getenv("CACHE_BOLT_PATH")),

		ScheduledSaveInterval: utils.GetEnvAsDuration("CACHE_SCHEDULED_SAVE_INTERVAL", 0),

		CircuitBreakerFailureThreshold: utils.GetEnvAsInt("CACHE_BREAKER_FAILURE_THRESHOLD", 5),
		CircuitBreakerSuccessThreshold: utils.GetEnvAsInt("CACHE_BREAKER_SUCCESS_THRESHOLD", 2),
		CircuitBreakerTimeout:          utils.GetEnvAsDuration("CACHE_BREAKER_TIMEOUT", 60*time.Second),

		ListenAddr: strings.TrimSpace(firstNonEmpty(os.Getenv("LISTEN_ADDR"), ":8080")),

		AdminAPIToken: strings.TrimSpace(os.Getenv("ADMIN_API_TOKEN")),

		RateLimitGlobal:      utils.GetEnvAsFloat("RATE_LIMIT_GLOBAL", 100.0),
		RateLimitGlobalBurst: utils.GetEnvAsInt("RATE_LIMIT_GLOBAL_BURST", 200),
		RateLimitPerIP:       utils.GetEnvAsFloat("RATE_LIMIT_PER_IP", 10.0),
		RateLimitPerIPBurst:  utils.GetEnvAsInt("RATE_LIMIT_PER_IP_BURST", 20),
		EnableRateLimit:      utils.GetEnvAsBool("ENABLE_RATE_LIMIT", true),

		LogLevel:          strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		OTELEnabled:       utils.GetEnvAsBool("OTEL_ENABLED", false),
		OTELEndpoint:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTELSampleRate:    utils.GetEnvAsFloat("OTEL_TRACE_SAMPLE_RATE", 0.1),
		SentryDSN:         strings.TrimSpace(os.Getenv("SENTRY_DSN")),
		SentryEnvironment: strings.TrimSpace(os.Getenv("SENTRY_ENVIRONMENT")),
		SentryRelease:     strings.TrimSpace(os.Getenv("SENTRY_RELEASE")),
		SentrySampleRate:  utils.GetEnvAsFloat("SENTRY_SAMPLE_RATE", 1.0),

		MetricsCollectInterval: utils.GetEnvAsDuration("METRICS_COLLECT_INTERVAL", 15*time.Second),
	}

	if cached.LogLevel == "" {
		cached.LogLevel = "info"
	}
	if cached.SentryEnvironment == "" {
		if env := os.Getenv("ENV"); env != "" {
			cached.SentryEnvironment = env
		} else {
			cached.SentryEnvironment = "development"
		}
	}

	origins := utils.GetEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	cached.CORSAllowedOrigins = utils.UniqueStrings(origins)

	return cached
}

// ResetForTest clears cached config; for use in tests only.
func ResetForTest() { cached = nil }

// GetEnvBool reads a boolean environment variable with a default.
// Use this when you need to check a flag not present in the cached config.
func (c *Config) GetEnvBool(key string, def bool) bool {
	return utils.GetEnvAsBool(key, def)
}

// CacheConfig builds a cache.Config from the loaded service configuration.
// Callers pass it to cache.NewStore directly, optionally layering extra
// cache.Option values (e.g. WithSnapshotBackend for a bbolt-backed store).
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		Name:                c.CacheName,
		MaxSize:             c.MaxSize,
		DefaultTTL:          c.DefaultTTL,
		CleanupInterval:     c.CleanupInterval,
		EvictionPolicy:      c.EvictionPolicy,
		Serializer:          c.Serializer,
		StorageDir:          c.StorageDir,
		Filename:            c.Filename,
		UseTimestamp:        c.CacheTimestamps,
		EnableMetrics:       c.EnableMetrics,
		MetricsSerializer:   c.MetricsSerializer,
		MetricsStorageDir:   c.MetricsStorageDir,
		MetricsFilename:     c.MetricsFilename,
		MetricsUseTimestamp: c.MetricsTimestamps,
		Registry:            cache.DefaultRegistry(),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
