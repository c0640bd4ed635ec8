package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/onnwee/quickcache/internal/api"
	"github.com/onnwee/quickcache/internal/cache"
	"github.com/onnwee/quickcache/internal/config"
	"github.com/onnwee/quickcache/internal/errorreporting"
	"github.com/onnwee/quickcache/internal/logger"
	"github.com/onnwee/quickcache/internal/metrics"
	"github.com/onnwee/quickcache/internal/middleware"
	"github.com/onnwee/quickcache/internal/scheduler"
	"github.com/onnwee/quickcache/internal/server"
	"github.com/onnwee/quickcache/internal/tracing"
	"github.com/onnwee/quickcache/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found (falling back to system env)")
	}

	cfg := config.Load()

	logger.Init(cfg.LogLevel)
	logger.Info("initializing quickcache server", "log_level", cfg.LogLevel)

	if err := errorreporting.Init(cfg.SentryEnvironment); err != nil {
		logger.Warn("failed to initialize error reporting", "error", err)
	} else if errorreporting.IsSentryEnabled() {
		logger.Info("error reporting initialized", "environment", cfg.SentryEnvironment)
		defer func() {
			logger.Info("flushing error reports")
			errorreporting.Flush(2 * time.Second)
		}()
	}

	shutdownTracing, err := tracing.Init("quickcache")
	if err != nil {
		logger.Warn("failed to initialize tracing", "error", err)
	} else if cfg.OTELEnabled {
		logger.Info("tracing initialized", "endpoint", cfg.OTELEndpoint, "sample_rate", cfg.OTELSampleRate)
		defer func() {
			logger.Info("shutting down tracer")
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Error("failed to shutdown tracer", "error", err)
			}
		}()
	}

	storeOpts, err := storageOptions(cfg)
	if err != nil {
		logger.Error("failed to configure cache persistence", "error", err)
		log.Fatalf("failed to configure cache persistence: %v", err)
	}

	store, err := cache.NewStore(cfg.CacheConfig(), storeOpts...)
	if err != nil {
		logger.Error("failed to create cache store", "error", err)
		log.Fatalf("failed to create cache store: %v", err)
	}
	defer store.Stop()

	var limiter *middleware.RateLimiter
	if cfg.EnableRateLimit {
		limiter = middleware.NewRateLimiter(cfg.RateLimitGlobal, cfg.RateLimitGlobalBurst, cfg.RateLimitPerIP, cfg.RateLimitPerIPBurst)
	}

	router := api.NewRouter(store, cfg.CORSAllowedOrigins, limiter, cfg.AdminAPIToken)
	httpServer := server.NewServer(cfg.ListenAddr, router)
	httpServer.Start()
	logger.Info("server listening", "addr", cfg.ListenAddr)

	collector := metrics.NewCollector(store, cfg.MetricsCollectInterval)
	collectorCtx, stopCollector := context.WithCancel(context.Background())
	go collector.Start(collectorCtx)
	defer func() {
		stopCollector()
		collector.Stop()
	}()

	snapshotter := scheduler.NewService(store, cfg.ScheduledSaveInterval)
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	go snapshotter.Start(schedulerCtx)
	defer func() {
		stopScheduler()
		snapshotter.Stop()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}
	logger.Info("server shut down cleanly")
}

// storageOptions builds the cache.Option list for store persistence,
// preferring a bbolt-backed snapshot when CACHE_BOLT_PATH is set over the
// default loose-file FileManager.
func storageOptions(cfg *config.Config) ([]cache.Option, error) {
	if cfg.BoltPath == "" {
		return nil, nil
	}

	// bbolt returns ErrTimeout if another process still holds the file lock
	// from a just-finished previous run; a few short retries ride that out
	// instead of failing startup outright.
	var backend, metricsBackend *cache.BoltBackend
	openErr := utils.Retry(3, 200*time.Millisecond, func() error {
		var err error
		backend, err = cache.OpenBoltBackend(cfg.BoltPath, "cache")
		return err
	})
	if openErr != nil {
		return nil, openErr
	}
	openErr = utils.Retry(3, 200*time.Millisecond, func() error {
		var err error
		metricsBackend, err = cache.OpenBoltBackend(cfg.BoltPath, "cache_metrics")
		return err
	})
	if openErr != nil {
		return nil, openErr
	}

	return []cache.Option{
		cache.WithSnapshotBackend(backend),
		cache.WithMetricsSnapshotBackend(metricsBackend),
	}, nil
}
