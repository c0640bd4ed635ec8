package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onnwee/quickcache/internal/api/handlers"
	"github.com/onnwee/quickcache/internal/cache"
	"github.com/onnwee/quickcache/internal/middleware"
)

// NewRouter builds the administrative HTTP API over store, wrapped in the
// standard middleware stack. adminToken, if non-empty, gates every mutating
// cache endpoint behind the X-Admin-Token header; read-only endpoints and
// the metrics/health/version/websocket surfaces stay open.
func NewRouter(store *cache.Store, corsOrigins []string, limiter *middleware.RateLimiter, adminToken string) *mux.Router {
	r := mux.NewRouter()

	cacheHandler := handlers.NewCacheHandler(store)
	wsHandler := handlers.NewWebSocketHandler(store)

	// The fixed /v1/cache/stats and /v1/cache/stream paths are registered
	// before /v1/cache/{key}: mux matches in registration order.
	r.HandleFunc("/v1/cache/stats", cacheHandler.Stats).Methods(http.MethodGet)
	r.HandleFunc("/v1/cache/stream", wsHandler.HandleWebSocket).Methods(http.MethodGet)
	r.HandleFunc("/v1/cache/{key}", cacheHandler.GetKey).Methods(http.MethodGet)
	r.HandleFunc("/v1/cache:getMany", cacheHandler.GetMany).Methods(http.MethodPost)

	r.HandleFunc("/v1/healthz", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/v1/version", handlers.Version).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	admin := r.NewRoute().Subrouter()
	admin.Use(middleware.RequireAdminToken(adminToken))

	admin.HandleFunc("/v1/cache/{key}", cacheHandler.PutKey).Methods(http.MethodPut)
	admin.HandleFunc("/v1/cache/{key}/add", cacheHandler.AddKey).Methods(http.MethodPost)
	admin.HandleFunc("/v1/cache/{key}", cacheHandler.DeleteKey).Methods(http.MethodDelete)
	admin.HandleFunc("/v1/cache:setMany", cacheHandler.SetMany).Methods(http.MethodPost)
	admin.HandleFunc("/v1/cache:deleteMany", cacheHandler.DeleteMany).Methods(http.MethodPost)
	admin.HandleFunc("/v1/cache:clear", cacheHandler.Clear).Methods(http.MethodPost)
	admin.HandleFunc("/v1/cache:cleanup", cacheHandler.CleanupExpired).Methods(http.MethodPost)
	admin.HandleFunc("/v1/cache:save", cacheHandler.Save).Methods(http.MethodPost)
	admin.HandleFunc("/v1/cache:load", cacheHandler.Load).Methods(http.MethodPost)

	corsConfig := middleware.DefaultCORSConfig()
	if len(corsOrigins) > 0 {
		corsConfig.AllowedOrigins = corsOrigins
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RecoverWithSentry)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Gzip)
	r.Use(middleware.ValidateRequestBody)
	if limiter != nil {
		r.Use(limiter.Limit)
	}

	return r
}
