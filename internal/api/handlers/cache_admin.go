package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/onnwee/quickcache/internal/apierr"
	"github.com/onnwee/quickcache/internal/cache"
)

// CacheHandler exposes a thin administrative HTTP API over a single Store.
type CacheHandler struct {
	store *cache.Store
}

// NewCacheHandler builds a CacheHandler over store.
func NewCacheHandler(store *cache.Store) *CacheHandler {
	return &CacheHandler{store: store}
}

type putRequest struct {
	Value      any   `json:"value"`
	TTLSeconds int64 `json:"ttl_seconds,omitempty"`
}

func (r putRequest) ttl() time.Duration {
	if r.TTLSeconds == 0 {
		return 0
	}
	return time.Duration(r.TTLSeconds) * time.Second
}

// GetKey handles GET /v1/cache/{key}.
func (h *CacheHandler) GetKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	value, err := h.store.Get(key)
	if err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.FromCacheError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": value})
}

// PutKey handles PUT /v1/cache/{key} (upsert via Set).
func (h *CacheHandler) PutKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req putRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.store.Set(key, req.Value, req.ttl()); err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.FromCacheError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "status": "ok"})
}

// AddKey handles POST /v1/cache/{key}/add (insert-only).
func (h *CacheHandler) AddKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req putRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.store.Add(key, req.Value, req.ttl()); err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.FromCacheError(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"key": key, "status": "ok"})
}

// DeleteKey handles DELETE /v1/cache/{key}.
func (h *CacheHandler) DeleteKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := h.store.Delete(key); err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.FromCacheError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type getManyRequest struct {
	Keys []string `json:"keys"`
}

// GetMany handles POST /v1/cache:getMany.
func (h *CacheHandler) GetMany(w http.ResponseWriter, r *http.Request) {
	var req getManyRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": h.store.GetMany(req.Keys)})
}

type setManyRequest struct {
	Items      map[string]any `json:"items"`
	TTLSeconds int64          `json:"ttl_seconds,omitempty"`
}

// SetMany handles POST /v1/cache:setMany.
func (h *CacheHandler) SetMany(w http.ResponseWriter, r *http.Request) {
	var req setManyRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	ttl := time.Duration(0)
	if req.TTLSeconds != 0 {
		ttl = time.Duration(req.TTLSeconds) * time.Second
	}
	if err := h.store.SetMany(req.Items, ttl); err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.FromCacheError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "count": len(req.Items)})
}

type deleteManyRequest struct {
	Keys []string `json:"keys"`
}

// DeleteMany handles POST /v1/cache:deleteMany.
func (h *CacheHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var req deleteManyRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	h.store.DeleteMany(req.Keys)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "count": len(req.Keys)})
}

// Stats handles GET /v1/cache/stats.
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    h.store.Name(),
		"policy":  h.store.PolicyName(),
		"size":    h.store.Size(),
		"metrics": h.store.GetMetricsSnapshot(),
	})
}

// Clear handles POST /v1/cache:clear.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// CleanupExpired handles POST /v1/cache:cleanup.
func (h *CacheHandler) CleanupExpired(w http.ResponseWriter, r *http.Request) {
	removed := h.store.Cleanup()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "removed": removed})
}

// Save handles POST /v1/cache:save.
func (h *CacheHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SaveToDisk(); err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.FromCacheError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Load handles POST /v1/cache:load.
func (h *CacheHandler) Load(w http.ResponseWriter, r *http.Request) {
	if err := h.store.LoadFromDisk(); err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.FromCacheError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "size": h.store.Size()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		apierr.WriteErrorWithContext(w, r, apierr.ValidationInvalidJSON())
		return false
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apierr.WriteErrorWithContext(w, r, apierr.ValidationInvalidJSON())
		return false
	}
	return true
}
