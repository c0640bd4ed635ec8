package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/onnwee/quickcache/internal/cache"
)

func newTestWebSocketServer(t *testing.T) (*httptest.Server, *cache.Store) {
	t.Helper()
	cfg := cache.NewConfig(8)
	cfg.StorageDir = t.TempDir()
	cfg.MetricsStorageDir = t.TempDir()
	store, err := cache.NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(store.Stop)

	h := NewWebSocketHandler(store)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return srv, store
}

func TestWebSocketHandler_SendsInitialSnapshot(t *testing.T) {
	srv, store := newTestWebSocketServer(t)

	if err := store.Set("k1", "v1", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var msg WebSocketMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if msg.Type != "snapshot" {
		t.Fatalf("expected message type snapshot, got %q", msg.Type)
	}
}

func TestWebSocketHandler_MultipleClientsEachGetSnapshot(t *testing.T) {
	srv, _ := newTestWebSocketServer(t)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	for i := 0; i < 2; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("Dial client %d: %v", i, err)
		}
		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if _, _, err := conn.ReadMessage(); err != nil {
			t.Fatalf("ReadMessage client %d: %v", i, err)
		}
	}
}
