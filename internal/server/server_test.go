package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/gallery"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/store"
)

type fixedState struct {
	snap gallery.Snapshot
}

func (f *fixedState) Snapshot() gallery.Snapshot {
	return f.snap
}

func TestServer_Health(t *testing.T) {
	srv := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health returned %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
}

func TestServer_HealthMethodNotAllowed(t *testing.T) {
	srv := New(Config{})

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/health returned %d, want 405", w.Code)
	}
}

func TestServer_MediaRoutesRequireStore(t *testing.T) {
	srv := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/media", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("media route without store returned %d, want 404", w.Code)
	}
}

func TestServer_MediaRoutesWired(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	srv := New(Config{Store: s})

	req := httptest.NewRequest(http.MethodGet, "/api/media", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("media list returned %d, want 200", w.Code)
	}
}

func TestStateHandler_StreamsSnapshots(t *testing.T) {
	source := &fixedState{snap: gallery.Snapshot{
		Mode:         "browse",
		ScrollOffset: 1.5,
		FocusedID:    "item-3",
		TimestampMs:  1234,
	}}

	srv := New(Config{State: source})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/state"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read state message: %v", err)
	}

	var msg stateMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("failed to decode state message: %v", err)
	}
	if msg.Type != "state" {
		t.Errorf("message type = %q, want %q", msg.Type, "state")
	}
	if msg.State == nil || msg.State.Mode != "browse" || msg.State.FocusedID != "item-3" {
		t.Errorf("unexpected snapshot: %+v", msg.State)
	}
}
