package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/store"
)

func newSettingsHandler(t *testing.T) *SettingsHandler {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return NewSettingsHandler(s)
}

func TestSettingsHandler_SetAndGet(t *testing.T) {
	h := newSettingsHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/settings/pinch_on", strings.NewReader(`{"value":"0.035"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("put returned %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/settings/pinch_on", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get returned %d", w.Code)
	}

	var got settingValue
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Value != "0.035" {
		t.Errorf("value = %q, want %q", got.Value, "0.035")
	}
}

func TestSettingsHandler_GetMissing(t *testing.T) {
	h := newSettingsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/settings/missing", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("get missing returned %d, want 404", w.Code)
	}
}

func TestSettingsHandler_List(t *testing.T) {
	h := newSettingsHandler(t)

	for key, value := range map[string]string{"pinch_on": "0.04", "scroll_gain": "0.2"} {
		req := httptest.NewRequest(http.MethodPut, "/api/settings/"+key, strings.NewReader(`{"value":"`+value+`"}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("put %s returned %d", key, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d", w.Code)
	}

	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 2 || got["pinch_on"] != "0.04" {
		t.Errorf("list = %v", got)
	}
}

func TestSettingsHandler_BadRequests(t *testing.T) {
	h := newSettingsHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/settings/pinch_on", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad JSON returned %d, want 400", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/settings/pinch_on", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE returned %d, want 405", w.Code)
	}
}
