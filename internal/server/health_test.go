package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealth(t *testing.T) {
	store := setupStore(t)
	r := testRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp HealthResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.SQLite != "ok" {
		t.Errorf("sqlite = %q, want %q", resp.SQLite, "ok")
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	store := setupStore(t)
	r := testRouter(t, store)

	store.db.Close()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var resp HealthResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.SQLite != "error" {
		t.Errorf("sqlite = %q, want %q", resp.SQLite, "error")
	}
}
