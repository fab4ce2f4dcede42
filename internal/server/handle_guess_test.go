package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStandaloneGuessPerfect(t *testing.T) {
	r := testRouter(t, setupStore(t))

	lat, lng := testCoords(t, "lima")
	w := postJSON(t, r, "/api/guess", map[string]any{
		"image_id": "lima",
		"guess":    map[string]float64{"lat": lat, "lng": lng},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GuessResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.DistanceMeters != 0 {
		t.Errorf("distance = %v, want 0", resp.DistanceMeters)
	}
	if resp.Score != 5000 {
		t.Errorf("score = %d, want 5000", resp.Score)
	}
	if resp.Solution.Lat != lat || resp.Solution.Lng != lng {
		t.Errorf("solution = %+v, want coordinates of lima", resp.Solution)
	}
}

func TestStandaloneGuessUnknownImage(t *testing.T) {
	r := testRouter(t, setupStore(t))

	w := postJSON(t, r, "/api/guess", map[string]any{
		"image_id": "nope",
		"guess":    map[string]float64{"lat": 0, "lng": 0},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStandaloneGuessValidation(t *testing.T) {
	r := testRouter(t, setupStore(t))

	cases := []map[string]any{
		{},
		{"image_id": "lima"},
		{"image_id": "lima", "guess": map[string]any{"lat": 1.0}},
		{"image_id": "lima", "guess": map[string]any{"lat": "x", "lng": "y"}},
		{"guess": map[string]float64{"lat": 0, "lng": 0}},
	}
	for i, body := range cases {
		w := postJSON(t, r, "/api/guess", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d: %s", i, w.Code, w.Body.String())
		}
	}
}

func TestStandaloneGuessWritesLog(t *testing.T) {
	store := setupStore(t)
	r := testRouter(t, store)

	w := postJSON(t, r, "/api/guess", map[string]any{
		"image_id": "lima",
		"guess":    map[string]float64{"lat": 10, "lng": 20},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM guess_logs WHERE image_id = 'lima'`).Scan(&count); err != nil {
		t.Fatalf("counting guess logs: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 guess log, got %d", count)
	}
}
