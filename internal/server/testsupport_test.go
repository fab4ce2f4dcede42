package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/geoguess/internal/config"
	"github.com/playperu/geoguess/internal/database"
	"github.com/playperu/geoguess/internal/geoguess"
	"github.com/playperu/geoguess/internal/migrations"
)

// testImages are seeded into every test store. Coordinates are real places so
// distance assertions stay meaningful.
var testImages = []geoguess.Image{
	{ID: "lima", RelativeURL: "images/lima.jpg", Title: "Plaza Mayor", Subtitle: "Lima", Lat: -12.0464, Lng: -77.0428},
	{ID: "cusco", RelativeURL: "images/cusco.jpg", Title: "Sacsayhuaman", Subtitle: "Cusco", Lat: -13.5320, Lng: -71.9675},
	{ID: "london", RelativeURL: "images/london.jpg", Title: "Tower Bridge", Subtitle: "London", Lat: 51.5074, Lng: -0.1278},
	{ID: "tokyo", RelativeURL: "images/tokyo.jpg", Title: "Shibuya", Subtitle: "Tokyo", Lat: 35.6762, Lng: 139.6503},
	{ID: "nyc", RelativeURL: "images/nyc.jpg", Title: "Brooklyn Bridge", Subtitle: "New York", Lat: 40.7128, Lng: -74.0060},
	{ID: "sydney", RelativeURL: "images/sydney.jpg", Title: "Opera House", Subtitle: "Sydney", Lat: -33.8688, Lng: 151.2093},
}

func testCoords(t *testing.T, id string) (float64, float64) {
	t.Helper()
	for _, img := range testImages {
		if img.ID == id {
			return img.Lat, img.Lng
		}
	}
	t.Fatalf("unknown test image %q", id)
	return 0, 0
}

func openTestStore(t *testing.T, seed bool) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "geoguess.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	store := NewSQLiteStore(db)
	if seed {
		for _, img := range testImages {
			if err := store.CreateImage(ctx, img); err != nil {
				t.Fatalf("seed image %q: %v", img.ID, err)
			}
		}
	}
	return store
}

// setupStore returns a seeded store backed by a temp file. A file rather than
// :memory: because every pooled connection to an in-memory database gets its
// own empty copy.
func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return openTestStore(t, true)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRouter(t *testing.T, store *SQLiteStore) http.Handler {
	t.Helper()

	cfg := &config.Config{RoundLimit: 5}
	r := chi.NewRouter()
	addRoutes(r, testLogger(), store.db, store, cfg)
	return r
}
