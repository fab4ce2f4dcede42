package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/geoguess/internal/config"
)

func addRoutes(r chi.Router, logger *slog.Logger, db *sql.DB, store Store, cfg *config.Config) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("GeoGuess API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	// Player API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/images", handleListImages(store, cfg.PublicBaseURL))
		r.Get("/image/{imageID}", handleGetImage(store, cfg.PublicBaseURL))
		r.Post("/guess", handleGuess(logger, store))

		r.Post("/session", handleStartSession(logger, store, cfg.RoundLimit, cfg.PublicBaseURL))
		r.Post("/session/{sessionID}/guess", handleSessionGuess(logger, store, cfg.PublicBaseURL))
		r.Get("/session/{sessionID}/summary", handleSessionSummary(store))

		r.Get("/leaderboard", handleListLeaderboard(store))
		r.Post("/leaderboard", handleSubmitLeaderboard(store))
	})

	// Admin — cookie session, bcrypt login.
	r.Post("/api/admin/login", handleAdminLogin(store))
	r.Post("/api/admin/logout", handleAdminLogout(store))
	r.Get("/api/admin/me", handleAdminMe(store))

	r.Route("/api/admin/images", func(r chi.Router) {
		r.Use(adminAuthMiddleware(store))
		r.Get("/", handleAdminListImages(store))
		r.Post("/", handleAdminCreateImage(store))
		r.Put("/{imageID}", handleAdminUpdateImage(store))
		r.Delete("/{imageID}", handleAdminDeleteImage(store))
	})

	// Photo files.
	if cfg.ImagesDir != "" {
		if info, err := os.Stat(cfg.ImagesDir); err == nil && info.IsDir() {
			r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImagesDir))))
		}
	}

	if cfg.SPADir != "" {
		if info, err := os.Stat(cfg.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", cfg.SPADir)
			r.NotFound(handleSPA(cfg.SPADir))
		}
	}
}
